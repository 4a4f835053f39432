package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	AIProvider        string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	AnthropicAPIKey   string
	AnthropicModel    string
	MinJobDescription int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TAKEHOME")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Take-Home Generator API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 8192)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("min_job_description", 100)

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		AIProvider:        strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:      v.GetString("openai.api_key"),
		OpenAIModel:       v.GetString("openai.model"),
		OpenAIBaseURL:     v.GetString("openai.base_url"),
		OpenAIMaxTokens:   v.GetInt("openai.max_tokens"),
		OpenAITemperature: v.GetFloat64("openai.temperature"),
		AnthropicAPIKey:   v.GetString("anthropic.api_key"),
		AnthropicModel:    v.GetString("anthropic.model"),
		MinJobDescription: v.GetInt("min_job_description"),
	}

	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("openai api key must be provided")
		}
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return Config{}, fmt.Errorf("anthropic api key must be provided")
		}
	default:
		return Config{}, fmt.Errorf("unknown ai provider %q", cfg.AIProvider)
	}

	if cfg.MinJobDescription <= 0 {
		cfg.MinJobDescription = 100
	}

	return cfg, nil
}
