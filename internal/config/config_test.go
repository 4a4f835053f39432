package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TAKEHOME_OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Take-Home Generator API", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "openai", cfg.AIProvider)
	require.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	require.Equal(t, 8192, cfg.OpenAIMaxTokens)
	require.InDelta(t, 0.7, cfg.OpenAITemperature, 0.0001)
	require.Equal(t, 100, cfg.MinJobDescription)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TAKEHOME_OPENAI_API_KEY", "test-key")
	t.Setenv("TAKEHOME_APP_PORT", "9090")
	t.Setenv("TAKEHOME_OPENAI_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, "gpt-4o", cfg.OpenAIModel)
}

func TestLoadRequiresProviderKey(t *testing.T) {
	t.Setenv("TAKEHOME_OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TAKEHOME_AI_PROVIDER", "anthropic")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("TAKEHOME_ANTHROPIC_API_KEY", "anthropic-key")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "anthropic", cfg.AIProvider)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("TAKEHOME_AI_PROVIDER", "bard")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown ai provider")
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
}
