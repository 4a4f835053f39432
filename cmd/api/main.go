package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/takehome-go-api/internal/config"
	"github.com/noah-isme/takehome-go-api/internal/handler"
	"github.com/noah-isme/takehome-go-api/internal/middleware"
	"github.com/noah-isme/takehome-go-api/internal/router"
	"github.com/noah-isme/takehome-go-api/internal/service"
	"github.com/noah-isme/takehome-go-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentService := service.NewAssignmentService(generator, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, validate, cfg, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: assignmentHandler,
	})

	logger.Info().Str("env", cfg.AppEnv).Str("addr", cfg.HTTPAddress()).Msg("starting server")

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) (ai.Generator, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicGenerator(ai.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
		})
	default:
		return ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			BaseURL:     cfg.OpenAIBaseURL,
			MaxTokens:   cfg.OpenAIMaxTokens,
			Temperature: float32(cfg.OpenAITemperature),
			Logger:      logger,
		})
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
