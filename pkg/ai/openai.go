package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "takehome",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of structured generation requests",
	}, []string{"model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "takehome",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of failed structured generation requests",
	}, []string{"model", "reason"})
)

const (
	maxAttempts    = 3
	initialBackoff = 2 * time.Second
	maxBackoff     = 10 * time.Second
)

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
// A custom BaseURL lets it target any OpenAI-compatible endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 8192
	}

	tracer := otel.Tracer("github.com/noah-isme/takehome-go-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// GenerateStructured sends the instruction to the model and returns the raw
// JSON payload after shape validation. Rate-limit failures are retried with
// exponential backoff; all other failures propagate immediately.
func (g *OpenAIGenerator) GenerateStructured(parent context.Context, instruction string, shape *jsonschema.Schema) (json.RawMessage, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate_structured", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		payload, err := g.complete(ctx, instruction, shape)
		if err == nil {
			return payload, nil
		}

		lastErr = err
		span.RecordError(err)

		if !isRateLimited(err) {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}

		g.logger.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("rate limited, retrying")
		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, ctx.Err().Error())
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(backoff):
		}

		backoff = nextBackoff(backoff)
	}

	span.SetStatus(codes.Error, lastErr.Error())
	return nil, lastErr
}

func (g *OpenAIGenerator) complete(ctx context.Context, instruction string, shape *jsonschema.Schema) (json.RawMessage, error) {
	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: instruction + "\n\nIMPORTANT: Return ONLY valid JSON, no markdown formatting, no explanation.",
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	generationDuration.WithLabelValues(g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		if isRateLimitResponse(err) {
			generationFailures.WithLabelValues(g.cfg.Model, "rate_limit").Inc()
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		generationFailures.WithLabelValues(g.cfg.Model, "request").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		generationFailures.WithLabelValues(g.cfg.Model, "empty").Inc()
		return nil, fmt.Errorf("%w: no choices returned", ErrUnavailable)
	}

	content := extractJSON(resp.Choices[0].Message.Content)
	payload, err := decodeStructured(content, shape)
	if err != nil {
		generationFailures.WithLabelValues(g.cfg.Model, "parse").Inc()
		return nil, err
	}

	return payload, nil
}

// extractJSON strips markdown code fences some models wrap around JSON output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// decodeStructured parses the content and enforces the expected shape.
func decodeStructured(content string, shape *jsonschema.Schema) (json.RawMessage, error) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("%w: parse response json: %v", ErrUnavailable, err)
	}

	if shape != nil {
		if err := shape.Validate(decoded); err != nil {
			return nil, fmt.Errorf("%w: response does not match expected shape: %v", ErrUnavailable, err)
		}
	}

	return json.RawMessage(content), nil
}

func isRateLimitResponse(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return true
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == 429 {
		return true
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "rate limit") || strings.Contains(message, "quota")
}

func isRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
