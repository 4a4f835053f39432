package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/takehome-go-api/internal/config"
	"github.com/noah-isme/takehome-go-api/internal/dto"
	"github.com/noah-isme/takehome-go-api/internal/service"
	"github.com/noah-isme/takehome-go-api/internal/utils"
	"github.com/noah-isme/takehome-go-api/pkg/ai"
)

// AssignmentHandler exposes the generation pipeline over HTTP.
type AssignmentHandler struct {
	service           service.AssignmentService
	validator         *validator.Validate
	logger            zerolog.Logger
	minJobDescription int
}

// NewAssignmentHandler constructs the handler. The job-description minimum
// comes from configuration rather than a struct tag so operators can tune it.
func NewAssignmentHandler(service service.AssignmentService, validator *validator.Validate, cfg config.Config, logger zerolog.Logger) *AssignmentHandler {
	minJobDescription := cfg.MinJobDescription
	if minJobDescription <= 0 {
		minJobDescription = 100
	}

	return &AssignmentHandler{
		service:           service,
		validator:         validator,
		logger:            logger.With().Str("component", "assignment_handler").Logger(),
		minJobDescription: minJobDescription,
	}
}

func (h *AssignmentHandler) checkPayload(payload dto.GenerateAssignmentRequest) error {
	if err := h.validator.Struct(payload); err != nil {
		return err
	}
	if len(payload.JobDescription) < h.minJobDescription {
		return fmt.Errorf("job_description must be at least %d characters", h.minJobDescription)
	}
	return nil
}

// Register wires the handler endpoints into the router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Post("/generate", h.generate)
	router.Post("/validate", h.validate)
}

func (h *AssignmentHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.checkPayload(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	log := requestLogger(h.logger, c)
	log.Info().
		Str("job_title", payload.JobTitle).
		Str("seniority", payload.SeniorityLevel).
		Float64("time_budget_hours", payload.TimeBudgetHours).
		Msg("assignment generation started")

	assignment, err := h.service.Generate(c.Context(), payload.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment generated", assignment)
}

func (h *AssignmentHandler) validate(c *fiber.Ctx) error {
	var payload dto.GenerateAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.checkPayload(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Validate(c.Context(), payload.Input())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "input validated", result)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	log := requestLogger(h.logger, c)

	switch {
	case errors.Is(err, service.ErrScopeValidation):
		log.Warn().Err(err).Msg("scope validation failed")
		return utils.SendErrorDetail(c, fiber.StatusBadRequest, "scope validation failed", dto.ErrorDetail{
			Error:           "scope_mismatch",
			Title:           "Assignment scope needs adjustment",
			Message:         "The generated requirements don't quite match your time budget. This happens occasionally - the model is being careful to create realistic assignments.",
			TechnicalDetail: err.Error(),
			Suggestions: []string{
				"Try again - results vary each time",
				"Adjust your time budget slightly (try +/- 30 minutes)",
				"Add more context in the job description to help scoping",
			},
		})

	case errors.Is(err, service.ErrContextExtraction):
		log.Warn().Err(err).Msg("context extraction failed")
		return utils.SendErrorDetail(c, fiber.StatusBadRequest, "insufficient context", dto.ErrorDetail{
			Error:           "insufficient_context",
			Title:           "Need more details",
			Message:         "The job description doesn't have enough information to create a well-scoped assignment.",
			TechnicalDetail: err.Error(),
			Suggestions: []string{
				"Add more details about the role's responsibilities",
				"Include specific technical requirements or challenges",
				"Describe the team structure or project context",
			},
		})

	case errors.Is(err, service.ErrRubricGeneration):
		log.Error().Err(err).Msg("rubric generation failed")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "rubric generation failed", dto.ErrorDetail{
			Error:   "rubric_generation_failed",
			Title:   "Couldn't generate evaluation rubric",
			Message: "The model had trouble creating the scoring rubric for this assignment.",
			Suggestions: []string{
				"Try again to regenerate",
				"Try simplifying your requirements",
				"If this persists, the AI service may be experiencing issues",
			},
		})

	case errors.Is(err, ai.ErrRateLimited), errors.Is(err, ai.ErrUnavailable):
		log.Error().Err(err).Msg("generation capability error")
		return utils.SendErrorDetail(c, fiber.StatusServiceUnavailable, "service unavailable", dto.ErrorDetail{
			Error:   "service_unavailable",
			Title:   "AI service temporarily unavailable",
			Message: "We're having trouble reaching the AI service. This is usually temporary.",
			Suggestions: []string{
				"Wait a moment and try again",
				"Check if the issue persists after a few minutes",
			},
		})

	case errors.Is(err, service.ErrGeneration):
		log.Error().Err(err).Msg("assignment generation failed")
		return utils.SendErrorDetail(c, fiber.StatusInternalServerError, "generation failed", dto.ErrorDetail{
			Error:   "generation_failed",
			Title:   "Something went wrong",
			Message: "Assignment generation failed unexpectedly.",
			Suggestions: []string{
				"Try again to retry",
			},
		})

	default:
		log.Error().Err(err).Msg("unexpected error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
