package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/takehome-go-api/internal/models"
	"github.com/noah-isme/takehome-go-api/pkg/ai"
)

// ErrContextExtraction indicates the job description carries too little
// signal to scope an assignment. User-correctable.
var ErrContextExtraction = errors.New("context extraction failed")

// ErrScopeValidation indicates the generated scope failed the quality gate.
// User-correctable; the message names the failed check.
var ErrScopeValidation = errors.New("scope validation failed")

// ErrRubricGeneration indicates the generated rubric is internally
// inconsistent. Treated as a service-side defect.
var ErrRubricGeneration = errors.New("rubric generation failed")

// ErrGeneration is the generic failure kind for the scope-definition and
// time-breakdown phases.
var ErrGeneration = errors.New("assignment generation failed")

// AssignmentService exposes the generation pipeline.
type AssignmentService interface {
	// Generate runs the full pipeline and returns the assembled assignment.
	Generate(ctx context.Context, input models.AssignmentInput) (models.GeneratedAssignment, error)
	// Validate runs context extraction, scope definition and scope validation
	// only, as a cheap pre-check.
	Validate(ctx context.Context, input models.AssignmentInput) (models.ValidationResult, error)
}

type assignmentService struct {
	generator ai.Generator
	gate      QualityGate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService constructs the assignment generation service.
func NewAssignmentService(generator ai.Generator, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		generator: generator,
		gate:      QualityGate{},
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) Generate(ctx context.Context, input models.AssignmentInput) (models.GeneratedAssignment, error) {
	input = s.sanitizeInput(input)

	jobContext, err := s.extractContext(ctx, input)
	if err != nil {
		return models.GeneratedAssignment{}, err
	}

	scope, err := s.defineScope(ctx, jobContext, input)
	if err != nil {
		return models.GeneratedAssignment{}, err
	}

	validation := s.validateScope(scope, input)
	if !validation.Passed {
		return models.GeneratedAssignment{}, fmt.Errorf("%w: %s", ErrScopeValidation, strings.Join(validation.Issues, ", "))
	}

	rubric, err := s.generateRubric(ctx, scope, input)
	if err != nil {
		return models.GeneratedAssignment{}, err
	}

	breakdown, err := s.generateTimeBreakdown(ctx, scope, input)
	if err != nil {
		return models.GeneratedAssignment{}, err
	}

	assignment := s.assemble(scope, rubric, breakdown, validation, input)

	s.logger.Info().
		Str("assignment_id", assignment.AssignmentID).
		Str("seniority", input.SeniorityLevel).
		Str("difficulty", assignment.EstimatedDifficulty).
		Int("warnings", len(assignment.ScopeWarnings)).
		Msg("assignment generated")

	return assignment, nil
}

func (s *assignmentService) Validate(ctx context.Context, input models.AssignmentInput) (models.ValidationResult, error) {
	input = s.sanitizeInput(input)

	jobContext, err := s.extractContext(ctx, input)
	if err != nil {
		return models.ValidationResult{}, err
	}

	scope, err := s.defineScope(ctx, jobContext, input)
	if err != nil {
		return models.ValidationResult{}, err
	}

	return s.validateScope(scope, input), nil
}

// sanitizeInput strips HTML from free-text fields before they are embedded
// into instructions. Job descriptions are often pasted from job boards with
// markup attached.
func (s *assignmentService) sanitizeInput(input models.AssignmentInput) models.AssignmentInput {
	input.JobDescription = strings.TrimSpace(s.sanitizer.Sanitize(input.JobDescription))
	input.CompanyContext = strings.TrimSpace(s.sanitizer.Sanitize(input.CompanyContext))
	input.CurrentChallenges = strings.TrimSpace(s.sanitizer.Sanitize(input.CurrentChallenges))
	return input
}

// extractContext is phase 1: pull responsibilities, domain and technologies
// out of the job description.
func (s *assignmentService) extractContext(ctx context.Context, input models.AssignmentInput) (models.JobContext, error) {
	instruction := contextExtractionInstruction(input.JobDescription, input.TechStack)

	payload, err := s.generator.GenerateStructured(ctx, instruction, contextShape)
	if err != nil {
		if isCapabilityError(err) {
			return models.JobContext{}, err
		}
		return models.JobContext{}, fmt.Errorf("%w: %v", ErrContextExtraction, err)
	}

	var jobContext models.JobContext
	if err := json.Unmarshal(payload, &jobContext); err != nil {
		return models.JobContext{}, fmt.Errorf("%w: parse context: %v", ErrContextExtraction, err)
	}

	if validation := s.gate.ValidateContext(jobContext); !validation.Passed {
		return models.JobContext{}, fmt.Errorf("%w: %s", ErrContextExtraction, strings.Join(validation.Issues, ", "))
	}

	return jobContext, nil
}

type scopePayload struct {
	Title                  string               `json:"title"`
	BusinessContext        string               `json:"business_context"`
	MustHaveRequirements   []models.Requirement `json:"must_have_requirements"`
	NiceToHaveRequirements []models.Requirement `json:"nice_to_have_requirements"`
	Constraints            []string             `json:"constraints"`
}

// defineScope is phase 2. Failures here share the generic ErrGeneration kind;
// this phase deliberately has no dedicated error.
func (s *assignmentService) defineScope(ctx context.Context, jobContext models.JobContext, input models.AssignmentInput) (models.AssignmentScope, error) {
	instruction := scopeDefinitionInstruction(jobContext, input)

	payload, err := s.generator.GenerateStructured(ctx, instruction, scopeShape)
	if err != nil {
		if isCapabilityError(err) {
			return models.AssignmentScope{}, err
		}
		return models.AssignmentScope{}, fmt.Errorf("%w: define scope: %v", ErrGeneration, err)
	}

	var decoded scopePayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return models.AssignmentScope{}, fmt.Errorf("%w: parse scope: %v", ErrGeneration, err)
	}

	return models.AssignmentScope{
		Title:           decoded.Title,
		BusinessContext: decoded.BusinessContext,
		MustHave:        decoded.MustHaveRequirements,
		NiceToHave:      decoded.NiceToHaveRequirements,
		Constraints:     decoded.Constraints,
	}, nil
}

// validateScope is phase 3: a pure quality-gate pass with no capability call.
// Structural warnings come first, heuristic warnings after.
func (s *assignmentService) validateScope(scope models.AssignmentScope, input models.AssignmentInput) models.ValidationResult {
	result := s.gate.ValidateScope(scope, input.TimeBudgetHours)
	heuristic := s.gate.ScopeWarnings(scope, input.SeniorityLevel, input.TimeBudgetHours)

	return models.ValidationResult{
		Passed:   result.Passed,
		Issues:   result.Issues,
		Warnings: append(result.Warnings, heuristic...),
	}
}

// generateRubric is phase 4a. A gate failure here escalates to the dedicated
// rubric error kind: an inconsistent rubric is a model defect, not bad input.
func (s *assignmentService) generateRubric(ctx context.Context, scope models.AssignmentScope, input models.AssignmentInput) (models.EvaluatorGuide, error) {
	instruction := rubricInstruction(scope, input)

	payload, err := s.generator.GenerateStructured(ctx, instruction, rubricShape)
	if err != nil {
		if isCapabilityError(err) {
			return models.EvaluatorGuide{}, err
		}
		return models.EvaluatorGuide{}, fmt.Errorf("%w: %v", ErrRubricGeneration, err)
	}

	var guide models.EvaluatorGuide
	if err := json.Unmarshal(payload, &guide); err != nil {
		return models.EvaluatorGuide{}, fmt.Errorf("%w: parse rubric: %v", ErrRubricGeneration, err)
	}

	if validation := s.gate.ValidateRubric(guide.ScoringRubric); !validation.Passed {
		return models.EvaluatorGuide{}, fmt.Errorf("%w: %s", ErrRubricGeneration, strings.Join(validation.Issues, ", "))
	}

	return guide, nil
}

// generateTimeBreakdown is phase 4b. The breakdown_valid flag is the model's
// own arithmetic self-check and is accepted as reported.
func (s *assignmentService) generateTimeBreakdown(ctx context.Context, scope models.AssignmentScope, input models.AssignmentInput) (models.TimeBreakdown, error) {
	instruction := timeBreakdownInstruction(scope, input.TimeBudgetHours)

	payload, err := s.generator.GenerateStructured(ctx, instruction, timeBreakdownShape)
	if err != nil {
		if isCapabilityError(err) {
			return models.TimeBreakdown{}, err
		}
		return models.TimeBreakdown{}, fmt.Errorf("%w: time breakdown: %v", ErrGeneration, err)
	}

	var breakdown models.TimeBreakdown
	if err := json.Unmarshal(payload, &breakdown); err != nil {
		return models.TimeBreakdown{}, fmt.Errorf("%w: parse time breakdown: %v", ErrGeneration, err)
	}

	return breakdown, nil
}

func (s *assignmentService) assemble(
	scope models.AssignmentScope,
	rubric models.EvaluatorGuide,
	breakdown models.TimeBreakdown,
	validation models.ValidationResult,
	input models.AssignmentInput,
) models.GeneratedAssignment {
	criteria := make([]string, 0, len(rubric.ScoringRubric))
	for _, item := range rubric.ScoringRubric {
		criteria = append(criteria, item.Area)
	}

	brief := models.CandidateBrief{
		Title:           scope.Title,
		BusinessContext: scope.BusinessContext,
		Requirements: models.Requirements{
			MustHave:    scope.MustHave,
			NiceToHave:  scope.NiceToHave,
			Constraints: scope.Constraints,
		},
		SubmissionGuidelines: buildSubmissionGuidelines(input),
		EvaluationCriteria:   criteria,
		TimeEstimate:         formatTimeEstimate(input.TimeBudgetHours),
	}

	return models.GeneratedAssignment{
		CandidateBrief:      brief,
		EvaluatorGuide:      rubric,
		TimeBreakdown:       breakdown,
		AssignmentID:        uuid.NewString(),
		GeneratedAt:         s.now(),
		EstimatedDifficulty: estimateDifficulty(scope),
		ScopeWarnings:       validation.Warnings,
	}
}

// formatTimeEstimate renders whole hours without a decimal and fractional
// hours with one.
func formatTimeEstimate(hours float64) string {
	if hours == float64(int(hours)) {
		return fmt.Sprintf("%d hours", int(hours))
	}
	return fmt.Sprintf("%.1f hours", hours)
}

var submissionGuidelines = map[string]string{
	models.SubmissionFormatGitHub: "Please submit your solution as a GitHub repository. " +
		"Include a comprehensive README with setup instructions, " +
		"architecture decisions, and any assumptions made.",
	models.SubmissionFormatZip: "Please submit your solution as a ZIP file. " +
		"Include a comprehensive README with setup instructions, " +
		"architecture decisions, and any assumptions made.",
	models.SubmissionFormatCodeSandbox: "Please submit your solution as a CodeSandbox link. " +
		"Ensure all dependencies are properly configured and the " +
		"sandbox is publicly accessible.",
}

func buildSubmissionGuidelines(input models.AssignmentInput) string {
	base, ok := submissionGuidelines[input.SubmissionFormat]
	if !ok {
		base = submissionGuidelines[models.SubmissionFormatGitHub]
	}

	if len(input.CandidateCanUse) > 0 {
		return base + "\n\n" + fmt.Sprintf("You may use the following libraries/frameworks: %s", strings.Join(input.CandidateCanUse, ", "))
	}

	return base
}

// estimateDifficulty thresholds on total minutes and must-have count. The
// asymmetric bounds (<= for easy, >= for hard) are intentional tie-breaks.
func estimateDifficulty(scope models.AssignmentScope) string {
	totalTime := scope.TotalMinutes()
	requirementCount := len(scope.MustHave)

	switch {
	case totalTime <= 180 && requirementCount <= 4:
		return "easy"
	case totalTime >= 360 || requirementCount >= 6:
		return "hard"
	default:
		return "medium"
	}
}

// isCapabilityError reports whether err originated at the capability boundary
// and should surface unchanged rather than be rebranded as a phase failure.
func isCapabilityError(err error) bool {
	return errors.Is(err, ai.ErrRateLimited) || errors.Is(err, ai.ErrUnavailable)
}
