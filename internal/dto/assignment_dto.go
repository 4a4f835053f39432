package dto

import "github.com/noah-isme/takehome-go-api/internal/models"

// GenerateAssignmentRequest is the payload for both the generate and validate
// endpoints.
type GenerateAssignmentRequest struct {
	JobTitle          string   `json:"job_title" validate:"required,min=1,max=200"`
	JobDescription    string   `json:"job_description" validate:"required,max=5000"`
	TechStack         []string `json:"tech_stack" validate:"required,min=1,dive,required"`
	TimeBudgetHours   float64  `json:"time_budget_hours" validate:"required,gte=2,lte=8"`
	SeniorityLevel    string   `json:"seniority_level" validate:"required,oneof=junior mid senior staff"`
	CompanyContext    string   `json:"company_context,omitempty"`
	CurrentChallenges string   `json:"current_challenges,omitempty"`
	MustEvaluate      []string `json:"must_evaluate,omitempty"`
	AvoidTopics       []string `json:"avoid_topics,omitempty"`
	CandidateCanUse   []string `json:"candidate_can_use,omitempty"`
	SubmissionFormat  string   `json:"submission_format,omitempty" validate:"omitempty,oneof=github zip codesandbox"`
}

// Input converts the request into the domain input, applying defaults.
func (r GenerateAssignmentRequest) Input() models.AssignmentInput {
	format := r.SubmissionFormat
	if format == "" {
		format = models.SubmissionFormatGitHub
	}

	return models.AssignmentInput{
		JobTitle:          r.JobTitle,
		JobDescription:    r.JobDescription,
		TechStack:         r.TechStack,
		TimeBudgetHours:   r.TimeBudgetHours,
		SeniorityLevel:    r.SeniorityLevel,
		CompanyContext:    r.CompanyContext,
		CurrentChallenges: r.CurrentChallenges,
		MustEvaluate:      r.MustEvaluate,
		AvoidTopics:       r.AvoidTopics,
		CandidateCanUse:   r.CandidateCanUse,
		SubmissionFormat:  format,
	}
}

// ErrorDetail is the rich error payload returned for generation failures, so
// callers can surface targeted guidance.
type ErrorDetail struct {
	Error           string   `json:"error"`
	Title           string   `json:"title"`
	Message         string   `json:"message"`
	TechnicalDetail string   `json:"technical_detail,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}
