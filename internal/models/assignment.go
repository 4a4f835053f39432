package models

import "time"

// Seniority levels accepted by the generator.
const (
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
	SeniorityStaff  = "staff"
)

// Submission formats supported by the candidate brief.
const (
	SubmissionFormatGitHub      = "github"
	SubmissionFormatZip         = "zip"
	SubmissionFormatCodeSandbox = "codesandbox"
)

// AssignmentInput carries the parameters for one generation request.
type AssignmentInput struct {
	JobTitle          string
	JobDescription    string
	TechStack         []string
	TimeBudgetHours   float64
	SeniorityLevel    string
	CompanyContext    string
	CurrentChallenges string
	MustEvaluate      []string
	AvoidTopics       []string
	CandidateCanUse   []string
	SubmissionFormat  string
}

// JobContext is the signal extracted from a job description.
type JobContext struct {
	Responsibilities      []string `json:"responsibilities"`
	BusinessDomain        string   `json:"business_domain"`
	DailyTechnologies     []string `json:"daily_technologies"`
	CollaborationPatterns string   `json:"collaboration_patterns,omitempty"`
}

// Requirement is a single deliverable within an assignment.
type Requirement struct {
	Description          string `json:"description"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
	WhyItMatters         string `json:"why_it_matters"`
}

// AssignmentScope is the scoped assignment before rubric and time generation.
type AssignmentScope struct {
	Title           string        `json:"title"`
	BusinessContext string        `json:"business_context"`
	MustHave        []Requirement `json:"must_have"`
	NiceToHave      []Requirement `json:"nice_to_have"`
	Constraints     []string      `json:"constraints"`
}

// AllRequirements returns must-have and nice-to-have requirements in order.
func (s AssignmentScope) AllRequirements() []Requirement {
	all := make([]Requirement, 0, len(s.MustHave)+len(s.NiceToHave))
	all = append(all, s.MustHave...)
	all = append(all, s.NiceToHave...)
	return all
}

// TotalMinutes sums the estimated time over every requirement.
func (s AssignmentScope) TotalMinutes() int {
	total := 0
	for _, req := range s.AllRequirements() {
		total += req.EstimatedTimeMinutes
	}
	return total
}

// ValidationResult is the outcome of a quality-gate check. Issues block,
// warnings do not; Passed is true exactly when Issues is empty.
type ValidationResult struct {
	Passed   bool     `json:"passed"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// RubricItem is one scoring dimension in the evaluator rubric.
type RubricItem struct {
	Area              string  `json:"area"`
	Weight            float64 `json:"weight"`
	JuniorExpectation string  `json:"junior_expectation"`
	MidExpectation    string  `json:"mid_expectation"`
	SeniorExpectation string  `json:"senior_expectation"`
	ScoringGuide      string  `json:"scoring_guide"`
}

// EvaluatorGuide packages the rubric with calibration material for reviewers.
type EvaluatorGuide struct {
	ScoringRubric    []RubricItem `json:"scoring_rubric"`
	CommonPitfalls   []string     `json:"common_pitfalls"`
	RedFlags         []string     `json:"red_flags"`
	GreenFlags       []string     `json:"green_flags"`
	CalibrationNotes string       `json:"calibration_notes"`
}

// TimeBreakdown allocates the budget across work categories. BreakdownValid is
// the model's own arithmetic self-check and is not recomputed here.
type TimeBreakdown struct {
	TotalMinutes              int  `json:"total_minutes"`
	SetupMinutes              int  `json:"setup_minutes"`
	CoreImplementationMinutes int  `json:"core_implementation_minutes"`
	TestingMinutes            int  `json:"testing_minutes"`
	DocumentationMinutes      int  `json:"documentation_minutes"`
	BufferMinutes             int  `json:"buffer_minutes"`
	BreakdownValid            bool `json:"breakdown_valid"`
}

// Requirements groups the deliverables presented to the candidate.
type Requirements struct {
	MustHave    []Requirement `json:"must_have"`
	NiceToHave  []Requirement `json:"nice_to_have"`
	Constraints []string      `json:"constraints"`
}

// CandidateBrief is the assignment as handed to a candidate.
type CandidateBrief struct {
	Title                string       `json:"title"`
	BusinessContext      string       `json:"business_context"`
	Requirements         Requirements `json:"requirements"`
	SubmissionGuidelines string       `json:"submission_guidelines"`
	EvaluationCriteria   []string     `json:"evaluation_criteria"`
	TimeEstimate         string       `json:"time_estimate"`
}

// GeneratedAssignment is the final pipeline output.
type GeneratedAssignment struct {
	CandidateBrief      CandidateBrief `json:"candidate_brief"`
	EvaluatorGuide      EvaluatorGuide `json:"evaluator_guide"`
	TimeBreakdown       TimeBreakdown  `json:"time_breakdown"`
	AssignmentID        string         `json:"assignment_id"`
	GeneratedAt         time.Time      `json:"generated_at"`
	EstimatedDifficulty string         `json:"estimated_difficulty"`
	ScopeWarnings       []string       `json:"scope_warnings"`
}
