package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/takehome-go-api/internal/models"
)

// systemContext steers every instruction sent to the generation capability.
const systemContext = `You are an expert technical hiring manager with 10+ years of experience
creating take-home assignments. Your goal is to generate assignments that:

1. Reflect actual job responsibilities, not generic coding challenges
2. Respect candidate time with realistic scope
3. Provide clear evaluation criteria
4. Test for seniority-appropriate skills
5. Allow for creative interpretation and diverse solutions

Key principles:
- Be specific about business context (don't say "build a bookstore API")
- Break down time explicitly (setup, implementation, testing, docs)
- Define must-have vs nice-to-have clearly
- Create rubrics that prevent evaluator bias
- Flag when scope doesn't match time budget

CRITICAL - Requirements must be OUTCOME-FOCUSED, not implementation-specific:
- DO NOT specify exact field names, data types, or schema details
- DO NOT prescribe specific validation rules (e.g., "max 100 chars", "email format")
- DO NOT dictate exact status values, enum options, or state machines
- DO NOT specify exact HTTP status codes or error message formats
- INSTEAD describe WHAT the system should accomplish, not HOW to implement it
- Let candidates make their own design decisions about data modeling
- Focus on capabilities and behaviors, not technical specifications
- Allow room for candidates to demonstrate architectural thinking`

func buildInstruction(body string) string {
	return systemContext + "\n\n" + body
}

func contextExtractionInstruction(jobDescription string, techStack []string) string {
	return buildInstruction(fmt.Sprintf(`Analyze this job description and extract:
1. Primary technical responsibilities (3-5 items)
2. Business domain and product context
3. Technologies that will be used daily
4. Team collaboration patterns (if mentioned)

Job Description: %s
Tech Stack: %s

Return your analysis in JSON format with keys:
- responsibilities (array of strings)
- business_domain (string)
- daily_technologies (array of strings)
- collaboration_patterns (string or null)`, jobDescription, strings.Join(techStack, ", ")))
}

func scopeDefinitionInstruction(context models.JobContext, input models.AssignmentInput) string {
	mustHaveHours := input.TimeBudgetHours * 0.6
	niceToHaveHours := input.TimeBudgetHours * 0.2
	bufferHours := input.TimeBudgetHours * 0.2

	contextJSON, _ := json.Marshal(context)

	additional := strings.Builder{}
	if input.CompanyContext != "" {
		additional.WriteString("\nCompany Context: ")
		additional.WriteString(input.CompanyContext)
	}
	if input.CurrentChallenges != "" {
		additional.WriteString("\nCurrent Challenges: ")
		additional.WriteString(input.CurrentChallenges)
	}

	return buildInstruction(fmt.Sprintf(`Create a take-home assignment for %s level.
Time budget: %g hours

Requirements:
1. Must-haves should take %gh (%g minutes)
2. Nice-to-haves should take %gh (%g minutes)
3. Include %gh (%g minutes) buffer
4. Each requirement must tie to actual job responsibility
5. Include realistic business constraints (rate limits, data volumes, etc.)

Context: %s
Focus areas: %s
Avoid: %s%s

IMPORTANT - Write requirements that are OUTCOME-FOCUSED, not prescriptive:
- Describe WHAT the system should do, not HOW to implement it
- DO NOT specify exact field names, data types, character limits, or enum values
- DO NOT dictate specific HTTP status codes or error formats
- Let candidates decide their own data models, validation rules, and API contracts
- Focus on capabilities ("track request status") not specifics ("status must be enum: open, closed")
- Allow creative interpretation so different candidates produce different valid solutions
- Requirements should test problem-solving and design skills, not ability to follow instructions

Return JSON with:
- title (string): Assignment title
- business_context (string): 200-400 words describing the business problem
- must_have_requirements (array): Each with description, estimated_time_minutes, why_it_matters
- nice_to_have_requirements (array): Same structure as must_have
- constraints (array of strings): High-level technical constraints (framework choices, no external DB, etc.) - NOT implementation details

Make the business context SPECIFIC and realistic, but keep requirements general enough for creative solutions.`,
		input.SeniorityLevel, input.TimeBudgetHours,
		mustHaveHours, mustHaveHours*60,
		niceToHaveHours, niceToHaveHours*60,
		bufferHours, bufferHours*60,
		contextJSON,
		strings.Join(input.MustEvaluate, ", "),
		strings.Join(input.AvoidTopics, ", "),
		additional.String()))
}

func rubricInstruction(scope models.AssignmentScope, input models.AssignmentInput) string {
	requirementsJSON, _ := json.Marshal(scope.MustHave)

	return buildInstruction(fmt.Sprintf(`Generate evaluation rubric for this take-home assignment:

Assignment: %s
Seniority: %s
Must evaluate: %s
Requirements: %s

Create a rubric with 4-6 evaluation areas. For each area:
1. Define weight (sum must equal 1.0)
2. Junior expectation (if applicable)
3. Mid-level expectation
4. Senior expectation
5. Scoring guide (how to assign 1-5 score)

IMPORTANT - Evaluation should focus on:
- Quality of design DECISIONS, not adherence to a specific implementation
- How well the candidate justified their choices (in README or comments)
- Creativity and thoughtfulness in solving the problem
- Different valid approaches should score equally well
- DO NOT penalize candidates for choosing different field names, data structures, or API designs
- Evaluate the REASONING behind choices, not the specific choices themselves

Also provide:
- Common pitfalls candidates make (3-5 items) - focus on design/thinking mistakes, not implementation details
- Red flags that indicate poor understanding (3-5 items) - about fundamentals, not specific choices
- Green flags that indicate strong performance (3-5 items) - about design thinking and justification
- Calibration notes for consistent evaluation (2-3 paragraphs) - emphasize evaluating diverse solutions fairly

Return JSON with:
- scoring_rubric (array): Each item has area, weight, junior_expectation, mid_expectation, senior_expectation, scoring_guide
- common_pitfalls (array of strings)
- red_flags (array of strings)
- green_flags (array of strings)
- calibration_notes (string)

Ensure weights sum to exactly 1.0.`,
		scope.Title, input.SeniorityLevel,
		strings.Join(input.MustEvaluate, ", "), requirementsJSON))
}

func timeBreakdownInstruction(scope models.AssignmentScope, timeBudgetHours float64) string {
	totalMinutes := int(timeBudgetHours * 60)
	mustHaveJSON, _ := json.Marshal(scope.MustHave)
	niceToHaveJSON, _ := json.Marshal(scope.NiceToHave)

	return buildInstruction(fmt.Sprintf(`Create a detailed time breakdown for this assignment:

Title: %s
Must-have requirements: %s
Nice-to-have requirements: %s
Total time budget: %g hours (%d minutes)

Break down the time into:
- setup_minutes: Environment setup, reading requirements
- core_implementation_minutes: Building the main functionality
- testing_minutes: Writing and running tests
- documentation_minutes: README, comments, etc.
- buffer_minutes: Unexpected issues, debugging

Return JSON with:
- total_minutes (integer): %d
- setup_minutes (integer)
- core_implementation_minutes (integer)
- testing_minutes (integer)
- documentation_minutes (integer)
- buffer_minutes (integer)
- breakdown_valid (boolean): true if components sum to total_minutes +/- 5

Ensure all values are realistic and components sum correctly.`,
		scope.Title, mustHaveJSON, niceToHaveJSON,
		timeBudgetHours, totalMinutes, totalMinutes))
}

// Expected shapes for the structured responses, enforced by the capability
// before a phase ever sees the payload.
var (
	contextShape = jsonschema.MustCompileString("context.json", `{
		"type": "object",
		"properties": {
			"responsibilities": {"type": "array", "items": {"type": "string"}},
			"business_domain": {"type": "string"},
			"daily_technologies": {"type": "array", "items": {"type": "string"}},
			"collaboration_patterns": {"type": ["string", "null"]}
		},
		"required": ["responsibilities", "business_domain", "daily_technologies"]
	}`)

	scopeShape = jsonschema.MustCompileString("scope.json", `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"business_context": {"type": "string"},
			"must_have_requirements": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"description": {"type": "string"},
						"estimated_time_minutes": {"type": "integer", "exclusiveMinimum": 0},
						"why_it_matters": {"type": "string"}
					},
					"required": ["description", "estimated_time_minutes", "why_it_matters"]
				}
			},
			"nice_to_have_requirements": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"description": {"type": "string"},
						"estimated_time_minutes": {"type": "integer", "exclusiveMinimum": 0},
						"why_it_matters": {"type": "string"}
					},
					"required": ["description", "estimated_time_minutes", "why_it_matters"]
				}
			},
			"constraints": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["title", "business_context", "must_have_requirements", "nice_to_have_requirements", "constraints"]
	}`)

	rubricShape = jsonschema.MustCompileString("rubric.json", `{
		"type": "object",
		"properties": {
			"scoring_rubric": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"area": {"type": "string"},
						"weight": {"type": "number"},
						"junior_expectation": {"type": "string"},
						"mid_expectation": {"type": "string"},
						"senior_expectation": {"type": "string"},
						"scoring_guide": {"type": "string"}
					},
					"required": ["area", "weight", "junior_expectation", "mid_expectation", "senior_expectation", "scoring_guide"]
				}
			},
			"common_pitfalls": {"type": "array", "items": {"type": "string"}},
			"red_flags": {"type": "array", "items": {"type": "string"}},
			"green_flags": {"type": "array", "items": {"type": "string"}},
			"calibration_notes": {"type": "string"}
		},
		"required": ["scoring_rubric", "common_pitfalls", "red_flags", "green_flags", "calibration_notes"]
	}`)

	timeBreakdownShape = jsonschema.MustCompileString("time_breakdown.json", `{
		"type": "object",
		"properties": {
			"total_minutes": {"type": "integer", "exclusiveMinimum": 0},
			"setup_minutes": {"type": "integer", "minimum": 0},
			"core_implementation_minutes": {"type": "integer", "exclusiveMinimum": 0},
			"testing_minutes": {"type": "integer", "minimum": 0},
			"documentation_minutes": {"type": "integer", "minimum": 0},
			"buffer_minutes": {"type": "integer", "minimum": 0},
			"breakdown_valid": {"type": "boolean"}
		},
		"required": ["total_minutes", "setup_minutes", "core_implementation_minutes", "testing_minutes", "documentation_minutes", "buffer_minutes", "breakdown_valid"]
	}`)
)
