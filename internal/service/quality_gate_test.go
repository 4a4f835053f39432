package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/takehome-go-api/internal/models"
)

func validScope(mustHaveMinutes []int, niceToHaveMinutes []int) models.AssignmentScope {
	mustHave := make([]models.Requirement, 0, len(mustHaveMinutes))
	for i, minutes := range mustHaveMinutes {
		mustHave = append(mustHave, models.Requirement{
			Description:          fmt.Sprintf("Requirement %d", i+1),
			EstimatedTimeMinutes: minutes,
			WhyItMatters:         "Ties to a core job responsibility",
		})
	}

	niceToHave := make([]models.Requirement, 0, len(niceToHaveMinutes))
	for i, minutes := range niceToHaveMinutes {
		niceToHave = append(niceToHave, models.Requirement{
			Description:          fmt.Sprintf("Optional %d", i+1),
			EstimatedTimeMinutes: minutes,
			WhyItMatters:         "Differentiates strong candidates",
		})
	}

	return models.AssignmentScope{
		Title:           "Payment Processing API",
		BusinessContext: strings.Repeat("Build a payment processing system for our fintech platform. ", 5),
		MustHave:        mustHave,
		NiceToHave:      niceToHave,
		Constraints:     []string{"Rate limit: 100 req/min", "Max payload: 1MB"},
	}
}

func TestValidateContextSuccess(t *testing.T) {
	gate := QualityGate{}
	context := models.JobContext{
		Responsibilities:      []string{"Build APIs", "Design databases", "Write tests"},
		BusinessDomain:        "Fintech - Payroll processing",
		DailyTechnologies:     []string{"Python", "FastAPI", "PostgreSQL"},
		CollaborationPatterns: "Agile team with daily standups",
	}

	result := gate.ValidateContext(context)
	require.True(t, result.Passed)
	require.Empty(t, result.Issues)
	require.Empty(t, result.Warnings)
}

func TestValidateContextMissingResponsibilities(t *testing.T) {
	gate := QualityGate{}
	context := models.JobContext{
		Responsibilities:  []string{"Build APIs"},
		BusinessDomain:    "Fintech",
		DailyTechnologies: []string{"Python"},
	}

	result := gate.ValidateContext(context)
	require.False(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Issues, " ")), "responsibilities")
}

func TestValidateContextMissingCollaborationWarnsOnly(t *testing.T) {
	gate := QualityGate{}
	context := models.JobContext{
		Responsibilities:  []string{"Build APIs", "Design databases", "Write tests"},
		BusinessDomain:    "Fintech",
		DailyTechnologies: []string{"Python"},
	}

	result := gate.ValidateContext(context)
	require.True(t, result.Passed)
	require.Len(t, result.Warnings, 1)
}

func TestValidateScopeSuccess(t *testing.T) {
	gate := QualityGate{}
	scope := validScope([]int{80, 60, 70}, []int{30})

	// Total 240 minutes against a 240-minute budget, ratio 1.0.
	result := gate.ValidateScope(scope, 4.0)
	require.True(t, result.Passed)
	require.Empty(t, result.Issues)
}

func TestValidateScopeTimeMismatch(t *testing.T) {
	gate := QualityGate{}
	scope := validScope([]int{60}, nil)

	// 60 minutes against 240, ratio 0.25.
	result := gate.ValidateScope(scope, 4.0)
	require.False(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Issues, " ")), "time mismatch")
}

func TestValidateScopeRatioBoundsAreInclusive(t *testing.T) {
	gate := QualityGate{}

	// 180/240 is exactly 0.75.
	low := gate.ValidateScope(validScope([]int{60, 60, 60}, nil), 4.0)
	require.True(t, low.Passed)

	// 300/240 is exactly 1.25.
	high := gate.ValidateScope(validScope([]int{100, 100, 100}, nil), 4.0)
	require.True(t, high.Passed)

	// 179/240 and 301/240 sit just outside the band.
	below := gate.ValidateScope(validScope([]int{60, 60, 59}, nil), 4.0)
	require.False(t, below.Passed)

	above := gate.ValidateScope(validScope([]int{100, 100, 101}, nil), 4.0)
	require.False(t, above.Passed)
}

func TestValidateScopeBusinessContextLength(t *testing.T) {
	gate := QualityGate{}

	short := validScope([]int{80, 80, 80}, nil)
	short.BusinessContext = "Too short"
	result := gate.ValidateScope(short, 4.0)
	require.False(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Issues, " ")), "business context")

	long := validScope([]int{80, 80, 80}, nil)
	long.BusinessContext = strings.Repeat("x", 2100)
	result = gate.ValidateScope(long, 4.0)
	require.True(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Warnings, " ")), "quite long")
}

func TestValidateScopeGenericTermWarnsOnce(t *testing.T) {
	gate := QualityGate{}
	scope := validScope([]int{80, 80, 80}, nil)
	scope.BusinessContext = strings.Repeat("A bookstore with a todo list and a blog attached to it. ", 4)

	result := gate.ValidateScope(scope, 4.0)
	require.True(t, result.Passed)

	generic := 0
	for _, warning := range result.Warnings {
		if strings.Contains(warning, "too generic") {
			generic++
		}
	}
	require.Equal(t, 1, generic)
	require.Contains(t, strings.Join(result.Warnings, " "), "'bookstore'")
}

func TestValidateScopeFewConstraintsWarns(t *testing.T) {
	gate := QualityGate{}
	scope := validScope([]int{80, 80, 80}, nil)
	scope.Constraints = []string{"No external database"}

	result := gate.ValidateScope(scope, 4.0)
	require.True(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Warnings, " ")), "constraints")
}

func TestValidateScopeIsIdempotent(t *testing.T) {
	gate := QualityGate{}
	scope := validScope([]int{80, 60, 70}, []int{30})

	first := gate.ValidateScope(scope, 4.0)
	second := gate.ValidateScope(scope, 4.0)
	require.Equal(t, first, second)
}

func rubricItem(area string, weight float64) models.RubricItem {
	return models.RubricItem{
		Area:              area,
		Weight:            weight,
		JuniorExpectation: "Basic implementation",
		MidExpectation:    "Solid implementation",
		SeniorExpectation: "Advanced patterns",
		ScoringGuide:      "1-5 scale",
	}
}

func TestValidateRubricWeightSum(t *testing.T) {
	gate := QualityGate{}
	rubric := []models.RubricItem{
		rubricItem("API Design", 0.3),
		rubricItem("Error Handling", 0.3),
	}

	result := gate.ValidateRubric(rubric)
	require.False(t, result.Passed)
	require.Contains(t, strings.ToLower(strings.Join(result.Issues, " ")), "weight")
}

func TestValidateRubricSuccess(t *testing.T) {
	gate := QualityGate{}
	rubric := []models.RubricItem{
		rubricItem("API Design", 0.3),
		rubricItem("Error Handling", 0.3),
		rubricItem("Data Modeling", 0.2),
		rubricItem("Testing", 0.2),
	}

	result := gate.ValidateRubric(rubric)
	require.True(t, result.Passed)
	require.Empty(t, result.Issues)
}

func TestValidateRubricToleratesSmallDeviation(t *testing.T) {
	gate := QualityGate{}
	rubric := []models.RubricItem{
		rubricItem("API Design", 0.33),
		rubricItem("Error Handling", 0.33),
		rubricItem("Testing", 0.335),
	}

	// Sum 0.995, inside the 0.01 tolerance.
	result := gate.ValidateRubric(rubric)
	require.True(t, result.Passed)
}

func TestValidateRubricRejectsNonPositiveWeight(t *testing.T) {
	gate := QualityGate{}
	rubric := []models.RubricItem{
		rubricItem("API Design", 0.5),
		rubricItem("Error Handling", 0.5),
		rubricItem("Testing", 0),
	}

	result := gate.ValidateRubric(rubric)
	require.False(t, result.Passed)
	require.Contains(t, strings.Join(result.Issues, " "), "invalid weight")
}

func TestValidateRubricEmptyScoringGuideBlocks(t *testing.T) {
	gate := QualityGate{}
	item := rubricItem("API Design", 0.4)
	item.ScoringGuide = "  "
	rubric := []models.RubricItem{item, rubricItem("Error Handling", 0.3), rubricItem("Testing", 0.3)}

	result := gate.ValidateRubric(rubric)
	require.False(t, result.Passed)
	require.Len(t, result.Issues, 1)
	require.Contains(t, result.Issues[0], "empty scoring guide")
}

func TestValidateRubricSmallWeightAndEmptyExpectationWarn(t *testing.T) {
	gate := QualityGate{}
	small := rubricItem("Documentation", 0.04)
	small.JuniorExpectation = ""
	rubric := []models.RubricItem{
		rubricItem("API Design", 0.48),
		rubricItem("Error Handling", 0.48),
		small,
	}

	result := gate.ValidateRubric(rubric)
	require.True(t, result.Passed)
	joined := strings.Join(result.Warnings, " ")
	require.Contains(t, joined, "very small weight")
	require.Contains(t, joined, "empty junior expectation")
}

func TestCheckSeniorityMatch(t *testing.T) {
	gate := QualityGate{}

	// 5 requirements, 300 minutes sits inside the senior band.
	senior := validScope([]int{60, 60, 60, 60, 60}, nil)
	require.True(t, gate.CheckSeniorityMatch(senior, models.SenioritySenior))

	tooFew := validScope([]int{50, 50}, nil)
	require.False(t, gate.CheckSeniorityMatch(tooFew, models.SenioritySenior))

	tooShort := validScope([]int{20, 20, 20, 20, 20}, nil)
	require.False(t, gate.CheckSeniorityMatch(tooShort, models.SenioritySenior))

	junior := validScope([]int{60, 60, 60}, nil)
	require.True(t, gate.CheckSeniorityMatch(junior, models.SeniorityJunior))

	staff := validScope([]int{80, 80, 80, 80, 80, 80}, nil)
	require.True(t, gate.CheckSeniorityMatch(staff, models.SeniorityStaff))

	// Unknown levels always match.
	require.True(t, gate.CheckSeniorityMatch(tooFew, "principal"))
}

func TestScopeWarnings(t *testing.T) {
	gate := QualityGate{}

	mismatch := validScope([]int{50, 50}, nil)
	warnings := gate.ScopeWarnings(mismatch, models.SenioritySenior, 4.0)
	joined := strings.Join(warnings, " ")
	require.Contains(t, joined, "may not match senior level")
	require.Contains(t, joined, "No nice-to-have requirements")

	overloaded := validScope([]int{60, 60, 60, 60, 60, 60, 60}, nil)
	warnings = gate.ScopeWarnings(overloaded, "principal", 7.0)
	require.Contains(t, strings.Join(warnings, " "), "Many must-have requirements")

	lopsided := validScope([]int{30, 30, 30}, []int{60, 60})
	warnings = gate.ScopeWarnings(lopsided, "principal", 3.5)
	require.Contains(t, strings.Join(warnings, " "), "only account for")
}

func TestEstimateDifficulty(t *testing.T) {
	easy := validScope([]int{50, 50, 50}, nil)
	require.Equal(t, "easy", estimateDifficulty(easy))

	hard := validScope([]int{80, 80, 80, 80, 80}, nil)
	require.Equal(t, "hard", estimateDifficulty(hard))

	medium := validScope([]int{60, 60, 60, 60, 60}, nil)
	require.Equal(t, "medium", estimateDifficulty(medium))

	// Count alone can push an assignment to hard.
	manyRequirements := validScope([]int{30, 30, 30, 30, 30, 30}, nil)
	require.Equal(t, "hard", estimateDifficulty(manyRequirements))
}
