package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/noah-isme/takehome-go-api/internal/models"
)

// genericTerms flag business contexts that read like stock interview prompts.
var genericTerms = []string{"bookstore", "todo", "to-do", "blog", "e-commerce store"}

// QualityGate applies deterministic checks to generated content. Every method
// is a pure function: the gate never mutates its inputs and returns the same
// verdict for the same arguments.
type QualityGate struct{}

// ValidateContext checks that context extraction produced enough signal to
// scope an assignment.
func (QualityGate) ValidateContext(context models.JobContext) models.ValidationResult {
	issues := []string{}
	warnings := []string{}

	if len(context.Responsibilities) < 3 {
		issues = append(issues, "Insufficient responsibilities extracted (minimum 3 required)")
	}

	if strings.TrimSpace(context.BusinessDomain) == "" {
		issues = append(issues, "Business domain not identified")
	}

	if len(context.DailyTechnologies) == 0 {
		issues = append(issues, "Daily technologies not specified")
	}

	if context.CollaborationPatterns == "" {
		warnings = append(warnings, "Collaboration patterns not identified (optional)")
	}

	return models.ValidationResult{
		Passed:   len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
	}
}

// ValidateScope checks that the assignment scope is realistic for the budget.
func (QualityGate) ValidateScope(scope models.AssignmentScope, timeBudgetHours float64) models.ValidationResult {
	issues := []string{}
	warnings := []string{}

	totalTime := scope.TotalMinutes()
	expectedMinutes := timeBudgetHours * 60
	timeRatio := float64(totalTime) / expectedMinutes

	// Bounds are inclusive: exactly 0.75 or 1.25 passes.
	if timeRatio < 0.75 || timeRatio > 1.25 {
		issues = append(issues, fmt.Sprintf(
			"Time mismatch: requirements sum to %d minutes but budget is %.0f minutes (ratio: %.2f). Should be within +/-25%% of budget.",
			totalTime, expectedMinutes, timeRatio))
	}

	if len(scope.BusinessContext) < 100 {
		issues = append(issues, fmt.Sprintf(
			"Business context too brief (%d chars, minimum 100 required)", len(scope.BusinessContext)))
	}

	if len(scope.BusinessContext) > 2000 {
		warnings = append(warnings, fmt.Sprintf(
			"Business context quite long (%d chars, recommended maximum 2000)", len(scope.BusinessContext)))
	}

	if len(scope.MustHave) < 3 {
		issues = append(issues, fmt.Sprintf(
			"Too few must-have requirements (%d, minimum 3)", len(scope.MustHave)))
	}

	if len(scope.MustHave) > 7 {
		warnings = append(warnings, fmt.Sprintf(
			"Many must-have requirements (%d). Consider moving some to nice-to-have.", len(scope.MustHave)))
	}

	if len(scope.Constraints) < 2 {
		warnings = append(warnings, fmt.Sprintf(
			"Few constraints specified (%d). Consider adding more realistic constraints.", len(scope.Constraints)))
	}

	contextLower := strings.ToLower(scope.BusinessContext)
	for _, term := range genericTerms {
		if strings.Contains(contextLower, term) {
			warnings = append(warnings, fmt.Sprintf(
				"Business context may be too generic (contains '%s'). Ensure it reflects specific job responsibilities.", term))
			break
		}
	}

	return models.ValidationResult{
		Passed:   len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
	}
}

// ValidateRubric checks the rubric for internal consistency.
func (QualityGate) ValidateRubric(rubric []models.RubricItem) models.ValidationResult {
	issues := []string{}
	warnings := []string{}

	if len(rubric) < 3 {
		issues = append(issues, fmt.Sprintf("Too few rubric items (%d, minimum 3)", len(rubric)))
	}

	if len(rubric) > 7 {
		warnings = append(warnings, fmt.Sprintf(
			"Many rubric items (%d). Consider consolidating for easier evaluation.", len(rubric)))
	}

	weightSum := 0.0
	for _, item := range rubric {
		weightSum += item.Weight
	}
	if math.Abs(weightSum-1.0) > 0.01 {
		issues = append(issues, fmt.Sprintf(
			"Rubric weights sum to %.3f, must be 1.0 (+/-0.01)", weightSum))
	}

	for _, item := range rubric {
		if item.Weight <= 0 {
			issues = append(issues, fmt.Sprintf(
				"Rubric item '%s' has invalid weight %g (must be > 0)", item.Area, item.Weight))
		}
	}

	for _, item := range rubric {
		if item.Weight > 0 && item.Weight < 0.05 {
			warnings = append(warnings, fmt.Sprintf(
				"Rubric item '%s' has very small weight %g (< 5%%). Consider removing or increasing weight.", item.Area, item.Weight))
		}
	}

	for _, item := range rubric {
		if strings.TrimSpace(item.JuniorExpectation) == "" {
			warnings = append(warnings, fmt.Sprintf("Rubric item '%s' has empty junior expectation", item.Area))
		}
		if strings.TrimSpace(item.MidExpectation) == "" {
			warnings = append(warnings, fmt.Sprintf("Rubric item '%s' has empty mid expectation", item.Area))
		}
		if strings.TrimSpace(item.SeniorExpectation) == "" {
			warnings = append(warnings, fmt.Sprintf("Rubric item '%s' has empty senior expectation", item.Area))
		}
		if strings.TrimSpace(item.ScoringGuide) == "" {
			issues = append(issues, fmt.Sprintf("Rubric item '%s' has empty scoring guide", item.Area))
		}
	}

	return models.ValidationResult{
		Passed:   len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
	}
}

// CheckSeniorityMatch reports whether the scope's size plausibly matches the
// target level. Unknown levels always match.
func (QualityGate) CheckSeniorityMatch(scope models.AssignmentScope, seniorityLevel string) bool {
	requirementCount := len(scope.MustHave)
	totalTime := scope.TotalMinutes()

	switch seniorityLevel {
	case models.SeniorityJunior:
		return requirementCount >= 3 && requirementCount <= 4 && totalTime >= 120 && totalTime <= 240
	case models.SeniorityMid:
		return requirementCount >= 4 && requirementCount <= 5 && totalTime >= 180 && totalTime <= 300
	case models.SenioritySenior:
		return requirementCount >= 5 && requirementCount <= 6 && totalTime >= 240 && totalTime <= 420
	case models.SeniorityStaff:
		return requirementCount >= 6 && requirementCount <= 7 && totalTime >= 360 && totalTime <= 540
	}

	return true
}

// ScopeWarnings emits heuristic, non-blocking warnings about scope balance.
func (g QualityGate) ScopeWarnings(scope models.AssignmentScope, seniorityLevel string, timeBudgetHours float64) []string {
	warnings := []string{}

	if !g.CheckSeniorityMatch(scope, seniorityLevel) {
		warnings = append(warnings, fmt.Sprintf(
			"Assignment complexity may not match %s level. Consider adjusting number of requirements or time budget.", seniorityLevel))
	}

	if len(scope.MustHave) > 6 {
		warnings = append(warnings, fmt.Sprintf(
			"Many must-have requirements (%d). Candidates may struggle to complete all within time budget.", len(scope.MustHave)))
	}

	if len(scope.NiceToHave) == 0 {
		warnings = append(warnings,
			"No nice-to-have requirements. Consider adding optional features to differentiate exceptional candidates.")
	}

	mustHaveTime := 0
	for _, req := range scope.MustHave {
		mustHaveTime += req.EstimatedTimeMinutes
	}
	totalTime := scope.TotalMinutes()

	if totalTime > 0 {
		mustHaveRatio := float64(mustHaveTime) / float64(totalTime)
		if mustHaveRatio < 0.5 {
			warnings = append(warnings, fmt.Sprintf(
				"Must-have requirements only account for %.0f%% of time. Consider moving some nice-to-have items to must-have.", mustHaveRatio*100))
		}
	}

	return warnings
}
