package rules

import (
	"regexp"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// checkForbiddenPatterns scans the full text for every policy-declared
// forbidden pattern. Violations come out in pattern-declaration order and,
// within a pattern, in text-occurrence order. A pattern that fails to
// compile is logged and skipped; it never aborts the other patterns.
func (e *Engine) checkForbiddenPatterns(text string, policy *models.PolicyDocument) []models.Violation {
	var violations []models.Violation

	for _, fp := range policy.ForbiddenPatterns {
		re, err := regexp.Compile(fp.Pattern)
		if err != nil {
			e.log.Warn("rules", "skipping malformed forbidden pattern",
				"pattern", fp.Pattern, "description", fp.Description, "error", err.Error())
			continue
		}

		for _, loc := range re.FindAllStringIndex(text, -1) {
			violations = append(violations, models.Violation{
				RuleID:     models.RuleForbiddenPattern,
				Severity:   models.SeverityError,
				Message:    fp.Description,
				Line:       lineRef(text, loc[0]),
				Suggestion: "Remove or replace the flagged value",
			})
		}
	}

	return violations
}
