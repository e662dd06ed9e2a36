package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

var (
	// placeholderRe matches naming-format tokens like <project> or <extra?>.
	placeholderRe = regexp.MustCompile(`<([a-zA-Z_]+)(\?)?>`)

	// nameAssignRe finds literal name assignments: name = "value" or
	// bucket/identifier assignments used as resource names.
	nameAssignRe = regexp.MustCompile(`\bname\s*=\s*"([^"]*)"`)
)

// checkNamingConvention verifies literal name assignments against the
// policy naming format. Interpolated and variable-referencing values are not
// literal and are skipped. Findings are informational only.
func (e *Engine) checkNamingConvention(text string, policy *models.PolicyDocument) []models.Violation {
	required := requiredPlaceholders(policy.NamingFormat)
	if required < 2 {
		return nil
	}

	var violations []models.Violation
	for _, m := range nameAssignRe.FindAllStringSubmatchIndex(text, -1) {
		value := text[m[2]:m[3]]
		if strings.HasPrefix(value, "${") ||
			strings.HasPrefix(value, "var.") ||
			strings.HasPrefix(value, "local.") {
			continue
		}

		parts := strings.Split(value, "-")
		if len(parts) >= required {
			continue
		}

		violations = append(violations, models.Violation{
			RuleID:   models.RuleNamingConvention,
			Severity: models.SeverityInfo,
			Message: fmt.Sprintf("Name %q does not match the naming convention: expected %d+ parts, got %d",
				value, required, len(parts)),
			Line: lineRef(text, m[0]),
			Suggestion: fmt.Sprintf("Use the format %q (expected %d+ hyphen-separated parts, got %d)",
				policy.NamingFormat, required, len(parts)),
		})
	}

	return violations
}

// requiredPlaceholders counts the non-optional tokens in the naming format.
// Optional tokens (marked with ?) do not raise the minimum part count.
func requiredPlaceholders(format string) int {
	n := 0
	for _, m := range placeholderRe.FindAllStringSubmatch(format, -1) {
		if m[2] == "" {
			n++
		}
	}
	return n
}
