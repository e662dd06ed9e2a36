package rules

import (
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// checkCustomRules evaluates policy-declared CEL rules against the snippet.
// Rules see input.text, input.line_count and input.has_tags_block. A rule
// that fails to compile or evaluate, or that returns a non-boolean, is
// logged and skipped with the same isolation contract as forbidden patterns.
func (e *Engine) checkCustomRules(text string, policy *models.PolicyDocument) []models.Violation {
	if len(policy.CustomRules) == 0 {
		return nil
	}

	input := map[string]interface{}{
		"text":           text,
		"line_count":     strings.Count(text, "\n") + 1,
		"has_tags_block": hasTagsBlock(text),
	}

	var violations []models.Violation
	for _, rule := range policy.CustomRules {
		ast, issues := e.celEnv.Compile(rule.Expr)
		if issues != nil && issues.Err() != nil {
			e.log.Warn("rules", "skipping custom rule: compile error",
				"rule", rule.Name, "error", issues.Err().Error())
			continue
		}

		prg, err := e.celEnv.Program(ast)
		if err != nil {
			e.log.Warn("rules", "skipping custom rule: program error",
				"rule", rule.Name, "error", err.Error())
			continue
		}

		out, _, err := prg.Eval(map[string]interface{}{"input": input})
		if err != nil {
			e.log.Warn("rules", "skipping custom rule: evaluation error",
				"rule", rule.Name, "error", err.Error())
			continue
		}

		passed, ok := out.Value().(bool)
		if !ok {
			e.log.Warn("rules", "skipping custom rule: expression must return boolean",
				"rule", rule.Name)
			continue
		}
		if passed {
			continue
		}

		severity := rule.Severity
		if severity == "" {
			severity = models.SeverityWarn
		}
		violations = append(violations, models.Violation{
			RuleID:   models.RuleCustom,
			Severity: severity,
			Message:  rule.Message,
		})
	}

	return violations
}
