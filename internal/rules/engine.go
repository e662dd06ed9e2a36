// Package rules implements the policy checks run against Terraform-style
// text snippets. The checks are deliberately textual: snippets are scanned
// with named patterns rather than parsed into a grammar, so partial or
// invalid HCL can still be checked.
package rules

import (
	"fmt"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/UtpalJayNadiger/tf-dialect/internal/observability/logging"
	"github.com/google/cel-go/cel"
)

// Engine runs the checks in a fixed order. It holds no mutable state, so a
// single Engine is safe for concurrent use.
type Engine struct {
	log    logging.Logger
	celEnv *cel.Env
}

// NewEngine builds an engine. The logger receives check-level warnings
// (malformed patterns, bad custom rules); it must not be nil.
func NewEngine(log logging.Logger) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("input", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("rules: failed to create CEL environment: %w", err)
	}
	return &Engine{log: log, celEnv: env}, nil
}

// Validate runs every check over text and accumulates violations in check
// order. Within a check, violations follow text-occurrence order. The result
// is valid iff no violation has error severity.
func (e *Engine) Validate(text string, policy *models.PolicyDocument) models.ValidationResult {
	var violations []models.Violation

	violations = append(violations, e.checkRequiredTags(text, policy)...)
	violations = append(violations, e.checkForbiddenPatterns(text, policy)...)
	violations = append(violations, e.checkSecurityDefaults(text, policy)...)
	violations = append(violations, e.checkNamingConvention(text, policy)...)
	violations = append(violations, e.checkCustomRules(text, policy)...)

	return models.NewValidationResult(violations)
}

// lineAt returns the 1-based line number containing byte offset off.
func lineAt(text string, off int) int {
	line := 1
	for i := 0; i < off && i < len(text); i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line
}

func lineRef(text string, off int) *int {
	n := lineAt(text, off)
	return &n
}
