package rules

import (
	"strings"
	"testing"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

func TestNaming_TooFewParts(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{NamingFormat: "<project>-<env>-<component>"}

	violations := engine.checkNamingConvention(`resource "aws_instance" "web" {
  name = "web"
}`, policy)

	if len(violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(violations))
	}
	v := violations[0]
	if v.RuleID != models.RuleNamingConvention {
		t.Errorf("RuleID = %q, want %q", v.RuleID, models.RuleNamingConvention)
	}
	if v.Severity != models.SeverityInfo {
		t.Errorf("severity = %q, want info", v.Severity)
	}
	if v.Line == nil || *v.Line != 2 {
		t.Errorf("Line = %v, want 2", v.Line)
	}
	if !strings.Contains(v.Message, "expected 3+ parts, got 1") {
		t.Errorf("message = %q, want it to state expected 3+ parts, got 1", v.Message)
	}
	if !strings.Contains(v.Suggestion, policy.NamingFormat) {
		t.Errorf("suggestion = %q, want it to state the expected format", v.Suggestion)
	}
}

func TestNaming_OptionalPlaceholderNotCounted(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{NamingFormat: "<project>-<env>-<component>-<extra?>"}

	// Three parts satisfy a format with three required placeholders.
	if violations := engine.checkNamingConvention(`name = "acme-prod-api"`, policy); len(violations) != 0 {
		t.Fatalf("3 parts should satisfy 3 required placeholders, got %+v", violations)
	}
}

func TestNaming_NonLiteralValuesSkipped(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{NamingFormat: "<project>-<env>-<component>"}

	text := `name = "${var.project}-prod-api"
name = "var.something"
name = "local.name"`
	if violations := engine.checkNamingConvention(text, policy); len(violations) != 0 {
		t.Fatalf("interpolated and variable-referencing names must be skipped, got %+v", violations)
	}
}

func TestNaming_SkippedForShortFormats(t *testing.T) {
	engine := newTestEngine(t)

	for _, format := range []string{"", "<component>", "static-name"} {
		policy := &models.PolicyDocument{NamingFormat: format}
		if violations := engine.checkNamingConvention(`name = "x"`, policy); len(violations) != 0 {
			t.Errorf("format %q has <2 placeholders, check must be skipped, got %+v", format, violations)
		}
	}
}

func TestNaming_OneViolationPerOffendingName(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{NamingFormat: "<env>-<component>"}

	text := `name = "good-name"
name = "bad"
name = "alsobad"`
	violations := engine.checkNamingConvention(text, policy)
	if len(violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(violations))
	}
}
