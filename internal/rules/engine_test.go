package rules

import (
	"testing"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/UtpalJayNadiger/tf-dialect/internal/observability/logging"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	log, err := logging.NewLogger(logging.Config{})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	engine, err := NewEngine(log)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestValidate_CheckOrder(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{
		NamingFormat: "<project>-<env>-<component>",
		RequiredTags: []string{"Owner"},
		ForbiddenPatterns: []models.ForbiddenPattern{
			{Description: "Hardcoded secret", Pattern: `password\s*=`},
		},
	}

	// Triggers all of: missing tags block, forbidden pattern, naming.
	text := `resource "aws_instance" "web" {
  name     = "web"
  password = "hunter2"
}`

	result := engine.Validate(text, policy)
	if result.Valid {
		t.Fatal("expected invalid result")
	}

	wantOrder := []string{
		models.RuleMissingTagsBlock,
		models.RuleForbiddenPattern,
		models.RuleNamingConvention,
	}
	if len(result.Violations) != len(wantOrder) {
		t.Fatalf("violations = %d, want %d: %+v", len(result.Violations), len(wantOrder), result.Violations)
	}
	for i, want := range wantOrder {
		if result.Violations[i].RuleID != want {
			t.Errorf("violation[%d].RuleID = %q, want %q", i, result.Violations[i].RuleID, want)
		}
	}
}

func TestValidate_CleanSnippetIsValid(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{
		RequiredTags: []string{"Owner"},
	}

	text := `resource "aws_instance" "web" {
  tags = {
    Owner = "platform"
  }
}`

	result := engine.Validate(text, policy)
	if !result.Valid {
		t.Fatalf("expected valid result, got violations: %+v", result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("violations = %d, want 0", len(result.Violations))
	}
}

func TestValidate_WarnOnlyStaysValid(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{
		SecurityDefaults: map[string]map[string]any{
			"aws_s3_bucket": {"versioning": true},
		},
	}

	result := engine.Validate(`resource "aws_s3_bucket" "b" {}`, policy)
	if !result.Valid {
		t.Fatal("warn-severity violations must not invalidate the snippet")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(result.Violations))
	}
	if result.Violations[0].Severity != models.SeverityWarn {
		t.Errorf("severity = %q, want warn", result.Violations[0].Severity)
	}
}

func TestValidate_EmptyPolicyNoFindings(t *testing.T) {
	engine := newTestEngine(t)
	result := engine.Validate("anything at all", &models.PolicyDocument{})
	if !result.Valid || len(result.Violations) != 0 {
		t.Fatalf("empty policy should produce no findings, got %+v", result.Violations)
	}
}
