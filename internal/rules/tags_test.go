package rules

import (
	"strings"
	"testing"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

func TestRequiredTags_NoBlock(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{RequiredTags: []string{"Environment", "Owner"}}

	violations := engine.checkRequiredTags(`resource "aws_instance" "web" {}`, policy)

	if len(violations) != 1 {
		t.Fatalf("violations = %d, want 1", len(violations))
	}
	v := violations[0]
	if v.RuleID != models.RuleMissingTagsBlock {
		t.Errorf("RuleID = %q, want %q", v.RuleID, models.RuleMissingTagsBlock)
	}
	if v.Severity != models.SeverityError {
		t.Errorf("Severity = %q, want error", v.Severity)
	}
	if v.Line != nil {
		t.Errorf("Line = %v, want nil (no positional anchor)", *v.Line)
	}
	for _, tag := range policy.RequiredTags {
		if !strings.Contains(v.Message, tag) {
			t.Errorf("message %q should name required tag %q", v.Message, tag)
		}
	}
}

func TestRequiredTags_MissingSome(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{RequiredTags: []string{"Environment", "Owner", "CostCenter"}}

	text := `resource "aws_instance" "web" {
  ami = "ami-123456"

  tags = {
    Environment = "prod"
  }
}`
	violations := engine.checkRequiredTags(text, policy)

	if len(violations) != 1 {
		t.Fatalf("violations = %d, want exactly 1 listing all missing tags", len(violations))
	}
	v := violations[0]
	if v.RuleID != models.RuleRequiredTagMissing {
		t.Errorf("RuleID = %q, want %q", v.RuleID, models.RuleRequiredTagMissing)
	}
	if v.Line == nil || *v.Line != 4 {
		t.Errorf("Line = %v, want 4 (tags block start)", v.Line)
	}
	for _, tag := range []string{"Owner", "CostCenter"} {
		if !strings.Contains(v.Message, tag) {
			t.Errorf("message %q should list missing tag %q", v.Message, tag)
		}
		if !strings.Contains(v.Suggestion, tag+` = "..."`) {
			t.Errorf("suggestion %q should enumerate %s = \"...\"", v.Suggestion, tag)
		}
	}
	if strings.Contains(v.Message, "Environment") {
		t.Errorf("message %q should not list the present tag", v.Message)
	}
}

func TestRequiredTags_CaseInsensitiveAndQuoted(t *testing.T) {
	engine := newTestEngine(t)
	policy := &models.PolicyDocument{RequiredTags: []string{"Environment", "Owner"}}

	text := `tags = {
  "environment" = "prod"
  OWNER         = "team"
}`
	if violations := engine.checkRequiredTags(text, policy); len(violations) != 0 {
		t.Fatalf("quoted/case-variant keys should satisfy required tags, got %+v", violations)
	}
}

func TestRequiredTags_NoneRequired(t *testing.T) {
	engine := newTestEngine(t)
	if violations := engine.checkRequiredTags("no tags anywhere", &models.PolicyDocument{}); violations != nil {
		t.Fatalf("check must be skipped when no tags are required, got %+v", violations)
	}
}
