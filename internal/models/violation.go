package models

// Severity grades a violation
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Rule identifiers emitted by the rule engine. Closed set; new checks
// register their own id here.
const (
	RuleMissingTagsBlock   = "missing_tags_block"
	RuleRequiredTagMissing = "required_tag_missing"
	RuleForbiddenPattern   = "forbidden_pattern"
	RuleS3SecurityDefault  = "s3_security_default"
	RuleRDSSecurityDefault = "rds_security_default"
	RuleNamingConvention   = "naming_convention"
	RuleCustom             = "custom_rule"
)

// Violation is one reported deviation from policy.
// Line is 1-based; nil means the violation has no positional anchor.
type Violation struct {
	RuleID     string   `json:"rule_id"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Line       *int     `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of running all checks over a snippet.
// Valid is true iff no violation has error severity.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// NewValidationResult computes Valid from the accumulated violations.
func NewValidationResult(violations []Violation) ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}
	valid := true
	for _, v := range violations {
		if v.Severity == SeverityError {
			valid = false
			break
		}
	}
	return ValidationResult{Valid: valid, Violations: violations}
}
