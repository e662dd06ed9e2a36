package rules

import (
	"fmt"
	"regexp"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// securitySetting is one policy-enabled setting whose textual marker must be
// present in the snippet. enabled decides, from the policy value, whether the
// setting applies at all.
type securitySetting struct {
	key        string
	enabled    func(v any) bool
	marker     *regexp.Regexp
	message    string
	suggestion string
}

// kindCheck bundles the settings for one resource kind. Adding a kind means
// appending an entry here; the other checks are untouched.
type kindCheck struct {
	kind     string
	ruleID   string
	declared *regexp.Regexp
	settings []securitySetting
}

func boolEnabled(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func stringEnabled(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func numberEnabled(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

var kindChecks = []kindCheck{
	{
		kind:     "aws_s3_bucket",
		ruleID:   models.RuleS3SecurityDefault,
		declared: regexp.MustCompile(`(?i)resource\s+"aws_s3_bucket"`),
		settings: []securitySetting{
			{
				key:        "block_public_acls",
				enabled:    boolEnabled,
				marker:     regexp.MustCompile(`(?i)block_public_acls`),
				message:    "S3 bucket does not block public ACLs",
				suggestion: "Add an aws_s3_bucket_public_access_block with block_public_acls = true",
			},
			{
				key:        "block_public_policy",
				enabled:    boolEnabled,
				marker:     regexp.MustCompile(`(?i)block_public_policy`),
				message:    "S3 bucket does not block public bucket policies",
				suggestion: "Add an aws_s3_bucket_public_access_block with block_public_policy = true",
			},
			{
				key:        "versioning",
				enabled:    boolEnabled,
				marker:     regexp.MustCompile(`(?i)versioning`),
				message:    "S3 bucket has no versioning configuration",
				suggestion: "Add an aws_s3_bucket_versioning resource with status = \"Enabled\"",
			},
			{
				key:        "encryption",
				enabled:    stringEnabled,
				marker:     regexp.MustCompile(`(?i)encryption`),
				message:    "S3 bucket has no server-side encryption configuration",
				suggestion: "Add an aws_s3_bucket_server_side_encryption_configuration resource",
			},
		},
	},
	{
		kind:     "aws_db_instance",
		ruleID:   models.RuleRDSSecurityDefault,
		declared: regexp.MustCompile(`(?i)resource\s+"aws_db_instance"`),
		settings: []securitySetting{
			{
				key:        "storage_encrypted",
				enabled:    boolEnabled,
				marker:     regexp.MustCompile(`(?i)storage_encrypted`),
				message:    "DB instance does not enable storage encryption",
				suggestion: "Set storage_encrypted = true",
			},
			{
				key:        "backup_retention_period",
				enabled:    numberEnabled,
				marker:     regexp.MustCompile(`(?i)backup_retention_period`),
				message:    "DB instance does not set a backup retention period",
				suggestion: "Set backup_retention_period to the policy-mandated number of days",
			},
		},
	},
}

// checkSecurityDefaults runs for each resource kind that both has security
// defaults in the policy and is declared in the snippet. Each policy-enabled
// setting without its textual marker yields one warn violation; markers are
// positionless so violations carry no line number.
func (e *Engine) checkSecurityDefaults(text string, policy *models.PolicyDocument) []models.Violation {
	var violations []models.Violation

	for _, kc := range kindChecks {
		defaults := policy.SecurityDefaultsFor(kc.kind)
		if defaults == nil || !kc.declared.MatchString(text) {
			continue
		}

		for _, s := range kc.settings {
			v, ok := defaults[s.key]
			if !ok || !s.enabled(v) {
				continue
			}
			if s.marker.MatchString(text) {
				continue
			}
			violations = append(violations, models.Violation{
				RuleID:     kc.ruleID,
				Severity:   models.SeverityWarn,
				Message:    fmt.Sprintf("%s (policy default %s)", s.message, s.key),
				Suggestion: s.suggestion,
			})
		}
	}

	return violations
}
