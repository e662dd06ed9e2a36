package generator

import (
	"regexp"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

var (
	placeholderRe = regexp.MustCompile(`<([a-zA-Z_]+)\??>`)
	labelCleanRe  = regexp.MustCompile(`[^a-z0-9_]+`)
)

// synthesizeName derives the canonical resource name. With a naming format it
// substitutes the placeholder tokens; an empty optional segment leaves a
// doubled hyphen behind, which is collapsed. Without a format it falls back
// to service-env or service-env-purpose.
func synthesizeName(req models.GenerateRequest, policy *models.PolicyDocument) string {
	if policy.NamingFormat == "" {
		name := req.ServiceName + "-" + req.Environment
		if req.Purpose != "" {
			name += "-" + req.Purpose
		}
		return name
	}

	name := placeholderRe.ReplaceAllStringFunc(policy.NamingFormat, func(token string) string {
		switch strings.Trim(token, "<>?") {
		case "project":
			return "${var.project}"
		case "env":
			return req.Environment
		case "component":
			return req.ServiceName
		case "extra":
			return req.Purpose
		default:
			return ""
		}
	})

	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	return strings.Trim(name, "-")
}

// resourceLabel derives a Terraform identifier from the service name.
func resourceLabel(service string) string {
	label := labelCleanRe.ReplaceAllString(strings.ToLower(service), "_")
	label = strings.Trim(label, "_")
	if label == "" {
		return "this"
	}
	return label
}
