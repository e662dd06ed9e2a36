package generator

import (
	"fmt"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// mergeTags layers the request's extra tags over the policy defaults. Default
// keys keep their policy order; new extra keys follow in request order.
func mergeTags(req models.GenerateRequest, policy *models.PolicyDocument) models.TagMap {
	var merged models.TagMap
	for _, k := range policy.DefaultTags.Keys() {
		v, _ := policy.DefaultTags.Get(k)
		merged.Set(k, v)
	}
	for _, k := range req.ExtraTags.Keys() {
		v, _ := req.ExtraTags.Get(k)
		merged.Set(k, v)
	}
	return merged
}

// renderTags emits the tags attribute at the given indent. An empty merged
// set becomes a reference to the shared default-tags local, which keeps
// generated snippets aligned with policy-level tag management.
func renderTags(tags models.TagMap, indent string) string {
	if tags.Len() == 0 {
		return indent + "tags = local.default_tags\n"
	}

	width := 0
	for _, k := range tags.Keys() {
		if len(k) > width {
			width = len(k)
		}
	}

	var b strings.Builder
	b.WriteString(indent + "tags = {\n")
	for _, k := range tags.Keys() {
		v, _ := tags.Get(k)
		fmt.Fprintf(&b, "%s  %-*s = %q\n", indent, width, k, v)
	}
	b.WriteString(indent + "}\n")
	return b.String()
}
