package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// tagsBlockRe locates the first tag-collection block: a `tags = {` assignment.
var tagsBlockRe = regexp.MustCompile(`(?i)\btags\s*=\s*\{`)

// checkRequiredTags verifies that the first tags block declares every
// required tag. Missing tags are reported as a single violation; a snippet
// with no tags block at all gets one missing_tags_block violation instead.
func (e *Engine) checkRequiredTags(text string, policy *models.PolicyDocument) []models.Violation {
	if len(policy.RequiredTags) == 0 {
		return nil
	}

	loc := tagsBlockRe.FindStringIndex(text)
	if loc == nil {
		return []models.Violation{{
			RuleID:   models.RuleMissingTagsBlock,
			Severity: models.SeverityError,
			Message: fmt.Sprintf("No tags block found; required tags: %s",
				strings.Join(policy.RequiredTags, ", ")),
			Suggestion: "Add a tags block declaring the required tags",
		}}
	}

	block := tagsBlockBody(text, loc[1])

	var missing []string
	for _, tag := range policy.RequiredTags {
		keyRe := regexp.MustCompile(`(?im)^\s*"?` + regexp.QuoteMeta(tag) + `"?\s*=`)
		if !keyRe.MatchString(block) {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var suggestion strings.Builder
	suggestion.WriteString("Add to the tags block:")
	for _, tag := range missing {
		fmt.Fprintf(&suggestion, ` %s = "..."`, tag)
	}

	return []models.Violation{{
		RuleID:   models.RuleRequiredTagMissing,
		Severity: models.SeverityError,
		Message: fmt.Sprintf("Tags block is missing required tags: %s",
			strings.Join(missing, ", ")),
		Line:       lineRef(text, loc[0]),
		Suggestion: suggestion.String(),
	}}
}

// tagsBlockBody extracts the body of the block whose opening brace ends at
// offset open (exclusive). Braces are matched by depth; an unterminated block
// runs to the end of the text.
func tagsBlockBody(text string, open int) string {
	depth := 1
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open:i]
			}
		}
	}
	return text[open:]
}

// hasTagsBlock reports whether the text contains any tag-collection block.
// Exposed to custom rules as input.has_tags_block.
func hasTagsBlock(text string) bool {
	return tagsBlockRe.MatchString(text)
}
