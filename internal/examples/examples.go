// Package examples filters the policy's named example snippets.
package examples

import (
	"sort"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// Filter returns the examples matching the optional resource-kind filter and
// search term, sorted by name for stable output. The kind filter matches
// against the example name; the search term matches name or text,
// case-insensitively.
func Filter(all map[string]string, resourceKind, search string) []models.Example {
	kind := strings.ToLower(resourceKind)
	term := strings.ToLower(search)

	out := make([]models.Example, 0, len(all))
	for name, text := range all {
		if kind != "" && !strings.Contains(strings.ToLower(name), kind) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(name), term) &&
			!strings.Contains(strings.ToLower(text), term) {
			continue
		}
		out = append(out, models.Example{Name: name, Text: text})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
