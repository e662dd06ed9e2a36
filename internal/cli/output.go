package cli

import (
	"fmt"
	"io"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
)

// ANSI modifiers for text output
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func severityTag(s models.Severity) string {
	switch s {
	case models.SeverityError:
		return colorRed + "ERROR" + colorReset
	case models.SeverityWarn:
		return colorYellow + "WARN " + colorReset
	default:
		return colorCyan + "INFO " + colorReset
	}
}

func printValidationResult(w io.Writer, source string, result models.ValidationResult) {
	if len(result.Violations) == 0 {
		fmt.Fprintf(w, "%s%s: OK%s\n", colorBold, source, colorReset)
		return
	}

	for _, v := range result.Violations {
		loc := source
		if v.Line != nil {
			loc = fmt.Sprintf("%s:%d", source, *v.Line)
		}
		fmt.Fprintf(w, "%s  %s  [%s] %s\n", severityTag(v.Severity), loc, v.RuleID, v.Message)
		if v.Suggestion != "" {
			fmt.Fprintf(w, "       suggestion: %s\n", v.Suggestion)
		}
	}

	verdict := "valid"
	if !result.Valid {
		verdict = "invalid"
	}
	fmt.Fprintf(w, "%s%d finding(s), snippet is %s%s\n", colorBold, len(result.Violations), verdict, colorReset)
}
