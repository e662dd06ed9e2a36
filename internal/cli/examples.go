package cli

import (
	"encoding/json"
	"fmt"

	"github.com/UtpalJayNadiger/tf-dialect/internal/examples"
	"github.com/spf13/cobra"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the policy's example snippets",
	Long: `Lists the named example snippets the policy document ships, optionally
filtered by resource kind or a search term.

Examples:
  tf-dialect examples
  tf-dialect examples --kind s3
  tf-dialect examples --search encryption --format json`,
	RunE:         runExamples,
	SilenceUsage: true,
}

var (
	examplesKindFlag   string
	examplesSearchFlag string
	examplesFormatFlag string
	examplesPolicyFlag string
)

func init() {
	examplesCmd.Flags().StringVar(&examplesKindFlag, "kind", "", "Only examples whose name mentions this resource kind")
	examplesCmd.Flags().StringVar(&examplesSearchFlag, "search", "", "Only examples whose name or text contains this term")
	examplesCmd.Flags().StringVar(&examplesFormatFlag, "format", "text", "Output format: text or json")
	examplesCmd.Flags().StringVar(&examplesPolicyFlag, "policy", "", "Path to policy file (overrides resolution)")
}

// GetExamplesCmd export
func GetExamplesCmd() *cobra.Command {
	return examplesCmd
}

func runExamples(cmd *cobra.Command, args []string) error {
	doc, _, err := loadPolicy(examplesPolicyFlag)
	if err != nil {
		return err
	}

	matched := examples.Filter(doc.Examples, examplesKindFlag, examplesSearchFlag)

	if examplesFormatFlag == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}

	if len(matched) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no examples matched")
		return nil
	}
	for _, ex := range matched {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n%s\n", colorBold, ex.Name, colorReset, ex.Text)
	}
	return nil
}
