package cli

import (
	"encoding/json"
	"fmt"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/UtpalJayNadiger/tf-dialect/internal/policy"
	"github.com/spf13/cobra"
	"github.com/wI2L/jsondiff"
	"gopkg.in/yaml.v3"
)

// policyCmd group
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Policy inspection commands",
	Long:  `Inspect and compare style policy documents.`,
}

var policyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active policy document",
	Long: `Resolves and prints the policy document the tools would use.

Examples:
  tf-dialect policy show
  tf-dialect policy show --preset default
  tf-dialect policy show --format json`,
	RunE:         runPolicyShow,
	SilenceUsage: true,
}

var policyDiffCmd = &cobra.Command{
	Use:   "diff --baseline <file>",
	Short: "Diff the active policy against a baseline",
	Long: `Compares the active policy document against a baseline policy file and
prints a JSON Patch (RFC 6902) of the drift. Empty output means no drift.

Examples:
  tf-dialect policy diff --baseline org-baseline.yaml
  tf-dialect policy diff --policy local.yaml --baseline org-baseline.yaml`,
	RunE:         runPolicyDiff,
	SilenceUsage: true,
}

var (
	policyShowPresetFlag string
	policyShowFormatFlag string
	policyPathFlag       string
	policyBaselineFlag   string
)

func init() {
	policyShowCmd.Flags().StringVar(&policyShowPresetFlag, "preset", "", "Show a built-in preset instead of the resolved policy")
	policyShowCmd.Flags().StringVar(&policyShowFormatFlag, "format", "yaml", "Output format: yaml or json")
	policyShowCmd.Flags().StringVar(&policyPathFlag, "policy", "", "Path to policy file (overrides resolution)")
	policyDiffCmd.Flags().StringVar(&policyPathFlag, "policy", "", "Path to policy file (overrides resolution)")
	policyDiffCmd.Flags().StringVar(&policyBaselineFlag, "baseline", "", "Baseline policy file to compare against (required)")
	_ = policyDiffCmd.MarkFlagRequired("baseline")

	policyCmd.AddCommand(policyShowCmd)
	policyCmd.AddCommand(policyDiffCmd)
}

// GetPolicyCmd export
func GetPolicyCmd() *cobra.Command {
	return policyCmd
}

func runPolicyShow(cmd *cobra.Command, args []string) error {
	var doc *models.PolicyDocument
	if policyShowPresetFlag != "" {
		doc = policy.GetPreset(policyShowPresetFlag)
		if doc == nil {
			return fmt.Errorf("unknown preset %q (available: %v)", policyShowPresetFlag, policy.ListPresetNames())
		}
	} else {
		var err error
		doc, _, err = loadPolicy(policyPathFlag)
		if err != nil {
			return err
		}
	}

	switch policyShowFormatFlag {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(doc)
	}
}

func runPolicyDiff(cmd *cobra.Command, args []string) error {
	current, _, err := loadPolicy(policyPathFlag)
	if err != nil {
		return err
	}
	baseline, err := policy.Load(policyBaselineFlag)
	if err != nil {
		return err
	}

	patch, err := jsondiff.Compare(baseline, current)
	if err != nil {
		return fmt.Errorf("failed to diff policies: %w", err)
	}
	if len(patch) == 0 {
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(patch)
}
