package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/UtpalJayNadiger/tf-dialect/internal/rules"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a snippet file against the style policy",
	Long: `Runs the policy checks over the given file and prints the findings.

Exits non-zero when any error-severity violation is found, so the command can
gate CI pipelines.

Examples:
  tf-dialect validate main.tf
  tf-dialect validate --policy team-policy.yaml --format json main.tf`,
	Args:         cobra.ExactArgs(1),
	RunE:         runValidate,
	SilenceUsage: true,
}

var (
	validatePolicyFlag string
	validateFormatFlag string
)

func init() {
	validateCmd.Flags().StringVar(&validatePolicyFlag, "policy", "", "Path to policy file (overrides resolution)")
	validateCmd.Flags().StringVar(&validateFormatFlag, "format", "text", "Output format: text or json")
}

// GetValidateCmd export
func GetValidateCmd() *cobra.Command {
	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	doc, _, err := loadPolicy(validatePolicyFlag)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	engine, err := rules.NewEngine(log)
	if err != nil {
		return err
	}
	result := engine.Validate(string(text), doc)

	switch validateFormatFlag {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	default:
		printValidationResult(cmd.OutOrStdout(), args[0], result)
	}

	if !result.Valid {
		return fmt.Errorf("%s: policy violations found", args[0])
	}
	return nil
}
