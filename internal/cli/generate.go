package cli

import (
	"fmt"
	"strings"

	"github.com/UtpalJayNadiger/tf-dialect/internal/generator"
	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a policy-conformant snippet",
	Long: `Synthesizes a Terraform-style snippet for a resource kind, applying
the policy's naming format, default tags and security defaults.

Examples:
  tf-dialect generate --kind aws_s3_bucket --env prod --service analytics --purpose logs
  tf-dialect generate --kind aws_db_instance --env staging --service orders --tag Team=payments`,
	RunE:         runGenerate,
	SilenceUsage: true,
}

var (
	generateKindFlag    string
	generateEnvFlag     string
	generateServiceFlag string
	generatePurposeFlag string
	generateTagFlags    []string
	generatePolicyFlag  string
)

func init() {
	generateCmd.Flags().StringVar(&generateKindFlag, "kind", "", "Resource kind, e.g. aws_s3_bucket (required)")
	generateCmd.Flags().StringVar(&generateEnvFlag, "env", "", "Deployment environment (required)")
	generateCmd.Flags().StringVar(&generateServiceFlag, "service", "", "Owning service name (required)")
	generateCmd.Flags().StringVar(&generatePurposeFlag, "purpose", "", "Optional extra name segment")
	generateCmd.Flags().StringArrayVar(&generateTagFlags, "tag", nil, "Extra tag as key=value (repeatable)")
	generateCmd.Flags().StringVar(&generatePolicyFlag, "policy", "", "Path to policy file (overrides resolution)")
}

// GetGenerateCmd export
func GetGenerateCmd() *cobra.Command {
	return generateCmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, _, err := loadPolicy(generatePolicyFlag)
	if err != nil {
		return err
	}

	req := models.GenerateRequest{
		ResourceKind: generateKindFlag,
		Environment:  generateEnvFlag,
		ServiceName:  generateServiceFlag,
		Purpose:      generatePurposeFlag,
	}
	for _, pair := range generateTagFlags {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("generate: --tag must be key=value, got %q", pair)
		}
		req.ExtraTags.Set(key, value)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), generator.Generate(req, doc))
	return nil
}
