package cli

import (
	"fmt"
	"os"

	"github.com/UtpalJayNadiger/tf-dialect/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tf-dialect",
	Short: "Terraform style-policy validator and generator",
	Long: `tf-dialect checks Terraform-style snippets against an organization
style policy and generates policy-conformant snippets. It runs either as a
one-shot CLI or as an MCP tool server over stdio.`,
	Version: version.BuildVersion(),
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(GetServeCmd())
	rootCmd.AddCommand(GetValidateCmd())
	rootCmd.AddCommand(GetGenerateCmd())
	rootCmd.AddCommand(GetPolicyCmd())
	rootCmd.AddCommand(GetExamplesCmd())
}
