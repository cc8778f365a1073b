package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keylex/internal/driver"
	"keylex/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file",
	Short: "Browse tokens interactively",
	Long:  `Inspect opens a full-screen token browser for one tokenized file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringSlice("keywords", nil, "comma-separated keyword list")
	inspectCmd.Flags().String("profile", "", "named keyword profile from keylex.toml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	keywords, err := resolveKeywords(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], keywords, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	return ui.Inspect(args[0], result.Tokens, result.FileSet)
}
