package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"keylex/internal/diagfmt"
	"keylex/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|->",
	Short: "Tokenize a text file",
	Long:  `Tokenize splits a text file into tokens using the configured keyword set; "-" reads from stdin`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().StringSlice("keywords", nil, "comma-separated keyword list")
	tokenizeCmd.Flags().String("profile", "", "named keyword profile from keylex.toml")
	tokenizeCmd.Flags().Bool("dir", false, "treat the argument as a directory and tokenize all matching files")
	tokenizeCmd.Flags().String("ext", ".txt", "file extension filter for --dir")
	tokenizeCmd.Flags().Bool("cache", false, "reuse cached tokens for unchanged inputs")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	keywords, err := resolveKeywords(cmd)
	if err != nil {
		return err
	}

	if isDir, _ := cmd.Flags().GetBool("dir"); isDir {
		return runTokenizeDir(cmd, target, keywords, format, maxDiagnostics)
	}

	result, err := tokenizeTarget(cmd, target, keywords, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	printDiagnostics(cmd, result)

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func tokenizeTarget(cmd *cobra.Command, target string, keywords []string, maxDiagnostics int) (*driver.TokenizeResult, error) {
	if target == "-" {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return driver.TokenizeText("<stdin>", text, keywords, maxDiagnostics)
	}

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		cache, err := driver.OpenDiskCache("keylex")
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		result, _, err := driver.TokenizeCached(target, keywords, maxDiagnostics, cache)
		return result, err
	}

	return driver.Tokenize(target, keywords, maxDiagnostics)
}

func runTokenizeDir(cmd *cobra.Command, dir string, keywords []string, format string, maxDiagnostics int) error {
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}

	fileSet, results, err := driver.TokenizeDir(cmd.Context(), dir, ext, keywords, maxDiagnostics, 0)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	useColor := colorEnabled(cmd, os.Stderr)

	for _, res := range results {
		if !quiet {
			fmt.Fprintf(os.Stdout, "== %s (%d tokens)\n", res.Path, len(res.Tokens))
		}

		if res.Bag.HasErrors() || res.Bag.HasWarnings() {
			res.Bag.Sort()
			diagfmt.Pretty(os.Stderr, res.Bag, fileSet, diagfmt.PrettyOpts{
				Color:    useColor,
				Context:  2,
				PathMode: diagfmt.PathModeRelative,
			})
		}

		switch format {
		case "pretty":
			if err := diagfmt.FormatTokensPretty(os.Stdout, res.Tokens, fileSet); err != nil {
				return err
			}
		case "json":
			if err := diagfmt.FormatTokensJSON(os.Stdout, res.Tokens); err != nil {
				return err
			}
		case "msgpack":
			if err := diagfmt.FormatTokensMsgpack(os.Stdout, res.Tokens); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, result *driver.TokenizeResult) {
	if !result.Bag.HasErrors() && !result.Bag.HasWarnings() {
		return
	}
	result.Bag.Sort()
	diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:   colorEnabled(cmd, os.Stderr),
		Context: 2,
	})
}

func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
