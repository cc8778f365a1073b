package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"keylex/internal/version"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version string")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "machine-readable output")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print keylex version and build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		switch {
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(buildStamp{
				Version: version.Plain(),
				Commit:  version.GitCommit,
				Built:   version.BuildDate,
			})
		case versionShort:
			fmt.Fprintln(out, version.Plain())
		default:
			fmt.Fprintf(out, "keylex %s\n", version.Version)
			// commit и дата присутствуют только в релизных сборках (ldflags)
			if version.GitCommit != "" {
				fmt.Fprintf(out, "  commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
			}
		}
		return nil
	},
}

type buildStamp struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Built   string `json:"built,omitempty"`
}
