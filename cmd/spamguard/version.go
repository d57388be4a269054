package main

import (
	"fmt"

	"spamguard/internal/core/version"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of spamguard.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.InfoFor("spamguard")
			fmt.Fprintf(cmd.OutOrStdout(), "spamguard version %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", info.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", info.Date)
		},
	}
}
