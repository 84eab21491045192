package commands

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repolens",
		Short: "Derive a capability profile for a GitHub repository",
		Long: `repolens inspects a remote repository's dependencies, file layout,
languages, and README, and derives a structured capability profile:
tech stack, architecture style, capabilities, super powers, and gotchas.`,
		SilenceUsage: true,
	}
	return cmd
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the repolens version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(Version)
		},
	}
}
