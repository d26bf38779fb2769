package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "goodfirst",
		Short: "GitHub good first issue gateway",
		Long: `A gateway that finds open "good first issue" issues on GitHub, enriches
them with repository and owner data, and scores how well maintained each
repository looks so newcomers can pick a healthy project.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add serve flags to root command so `goodfirst` and `goodfirst serve` work identically
	addServeFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdServe(opts))
	rootCmd.AddCommand(NewCmdSearch(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())
	rootCmd.AddCommand(NewCmdRateLimit())

	return rootCmd
}
