package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v69/github"
	"github.com/spf13/cobra"
	"github.com/spiffcs/goodfirst/config"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/ghclient"
)

// NewCmdRateLimit creates the ratelimit command.
func NewCmdRateLimit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Check GitHub API rate limit status",
		Long:  `Display current GitHub API rate limit status including remaining quota and reset time.`,
	}
	cmd.AddCommand(NewCmdRateLimitStatus())
	return cmd
}

// NewCmdRateLimitStatus creates the ratelimit status subcommand.
func NewCmdRateLimitStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current rate limit status",
		Long: `Display the GitHub API rate limits the gateway consumes: search for the
issue query and core for repository and owner lookups.`,
		RunE: runRateLimitStatus,
	}
}

func runRateLimitStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := ghclient.NewClient(cmd.Context(), cfg.GetGitHubToken(),
		ghclient.WithBaseURL(cfg.GetServerSettings().APIURL))
	if err != nil {
		return err
	}

	limits, err := client.RateLimits(cmd.Context())
	if err != nil {
		return err
	}

	printRateLimits(os.Stdout, limits, time.Now())
	return nil
}

// printRateLimits writes the search and core quotas, flagging any that are
// running low.
func printRateLimits(w io.Writer, limits *gh.RateLimits, now time.Time) {
	fmt.Fprintln(w, "GitHub API Rate Limits:")
	fmt.Fprintln(w)
	printRate(w, "Search API:", limits.GetSearch(), now)
	printRate(w, "Core API:  ", limits.GetCore(), now)
}

func printRate(w io.Writer, label string, rate *gh.Rate, now time.Time) {
	if rate == nil {
		return
	}

	resetIn := rate.Reset.Time.Sub(now).Round(time.Second)
	if resetIn < 0 {
		resetIn = 0
	}

	remaining := fmt.Sprintf("%d/%d", rate.Remaining, rate.Limit)
	if rate.Remaining < constants.RateLimitLowWatermark {
		remaining = color.RedString(remaining)
	}

	fmt.Fprintf(w, "%s %s remaining (resets in %s)\n", label, remaining, resetIn)
}
