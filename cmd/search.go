package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spiffcs/goodfirst/config"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/duration"
	"github.com/spiffcs/goodfirst/internal/ghclient"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/maintenance"
	"github.com/spiffcs/goodfirst/internal/model"
	"github.com/spiffcs/goodfirst/internal/output"
	"github.com/spiffcs/goodfirst/internal/service"
)

// NewCmdSearch creates the search command.
func NewCmdSearch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search good first issues from the terminal",
		Long: `Runs the same search, enrichment and filtering as the gateway and
prints the results, without starting a server.

Numeric filters only apply when given. --active-within accepts a number of
days or a duration such as 30d, 2w or 6mo.`,
		Example: `  goodfirst search --language go --min-stars 100
  goodfirst search --topic cli --active-within 30d -o markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, opts)
		},
	}

	addSearchFlags(cmd, opts)
	return cmd
}

// addSearchFlags adds the search-specific flags to a command.
func addSearchFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "Repository language")
	cmd.Flags().StringVarP(&opts.Topic, "topic", "t", "", "Repository topic")
	cmd.Flags().Float64Var(&opts.MinStars, "min-stars", 0, "Minimum repository stars")
	cmd.Flags().Float64Var(&opts.MinForks, "min-forks", 0, "Minimum repository forks")
	cmd.Flags().Float64Var(&opts.MinOwnerFollowers, "min-owner-followers", 0, "Minimum followers of the repository owner")
	cmd.Flags().StringVar(&opts.ActiveWithin, "active-within", "", "Only show repositories pushed within this window (e.g., 90, 30d, 6mo)")

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", constants.DefaultEnrichWorkers, "Concurrent enrichment lookups")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Profiling flags
	cmd.Flags().StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	cmd.Flags().StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
}

// searchFilters converts the search flags into filters. Numeric filters are
// only set when their flag was given, so an explicit zero still counts.
func searchFilters(cmd *cobra.Command, opts *Options) (model.SearchFilters, error) {
	filters := model.SearchFilters{
		Language: opts.Language,
		Topic:    opts.Topic,
	}

	if cmd.Flags().Changed("min-stars") {
		filters.MinStars = model.Float(opts.MinStars)
	}
	if cmd.Flags().Changed("min-forks") {
		filters.MinForks = model.Float(opts.MinForks)
	}
	if cmd.Flags().Changed("min-owner-followers") {
		filters.MinOwnerFollowers = model.Float(opts.MinOwnerFollowers)
	}
	if cmd.Flags().Changed("active-within") {
		days, err := duration.ParseDays(opts.ActiveWithin)
		if err != nil {
			return model.SearchFilters{}, fmt.Errorf("invalid --active-within: %w", err)
		}
		filters.ActiveWithinDays = model.Float(float64(days))
	}

	return filters, nil
}

func runSearch(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	log.Initialize(opts.Verbosity, os.Stderr)

	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile, opts.Trace)
	if err := profiler.Start(); err != nil {
		return err
	}
	defer profiler.Stop()
	if profiler.Enabled() {
		log.Debug("profiling enabled", "cpu", opts.CPUProfile, "mem", opts.MemProfile, "trace", opts.Trace)
	}

	filters, err := searchFilters(cmd, opts)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	formatName := opts.Format
	if formatName == "" {
		formatName = cfg.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	settings := cfg.GetServerSettings()
	client, err := ghclient.NewClient(ctx, cfg.GetGitHubToken(), ghclient.WithBaseURL(settings.APIURL))
	if err != nil {
		return err
	}

	aggregator := service.New(client,
		maintenance.NewHeuristics(cfg.GetMaintenanceWeights()),
		service.WithWorkers(opts.Workers),
		service.WithProgress(newProgressReporter()),
	)

	log.Info("searching", "query", ghclient.BuildSearchQuery(filters))
	issues, err := aggregator.GoodFirstIssues(ctx, filters)
	log.ProgressDone()
	if err != nil {
		return err
	}

	return output.NewFormatter(format).Format(issues, os.Stdout)
}

// newProgressReporter returns a progress callback that prints at most one
// line per LogThrottlePercent step. It is safe for concurrent use.
func newProgressReporter() service.ProgressFunc {
	var mu sync.Mutex
	lastPercent := -1

	return func(completed, total int) {
		if total == 0 {
			return
		}
		percent := completed * 100 / total

		mu.Lock()
		defer mu.Unlock()
		if percent == lastPercent || (percent%constants.LogThrottlePercent != 0 && completed != total) {
			return
		}
		lastPercent = percent
		log.Progress("Enriching repositories: %d/%d (%d%%)...", completed, total, percent)
	}
}
