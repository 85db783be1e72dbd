package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/mindscan/internal/demoscans"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultRunTimeout     = 10 * time.Minute
	defaultBreathInterval = time.Second
	defaultSeed           = 42
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var logFormat, logLevel string

	root := &cobra.Command{
		Use:   "mindscan-demo",
		Short: "Drive a running MindScan service from the terminal",
		Long: `mindscan-demo simulates a stretch of daily check-ins against a MindScan
service and verifies what it derives from them, or runs the guided
breathing exercise locally.

Available subcommands:
  simulate - upload habits, submit scans and verify XP, level and summary
  breathe  - run the 4-4-4 breathing session in the terminal`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFormat(logFormat), logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return logger.SetLevelString(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatText, "Log output format (text or json)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newSimulateCmd(), newBreatheCmd())
	return root
}

// newSimulateCmd builds the simulate subcommand.
func newSimulateCmd() *cobra.Command {
	cfg := demoscans.Config{}
	runTimeout := defaultRunTimeout

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate daily check-ins against the API and verify the results",
		Long: `Generates a seeded run of consecutive days ending today, uploads each
day's habit checklist concurrently, submits the scans in date order, replays
the last submission to confirm it is deduplicated, and checks the served
progress and summary against a local recomputation.

Examples:
  mindscan-demo simulate
  mindscan-demo simulate --days 30 --seed 7 --url http://localhost:8080
  mindscan-demo simulate --verbose --output out/days.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			report, err := demoscans.Run(ctx, &cfg)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d scans, latest %s, XP %d, level %d, streak %d days\n",
				report.Total, report.Latest, report.XP, report.Level, report.Streak)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", demoscans.DefaultBaseURL, "Base URL of the service")
	flags.IntVar(&cfg.Days, "days", demoscans.DefaultDays, "Number of days to simulate, ending today")
	flags.Uint64Var(&cfg.Seed, "seed", defaultSeed, "Seed for answers and habits")
	flags.IntVar(&cfg.Workers, "workers", demoscans.DefaultWorkers, "Concurrent habit uploads")
	flags.DurationVar(&cfg.Timeout, "timeout", demoscans.DefaultTimeout, "HTTP request timeout")
	flags.DurationVar(&runTimeout, "run-timeout", defaultRunTimeout, "Timeout for the whole run")
	flags.StringVar(&cfg.OutputFile, "output", "", "Write the generated days to this JSON file")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "Log every recorded scan")
	return cmd
}

// newBreatheCmd builds the breathe subcommand.
func newBreatheCmd() *cobra.Command {
	interval := defaultBreathInterval

	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Run the guided breathing session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := demoscans.Breathe(cmd.Context(), cmd.OutOrStdout(), interval)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Session stopped.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("breathing session %s: %w", outcome, err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", defaultBreathInterval, "Wall-clock time per second of the session")
	return cmd
}
