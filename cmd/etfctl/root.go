package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"etf_advisor/internal/app/di"
	"etf_advisor/internal/platform/config"
	"etf_advisor/internal/platform/logger"
)

type rootOptions struct {
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "etfctl",
		Short:         "Maintenance commands for the ETF advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall command timeout")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(newSyncCmd(opts))
	root.AddCommand(newAnalyzeCmd(opts))
	return root
}

// withApp loads configuration, builds the application graph and runs fn
// under the command timeout.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *di.App, out io.Writer) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if _, err := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: "console", Output: cmd.ErrOrStderr()}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	app, err := di.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app, cmd.OutOrStdout())
}

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Store the latest price history of every tracked fund",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *di.App, out io.Writer) error {
				report, err := app.Sync.SyncAll(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "synced:  %v\nskipped: %v\nfailed:  %v\n", report.Synced, report.Skipped, report.Failed)
				return nil
			})
		},
	}
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze CODE...",
		Short: "Run the strategy engine for one or more funds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *di.App, out io.Writer) error {
				for _, code := range args {
					a := app.Strategy.Analyze(ctx, code)
					fmt.Fprintf(out, "%s  %s  confidence=%.2f  amount=%.2f\n",
						a.Code, a.Result.FinalAction, a.Result.Confidence, a.SuggestedAmount)
					for _, s := range a.Result.Signals {
						fmt.Fprintf(out, "  %-10s %-5s %.2f  %s\n", s.Name, s.Action, s.Confidence, s.Details)
					}
					if a.Synthetic {
						fmt.Fprintln(out, "  (synthetic prices)")
					}
					if a.Warning != "" {
						fmt.Fprintf(out, "  warning: %s\n", a.Warning)
					}
					fmt.Fprintf(out, "  advice: %s\n", a.Advice)
				}
				return nil
			})
		},
	}
}
