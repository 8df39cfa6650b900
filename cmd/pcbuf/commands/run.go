package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/pcbuf/pkg/cli"
	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

var (
	runOpts    runFlags
	runProfile string
	runTimeout time.Duration
	runQuiet   bool
	runTail    int
)

var runBuffersCmd = &cobra.Command{
	Use:   "run",
	Short: "Run producers and consumers over bounded buffers",
	Long: `Run producers and consumers over one or more bounded buffers and
print a report of what was produced, consumed and left behind.

The run configuration is resolved in layers: the built-in demo defaults,
then the selected profile (--profile or the current profile), then the
run file (-f), then individual flags.

A consumer total larger than the produced total never completes; use
--timeout to stop such a run. Interrupting a run (Ctrl-C) or hitting the
timeout still prints the partial report.

Examples:
  pcbuf run
  pcbuf run --capacity 10 --items 30 --producers 2 --consumers 2
  pcbuf run --groups 3 --format summary
  pcbuf run -f testdata/runs/wide.yaml --format json -o report.json
  pcbuf run --items 6 --consume-total 8 --timeout 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(formatOutput)
		if err != nil {
			return err
		}

		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		base, err := cfg.ResolveProfile(runProfile)
		if err != nil {
			return err
		}
		run, err := runOpts.apply(cmd.Flags(), base)
		if err != nil {
			return err
		}

		var next io.Writer = os.Stderr
		if runQuiet {
			next = nil
		}
		logs := cli.NewLogWriter(runTail, next)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if runTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runTimeout)
			defer cancel()
		}

		report, runErr := orchestrator.Run(ctx, run, orchestrator.WithLogger(newLogger(logs)))
		if report == nil {
			return runErr
		}

		var result any = report
		if format == cli.FormatSummary {
			result = cli.ReportSummary{Report: report, Tail: logs.Lines()}
		}
		if err := cli.Output(result, cli.OutputOptions{Format: format, File: outputFile}); err != nil {
			return err
		}
		if runErr != nil {
			return fmt.Errorf("run %s: %w", report.RunID, runErr)
		}
		return nil
	},
}

func init() {
	runOpts.bind(runBuffersCmd.Flags())
	runBuffersCmd.Flags().StringVarP(&runProfile, "profile", "p", "", "profile to run (default: current profile)")
	runBuffersCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "stop the run after this long (0 = no limit)")
	runBuffersCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print progress logs")
	runBuffersCmd.Flags().IntVar(&runTail, "tail", 10, "log lines kept for the summary output")

	rootCmd.AddCommand(runBuffersCmd)
}
