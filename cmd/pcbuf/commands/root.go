package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haivivi/pcbuf/pkg/cli"
)

var (
	// Global flags
	verbose      bool
	formatOutput string
	outputFile   string

	// Global configuration (loaded at init time)
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "pcbuf",
	Short: "Bounded buffer producer/consumer runner",
	Long: `pcbuf - run producers and consumers against fixed-capacity buffers.

Producers block while a buffer is full and consumers block while it is
empty. Every run reports how many items were produced and consumed and
how many were left in each buffer.

Run profiles are stored in the OS config directory:
  macOS:   ~/Library/Application Support/pcbuf/
  Linux:   ~/.config/pcbuf/
  Windows: %AppData%/pcbuf/

Set PCBUF_CONFIG_DIR to use another directory.

Examples:
  # Run the default demo (capacity 5, 20 items, one producer, one consumer)
  pcbuf run

  # Save a profile and make it the default
  pcbuf profile add wide --capacity 10 --producers 3 --consumers 2
  pcbuf profile use wide

  # Bound a misconfigured run instead of waiting forever
  pcbuf run --items 6 --consume-total 8 --timeout 2s`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", "yaml", "output format (yaml, json, msgpack, summary)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
}

// configLoadErr stores the error from cli.LoadConfig() for deferred reporting.
var configLoadErr error

func initConfig() {
	globalConfig, configLoadErr = nil, nil
	cfg, err := cli.LoadConfig()
	if err != nil {
		// Commands that need the config report the error via GetConfig, so
		// 'pcbuf version' still works without a config directory.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
// Returns an error if the config could not be loaded (e.g., HOME not set).
func GetConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := cli.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// newLogger returns a text logger writing to w, at debug level in verbose
// mode.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// output writes v in the --format/--output selected by the user.
func output(v any) error {
	format, err := cli.ParseOutputFormat(formatOutput)
	if err != nil {
		return err
	}
	return cli.Output(v, cli.OutputOptions{Format: format, File: outputFile})
}
