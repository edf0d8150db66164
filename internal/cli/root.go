package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"usage-metrics-service/internal/platform/config"
	"usage-metrics-service/internal/platform/logging"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	LogFormat string // "json" | "console"

	// Config is loaded before any subcommand runs.
	Config *config.Config
}

// ValidLogFormats defines the allowed log formats.
var ValidLogFormats = []string{"console", "json"}

// NewRootCommand creates the root command for the metricsctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "metricsctl",
		Short: "Usage metrics pipeline",
		Long:  "Cleans raw user, firm and event exports and derives engagement, cohort, firm health and event performance tables.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidLogFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.Config = cfg

			level := cfg.Logging.Level
			if opts.Verbose {
				level = "debug"
			}
			logging.Init(logging.Config{
				Level:  level,
				Format: opts.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "console", "log format (console|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
