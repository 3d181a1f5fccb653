// Package commands implements the mongolift CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mongolift/mongolift/internal/config"
	"github.com/mongolift/mongolift/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:   "mongolift",
	Short: "Translate relational statements into MongoDB commands",
	Long: `mongolift compiles relational statement trees into MongoDB command
documents. Statements are read as JSON envelopes, translated into insert,
update, delete or aggregate commands, and optionally executed against a
live server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var debugFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the configuration and applies the debug flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if debugFlag {
		cfg.Debug = true
	}
	debug.Init(cfg.Debug)
	return cfg, nil
}
