// Package cmd wires the CLI surface: watch (default), scan, report,
// score, and rules.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/config"
	"github.com/jamiecraik/behaviorscore/internal/logging"
	"github.com/jamiecraik/behaviorscore/internal/scoring"
	"github.com/jamiecraik/behaviorscore/internal/session"
	"github.com/jamiecraik/behaviorscore/internal/store"
)

// NewRootCmd creates the root command for behaviorscore. Running it with
// no subcommand starts the long-running watch mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "behaviorscore",
		Short:        "Score agent session transcripts against behavior rules",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.String("sessions-dir", defaults.SessionsDir, "Root directory containing session transcripts")
	flags.String("store", defaults.StorePath, "Path to the score store document")
	flags.String("rules", "", "YAML rule catalog overriding the built-in rules")
	flags.Duration("debounce", defaults.Debounce, "Quiet period after a filesystem notification")
	flags.Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newRulesCmd())

	return rootCmd
}

// resolveConfig assembles the runtime configuration from flags once, at
// command start.
func resolveConfig(cmd *cobra.Command) config.Config {
	cfg := config.Default()
	if v, err := cmd.Flags().GetString("sessions-dir"); err == nil && v != "" {
		cfg.SessionsDir = v
	}
	if v, err := cmd.Flags().GetString("store"); err == nil && v != "" {
		cfg.StorePath = v
	}
	if v, err := cmd.Flags().GetString("rules"); err == nil {
		cfg.RulesPath = v
	}
	if v, err := cmd.Flags().GetDuration("debounce"); err == nil && v > 0 {
		cfg.Debounce = v
	}
	return cfg
}

// loadRules returns the configured rule catalog, falling back to the
// built-in defaults when no rules file is set.
func loadRules(cfg config.Config) ([]scoring.RuleDefinition, error) {
	if cfg.RulesPath == "" {
		return scoring.DefaultRules(), nil
	}
	rules, err := scoring.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return rules, nil
}

// buildProcessor constructs the shared ingestion processor.
func buildProcessor(cfg config.Config) (*session.Processor, error) {
	rules, err := loadRules(cfg)
	if err != nil {
		return nil, err
	}
	st := store.NewFileStore(cfg.StorePath)
	return session.NewProcessor(st, scoring.NewEvaluator(rules)), nil
}
