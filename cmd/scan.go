package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/internal/session"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the sessions directory once and score unseen transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(cmd)

			proc, err := buildProcessor(cfg)
			if err != nil {
				return err
			}

			scored, err := session.NewOrchestrator(cfg.SessionsDir, proc).Scan()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fmt.Printf("Scored %d new sessions\n", scored)
			return nil
		},
	}
}
