package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/internal/display"
	"github.com/jamiecraik/behaviorscore/internal/store"
)

func newReportCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a summary of the current score store",
		Long:  "Print the grade distribution and average score from the current score store, without scanning.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(cmd)

			report, err := store.NewFileStore(cfg.StorePath).LoadAll()
			if err != nil {
				return fmt.Errorf("loading score store: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling report: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			display.PrintReport(report, os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the raw report document as JSON")
	return cmd
}
