package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/internal/display"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active behavior rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(cmd)

			rules, err := loadRules(cfg)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(rules, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling rules: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			display.PrintRules(rules, os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the catalog as JSON")
	return cmd
}
