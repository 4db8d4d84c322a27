package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamiecraik/behaviorscore/internal/display"
)

func newScoreCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "score <session_id> <transcript_file>",
		Short: "Score a single transcript against the behavior rules",
		Long:  "Evaluate the rule catalog against the given transcript text and append the result to the score store. Bypasses file discovery entirely.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, transcriptPath := args[0], args[1]
			cfg := resolveConfig(cmd)

			proc, err := buildProcessor(cfg)
			if err != nil {
				return err
			}

			text, err := os.ReadFile(transcriptPath)
			if err != nil {
				return fmt.Errorf("reading transcript: %w", err)
			}

			score, err := proc.ScoreTranscript(sessionID, transcriptPath, string(text))
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(score, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling score: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			display.PrintScore(score, os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the score as JSON")
	return cmd
}
