package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/presentation"
	"github.com/maragym/gymlog/internal/training"
)

var historyCmd = &cobra.Command{
	Use:   "history [exercise]",
	Short: "Show progress per exercise",
	Long: `Show each exercise with its sets (newest first) and the trend between its
last two sets, sorted by name using the configured locale.

Trend is "up" or "down" when the last two weights differ by more than 0.1,
"equal" otherwise, and "solo" when there are fewer than two sets or a weight
cannot be read as a number.

Examples:
  # Every exercise
  gymlog history

  # One exercise (id or name)
  gymlog history "Hip Thrust"

  # Only exercises that went up
  gymlog history | jq '.[] | select(.trend == "up") | .exercise.name'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		histories := gymApp.Histories()
		if len(args) == 1 {
			ex, err := resolveExercise(args[0])
			if err != nil {
				return err
			}
			histories = training.BuildHistories([]training.Exercise{ex}, gymApp.Entries.Entries())
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatHistories(presentation.FromHistories(histories))
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
