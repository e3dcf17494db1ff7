package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/presentation"
	"github.com/maragym/gymlog/internal/training"
)

var (
	logWeight string
	logReps   string
	logDate   string
)

var logCmd = &cobra.Command{
	Use:   "log <exercise>",
	Short: "Log a set",
	Long: `Log a set for an exercise, creating the exercise if it does not exist yet.

Exercises from the routine are created with the routine's muscle group.
Weight accepts a decimal point or comma; reps are free text. The date
defaults to today and must be formatted as yyyy-MM-dd.

Examples:
  # Log 80 kg today
  gymlog log "Press de banca con barra" -w 80

  # With reps
  gymlog log "Press de banca con barra" -w 82.5 -r 6

  # Back-fill an older session
  gymlog log "Hip Thrust" --weight 120 --reps 10 --date 2024-05-08`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, entry, err := gymApp.QuickLog(args[0], training.NewEntry{
			Weight: training.Quantity(logWeight),
			Reps:   training.Quantity(logReps),
			Date:   logDate,
		})
		if err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(presentation.FromEntry(entry, ex.Name))
	},
}

func init() {
	logCmd.Flags().StringVarP(&logWeight, "weight", "w", "", "Weight lifted (required)")
	logCmd.Flags().StringVarP(&logReps, "reps", "r", "", "Repetitions")
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "Date as yyyy-MM-dd (default: today)")
	rootCmd.AddCommand(logCmd)
}
