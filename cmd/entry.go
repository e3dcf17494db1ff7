package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/app"
	"github.com/maragym/gymlog/internal/presentation"
	"github.com/maragym/gymlog/internal/training"
)

var (
	entryExercise string
	entryWeight   string
	entryReps     string
	entryDate     string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged sets",
}

var entryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logged sets",
	Long: `List logged sets as JSON, newest first.

Sets whose exercise was removed are listed without an exercise name.

Examples:
  # All sets
  gymlog entry list

  # Sets for one exercise (id or name)
  gymlog entry list --exercise "Hip Thrust"
  gymlog entry list -e "Hip Thrust"

  # Sets left behind by a removed exercise (its old id)
  gymlog entry list -e 7e86c736-...

  # Heaviest set ever
  gymlog entry list | jq 'max_by(.weight_kg)'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := gymApp.Entries.Entries()
		if cmd.Flags().Changed("exercise") {
			id, err := entryExerciseID(entryExercise)
			if err != nil {
				return err
			}
			entries = gymApp.Entries.EntriesForExercise(id)
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatEntries(presentation.FromEntries(entries, gymApp.Exercises.Exercises()))
	},
}

var entryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a logged set",
	Long: `Change the weight, reps or date of a logged set. Omitted flags keep the
current value.

Examples:
  # Fix a typo in the weight
  gymlog entry edit 9b1e... -w 85

  # Move a set to another day
  gymlog entry edit 9b1e... --date 2024-05-09`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := gymApp.EditEntry(args[0],
			training.Quantity(entryWeight), training.Quantity(entryReps), entryDate)
		if err != nil {
			return err
		}
		var name string
		if ex, ok := gymApp.Exercises.Get(entry.ExerciseID); ok {
			name = ex.Name
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(presentation.FromEntry(entry, name))
	},
}

var entryRmCmd = &cobra.Command{
	Use:     "rm <id> | --exercise <id|name>",
	Aliases: []string{"remove"},
	Short:   "Remove logged sets",
	Long: `Remove one logged set by id, or every set of an exercise with --exercise.

--exercise also accepts the id of a removed exercise, which clears the sets
it left behind.

Examples:
  # One set
  gymlog entry rm 9b1e...

  # Every set of an exercise
  gymlog entry rm --exercise "Pec Deck"

  # Sets left behind by a removed exercise
  gymlog entry rm -e 7e86c736-...`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("exercise") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if cmd.Flags().Changed("exercise") {
			id, err := entryExerciseID(entryExercise)
			if err != nil {
				return err
			}
			removed := len(gymApp.Entries.EntriesForExercise(id))
			if err := gymApp.Entries.ClearForExercise(id); err != nil {
				return err
			}
			return formatter.FormatResult(map[string]any{
				"exercise_id": id,
				"removed":     removed,
			})
		}

		if err := gymApp.DeleteEntry(args[0]); err != nil {
			return err
		}
		return formatter.FormatResult(map[string]string{"removed": args[0]})
	},
}

func init() {
	entryListCmd.Flags().StringVarP(&entryExercise, "exercise", "e", "", "Only sets of this exercise (id or name)")
	entryRmCmd.Flags().StringVarP(&entryExercise, "exercise", "e", "", "Remove every set of this exercise (id, name or removed exercise id)")
	entryEditCmd.Flags().StringVarP(&entryWeight, "weight", "w", "", "New weight")
	entryEditCmd.Flags().StringVarP(&entryReps, "reps", "r", "", "New reps")
	entryEditCmd.Flags().StringVarP(&entryDate, "date", "d", "", "New date (yyyy-MM-dd)")

	entryCmd.AddCommand(entryListCmd, entryEditCmd, entryRmCmd)
	rootCmd.AddCommand(entryCmd)
}

// entryExerciseID resolves ref like resolveExercise, and also accepts the id
// of a removed exercise whose sets are still logged.
func entryExerciseID(ref string) (string, error) {
	ex, err := resolveExercise(ref)
	if err == nil {
		return ex.ID, nil
	}
	if errors.Is(err, app.ErrUnknownExercise) && len(gymApp.Entries.EntriesForExercise(ref)) > 0 {
		return ref, nil
	}
	return "", err
}
