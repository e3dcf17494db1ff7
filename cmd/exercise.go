package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/app"
	"github.com/maragym/gymlog/internal/presentation"
	"github.com/maragym/gymlog/internal/training"
)

var (
	exerciseGroup        string
	exerciseName         string
	exerciseClearEntries bool
	exerciseClearGroup   bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise to the registry and print it as JSON.

Names are matched case-insensitively: adding an exercise that already exists
returns the existing one unchanged.

Examples:
  # Add an exercise
  gymlog exercise add "Hip Thrust"

  # Add with a muscle group
  gymlog exercise add "Hip Thrust" --group Glúteo
  gymlog exercise add "Hip Thrust" -g Glúteo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := gymApp.AddExercise(args[0], exerciseGroup)
		if err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(presentation.FromExercises([]training.Exercise{ex}, gymApp.Entries.EntriesForExercise(ex.ID))[0])
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Long: `List all exercises as JSON, in insertion order, with their entry counts.

Examples:
  # List all exercises
  gymlog exercise list

  # Names only
  gymlog exercise list | jq -r '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatExercises(presentation.FromExercises(gymApp.Exercises.Exercises(), gymApp.Entries.Entries()))
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Rename an exercise or change its muscle group",
	Long: `Rename an exercise or change its muscle group. Omitted flags keep the
current value.

Examples:
  # Rename
  gymlog exercise edit "Hip thrust" --name "Hip Thrust con barra"

  # Change the muscle group
  gymlog exercise edit 3f2c... --group Glúteo

  # Remove the muscle group
  gymlog exercise edit "Hip Thrust" --clear-group`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rename := cmd.Flags().Changed("name") || cmd.Flags().Changed("group")
		if !rename && !exerciseClearGroup {
			return fmt.Errorf("nothing to change: pass --name, --group or --clear-group")
		}
		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		if rename {
			if ex, err = gymApp.EditExercise(ex.ID, exerciseName, exerciseGroup); err != nil {
				return err
			}
		}
		if exerciseClearGroup {
			if ex, err = gymApp.ClearMuscleGroup(ex.ID); err != nil {
				return err
			}
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(presentation.FromExercises([]training.Exercise{ex}, gymApp.Entries.EntriesForExercise(ex.ID))[0])
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"remove"},
	Short:   "Remove an exercise",
	Long: `Remove an exercise. Its logged sets are kept unless --clear-entries is
given; kept sets show up without an exercise name in "entry list".

Examples:
  # Remove only the exercise
  gymlog exercise rm "Pec Deck"

  # Remove the exercise and every set logged for it
  gymlog exercise rm "Pec Deck" --clear-entries`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		if err := gymApp.DeleteExercise(ex.ID, exerciseClearEntries); err != nil {
			return err
		}
		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatResult(map[string]any{
			"removed":         ex.ID,
			"entries_cleared": exerciseClearEntries,
		})
	},
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "Muscle group (e.g., Pecho)")
	exerciseEditCmd.Flags().StringVarP(&exerciseName, "name", "n", "", "New name")
	exerciseEditCmd.Flags().StringVarP(&exerciseGroup, "group", "g", "", "New muscle group")
	exerciseEditCmd.Flags().BoolVar(&exerciseClearGroup, "clear-group", false, "Remove the muscle group")
	exerciseEditCmd.MarkFlagsMutuallyExclusive("group", "clear-group")
	exerciseRmCmd.Flags().BoolVar(&exerciseClearEntries, "clear-entries", false, "Also remove the exercise's logged sets")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseEditCmd, exerciseRmCmd)
	rootCmd.AddCommand(exerciseCmd)
}

// resolveExercise looks ref up as an id first, then as a name.
func resolveExercise(ref string) (training.Exercise, error) {
	if ex, ok := gymApp.Exercises.Get(ref); ok {
		return ex, nil
	}
	if ex, ok := gymApp.Exercises.FindByName(ref); ok {
		return ex, nil
	}
	return training.Exercise{}, fmt.Errorf("%w: %s", app.ErrUnknownExercise, ref)
}
