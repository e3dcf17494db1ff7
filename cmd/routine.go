package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maragym/gymlog/internal/routine"
	"github.com/maragym/gymlog/internal/ui/markdown"
)

var (
	routinePlain bool
	routineWidth int
)

var routineCmd = &cobra.Command{
	Use:   "routine [day]",
	Short: "Show the training routine",
	Long: `Show the push/pull/legs routine: warm-up, exercises with their sets and
reps, and finishers. Exercises marked * are optional.

Examples:
  # Whole routine
  gymlog routine

  # One day
  gymlog routine push
  gymlog routine legs

  # Raw markdown
  gymlog routine pull --plain > pull.md`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipAppAnnotation: "true"},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var keys []string
		for _, d := range routine.Days() {
			keys = append(keys, d.Key)
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		days := routine.Days()
		if len(args) == 1 {
			d, ok := routine.DayByKey(args[0])
			if !ok {
				return fmt.Errorf("unknown routine day %q", args[0])
			}
			days = []routine.Day{d}
		}

		out := cmd.OutOrStdout()
		if routinePlain {
			parts := make([]string, len(days))
			for i, d := range days {
				parts[i] = routine.Markdown(d)
			}
			_, err := fmt.Fprint(out, strings.Join(parts, "\n---\n\n"))
			return err
		}

		r, err := markdown.New(routineWidth, cfg.UI.MarkdownStyle)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		for _, d := range days {
			rendered, err := r.RenderDay(d)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprint(out, rendered); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	routineCmd.Flags().BoolVar(&routinePlain, "plain", false, "Print markdown without styling")
	routineCmd.Flags().IntVar(&routineWidth, "width", 80, "Wrap width")
	rootCmd.AddCommand(routineCmd)
}
