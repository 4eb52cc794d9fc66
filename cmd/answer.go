package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/healthquest/internal/achievements"
	"github.com/abhisek/healthquest/internal/engine"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id> <option>",
	Short: "Answer any catalog tile by id (list today's with `quest`)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := parseOption(args[1])
		if err != nil {
			return err
		}

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := eng.SubmitAnswer(cmd.Context(), args[0], selected)
		if err != nil {
			return err
		}
		printAnswer(cmd.OutOrStdout(), eng, res)
		return nil
	},
}

func printAnswer(w io.Writer, eng *engine.Engine, res *engine.AnswerResult) {
	if !res.Correct {
		fmt.Fprintf(w, "Not quite. The answer was %c.\n", 'A'+res.CorrectIndex)
		if res.Explanation != "" {
			fmt.Fprintln(w, res.Explanation)
		}
		return
	}

	fmt.Fprintln(w, "Correct!")
	if res.Explanation != "" {
		fmt.Fprintln(w, res.Explanation)
	}
	switch {
	case res.XPAwarded > 0:
		fmt.Fprintf(w, "+%d XP\n", res.XPAwarded)
	case res.AlreadyCompleted:
		fmt.Fprintln(w, "Already completed, no extra XP.")
	}
	if res.LeveledUp {
		fmt.Fprintf(w, "Level up! You are now level %d.\n", res.NewLevel)
	}
	fmt.Fprintf(w, "Streak: %d day(s) (%s)\n", res.Streak, res.StreakChange)
	if res.NodeJustCompleted != nil {
		node, _ := eng.Catalog().Node(*res.NodeJustCompleted)
		fmt.Fprintf(w, "Stop cleared: %s\n", node.Name)
	}
	for _, a := range res.NewlyUnlocked {
		fmt.Fprintf(w, "%s Achievement unlocked: %s\n", achievements.Icon(a.Rule.Kind), a.Name)
	}
}
