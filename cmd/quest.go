package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/engine"
)

var questCmd = &cobra.Command{
	Use:   "quest [node]",
	Short: "Show today's quest for a journey stop (default: current stop)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		node := eng.State().CurrentNodeIndex
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse node %q: %w", args[0], err)
			}
			node = n - 1
		}

		view, err := eng.GetDailyQuest(cmd.Context(), node)
		if err != nil {
			return err
		}
		printQuest(cmd.OutOrStdout(), view)
		return nil
	},
}

func printQuest(w io.Writer, view *engine.DailyQuestView) {
	fmt.Fprintf(w, "Stop %d: %s  (%s)\n", view.Node.Index+1, view.Node.Name, view.Date)
	if view.Empty() {
		fmt.Fprintln(w, "No tiles available for this stop.")
		return
	}
	for _, t := range view.Tiles {
		mark := " "
		if t.Completed {
			mark = "✓"
		}
		fmt.Fprintf(w, "\n[%s] %s  (+%d XP)\n    %s\n", mark, t.Question.ID, t.Question.XP, t.Question.Prompt)
		printOptions(w, t.Question)
	}
	fmt.Fprintf(w, "\n%d of %d tiles left\n", view.Remaining(), len(view.Tiles))
}

func printOptions(w io.Writer, q content.Question) {
	for i, opt := range q.Options {
		fmt.Fprintf(w, "    %c) %s\n", 'A'+i, opt)
	}
}

// parseOption accepts a letter (A-F, any case) or a 1-based number.
func parseOption(s string) (int, error) {
	if len(s) == 1 {
		c := s[0]
		switch {
		case c >= 'a' && c <= 'f':
			return int(c - 'a'), nil
		case c >= 'A' && c <= 'F':
			return int(c - 'A'), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid option %q: use a letter or a number starting at 1", s)
	}
	return n - 1, nil
}
