package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/healthquest/internal/boss"
)

var bossCmd = &cobra.Command{
	Use:   "boss",
	Short: "Show weekly boss status, or fight it with --play",
	RunE: func(cmd *cobra.Command, args []string) error {
		play, _ := cmd.Flags().GetBool("play")

		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		ok, err := eng.IsWeeklyBossAvailable(ctx)
		if err != nil {
			return err
		}
		st := eng.State()
		if !ok {
			days := st.PlayDaysWithin(eng.Today(), boss.Window)
			fmt.Fprintf(out, "Weekly boss not available. Play days in the last %d days: %d/%d.\n",
				boss.Window, days, boss.RequiredPlayDays)
			if !st.BossLastCompleted.IsZero() {
				fmt.Fprintf(out, "Last defeated %s; returns %s.\n", st.BossLastCompleted, boss.OnCooldownUntil(st))
			}
			return nil
		}
		if !play {
			fmt.Fprintln(out, "The weekly boss is ready! Run `healthquest boss --play` to fight.")
			return nil
		}

		sess, err := eng.StartWeeklyBoss(ctx)
		if err != nil {
			return err
		}
		in := bufio.NewScanner(cmd.InOrStdin())
		for {
			q, ok := sess.Current()
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "\nQuestion %d/%d: %s\n", sess.CurrentIndex+1, sess.Total(), q.Prompt)
			printOptions(out, q)
			fmt.Fprint(out, "> ")
			if !in.Scan() {
				return fmt.Errorf("boss round abandoned")
			}
			selected, err := parseOption(strings.TrimSpace(in.Text()))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			res, err := eng.SubmitBossAnswer(ctx, selected)
			if err != nil {
				return err
			}
			if res.Correct {
				fmt.Fprintln(out, "Hit!")
			} else {
				fmt.Fprintf(out, "Missed! The answer was %c.\n", 'A'+res.CorrectIndex)
			}
			if res.Finished {
				fmt.Fprintf(out, "\nBoss defeated: %d/%d correct, +%d bonus XP\n",
					res.CorrectAnswers, res.Total, res.BonusXP)
				if res.LeveledUp {
					fmt.Fprintf(out, "Level up! You are now level %d.\n", res.NewLevel)
				}
				for _, a := range res.NewlyUnlocked {
					fmt.Fprintf(out, "Achievement unlocked: %s\n", a.Name)
				}
				return nil
			}
		}
	},
}

func init() {
	bossCmd.Flags().Bool("play", false, "Fight the boss now, answering on stdin")
}
