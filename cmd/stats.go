package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/healthquest/internal/boss"
	"github.com/abhisek/healthquest/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, XP, streak and journey progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		today, err := eng.TodayProgress(ctx)
		if err != nil {
			return err
		}
		statuses, err := eng.GetAchievementsStatus(ctx)
		if err != nil {
			return err
		}
		bossReady, err := eng.IsWeeklyBossAvailable(ctx)
		if err != nil {
			return err
		}
		st := eng.State()

		unlocked := 0
		for _, s := range statuses {
			if s.Unlocked {
				unlocked++
			}
		}
		node, _ := eng.Catalog().Node(st.CurrentNodeIndex)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Level\t%d (%d/%d XP to next)\n", st.Level(), progress.ProgressInLevel(st.TotalXP), progress.XPPerLevel)
		fmt.Fprintf(w, "Total XP\t%d\n", st.TotalXP)
		fmt.Fprintf(w, "Streak\t%d day(s)\n", st.Streak)
		fmt.Fprintf(w, "Today\t%d tile(s), %d XP\n", today.TilesCompleted, today.XPEarned)
		fmt.Fprintf(w, "Tiles cleared\t%d\n", len(st.Completed))
		fmt.Fprintf(w, "Journey\tstop %d/%d: %s (%d cleared)\n",
			st.CurrentNodeIndex+1, len(eng.Catalog().Nodes()), node.Name, len(st.CompletedNodes))
		fmt.Fprintf(w, "Achievements\t%d/%d\n", unlocked, len(statuses))
		bossLine := fmt.Sprintf("not ready (%d/%d play days this week)",
			st.PlayDaysWithin(eng.Today(), boss.Window), boss.RequiredPlayDays)
		if bossReady {
			bossLine = "ready"
		}
		fmt.Fprintf(w, "Weekly boss\t%s\n", bossLine)
		return w.Flush()
	},
}
