package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "healthquest",
	Short: "Daily health quiz game for the terminal",
	Long:  "Health Quest: answer short health questions, earn XP, keep your streak and travel the journey map.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HEALTHQUEST_DB)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON question catalog (overrides HEALTHQUEST_CATALOG)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for quest and boss draws (0 = random)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(bossCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
