package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crawler",
	Short: "Paramedic exam readiness crawler",
	Long: "crawler tracks readiness for the paramedic certification exam and runs " +
		"scenario encounters across a simulated city.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CRAWLER_DB env var)")
	rootCmd.PersistentFlags().String("profile", "", "Learner profile id (overrides CRAWLER_PROFILE env var)")
	rootCmd.PersistentFlags().String("tuning", "", "YAML file overriding tuned constants (overrides CRAWLER_TUNING env var)")
	rootCmd.PersistentFlags().String("log", "", "Log mode: off, dev or prod (overrides CRAWLER_LOG env var)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(archetypeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
