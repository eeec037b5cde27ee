package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathwheel",
	Short: "Spin the wheel, solve the sum",
	Long:  "Mathwheel is a terminal math game for kids: spin the operation wheel and pick the right answer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, false)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().String("db", "", "SQLite path or Postgres URL (overrides MATHWHEEL_DB)")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver, sqlite or postgres (overrides MATHWHEEL_DB_DRIVER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
