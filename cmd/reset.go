package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every answered question",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "This deletes all scores and streaks. Type \"yes\" to continue: ")
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() || strings.TrimSpace(strings.ToLower(sc.Text())) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.store.RoundRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset rounds: %w", err)
		}
		rt.log.Info().Msg("rounds reset")
		fmt.Fprintln(cmd.OutOrStdout(), "All scores cleared. Fresh start!")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
