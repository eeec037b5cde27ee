package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how you have been doing",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.store.RoundRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		printStats(cmd.OutOrStdout(), st)
		return nil
	},
}

func printStats(w io.Writer, st *store.Stats) {
	if st.Attempts == 0 {
		fmt.Fprintln(w, "No questions answered yet. Spin the wheel with `mathwheel play`!")
		return
	}

	fmt.Fprintf(w, "Answered:     %d\n", st.Attempts)
	fmt.Fprintf(w, "Correct:      %d (%.0f%%)\n", st.Correct, st.Accuracy()*100)
	fmt.Fprintf(w, "Games:        %d\n", st.Sessions)
	fmt.Fprintf(w, "Best streak:  %d\n", st.BestStreak)
	fmt.Fprintf(w, "Streak now:   %d\n", st.CurrentStreak)
	if !st.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last played:  %s\n", st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s  %8s  %8s  %8s\n", "Operation", "Answered", "Correct", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 50))
	for _, ops := range st.ByOperation {
		l := lessons.For(ops.Operation)
		label := fmt.Sprintf("%s %s", ops.Operation.Symbol(), strings.ToLower(l.Title))
		acc := "-"
		if ops.Attempts > 0 {
			acc = fmt.Sprintf("%.0f%%", ops.Accuracy()*100)
		}
		fmt.Fprintf(w, "%-20s  %8d  %8d  %8s\n", label, ops.Attempts, ops.Correct, acc)
	}
}
