package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/app"
	"github.com/abhisek/mathwheel/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Jump straight to the wheel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, true)
	},
}

// runTUI opens the store, builds the story service and launches the TUI.
func runTUI(cmd *cobra.Command, startPlaying bool) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	rt.log.Info().Bool("start_playing", startPlaying).Msg("starting TUI")
	return app.Run(ctx, app.Options{
		Rounds:       rt.store.RoundRepo(),
		Stories:      rt.stories(ctx),
		Questions:    quiz.New(nil),
		OptionCount:  rt.cfg.Game.Options,
		SpinDuration: rt.cfg.Game.SpinDuration,
		Log:          rt.log,
		StartPlaying: startPlaying,
	})
}
