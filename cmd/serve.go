package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.HTTP.Addr
		if f, _ := cmd.Flags().GetString("addr"); f != "" {
			addr = f
		}

		srv := api.New(api.Options{
			Addr:            addr,
			CORSOrigins:     rt.cfg.HTTP.CORSOrigins,
			RequestTimeout:  rt.cfg.HTTP.RequestTimeout,
			ShutdownTimeout: rt.cfg.HTTP.ShutdownTimeout,
			OptionCount:     rt.cfg.Game.Options,
			Rounds:          rt.store.RoundRepo(),
			Log:             rt.log,
		})
		return srv.ListenAndServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATHWHEEL_HTTP_ADDR)")
}
