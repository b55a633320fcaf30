package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/brickmath/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game (same as running brickmath with no command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("no-splash", false, "Skip the start-up animation")
}

// runApp opens the store, resumes the stored player if there is one and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if _, err := e.mgr.Resume(ctx); err != nil {
		// A broken profile should not lock the player out; they can log
		// in again from the login screen.
		e.log.Error().Err(err).Msg("resume profile")
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(ctx, app.Options{
		Manager:    e.mgr,
		Logger:     e.log,
		SkipSplash: noSplash,
	})
}
