package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("reset deletes every saved record; pass --yes to confirm")

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved player data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errResetNotConfirmed
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return wipe(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm that all data should be deleted")
}

func wipe(ctx context.Context, w io.Writer, e *env) error {
	if err := e.mgr.Wipe(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "All player data deleted.")
	return nil
}
