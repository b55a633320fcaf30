package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/brickmath/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup [dir]",
	Short: "Export the player's progress to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		path, err := backup(cmd.Context(), e, dir, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Backup written to", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace all saved data with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return restore(cmd.Context(), cmd.OutOrStdout(), e, args[0])
	},
}

// backup writes the stored player's snapshot into dir and returns the file
// path.
func backup(ctx context.Context, e *env, dir string, at time.Time) (string, error) {
	if err := resume(ctx, e); err != nil {
		return "", err
	}
	snap, err := e.mgr.Export()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, store.BackupFileName(snap.Profile.Name, at))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	if err := store.EncodeBackup(f, snap, at); err != nil {
		f.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	e.log.Info().Str("path", path).Msg("backup written")
	return path, nil
}

func restore(ctx context.Context, w io.Writer, e *env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	snap, err := store.DecodeBackup(f, e.log)
	if err != nil {
		return fmt.Errorf("read backup %s: %w", path, err)
	}
	if err := e.mgr.Import(ctx, snap); err != nil {
		return err
	}
	fmt.Fprintf(w, "Restored %s with %d bricks.\n", snap.Profile.Name, len(snap.Bricks))
	return nil
}
