package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/brickmath/internal/problemgen"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the player's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return printStats(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

func printStats(ctx context.Context, w io.Writer, e *env) error {
	if err := resume(ctx, e); err != nil {
		return err
	}
	p, _ := e.mgr.Profile()
	sess := e.mgr.Session()
	st := sess.Stats()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Player\t%s\n", p.Name)
	fmt.Fprintf(tw, "First login\t%s\n", p.LoginDate.Local().Format(time.DateOnly))
	fmt.Fprintf(tw, "Last played\t%s\n", p.LastPlayDate.Local().Format(time.DateTime))
	fmt.Fprintf(tw, "Play time\t%s\n", (time.Duration(p.TotalPlayTime) * time.Second).String())
	fmt.Fprintf(tw, "Correct\t%d\n", st.Correct)
	fmt.Fprintf(tw, "Incorrect\t%d\n", st.Incorrect)
	fmt.Fprintf(tw, "Accuracy\t%.0f%%\n", st.Accuracy()*100)
	fmt.Fprintf(tw, "Streak\t%d (best %d)\n", st.Streak, st.BestStreak)
	fmt.Fprintf(tw, "Games\t%d\n", st.SessionsPlayed)
	fmt.Fprintf(tw, "Perfect rounds\t%d\n", st.PerfectRounds)
	fmt.Fprintf(tw, "Tables mastered\t%s\n", problemgen.FormatTables(st.MasteredTables(), "none yet"))
	fmt.Fprintf(tw, "Tables selected\t%s\n", problemgen.FormatTables(sess.SelectedTables(), "all"))
	fmt.Fprintf(tw, "Bricks\t%d\n", sess.TotalBricks())
	fmt.Fprintf(tw, "Builds\t%d\n", len(sess.Builds()))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Achievements")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range sess.Achievements() {
		mark := " "
		if a.Unlocked {
			mark = "✓"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d/%d\t+%d\n", mark, a.Name, a.Progress, a.MaxProgress, a.Reward)
	}
	return tw.Flush()
}
