package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models you can build",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return printModels(cmd.Context(), cmd.OutOrStdout(), e)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build <model>",
	Short: "Spend bricks to build a model",
	Long:  "Build a model by id or name. Close spellings like \"rckt\" are matched too.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return buildModel(cmd.Context(), cmd.OutOrStdout(), e, args[0])
	},
}

// printModels lists the catalog. With a stored player each line says
// whether it is affordable.
func printModels(ctx context.Context, w io.Writer, e *env) error {
	have := -1
	if err := resume(ctx, e); err == nil {
		have = e.mgr.Session().TotalBricks()
	} else if !errors.Is(err, errNoPlayer) {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOST\tDIFFICULTY\tBONUS\t")
	for _, m := range builder.Catalog() {
		status := ""
		switch {
		case have < 0:
		case have >= m.Cost:
			status = "ready"
		default:
			status = fmt.Sprintf("need %d more", m.Cost-have)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t+%d\t%s\n",
			m.ID, m.Name, m.Cost, m.Difficulty.DisplayName(), m.Bonus(), status)
	}
	return tw.Flush()
}

// buildModel builds the model matching query and saves at once.
func buildModel(ctx context.Context, w io.Writer, e *env, query string) error {
	m, err := builder.Find(query)
	if err != nil {
		return err
	}
	if err := resume(ctx, e); err != nil {
		return err
	}

	res, err := e.mgr.Session().Build(m.ID)
	var short *bricks.InsufficientBricksError
	if errors.As(err, &short) {
		fmt.Fprintln(w, short.Error())
		return nil
	}
	if err != nil {
		return err
	}
	if err := e.mgr.Save(ctx); err != nil {
		return fmt.Errorf("save build: %w", err)
	}

	fmt.Fprintf(w, "Built %s %s! Spent %d bricks, earned %d bonus bricks.\n",
		m.Icon, m.Name, res.Build.BricksUsed, len(res.Bonus))
	for _, a := range res.Unlocked {
		fmt.Fprintf(w, "Achievement unlocked: %s %s (+%d bricks)\n", a.Icon, a.Name, a.Reward)
	}
	fmt.Fprintf(w, "You now have %d bricks.\n", e.mgr.Session().TotalBricks())
	return nil
}
