package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/vecplot/internal/app"
	"github.com/viant/vecplot/plot"
)

func newNeighborsCmd(c *cli) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "neighbors <name>",
		Short: "List the tokens most similar to a token",
		Long: `Neighbors ranks every token by cosine similarity to <name> and prints
all tokens at least as similar as the one ranked k, so ties at the cut are
all included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Open(cmd.Context(), c.cfg, plot.Discard)
			if err != nil {
				return err
			}
			ns, err := session.Neighbors(args[0], k)
			if err != nil {
				return err
			}
			return printer{out: cmd.OutOrStdout(), format: c.format}.printNeighbors(ns)
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 0, "rank that sets the similarity cut (default from config)")
	return cmd
}

func newAnalogyCmd(c *cli) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "analogy <a> <b> <c>",
		Short: "Answer \"a is to b as c is to ?\"",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Open(cmd.Context(), c.cfg, plot.Discard)
			if err != nil {
				return err
			}
			ns, err := session.Analogy(args[0], args[1], args[2], k)
			if err != nil {
				return err
			}
			return printer{out: cmd.OutOrStdout(), format: c.format}.printNeighbors(ns)
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 0, "rank that sets the similarity cut (default from config)")
	return cmd
}
