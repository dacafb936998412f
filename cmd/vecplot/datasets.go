package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/vecplot/internal/app"
)

func newImportCmd(c *cli) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a text vector file into the dataset store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			st, db, err := app.OpenStore(cmd.Context(), c.cfg.Store)
			if err != nil {
				return err
			}
			defer db.Close()

			ds, err := app.Import(cmd.Context(), st, args[0], name, app.LoaderOptions(c.cfg.Source))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s (%d tokens, dim %d)\n", ds.Name, ds.ID, ds.Size, ds.Dim)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "dataset name (default: file name)")
	return cmd
}

func newDatasetsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List imported datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, db, err := app.OpenStore(cmd.Context(), c.cfg.Store)
			if err != nil {
				return err
			}
			defer db.Close()

			list, err := st.Datasets(cmd.Context())
			if err != nil {
				return err
			}
			return printer{out: cmd.OutOrStdout(), format: c.format}.printDatasets(list)
		},
	}
	cmd.AddCommand(newDatasetsRemoveCmd(c), newDatasetsNearestCmd(c))
	return cmd
}

func newDatasetsRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove an imported dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, db, err := app.OpenStore(cmd.Context(), c.cfg.Store)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := st.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed dataset %q\n", args[0])
			return err
		},
	}
}

func newDatasetsNearestCmd(c *cli) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "nearest <id|name> <token>",
		Short: "Rank a stored dataset against one of its tokens in SQL (strict top-k)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, db, err := app.OpenStore(cmd.Context(), c.cfg.Store)
			if err != nil {
				return err
			}
			defer db.Close()

			matches, err := app.Nearest(cmd.Context(), st, args[0], args[1], k)
			if err != nil {
				return err
			}
			return printer{out: cmd.OutOrStdout(), format: c.format}.printMatches(matches)
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 10, "number of matches")
	return cmd
}
