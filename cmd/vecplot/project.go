package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/vecplot/internal/app"
	"github.com/viant/vecplot/internal/config"
	"github.com/viant/vecplot/vecerr"
)

func newProjectCmd(c *cli) *cobra.Command {
	var (
		components []int
		pair       []string
		pairs      []string
		groups     []string
		versus     []string
		visible    int
	)
	cmd := &cobra.Command{
		Use:   "project [axis]",
		Short: "Project tokens onto a named or ad hoc axis",
		Long: `Project prints the 2D position of every visible token.

Named axes come from the config file (comp01, comp23, freqlen, pca and
uschina are always defined). Ad hoc axes are given with exactly one of --components,
--pair, --pairs or --groups/--versus.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, axis, err := adHocAxis(components, pair, pairs, groups, versus)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if name != "" {
					return vecerr.New(vecerr.CodeCLIInputInvalid, "give either an axis name or axis flags, not both")
				}
				var ok bool
				if axis, ok = c.cfg.Axes[args[0]]; !ok {
					return vecerr.New(vecerr.CodeCLIInputInvalid, "unknown axis", vecerr.FieldName(args[0]))
				}
				name = args[0]
			}
			if name == "" {
				name, axis = "comp01", c.cfg.Axes["comp01"]
			}
			if cmd.Flags().Changed("visible") {
				c.cfg.Plot.Visible = visible
			}

			session, err := app.Open(cmd.Context(), c.cfg, printer{out: cmd.OutOrStdout(), format: c.format})
			if err != nil {
				return err
			}
			return session.ProjectAxis(name, axis)
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&components, "components", nil, "two component indices, e.g. 0,1")
	flags.StringSliceVar(&pair, "pair", nil, "reference pair a,b")
	flags.StringSliceVar(&pairs, "pairs", nil, "reference pairs a1:b1,a2:b2")
	flags.StringSliceVar(&groups, "groups", nil, "first reference group")
	flags.StringSliceVar(&versus, "versus", nil, "second reference group, used with --groups")
	flags.IntVar(&visible, "visible", 0, "print only the first N tokens, 0 for all")
	return cmd
}

// adHocAxis builds an axis from flags. It returns an empty name when no
// axis flag was given.
func adHocAxis(components []int, pair, pairs, groups, versus []string) (string, config.AxisConfig, error) {
	var (
		set  int
		name string
		axis config.AxisConfig
	)
	if len(components) > 0 {
		set++
		name, axis = "components", config.AxisConfig{Kind: config.KindComponents, Components: components}
	}
	if len(pair) > 0 {
		set++
		if len(pair) != 2 {
			return "", axis, vecerr.New(vecerr.CodeCLIInputInvalid, "--pair needs exactly two names")
		}
		name, axis = "pair", pairAxis(pair[0], pair[1])
	}
	if len(pairs) > 0 {
		set++
		axis = config.AxisConfig{Kind: config.KindPairs}
		for _, p := range pairs {
			a, b, ok := strings.Cut(p, ":")
			if !ok || a == "" || b == "" {
				return "", axis, vecerr.New(vecerr.CodeCLIInputInvalid, "--pairs entries must look like a:b", vecerr.FieldName(p))
			}
			axis.A = append(axis.A, a)
			axis.B = append(axis.B, b)
		}
		name = "pairs"
	}
	if len(groups) > 0 || len(versus) > 0 {
		set++
		if len(groups) == 0 || len(versus) == 0 {
			return "", axis, vecerr.New(vecerr.CodeCLIInputInvalid, "--groups and --versus must be given together")
		}
		name, axis = "groups", config.AxisConfig{Kind: config.KindGroups, A: groups, B: versus}
	}
	if set > 1 {
		return "", config.AxisConfig{}, vecerr.New(vecerr.CodeCLIInputInvalid, "give only one kind of axis flag")
	}
	return name, axis, nil
}

func pairAxis(a, b string) config.AxisConfig {
	return config.AxisConfig{Kind: config.KindPair, A: []string{a}, B: []string{b}}
}
