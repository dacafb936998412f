package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/vecplot/internal/config"
	"github.com/viant/vecplot/vecerr"
)

// cli carries state resolved by the root command to its subcommands.
type cli struct {
	cfg    *config.Config
	format string
}

// NewRootCmd creates the root vecplot command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "vecplot",
		Short:         "vecplot explores word and entity embeddings in 2D",
		Long:          "vecplot loads pretrained embedding vectors, projects them onto semantic axes and answers neighbour and analogy queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "path to config file")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringVarP(&c.format, "format", "f", formatTable, "output format: table, csv, json or yaml")
	flags.StringP("source", "s", "", "path to a text vector file (.gz and .bz2 accepted)")
	flags.Bool("skip-header", false, "skip the first line of the vector file")
	flags.StringP("dataset", "d", "", "load an imported dataset by id or name instead of --source")
	flags.String("dsn", "", "SQLite database holding imported datasets")

	root.AddCommand(
		newProjectCmd(c),
		newNeighborsCmd(c),
		newAnalogyCmd(c),
		newImportCmd(c),
		newDatasetsCmd(c),
		newExploreCmd(c),
		newVersionCmd(),
	)
	return root
}

var flagKeys = map[string]string{
	"source":      "source.path",
	"skip-header": "source.skip_header",
	"dataset":     "store.dataset",
	"dsn":         "store.dsn",
}

// setup resolves configuration with flag > env > file > default precedence
// and installs the default logger.
func (c *cli) setup(cmd *cobra.Command) error {
	if !validFormat(c.format) {
		return vecerr.Errorf(vecerr.CodeCLIInputInvalid, "unknown output format %q", c.format)
	}

	v := viper.New()
	config.SetDefaults(v)
	config.SetupEnv(v)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return vecerr.Errorf(vecerr.CodeConfigInvalid, "reading config file: %w", err)
		}
	}
	persistent := cmd.Root().PersistentFlags()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, persistent.Lookup(flag)); err != nil {
			return vecerr.Errorf(vecerr.CodeCLIInputInvalid, "binding %s flag: %w", flag, err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	c.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return vecerr.Errorf(vecerr.CodeConfigInvalid, "log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}
