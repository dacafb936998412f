// Package config loads vecplot settings from defaults, an optional YAML
// file and VECPLOT_ environment variables.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/vecplot/vecerr"
)

// Axis kinds.
const (
	KindComponents = "components"
	KindPair       = "pair"
	KindPairs      = "pairs"
	KindGroups     = "groups"
	KindFreqLen    = "freqlen"
	KindPCA        = "pca"
)

// Config is the top-level vecplot configuration.
type Config struct {
	Source    SourceConfig          `mapstructure:"source"`
	Store     StoreConfig           `mapstructure:"store"`
	Neighbors NeighborsConfig       `mapstructure:"neighbors"`
	Plot      PlotConfig            `mapstructure:"plot"`
	Axes      map[string]AxisConfig `mapstructure:"axes"`
	Log       LogConfig             `mapstructure:"log"`
}

// SourceConfig selects and filters the text vector file.
type SourceConfig struct {
	Path       string   `mapstructure:"path"`
	SkipHeader bool     `mapstructure:"skip_header"`
	DropQuoted bool     `mapstructure:"drop_quoted"`
	Keys       []string `mapstructure:"keys"`
	EntityKeys bool     `mapstructure:"entity_keys"`
	Limit      int      `mapstructure:"limit"`
}

// StoreConfig points at the SQLite catalogue of imported datasets.
type StoreConfig struct {
	DSN     string `mapstructure:"dsn"`
	Dataset string `mapstructure:"dataset"`
}

// NeighborsConfig controls neighbour queries.
type NeighborsConfig struct {
	K int `mapstructure:"k"`
}

// PlotConfig controls what a render shows.
type PlotConfig struct {
	Visible int `mapstructure:"visible"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AxisConfig is a named projection. A and B are token names; for pairs
// they are matched position by position.
type AxisConfig struct {
	Kind       string   `mapstructure:"kind"`
	A          []string `mapstructure:"a"`
	B          []string `mapstructure:"b"`
	Components []int    `mapstructure:"components"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.skip_header", false)
	v.SetDefault("source.drop_quoted", false)
	v.SetDefault("source.entity_keys", false)
	v.SetDefault("source.limit", 0)
	v.SetDefault("store.dsn", "vecplot.db")
	v.SetDefault("neighbors.k", 10)
	v.SetDefault("plot.visible", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("axes.comp01", map[string]any{"kind": KindComponents, "components": []int{0, 1}})
	v.SetDefault("axes.comp23", map[string]any{"kind": KindComponents, "components": []int{2, 3}})
	v.SetDefault("axes.freqlen", map[string]any{"kind": KindFreqLen})
	v.SetDefault("axes.pca", map[string]any{"kind": KindPCA})
	v.SetDefault("axes.uschina", map[string]any{
		"kind": KindPair,
		"a":    []string{"ENTITY/United_States"},
		"b":    []string{"ENTITY/China"},
	})
}

// SetupEnv binds VECPLOT_ prefixed environment variables.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("VECPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from path (optional) on top of defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, vecerr.Errorf(vecerr.CodeConfigInvalid, "reading config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, vecerr.Errorf(vecerr.CodeConfigInvalid, "unmarshalling config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, vecerr.Errorf(vecerr.CodeConfigInvalid, "validating config: %w", errors.Join(errs...))
	}
	return &cfg, nil
}

// AxisNames returns the configured axis names in sorted order.
func (c *Config) AxisNames() []string {
	names := make([]string, 0, len(c.Axes))
	for name := range c.Axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error
	if c.Source.Limit < 0 {
		errs = append(errs, invalid("source.limit must not be negative, got %d", c.Source.Limit))
	}
	if c.Neighbors.K < 0 {
		errs = append(errs, invalid("neighbors.k must not be negative, got %d", c.Neighbors.K))
	}
	if c.Plot.Visible < 0 {
		errs = append(errs, invalid("plot.visible must not be negative, got %d", c.Plot.Visible))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, invalid("log.level must be one of [debug, info, warn, error], got %q", c.Log.Level))
	}
	for _, name := range c.AxisNames() {
		errs = append(errs, c.Axes[name].validate(name)...)
	}
	return errs
}

func (a AxisConfig) validate(name string) []error {
	var errs []error
	switch a.Kind {
	case KindComponents:
		if len(a.Components) != 2 {
			errs = append(errs, invalid("axes.%s.components must hold 2 indices, got %d", name, len(a.Components)))
		}
	case KindPair:
		if len(a.A) != 1 || len(a.B) != 1 {
			errs = append(errs, invalid("axes.%s: pair needs exactly one name in a and b", name))
		}
	case KindPairs:
		if len(a.A) == 0 || len(a.A) != len(a.B) {
			errs = append(errs, invalid("axes.%s: pairs needs equal, non-empty a and b, got %d and %d", name, len(a.A), len(a.B)))
		}
	case KindGroups:
		if len(a.A) == 0 || len(a.B) == 0 {
			errs = append(errs, invalid("axes.%s: groups needs non-empty a and b", name))
		}
	case KindFreqLen, KindPCA:
	default:
		errs = append(errs, invalid("axes.%s.kind must be one of [%s], got %q", name,
			strings.Join([]string{KindComponents, KindPair, KindPairs, KindGroups, KindFreqLen, KindPCA}, ", "), a.Kind))
	}
	return errs
}

func invalid(format string, args ...any) error {
	return vecerr.New(vecerr.CodeConfigInvalid, "config: "+fmt.Sprintf(format, args...))
}
