package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/viant/vecplot/internal/config"
	"github.com/viant/vecplot/loader"
	"github.com/viant/vecplot/neighbor"
	"github.com/viant/vecplot/plot"
	"github.com/viant/vecplot/projection"
	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
)

// Session is one built space with its projector, finder and board.
type Session struct {
	cfg       *config.Config
	source    string
	space     *space.Space
	projector *projection.Projector
	finder    *neighbor.Finder
	board     *plot.Board
}

// Open loads tokens from the configured dataset, or from the configured
// source file when no dataset is named, and builds a session over them.
func Open(ctx context.Context, cfg *config.Config, sink plot.Sink) (*Session, error) {
	var (
		raws   []token.Raw
		source string
		err    error
	)
	start := time.Now()
	switch {
	case cfg.Store.Dataset != "":
		source = "dataset:" + cfg.Store.Dataset
		raws, err = loadDataset(ctx, cfg.Store)
	case cfg.Source.Path != "":
		source = cfg.Source.Path
		raws, err = loader.ReadFile(cfg.Source.Path, LoaderOptions(cfg.Source))
	default:
		return nil, vecerr.New(vecerr.CodeCLIInputInvalid, "app: no vector source: set --source or --dataset")
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded tokens", "source", source, "count", len(raws), "elapsed", time.Since(start))
	return New(cfg, source, raws, sink)
}

// New builds a session over raws.
func New(cfg *config.Config, source string, raws []token.Raw, sink plot.Sink) (*Session, error) {
	s, err := space.Build(raws)
	if err != nil {
		return nil, err
	}
	board, err := plot.NewBoard(s, sink)
	if err != nil {
		return nil, err
	}
	board.SetVisible(cfg.Plot.Visible)
	slog.Info("space ready", "source", source, "tokens", s.Len(), "dim", s.Dim())
	return &Session{
		cfg:       cfg,
		source:    source,
		space:     s,
		projector: projection.New(s),
		finder:    neighbor.New(s),
		board:     board,
	}, nil
}

// LoaderOptions maps source settings onto loader options.
func LoaderOptions(c config.SourceConfig) loader.Options {
	return loader.Options{
		SkipHeader: c.SkipHeader,
		DropQuoted: c.DropQuoted,
		Keys:       c.Keys,
		EntityKeys: c.EntityKeys,
		Limit:      c.Limit,
	}
}

func (s *Session) Source() string      { return s.source }
func (s *Session) Space() *space.Space { return s.space }
func (s *Session) Board() *plot.Board  { return s.board }

// Project applies the configured axis called name.
func (s *Session) Project(name string) error {
	axis, ok := s.cfg.Axes[name]
	if !ok {
		return vecerr.New(vecerr.CodeCLIInputInvalid, "app: unknown axis", vecerr.FieldName(name))
	}
	return s.ProjectAxis(name, axis)
}

// ProjectAxis computes axis and applies it to the board. On failure the
// board keeps its previous snapshot.
func (s *Session) ProjectAxis(name string, axis config.AxisConfig) error {
	err := s.board.Project(func() (projection.Snapshot, error) {
		return s.snapshot(axis)
	})
	if err != nil {
		slog.Warn("projection failed", "axis", name, "kind", axis.Kind, "error", err)
		return err
	}
	slog.Debug("projection applied", "axis", name, "kind", axis.Kind)
	return nil
}

func (s *Session) snapshot(axis config.AxisConfig) (projection.Snapshot, error) {
	switch axis.Kind {
	case config.KindComponents:
		if len(axis.Components) != 2 {
			return projection.Snapshot{}, vecerr.New(vecerr.CodeInvalidArgument, "app: components axis needs two indices")
		}
		return s.projector.Components(axis.Components[0], axis.Components[1])
	case config.KindPair:
		if len(axis.A) != 1 || len(axis.B) != 1 {
			return projection.Snapshot{}, vecerr.New(vecerr.CodeInvalidArgument, "app: pair axis needs one name on each side")
		}
		return s.projector.PairAxis(axis.A[0], axis.B[0])
	case config.KindPairs:
		return s.projector.AveragedPairAxis(axis.A, axis.B)
	case config.KindGroups:
		return s.projector.SoftmaxGroupAxis(axis.A, axis.B)
	case config.KindFreqLen:
		return s.projector.FrequencyNorm()
	case config.KindPCA:
		return s.projector.PrincipalComponents()
	}
	return projection.Snapshot{}, vecerr.New(vecerr.CodeInvalidArgument, "app: unknown axis kind", vecerr.Field("kind", axis.Kind))
}

// Neighbors finds the neighbours of name and highlights them. k <= 0 uses
// the configured default.
func (s *Session) Neighbors(name string, k int) ([]neighbor.Neighbor, error) {
	ns, err := s.finder.NeighborsOf(name, s.k(k))
	if err != nil {
		return nil, err
	}
	return ns, s.board.Highlight(ns)
}

// Analogy answers "a is to b as c is to ?" and highlights the result.
func (s *Session) Analogy(a, b, c string, k int) ([]neighbor.Neighbor, error) {
	ns, err := s.finder.Analogy(a, b, c, s.k(k))
	if err != nil {
		return nil, err
	}
	return ns, s.board.Highlight(ns)
}

func (s *Session) k(k int) int {
	if k > 0 {
		return k
	}
	if s.cfg.Neighbors.K > 0 {
		return s.cfg.Neighbors.K
	}
	return neighbor.DefaultK
}
