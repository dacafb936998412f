package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecplot/internal/config"
	"github.com/viant/vecplot/plot"
	"github.com/viant/vecplot/vecerr"
)

const vectors = `5 4
P1 1 0 0 0
P2 0 1 0 0
P3 1 1 0 0
P4 -1 0 0 0
P5 0 -1 0 0
`

// recorder keeps the last rendered and highlighted points.
type recorder struct {
	rendered    []plot.Point
	highlighted []plot.Point
}

func (r *recorder) Render(points []plot.Point) error {
	r.rendered = points
	return nil
}

func (r *recorder) Highlight(points []plot.Point) error {
	r.highlighted = points
	return nil
}

func writeVectors(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, os.WriteFile(path, []byte(vectors), 0o644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Source.Path = writeVectors(t)
	cfg.Source.SkipHeader = true
	cfg.Store.DSN = filepath.Join(t.TempDir(), "vecplot.db")
	cfg.Axes["p12"] = config.AxisConfig{Kind: config.KindPair, A: []string{"P1"}, B: []string{"P2"}}
	return cfg
}

func TestOpenFromSource(t *testing.T) {
	rec := &recorder{}
	s, err := Open(context.Background(), testConfig(t), rec)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Space().Len())
	assert.Equal(t, 4, s.Space().Dim())

	require.NoError(t, s.Project("p12"))
	require.Len(t, rec.rendered, 5)
	assert.InDelta(t, 0.5, rec.rendered[2].Position.X, 1e-9)
}

func TestOpenWithoutSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Path = ""
	_, err := Open(context.Background(), cfg, nil)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeCLIInputInvalid))
}

func TestProjectNamedAxes(t *testing.T) {
	s, err := Open(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	for _, name := range []string{"comp01", "comp23", "freqlen", "pca", "p12"} {
		assert.NoError(t, s.Project(name), name)
	}
	err = s.Project("nope")
	assert.True(t, vecerr.HasCode(err, vecerr.CodeCLIInputInvalid))
}

func TestProjectUSChinaAxis(t *testing.T) {
	cfg := testConfig(t)
	s, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, vecerr.IsNotFound(s.Project("uschina")))

	path := filepath.Join(t.TempDir(), "entities.txt")
	content := "ENTITY/United_States 1 0\nENTITY/China 0 1\nENTITY/Japan 1 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfg.Source.Path = path
	cfg.Source.SkipHeader = false

	rec := &recorder{}
	s, err = Open(context.Background(), cfg, rec)
	require.NoError(t, err)
	require.NoError(t, s.Project("uschina"))
	require.Len(t, rec.rendered, 3)
	assert.InDelta(t, 0.0, rec.rendered[0].Position.X, 1e-12)
	assert.InDelta(t, 1.0, rec.rendered[1].Position.X, 1e-12)
	assert.InDelta(t, 0.5, rec.rendered[2].Position.X, 1e-12)
}

func TestProjectFailureKeepsBoard(t *testing.T) {
	s, err := Open(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	require.NoError(t, s.Project("p12"))
	before := s.Board().Snapshot().Positions()

	err = s.ProjectAxis("bad", config.AxisConfig{Kind: config.KindGroups, A: []string{"P1"}, B: []string{"missing"}})
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotFound))
	err = s.ProjectAxis("bad", config.AxisConfig{Kind: config.KindComponents, Components: []int{0, 9}})
	assert.True(t, vecerr.HasCode(err, vecerr.CodeIndexOutOfRange))
	assert.Equal(t, before, s.Board().Snapshot().Positions())
}

func TestNeighborsAndAnalogy(t *testing.T) {
	rec := &recorder{}
	s, err := Open(context.Background(), testConfig(t), rec)
	require.NoError(t, err)

	ns, err := s.Neighbors("P3", 1)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.Equal(t, "P3", ns[0].Token.Name())
	assert.Len(t, rec.highlighted, 3)

	ns, err = s.Neighbors("P3", 0)
	require.NoError(t, err)
	assert.Len(t, ns, 5)

	ns, err = s.Analogy("P1", "P2", "P5", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, ns)

	_, err = s.Neighbors("missing", 1)
	assert.True(t, vecerr.IsNotFound(err))
}

func TestImportAndOpenDataset(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	st, db, err := OpenStore(ctx, cfg.Store)
	require.NoError(t, err)
	ds, err := Import(ctx, st, cfg.Source.Path, "fixture", LoaderOptions(cfg.Source))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.Equal(t, 5, ds.Size)
	assert.Equal(t, 4, ds.Dim)

	cfg.Source.Path = ""
	cfg.Store.Dataset = "fixture"
	s, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "dataset:fixture", s.Source())
	assert.Equal(t, 5, s.Space().Len())
}

func TestImportRejectsInvalidTable(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("a 1 2\nb 1\n"), 0o644))

	st, db, err := OpenStore(ctx, cfg.Store)
	require.NoError(t, err)
	defer db.Close()
	_, err = Import(ctx, st, path, "bad", LoaderOptions(config.SourceConfig{}))
	assert.True(t, vecerr.HasCode(err, vecerr.CodeDimensionMismatch))

	list, err := st.Datasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNearestInDataset(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	st, db, err := OpenStore(ctx, cfg.Store)
	require.NoError(t, err)
	defer db.Close()
	_, err = Import(ctx, st, cfg.Source.Path, "fixture", LoaderOptions(cfg.Source))
	require.NoError(t, err)

	matches, err := Nearest(ctx, st, "fixture", "P3", 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "P3", matches[0].Name)
	assert.ElementsMatch(t, []string{"P1", "P2"}, []string{matches[1].Name, matches[2].Name})

	_, err = Nearest(ctx, st, "fixture", "missing", 3)
	assert.True(t, vecerr.IsNotFound(err))
}
