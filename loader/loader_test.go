package loader

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
)

const sample = `4 3
the 0.1 0.2 0.3
of -1 0 1.5

"quoted" 1 1 1
ENTITY/United_States 0.5 0.5 0.5
`

func TestRead(t *testing.T) {
	raws, err := Read(strings.NewReader(sample), Options{SkipHeader: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of", `"quoted"`, "ENTITY/United_States"}, token.Names(raws))
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, raws[0].Vector)
	assert.Equal(t, []float32{-1, 0, 1.5}, raws[1].Vector)
}

func TestReadKeepsHeaderWhenAsked(t *testing.T) {
	raws, err := Read(strings.NewReader(sample), Options{})
	require.NoError(t, err)
	require.Len(t, raws, 5)
	assert.Equal(t, "4", raws[0].Name)
	assert.Equal(t, []float32{3}, raws[0].Vector)
}

func TestReadFilters(t *testing.T) {
	raws, err := Read(strings.NewReader(sample), Options{SkipHeader: true, DropQuoted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of", "ENTITY/United_States"}, token.Names(raws))

	raws, err = Read(strings.NewReader(sample), Options{SkipHeader: true, Keys: []string{"United States"}, EntityKeys: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ENTITY/United_States"}, token.Names(raws))

	raws, err = Read(strings.NewReader(sample), Options{SkipHeader: true, Keys: []string{"of", "the"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of"}, token.Names(raws))

	raws, err = Read(strings.NewReader(sample), Options{SkipHeader: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of"}, token.Names(raws))
}

func TestReadParseError(t *testing.T) {
	_, err := Read(strings.NewReader("a 1 2\nb 1 x\n"), Options{})
	require.Error(t, err)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeParseInvalid))
	assert.Contains(t, err.Error(), "line 2, column 3")
}

func TestReadDoesNotCheckDims(t *testing.T) {
	raws, err := Read(strings.NewReader("a 1 2\nb 1\n"), Options{})
	require.NoError(t, err)
	assert.Len(t, raws[1].Vector, 1)
}

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "ENTITY/United_Kingdom", EntityKey("United Kingdom"))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "vectors.vec")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o644))

	raws, err := ReadFile(plain, Options{SkipHeader: true})
	require.NoError(t, err)
	assert.Len(t, raws, 4)

	compressed := filepath.Join(dir, "vectors.vec.gz")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	fromGz, err := ReadFile(compressed, Options{SkipHeader: true})
	require.NoError(t, err)
	assert.Equal(t, raws, fromGz)

	_, err = ReadFile(filepath.Join(dir, "missing.vec"), Options{})
	assert.True(t, vecerr.HasCode(err, vecerr.CodeLoadReadFailure))
}
