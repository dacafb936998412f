package neighbor

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
)

func build(t *testing.T, raws []token.Raw) *space.Space {
	t.Helper()
	s, err := space.Build(raws)
	require.NoError(t, err)
	return s
}

func randomSpace(t *testing.T, n, dim int, seed int64) *space.Space {
	gen := rand.New(rand.NewSource(seed))
	raws := make([]token.Raw, n)
	for i := range raws {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = float32(gen.NormFloat64())
		}
		raws[i] = token.Raw{Name: fmt.Sprintf("tok%03d", i), Vector: vec}
	}
	return build(t, raws)
}

func names(ns []Neighbor) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Token.Name()
	}
	return out
}

func TestNeighborsThresholdCut(t *testing.T) {
	s := randomSpace(t, 200, 64, 3)
	f := New(s)
	for _, q := range []int{0, 57, 199} {
		query := s.Tokens()[q]
		got, err := f.Neighbors(query, DefaultK)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(got), DefaultK+1)
		assert.Equal(t, query, got[0].Token)
		assert.InDelta(t, 1.0, got[0].Similarity, 1e-9)

		included := map[int]bool{}
		minIncluded := got[0].Similarity
		for i, n := range got {
			included[n.Token.Index()] = true
			if n.Similarity < minIncluded {
				minIncluded = n.Similarity
			}
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Similarity, n.Similarity)
			}
		}
		sims := s.Similarities(s.Row(q))
		for i, sim := range sims {
			if !included[i] {
				assert.Less(t, sim, minIncluded, "excluded token %d ranks above an included one", i)
			}
		}
	}
}

func TestNeighborsTiesInflateResult(t *testing.T) {
	s := build(t, []token.Raw{
		{Name: "q", Vector: []float32{1, 0}},
		{Name: "a", Vector: []float32{1, 0.1}},
		{Name: "b", Vector: []float32{1, 0.2}},
		{Name: "c", Vector: []float32{1, 0.2}},
		{Name: "d", Vector: []float32{1, 0.2}},
		{Name: "e", Vector: []float32{0, 1}},
	})
	got, err := New(s).NeighborsOf("q", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "a", "b", "c", "d"}, names(got))
}

func TestNeighborsK(t *testing.T) {
	s := randomSpace(t, 8, 4, 5)
	f := New(s)
	q := s.Tokens()[2]

	all, err := f.Neighbors(q, 100)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	last, err := f.Neighbors(q, 7)
	require.NoError(t, err)
	assert.Len(t, last, 8)

	self, err := f.Neighbors(q, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{q.Name()}, names(self))

	_, err = f.Neighbors(q, -1)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeInvalidArgument))
}

func TestNeighborsErrors(t *testing.T) {
	s := randomSpace(t, 5, 3, 9)
	other := randomSpace(t, 5, 3, 9)
	f := New(s)

	_, err := f.Neighbors(other.Tokens()[0], DefaultK)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotFound))
	_, err = f.Neighbors(nil, DefaultK)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotFound))
	_, err = f.NeighborsOf("missing", DefaultK)
	assert.True(t, vecerr.IsNotFound(err))

	_, err = New(nil).NeighborsOf("tok000", DefaultK)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotReady))
	_, err = New(&space.Space{}).NearestToVector([]float64{1, 0, 0}, 1)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotReady))
}

func TestNearestToVector(t *testing.T) {
	s := build(t, []token.Raw{
		{Name: "east", Vector: []float32{1, 0}},
		{Name: "north", Vector: []float32{0, 1}},
		{Name: "west", Vector: []float32{-1, 0}},
	})
	f := New(s)
	got, err := f.NearestToVector([]float64{10, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"east"}, names(got))

	_, err = f.NearestToVector([]float64{1, 2, 3}, 1)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeDimensionMismatch))
	_, err = f.NearestToVector([]float64{0, 0}, 1)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeDegenerateVector))
}

func TestAnalogy(t *testing.T) {
	s := build(t, []token.Raw{
		{Name: "P1", Vector: []float32{1, 0}},
		{Name: "P2", Vector: []float32{0, 1}},
		{Name: "P3", Vector: []float32{1, 1}},
		{Name: "P4", Vector: []float32{-1, 0}},
		{Name: "P5", Vector: []float32{0, -1}},
	})
	f := New(s)
	got, err := f.Analogy("P1", "P2", "P4", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"P4"}, names(got))
	assert.InDelta(t, 2/2.2360679775, got[0].Similarity, 1e-9)

	_, err = f.Analogy("P1", "P2", "nope", 1)
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotFound))
	_, err = f.Analogy("P1", "P1", "P1", 1)
	require.NoError(t, err)
}
