package neighbor

import (
	"math"
	"sort"

	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/vecerr"
	"gonum.org/v1/gonum/floats"
)

// DefaultK is the rank whose similarity sets the cut.
const DefaultK = 10

// Neighbor is a token together with its cosine similarity to the query.
type Neighbor struct {
	Token      *space.Token
	Similarity float64
}

// Finder runs neighbour queries against one space.
type Finder struct {
	space *space.Space
}

// New returns a Finder for s.
func New(s *space.Space) *Finder {
	return &Finder{space: s}
}

// Neighbors returns every token whose similarity to t is at least the
// similarity ranked k (0-based, descending). The query token is always
// included. Results are ordered by similarity, then index.
func (f *Finder) Neighbors(t *space.Token, k int) ([]Neighbor, error) {
	if err := f.space.CheckReady(); err != nil {
		return nil, err
	}
	if !f.space.Contains(t) {
		name := ""
		if t != nil {
			name = t.Name()
		}
		return nil, vecerr.New(vecerr.CodeNotFound, "neighbor: token is not part of this space", vecerr.FieldName(name))
	}
	return f.rank(f.space.Row(t.Index()), k, t.Index())
}

// NeighborsOf looks up name and returns its neighbours.
func (f *Finder) NeighborsOf(name string, k int) ([]Neighbor, error) {
	t, err := f.space.Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Neighbors(t, k)
}

// NearestToVector ranks tokens against an arbitrary query vector, which is
// normalized first.
func (f *Finder) NearestToVector(query []float64, k int) ([]Neighbor, error) {
	if err := f.space.CheckReady(); err != nil {
		return nil, err
	}
	if len(query) != f.space.Dim() {
		return nil, vecerr.New(vecerr.CodeDimensionMismatch, "neighbor: query dim mismatch",
			vecerr.FieldDim(f.space.Dim()), vecerr.Field("got", len(query)))
	}
	norm := floats.Norm(query, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, vecerr.New(vecerr.CodeDegenerateVector, "neighbor: query norm is zero or not finite")
	}
	unit := append([]float64(nil), query...)
	floats.Scale(1/norm, unit)
	return f.rank(unit, k, -1)
}

// Analogy answers "a is to b as c is to ?" by ranking tokens against
// n(b) - n(a) + n(c).
func (f *Finder) Analogy(a, b, c string, k int) ([]Neighbor, error) {
	toks, err := f.space.LookupAll([]string{a, b, c})
	if err != nil {
		return nil, err
	}
	query := toks[1].Normalized()
	floats.Sub(query, f.space.Row(toks[0].Index()))
	floats.Add(query, f.space.Row(toks[2].Index()))
	return f.NearestToVector(query, k)
}

// rank applies the threshold cut. self, when not negative, is kept even if
// rounding pushes its self-similarity below the cut.
func (f *Finder) rank(unit []float64, k, self int) ([]Neighbor, error) {
	if k < 0 {
		return nil, vecerr.New(vecerr.CodeInvalidArgument, "neighbor: k must not be negative", vecerr.Field("k", k))
	}
	sims := f.space.Similarities(unit)
	sorted := append([]float64(nil), sims...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	threshold := sorted[len(sorted)-1]
	if k < len(sorted) {
		threshold = sorted[k]
	}

	toks := f.space.Tokens()
	var out []Neighbor
	for i, sim := range sims {
		if sim >= threshold || i == self {
			out = append(out, Neighbor{Token: toks[i], Similarity: sim})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out, nil
}
