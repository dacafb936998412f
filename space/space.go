package space

import (
	"math"

	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Space is the immutable, normalized representation of a loaded token table.
type Space struct {
	dim        int
	tokens     []*Token
	byName     map[string]int
	raw        *mat.Dense
	norms      *mat.VecDense
	normalized *mat.Dense
}

// Build validates raws, computes norms and normalized rows, and returns a
// ready Space. On any error nothing is constructed.
func Build(raws []token.Raw) (*Space, error) {
	if len(raws) == 0 {
		return nil, vecerr.New(vecerr.CodeEmptySpace, "space: no tokens to build from")
	}
	dim := len(raws[0].Vector)
	for i := range raws {
		if len(raws[i].Vector) != dim {
			return nil, vecerr.New(vecerr.CodeDimensionMismatch,
				"space: inconsistent vector dims",
				vecerr.FieldName(raws[i].Name), vecerr.FieldIndex(i),
				vecerr.FieldDim(dim), vecerr.Field("got", len(raws[i].Vector)))
		}
	}
	if dim == 0 {
		return nil, vecerr.New(vecerr.CodeDegenerateVector, "space: zero-length vectors", vecerr.FieldName(raws[0].Name))
	}

	n := len(raws)
	data := make([]float64, n*dim)
	for i, r := range raws {
		row := data[i*dim : (i+1)*dim]
		for j, v := range r.Vector {
			row[j] = float64(v)
		}
	}
	raw := mat.NewDense(n, dim, data)

	normalized := mat.DenseCopyOf(raw)
	norms := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		row := normalized.RawRowView(i)
		norm := floats.Norm(row, 2)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, vecerr.New(vecerr.CodeDegenerateVector,
				"space: vector norm is zero or not finite",
				vecerr.FieldName(raws[i].Name), vecerr.FieldIndex(i), vecerr.Field("norm", norm))
		}
		floats.Scale(1/norm, row)
		norms.SetVec(i, norm)
	}

	s := &Space{
		dim:        dim,
		tokens:     make([]*Token, n),
		byName:     make(map[string]int, n),
		raw:        raw,
		norms:      norms,
		normalized: normalized,
	}
	for i, r := range raws {
		s.tokens[i] = &Token{
			name:   r.Name,
			index:  i,
			vector: append([]float32(nil), r.Vector...),
			norm:   norms.AtVec(i),
			space:  s,
		}
		if _, ok := s.byName[r.Name]; !ok {
			s.byName[r.Name] = i
		}
	}
	return s, nil
}

// Ready reports whether s was produced by Build.
func (s *Space) Ready() bool {
	return s != nil && s.normalized != nil
}

// CheckReady returns a NotReady error unless s is ready.
func (s *Space) CheckReady() error {
	if !s.Ready() {
		return vecerr.New(vecerr.CodeNotReady, "space: not normalized")
	}
	return nil
}

// Len returns the number of tokens.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

// Dim returns the vector dimensionality.
func (s *Space) Dim() int {
	if s == nil {
		return 0
	}
	return s.dim
}

// Tokens returns the tokens in index order. The slice must not be modified.
func (s *Space) Tokens() []*Token {
	if s == nil {
		return nil
	}
	return s.tokens
}

// Token returns the token with the given index.
func (s *Space) Token(index int) (*Token, error) {
	if err := s.CheckReady(); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(s.tokens) {
		return nil, vecerr.New(vecerr.CodeNotFound, "space: token index out of range", vecerr.FieldIndex(index))
	}
	return s.tokens[index], nil
}

// Lookup returns the token with the given name. When several tokens share a
// name the one with the lowest index wins.
func (s *Space) Lookup(name string) (*Token, error) {
	if err := s.CheckReady(); err != nil {
		return nil, err
	}
	idx, ok := s.byName[name]
	if !ok {
		return nil, vecerr.New(vecerr.CodeNotFound, "space: token not found", vecerr.FieldName(name))
	}
	return s.tokens[idx], nil
}

// LookupAll resolves names in order, failing on the first missing one.
func (s *Space) LookupAll(names []string) ([]*Token, error) {
	out := make([]*Token, len(names))
	for i, name := range names {
		t, err := s.Lookup(name)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Contains reports whether t belongs to s.
func (s *Space) Contains(t *Token) bool {
	return s.Ready() && t != nil && t.space == s
}

// Row returns the normalized row for index. It must not be modified.
func (s *Space) Row(index int) []float64 {
	return s.normalized.RawRowView(index)
}

// Raw returns the raw N×D matrix.
func (s *Space) Raw() mat.Matrix { return s.raw }

// Norms returns the per-token norms.
func (s *Space) Norms() mat.Vector { return s.norms }

// Normalized returns the normalized N×D matrix.
func (s *Space) Normalized() mat.Matrix { return s.normalized }

// Similarities computes the dot product of every normalized row with q in a
// single matrix-vector product. q must have length Dim.
func (s *Space) Similarities(q []float64) []float64 {
	var out mat.VecDense
	out.MulVec(s.normalized, mat.NewVecDense(s.dim, q))
	return out.RawVector().Data
}
