package projection

import (
	"github.com/viant/vecplot/vecerr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PrincipalComponents projects the centred normalized vectors onto their
// first two principal components.
func (p *Projector) PrincipalComponents() (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	n, dim := p.space.Len(), p.space.Dim()
	if n < 2 || dim < 2 {
		return Snapshot{}, vecerr.New(vecerr.CodeDegenerateAxis, "projection: need at least two tokens and two dims",
			vecerr.Field("tokens", n), vecerr.FieldDim(dim))
	}

	x := mat.DenseCopyOf(p.space.Normalized())
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mean := stat.Mean(mat.Col(col, j, x), nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return Snapshot{}, vecerr.New(vecerr.CodeDegenerateAxis, "projection: SVD factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	if _, c := v.Dims(); c < 2 {
		return Snapshot{}, vecerr.New(vecerr.CodeDegenerateAxis, "projection: fewer than two principal components")
	}

	var projected mat.Dense
	projected.Mul(x, v.Slice(0, dim, 0, 2))
	out := make([]Position, n)
	for i := range out {
		out[i] = Position{X: projected.At(i, 0), Y: projected.At(i, 1)}
	}
	return newSnapshot(out), nil
}
