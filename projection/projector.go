package projection

import (
	"math"

	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/vecerr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Func computes one plot coordinate for a token.
type Func func(t *space.Token) float64

// Projector computes snapshots over a single space.
type Projector struct {
	space *space.Space
}

// New returns a Projector for s. Readiness is checked on every call.
func New(s *space.Space) *Projector {
	return &Projector{space: s}
}

// Space returns the projected space.
func (p *Projector) Space() *space.Space { return p.space }

// Components uses normalized components i and j as x and y.
func (p *Projector) Components(i, j int) (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	dim := p.space.Dim()
	for _, c := range []int{i, j} {
		if c < 0 || c >= dim {
			return Snapshot{}, vecerr.New(vecerr.CodeIndexOutOfRange, "projection: component out of range",
				vecerr.FieldIndex(c), vecerr.FieldDim(dim))
		}
	}
	out := make([]Position, p.space.Len())
	for t := range out {
		row := p.space.Row(t)
		out[t] = Position{X: row[i], Y: row[j]}
	}
	return newSnapshot(out), nil
}

// PairAxis places every token by its parametric position along the line
// from a to b (0 at a, 1 at b) and its perpendicular distance from it.
func (p *Projector) PairAxis(a, b string) (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	ta, err := p.space.Lookup(a)
	if err != nil {
		return Snapshot{}, err
	}
	tb, err := p.space.Lookup(b)
	if err != nil {
		return Snapshot{}, err
	}
	return p.pairAxis(ta, tb)
}

func (p *Projector) pairAxis(ta, tb *space.Token) (Snapshot, error) {
	dim := p.space.Dim()
	origin := p.space.Row(ta.Index())
	axis := floats.SubTo(make([]float64, dim), p.space.Row(tb.Index()), origin)
	axisSq := floats.Dot(axis, axis)
	if axisSq == 0 {
		return Snapshot{}, vecerr.New(vecerr.CodeDegenerateAxis, "projection: reference points coincide",
			vecerr.Field("a", ta.Name()), vecerr.Field("b", tb.Name()))
	}

	// disp·axis = row·axis − origin·axis, batched over all rows.
	proj := p.space.Similarities(axis)
	originDot := floats.Dot(origin, axis)

	out := make([]Position, p.space.Len())
	for t := range out {
		coord := (proj[t] - originDot) / axisSq
		row := p.space.Row(t)
		var sq float64
		for d := 0; d < dim; d++ {
			r := row[d] - origin[d] - coord*axis[d]
			sq += r * r
		}
		out[t] = Position{X: coord, Y: math.Sqrt(sq)}
	}
	return newSnapshot(out), nil
}

// AveragedPairAxis averages PairAxis over the pairs (as[k], bs[k]).
func (p *Projector) AveragedPairAxis(as, bs []string) (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	if len(as) != len(bs) {
		return Snapshot{}, vecerr.New(vecerr.CodeArgumentMismatch, "projection: pair lists differ in length",
			vecerr.Field("a", len(as)), vecerr.Field("b", len(bs)))
	}
	if len(as) == 0 {
		return Snapshot{}, vecerr.New(vecerr.CodeEmptyGroup, "projection: no reference pairs")
	}
	snaps := make([]Snapshot, len(as))
	for k := range as {
		snap, err := p.PairAxis(as[k], bs[k])
		if err != nil {
			return Snapshot{}, err
		}
		snaps[k] = snap
	}
	return average(snaps), nil
}

// SoftmaxGroupAxis places every token by its relative proximity to group b
// versus group a (x in (0,1)) and its overall distance from both (y). The
// groups may differ in size.
//
// Distances to a group are the geometric mean of the clipped cosine
// distances max((1-cos)/2, 0) to each member; an exact zero distance to any
// member collapses the group distance to zero.
func (p *Projector) SoftmaxGroupAxis(as, bs []string) (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	if len(as) == 0 || len(bs) == 0 {
		return Snapshot{}, vecerr.New(vecerr.CodeEmptyGroup, "projection: reference group is empty",
			vecerr.Field("a", len(as)), vecerr.Field("b", len(bs)))
	}
	distA, err := p.groupDistances(as)
	if err != nil {
		return Snapshot{}, err
	}
	distB, err := p.groupDistances(bs)
	if err != nil {
		return Snapshot{}, err
	}
	out := make([]Position, p.space.Len())
	for t := range out {
		out[t] = Position{
			X: softmaxFirst(distA[t], distB[t]),
			Y: distA[t] + distB[t],
		}
	}
	return newSnapshot(out), nil
}

func (p *Projector) groupDistances(names []string) ([]float64, error) {
	toks, err := p.space.LookupAll(names)
	if err != nil {
		return nil, err
	}
	dim := p.space.Dim()
	refs := mat.NewDense(dim, len(toks), nil)
	for k, tok := range toks {
		refs.SetCol(k, p.space.Row(tok.Index()))
	}
	var sims mat.Dense
	sims.Mul(p.space.Normalized(), refs)

	out := make([]float64, p.space.Len())
	logs := make([]float64, len(toks))
	for t := range out {
		for k := range logs {
			logs[k] = math.Log(clippedDistance(sims.At(t, k)))
		}
		out[t] = math.Exp(stat.Mean(logs, nil))
	}
	return out, nil
}

// clippedDistance maps a cosine similarity to (1-cos)/2, clipping the
// negative values rounding produces when cos slightly exceeds 1.
func clippedDistance(cos float64) float64 {
	return math.Max((1-cos)*0.5, 0)
}

// softmaxFirst returns the first component of softmax([a, b]).
func softmaxFirst(a, b float64) float64 {
	return 1 / (1 + math.Exp(b-a))
}

// ByFunction evaluates fx and fy for every token.
func (p *Projector) ByFunction(fx, fy Func) (Snapshot, error) {
	if err := p.space.CheckReady(); err != nil {
		return Snapshot{}, err
	}
	if fx == nil || fy == nil {
		return Snapshot{}, vecerr.New(vecerr.CodeInvalidArgument, "projection: nil coordinate function")
	}
	toks := p.space.Tokens()
	out := make([]Position, len(toks))
	for i, t := range toks {
		out[i] = Position{X: fx(t), Y: fy(t)}
	}
	return newSnapshot(out), nil
}

// LogIndex is log(index+1), a proxy for log frequency rank.
func LogIndex(t *space.Token) float64 { return math.Log(float64(t.Index()) + 1) }

// Norm is the raw vector length.
func Norm(t *space.Token) float64 { return t.Norm() }

// FrequencyNorm plots log frequency rank against raw vector norm.
func (p *Projector) FrequencyNorm() (Snapshot, error) {
	return p.ByFunction(LogIndex, Norm)
}
