package plot

import (
	"math"

	"github.com/viant/vecplot/neighbor"
	"github.com/viant/vecplot/projection"
	"github.com/viant/vecplot/space"
	"github.com/viant/vecplot/vecerr"
)

// DefaultVisible is how many of the first (most frequent) tokens are drawn.
const DefaultVisible = 1000

// Marker radii for the most and least frequent token.
const (
	MaxRadius = 15.0
	MinRadius = 2.0
)

// Point is a token placed on the plot.
type Point struct {
	Index    int                 `json:"index" yaml:"index"`
	Name     string              `json:"name" yaml:"name"`
	Position projection.Position `json:"position" yaml:"position"`
	Radius   float64             `json:"radius" yaml:"radius"`
}

// Sink receives rendered points.
type Sink interface {
	Render(points []Point) error
	Highlight(points []Point) error
}

// Extent is the bounding box of a snapshot.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Board keeps the last applied snapshot for one space.
type Board struct {
	space    *space.Space
	sink     Sink
	snapshot projection.Snapshot
	visible  int
}

// NewBoard returns a board with every token at the origin. A nil sink
// discards output.
func NewBoard(s *space.Space, sink Sink) (*Board, error) {
	if err := s.CheckReady(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = Discard
	}
	return &Board{
		space:    s,
		sink:     sink,
		snapshot: projection.NewSnapshot(s.Len()),
		visible:  DefaultVisible,
	}, nil
}

// SetVisible limits rendering to the first n tokens; 0 renders all.
func (b *Board) SetVisible(n int) {
	if n < 0 {
		n = 0
	}
	b.visible = n
}

// Snapshot returns the snapshot currently applied.
func (b *Board) Snapshot() projection.Snapshot { return b.snapshot }

// Apply makes snap current and renders it. A snapshot that does not cover
// the space is rejected and the current one kept.
func (b *Board) Apply(snap projection.Snapshot) error {
	if snap.Len() != b.space.Len() {
		return vecerr.New(vecerr.CodeArgumentMismatch, "plot: snapshot does not match space",
			vecerr.Field("want", b.space.Len()), vecerr.Field("got", snap.Len()))
	}
	b.snapshot = snap
	return b.sink.Render(b.Points(b.visible))
}

// Project applies the result of fn, or returns its error untouched.
func (b *Board) Project(fn func() (projection.Snapshot, error)) error {
	snap, err := fn()
	if err != nil {
		return err
	}
	return b.Apply(snap)
}

// Highlight renders neighbours at their current positions.
func (b *Board) Highlight(ns []neighbor.Neighbor) error {
	points := make([]Point, 0, len(ns))
	for _, n := range ns {
		if n.Token == nil || n.Token.Space() != b.space {
			return vecerr.New(vecerr.CodeNotFound, "plot: neighbour is not part of this space")
		}
		points = append(points, b.point(n.Token.Index()))
	}
	return b.sink.Highlight(points)
}

// Position returns the current position of the token at index.
func (b *Board) Position(index int) (projection.Position, error) {
	if index < 0 || index >= b.snapshot.Len() {
		return projection.Position{}, vecerr.New(vecerr.CodeIndexOutOfRange, "plot: token index out of range", vecerr.FieldIndex(index))
	}
	return b.snapshot.At(index), nil
}

// Points returns the first limit points in index order; 0 returns all.
func (b *Board) Points(limit int) []Point {
	n := b.snapshot.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Point, n)
	for i := range out {
		out[i] = b.point(i)
	}
	return out
}

// Extent returns the bounding box of the visible points.
func (b *Board) Extent() Extent {
	points := b.Points(b.visible)
	if len(points) == 0 {
		return Extent{}
	}
	e := Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		e.MinX = math.Min(e.MinX, p.Position.X)
		e.MaxX = math.Max(e.MaxX, p.Position.X)
		e.MinY = math.Min(e.MinY, p.Position.Y)
		e.MaxY = math.Max(e.MaxY, p.Position.Y)
	}
	return e
}

func (b *Board) point(i int) Point {
	t := b.space.Tokens()[i]
	return Point{Index: i, Name: t.Name(), Position: b.snapshot.At(i), Radius: Radius(i, b.space.Len())}
}

// Radius sizes a marker by frequency rank on a square-root scale from
// MaxRadius at index 0 to MinRadius at index n-1.
func Radius(index, n int) float64 {
	if n <= 1 {
		return MaxRadius
	}
	t := math.Sqrt(float64(index)) / math.Sqrt(float64(n-1))
	return MaxRadius + t*(MinRadius-MaxRadius)
}

type discard struct{}

func (discard) Render([]Point) error    { return nil }
func (discard) Highlight([]Point) error { return nil }

// Discard is a Sink that drops everything.
var Discard Sink = discard{}
