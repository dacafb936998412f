package projection

// Position is a 2D plot coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Snapshot holds one position per token, indexed by token index.
type Snapshot struct {
	positions []Position
}

// NewSnapshot returns a snapshot of n positions at the origin.
func NewSnapshot(n int) Snapshot {
	return Snapshot{positions: make([]Position, n)}
}

func newSnapshot(positions []Position) Snapshot {
	return Snapshot{positions: positions}
}

// Len returns the number of positions.
func (s Snapshot) Len() int { return len(s.positions) }

// At returns the position of the token with the given index.
func (s Snapshot) At(index int) Position { return s.positions[index] }

// Positions returns a copy of all positions.
func (s Snapshot) Positions() []Position {
	return append([]Position(nil), s.positions...)
}

// average returns the element-wise mean of snapshots of equal length.
func average(snaps []Snapshot) Snapshot {
	out := make([]Position, snaps[0].Len())
	for _, snap := range snaps {
		for i, p := range snap.positions {
			out[i].X += p.X
			out[i].Y += p.Y
		}
	}
	k := float64(len(snaps))
	for i := range out {
		out[i].X /= k
		out[i].Y /= k
	}
	return newSnapshot(out)
}
