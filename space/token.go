package space

// Token is a named vector that has been normalized as part of a Space.
type Token struct {
	name   string
	index  int
	vector []float32
	norm   float64
	space  *Space
}

// Name returns the token name.
func (t *Token) Name() string { return t.name }

// Index returns the stable, zero-based input position of the token.
func (t *Token) Index() int { return t.index }

// Vector returns the raw vector. It must not be modified.
func (t *Token) Vector() []float32 { return t.vector }

// Norm returns the L2 norm of the raw vector.
func (t *Token) Norm() float64 { return t.norm }

// Normalized returns a copy of the unit-length vector.
func (t *Token) Normalized() []float64 {
	return append([]float64(nil), t.space.Row(t.index)...)
}

// Space returns the space the token belongs to.
func (t *Token) Space() *Space { return t.space }
