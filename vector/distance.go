package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or if either vector
// has zero magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	if search.Float32s(a).Magnitude() == 0 || search.Float32s(b).Magnitude() == 0 {
		return 0, fmt.Errorf("vector: cosine similarity with zero-magnitude vector")
	}
	return 1 - float64(search.Float32s(a).CosineDistance(b)), nil
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	return float64(search.Float32s(v).Magnitude())
}
