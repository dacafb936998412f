// Package neighbor answers cosine-similarity neighbour queries over a
// normalized space. Results use a threshold cut rather than a strict top-k:
// every token at least as similar as the k-th ranked value (0-based) is
// returned, so ties at the boundary widen the result instead of being
// broken arbitrarily.
package neighbor
