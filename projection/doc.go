// Package projection maps a normalized space into 2D plot positions.
//
// Every projection returns a fresh, immutable Snapshot holding one Position
// per token, aligned to the token index. Projections never touch shared
// state, so a failed projection leaves whatever snapshot the caller last
// applied untouched. Supported strategies:
//   - Components: two raw components of the normalized vectors
//   - PairAxis: signed position along the line A→B and distance from it
//   - AveragedPairAxis: PairAxis averaged over several reference pairs
//   - SoftmaxGroupAxis: relative proximity to two reference groups
//   - ByFunction / FrequencyNorm: caller-supplied coordinate functions
//   - PrincipalComponents: top two principal components
package projection
