// Package space builds the normalized vector space that every projection
// and neighbour query runs against. A Space owns the raw N×D matrix, the
// per-row L2 norms and the row-normalized N×D matrix, all aligned to the
// token index assigned from input order. Spaces are built exactly once per
// data source and are immutable afterwards; Build is the only way to obtain
// normalized tokens.
package space
