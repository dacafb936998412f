// Package engine opens SQLite databases on the modernc.org/sqlite driver and
// registers the vector scalar functions (vec_cosine, vec_l2, vec_norm) that
// the token store uses for SQL-side ranking.
package engine
