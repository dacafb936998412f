// Package vector holds the low-level float32 embedding helpers shared by the
// SQLite engine and store: the BLOB codec for persisted token tables, and
// cosine, L2 and norm functions on github.com/viant/vec.
package vector
