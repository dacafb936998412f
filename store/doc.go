// Package store keeps imported token tables in SQLite so a data source can
// be reloaded without re-parsing its text file. Each dataset is an ordered
// list of (name, embedding) rows; the row rank is the token index the space
// will assign on load. The store only persists raw vectors: spaces are
// always rebuilt in memory.
package store
