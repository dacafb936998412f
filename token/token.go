// Package token defines the raw token shape exchanged between loaders and
// the vector space builder.
package token

// Raw is a named embedding vector as produced by a loader. Its position in
// the loaded slice becomes the token index (typically the frequency rank).
type Raw struct {
	Name   string
	Vector []float32
}

// Names returns the names of raws in order.
func Names(raws []Raw) []string {
	out := make([]string, len(raws))
	for i, r := range raws {
		out[i] = r.Name
	}
	return out
}
