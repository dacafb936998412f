package loader

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/viant/vecplot/token"
	"github.com/viant/vecplot/vecerr"
)

// EntityPrefix is the Wikipedia2Vec prefix for entity rows.
const EntityPrefix = "ENTITY/"

// Options control which rows are kept.
type Options struct {
	// SkipHeader drops the first non-blank line (e.g. "10000 300").
	SkipHeader bool

	// DropQuoted skips rows whose line contains a single or double quote.
	DropQuoted bool

	// Keys, when non-empty, keeps only rows whose name is listed.
	Keys []string

	// EntityKeys formats Keys as Wikipedia2Vec entities before matching,
	// so "United States" matches "ENTITY/United_States".
	EntityKeys bool

	// Limit stops reading after this many kept rows; 0 means no limit.
	Limit int
}

// EntityKey formats a display name as a Wikipedia2Vec entity key.
func EntityKey(name string) string {
	return EntityPrefix + strings.ReplaceAll(name, " ", "_")
}

func (o Options) keySet() map[string]bool {
	if len(o.Keys) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.Keys))
	for _, k := range o.Keys {
		if o.EntityKeys {
			k = EntityKey(k)
		}
		set[k] = true
	}
	return set
}

// Read parses r into raw tokens. Vector lengths are not checked here;
// space.Build rejects inconsistent dimensions.
func Read(r io.Reader, opts Options) ([]token.Raw, error) {
	keys := opts.keySet()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		out        []token.Raw
		lineNo     int
		headerSeen = !opts.SkipHeader
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		if opts.DropQuoted && strings.ContainsAny(line, `"'`) {
			continue
		}
		if keys != nil && !keys[fields[0]] {
			continue
		}
		vec := make([]float32, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, vecerr.Errorf(vecerr.CodeParseInvalid, "loader: line %d, column %d: %w", lineNo, i+2, err)
			}
			vec[i] = float32(v)
		}
		out = append(out, token.Raw{Name: fields[0], Vector: vec})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, vecerr.Errorf(vecerr.CodeLoadReadFailure, "loader: reading line %d: %w", lineNo+1, err)
	}
	return out, nil
}

// ReadFile opens path, decompressing .gz and .bz2 files, and parses it.
func ReadFile(path string, opts Options) ([]token.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vecerr.Errorf(vecerr.CodeLoadReadFailure, "loader: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, vecerr.Errorf(vecerr.CodeLoadReadFailure, "loader: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".bz2"):
		r = bzip2.NewReader(f)
	}
	return Read(r, opts)
}
