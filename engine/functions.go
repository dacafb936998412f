package engine

import (
	"database/sql/driver"
	"fmt"

	"github.com/viant/vecplot/vector"
	sqlite "modernc.org/sqlite"
)

// registerVectorFunctions makes vec_cosine, vec_l2 and vec_norm available on
// connections opened afterwards. The driver rejects duplicates, which only
// happens if another package registered the same names first.
func registerVectorFunctions() {
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, pairwise(vector.CosineSimilarity))
	_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, pairwise(vector.L2Distance))
	_ = sqlite.RegisterDeterministicScalarFunction("vec_norm", 1, vecNormImpl)
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("vec: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func pairwise(fn func(a, b []float32) (float64, error)) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("vec: expected 2 arguments, got %d", len(args))
		}
		a, err := asEmbedding(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asEmbedding(args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		return fn(a, b)
	}
}

func vecNormImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("vec_norm: expected 1 argument, got %d", len(args))
	}
	v, err := asEmbedding(args[0])
	if err != nil || v == nil {
		return nil, err
	}
	return vector.Norm(v), nil
}
