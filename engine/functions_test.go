package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecplot/vector"
)

func blob(t *testing.T, v ...float32) []byte {
	t.Helper()
	b, err := vector.EncodeEmbedding(v)
	require.NoError(t, err)
	return b
}

func TestVectorFunctions(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var sim float64
	require.NoError(t, db.QueryRow(`SELECT vec_cosine(?, ?)`, blob(t, 1, 0), blob(t, 0, 1)).Scan(&sim))
	assert.InDelta(t, 0, sim, 1e-6)

	require.NoError(t, db.QueryRow(`SELECT vec_cosine(?, ?)`, blob(t, 1, 0), blob(t, 3, 0)).Scan(&sim))
	assert.InDelta(t, 1, sim, 1e-6)

	var dist float64
	require.NoError(t, db.QueryRow(`SELECT vec_l2(?, ?)`, blob(t, 0, 0), blob(t, 3, 4)).Scan(&dist))
	assert.InDelta(t, 5, dist, 1e-6)

	var norm float64
	require.NoError(t, db.QueryRow(`SELECT vec_norm(?)`, blob(t, 3, 4)).Scan(&norm))
	assert.InDelta(t, 5, norm, 1e-6)
}

func TestVectorFunctionsNull(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var sim *float64
	require.NoError(t, db.QueryRow(`SELECT vec_cosine(NULL, ?)`, blob(t, 1, 0)).Scan(&sim))
	assert.Nil(t, sim)
}

func TestVectorFunctionsErrors(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var sim float64
	err = db.QueryRow(`SELECT vec_cosine(?, ?)`, blob(t, 1, 0), blob(t, 1, 0, 0)).Scan(&sim)
	assert.Error(t, err)

	err = db.QueryRow(`SELECT vec_cosine('text', ?)`, blob(t, 1, 0)).Scan(&sim)
	assert.Error(t, err)
}
