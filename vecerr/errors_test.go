package vecerr_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/vecplot/vecerr"
)

func TestNewCarriesCodeAndFields(t *testing.T) {
	err := vecerr.New(vecerr.CodeNotFound, "token not found", vecerr.FieldName("paris"), vecerr.FieldIndex(3))
	require.Error(t, err)
	assert.Equal(t, vecerr.CodeNotFound, vecerr.CodeOf(err))
	assert.True(t, vecerr.HasCode(err, vecerr.CodeNotFound))
	assert.True(t, vecerr.IsNotFound(err))
	assert.Contains(t, err.Error(), "token not found")

	fields := vecerr.FieldsOf(err)
	assert.Equal(t, "paris", fields["name"])
	assert.Equal(t, 3, fields["index"])
}

func TestErrorfWrapsInnerError(t *testing.T) {
	inner := stderrors.New("bad float")
	err := vecerr.Errorf(vecerr.CodeParseInvalid, "line %d: %w", 7, inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, vecerr.CodeParseInvalid, vecerr.CodeOf(err))
	assert.Contains(t, err.Error(), "line 7")
	assert.True(t, vecerr.IsInvalidInput(err))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, vecerr.Wrap(nil, vecerr.CodeStoreDatabaseFailure, "ignored"))

	root := stderrors.New("disk full")
	err := vecerr.Wrap(root, vecerr.CodeStoreDatabaseFailure, "saving dataset", vecerr.Field("dataset", "d1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, vecerr.CodeStoreDatabaseFailure, vecerr.CodeOf(err))
	assert.Equal(t, "d1", vecerr.FieldsOf(err)["dataset"])
	assert.False(t, vecerr.IsInvalidInput(err))
}

func TestForeignErrors(t *testing.T) {
	err := stderrors.New("plain")
	assert.Equal(t, vecerr.Code(""), vecerr.CodeOf(err))
	assert.Nil(t, vecerr.FieldsOf(err))
	assert.False(t, vecerr.HasCode(nil, vecerr.CodeNotReady))
	assert.False(t, vecerr.IsNotFound(nil))
}

func TestStoreNotFoundIsNotFound(t *testing.T) {
	err := vecerr.New(vecerr.CodeStoreNotFound, "dataset missing")
	assert.True(t, vecerr.IsNotFound(err))
}
