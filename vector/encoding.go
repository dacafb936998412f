package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding encodes a token vector into a BLOB for the token table.
// The encoding is a little-endian sequence of IEEE 754 float32 values
// without a length prefix; the length is derived from the BLOB size on
// decode.
func EncodeEmbedding(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b, nil
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding.
func DecodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	n := len(b) / 4
	vec := make([]float32, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}

// DecodeEmbeddingDim decodes b and checks it holds exactly dim components.
func DecodeEmbeddingDim(b []byte, dim int) ([]float32, error) {
	vec, err := DecodeEmbedding(b)
	if err != nil {
		return nil, err
	}
	if len(vec) != dim {
		return nil, fmt.Errorf("vector: embedding has %d components, want %d", len(vec), dim)
	}
	return vec, nil
}
