package sstable

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bobonovski/gibbslda/matrix"
)

func TestUint32Serialize(t *testing.T) {
	m := matrix.NewUint32Matrix(2, 3)
	m.Set(0, 1, 4)
	m.Set(1, 2, 7)

	var buf bytes.Buffer
	require.NoError(t, Uint32Serialize(m, &buf))
	assert.Equal(t, "2,3\n0,1,4\n1,2,7\n", buf.String())

	got, err := Uint32Deserialize(&buf)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestUint32SerializeFile(t *testing.T) {
	m := matrix.NewUint32Matrix(3, 1)
	m.Set(2, 0, 9)

	fn := filepath.Join(t.TempDir(), "model.wt")
	require.NoError(t, Uint32SerializeFile(m, fn))

	got, err := Uint32DeserializeFile(fn)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestDenseSerialize(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0.25, 0.75, 0, 1})

	var buf bytes.Buffer
	require.NoError(t, DenseSerialize(m, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4) // header and three positive entries

	got, err := DenseDeserialize(&buf)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(m, got, 1e-6))
}

func TestDeserializeCorrupted(t *testing.T) {
	_, err := Uint32Deserialize(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrCorrupted)

	_, err = Uint32Deserialize(strings.NewReader("2\n"))
	assert.ErrorIs(t, err, ErrCorrupted)

	_, err = Uint32Deserialize(strings.NewReader("2,2\n5,0,1\n"))
	assert.ErrorIs(t, err, ErrCorrupted)

	_, err = DenseDeserialize(strings.NewReader("1,1\n0,0,abc\n"))
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestDeserializeSkipsMalformedLines(t *testing.T) {
	got, err := Uint32Deserialize(strings.NewReader("1,2\n0,1\n0,1,3\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.Get(0, 0))
	assert.Equal(t, uint32(3), got.Get(0, 1))
}

func TestVocabulary(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "model.vocab")
	require.NoError(t, WriteVocabularyFile([]string{"cat", "dog"}, fn))

	got, err := ReadVocabularyFile(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, got)
}
