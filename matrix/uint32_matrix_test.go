package matrix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32MatrixShape(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(3))

	r, c := m.Shape()

	assert.Equal(t, uint32(2), r)
	assert.Equal(t, uint32(3), c)
}

func TestUint32MatrixBadShape(t *testing.T) {
	assert.PanicsWithValue(t, ErrBadShape, func() { NewUint32Matrix(0, 3) })
}

func TestUint32MatrixGet(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(3))

	val := uint32(0)
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += uint32(1)
		}
	}

	assert.Equal(t, uint32(0), m.Get(0, 0))
	assert.Equal(t, uint32(1), m.Get(0, 1))
	assert.Equal(t, uint32(2), m.Get(0, 2))
	assert.Equal(t, uint32(3), m.Get(1, 0))
	assert.Equal(t, uint32(4), m.Get(1, 1))
	assert.Equal(t, uint32(5), m.Get(1, 2))

	assert.Equal(t, []uint32{3, 4, 5}, m.GetRow(1))
	assert.Equal(t, []uint32{2, 5}, m.GetCol(2))
	assert.Equal(t, uint64(15), m.Sum())

	assert.PanicsWithValue(t, ErrIndexOutOfRange, func() { m.Get(2, 0) })
}

func TestUint32MatrixRowIsCopy(t *testing.T) {
	m := NewUint32Matrix(uint32(1), uint32(2))
	row := m.GetRow(0)
	row[0] = 7
	assert.Equal(t, uint32(0), m.Get(0, 0))
}

func TestUint32MatrixIncrDecr(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(2))

	m.Incr(uint32(1), uint32(1), uint32(2))
	assert.Equal(t, uint32(2), m.Get(uint32(1), uint32(1)))

	assert.NoError(t, m.Decr(uint32(1), uint32(1), uint32(1)))
	assert.Equal(t, uint32(1), m.Get(uint32(1), uint32(1)))

	err := m.Decr(uint32(1), uint32(1), uint32(2))
	assert.True(t, errors.Is(err, ErrUnderflow))
	assert.Equal(t, uint32(1), m.Get(uint32(1), uint32(1)))
}

func TestUint32MatrixCloneEqual(t *testing.T) {
	m := NewUint32Matrix(uint32(2), uint32(2))
	m.Incr(0, 1, 3)

	c := m.Clone()
	assert.True(t, m.Equal(c))

	c.Incr(0, 1, 1)
	assert.False(t, m.Equal(c))
	assert.False(t, m.Equal(NewUint32Matrix(1, 4)))
}
