package matrix

import (
	"fmt"
	"math"
)

// Uint32Matrix is a dense row-major table of non-negative counts.
type Uint32Matrix struct {
	nrow uint32
	ncol uint32
	data []uint32
}

var _ Matrix = (*Uint32Matrix)(nil)

// NewUint32Matrix creates a new Uint32Matrix with r rows and c columns.
// if r or c is 0, it will panic. A uint32 slice is used as the underlying
// storage and the data layout is in row major order, i.e. the (i*c + j)-th
// element in the data slice is the [i, j]-th element in the matrix.
// Vector is defined as a matrix one column, i.e. a column vector.
func NewUint32Matrix(r, c uint32) *Uint32Matrix {
	if r == 0 || c == 0 {
		panic(ErrBadShape)
	}
	return &Uint32Matrix{
		nrow: r,
		ncol: c,
		data: make([]uint32, int(r)*int(c)),
	}
}

// get the shape of the matrix
func (m *Uint32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

func (m *Uint32Matrix) index(r, c uint32) int {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return int(r)*int(m.ncol) + int(c)
}

// get the [r, c]-th element of the matrix
func (m *Uint32Matrix) Get(r, c uint32) uint32 {
	return m.data[m.index(r, c)]
}

// get a copy of the r-th row of the matrix
func (m *Uint32Matrix) GetRow(r uint32) []uint32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	row := make([]uint32, m.ncol)
	copy(row, m.data[int(r)*int(m.ncol):int(r+1)*int(m.ncol)])
	return row
}

// get a copy of the c-th column of the matrix
func (m *Uint32Matrix) GetCol(c uint32) []uint32 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]uint32, m.nrow)
	for r := uint32(0); r < m.nrow; r += 1 {
		column[r] = m.Get(r, c)
	}
	return column
}

// set val to the [r, c]-th element of the matrix
func (m *Uint32Matrix) Set(r, c uint32, val uint32) {
	m.data[m.index(r, c)] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Uint32Matrix) Incr(r, c uint32, val uint32) {
	i := m.index(r, c)
	if m.data[i] > math.MaxUint32-val {
		panic(fmt.Sprintf("matrix: [%d, %d] = %d overflow", r, c, m.data[i]))
	}
	m.data[i] += val
}

// Decr decrements the [r, c]-th element of the matrix by val. It
// leaves the element untouched and returns ErrUnderflow if the count
// is smaller than val.
func (m *Uint32Matrix) Decr(r, c uint32, val uint32) error {
	i := m.index(r, c)
	if m.data[i] < val {
		return fmt.Errorf("%w: [%d, %d] = %d, decrement %d",
			ErrUnderflow, r, c, m.data[i], val)
	}
	m.data[i] -= val
	return nil
}

// Sum returns the total of all elements.
func (m *Uint32Matrix) Sum() uint64 {
	sum := uint64(0)
	for _, v := range m.data {
		sum += uint64(v)
	}
	return sum
}

// Equal reports whether o has the same shape and content as m.
func (m *Uint32Matrix) Equal(o *Uint32Matrix) bool {
	if o == nil || m.nrow != o.nrow || m.ncol != o.ncol {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the matrix.
func (m *Uint32Matrix) Clone() *Uint32Matrix {
	n := &Uint32Matrix{nrow: m.nrow, ncol: m.ncol, data: make([]uint32, len(m.data))}
	copy(n.data, m.data)
	return n
}
