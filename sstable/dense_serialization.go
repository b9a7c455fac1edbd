package sstable

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// serialize a probability table, only positive values are written
func DenseSerialize(m mat.Matrix, out io.Writer) error {
	r, c := m.Dims()
	// write the matrix shape
	if _, err := fmt.Fprintf(out, "%d,%d\n", r, c); err != nil {
		return err
	}

	for ridx := 0; ridx < r; ridx += 1 {
		for cidx := 0; cidx < c; cidx += 1 {
			if val := m.At(ridx, cidx); val > 0 {
				if _, err := fmt.Fprintf(out, "%d,%d,%e\n", ridx, cidx, val); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// deserialize a probability table
func DenseDeserialize(in io.Reader) (*mat.Dense, error) {
	var tmp *mat.Dense
	err := scan(in,
		func(r, c uint32) error {
			tmp = mat.NewDense(int(r), int(c), nil)
			return nil
		},
		func(r, c uint32, s string) error {
			val, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			tmp.Set(int(r), int(c), val)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return tmp, nil
}

func DenseSerializeFile(m mat.Matrix, fn string) error {
	return createFile(fn, func(w io.Writer) error {
		return DenseSerialize(m, w)
	})
}

// DenseDeserializeFile loads a .phi or .theta table written by
// DenseSerializeFile. Missing entries are zero.
func DenseDeserializeFile(fn string) (*mat.Dense, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DenseDeserialize(file)
}
