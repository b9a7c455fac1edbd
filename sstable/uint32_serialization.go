package sstable

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bobonovski/gibbslda/matrix"
)

// serialize count table, only nonzero values are written
func Uint32Serialize(m matrix.Matrix, out io.Writer) error {
	r, c := m.Shape()
	// write the matrix shape
	if _, err := fmt.Fprintf(out, "%d,%d\n", r, c); err != nil {
		return err
	}

	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			if val := m.Get(ridx, cidx); val > 0 {
				if _, err := fmt.Fprintf(out, "%d,%d,%d\n", ridx, cidx, val); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// deserialize count table
func Uint32Deserialize(in io.Reader) (*matrix.Uint32Matrix, error) {
	var tmp *matrix.Uint32Matrix
	err := scan(in,
		func(r, c uint32) error {
			tmp = matrix.NewUint32Matrix(r, c)
			return nil
		},
		func(r, c uint32, s string) error {
			val, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return err
			}
			tmp.Set(r, c, uint32(val))
			return nil
		})
	if err != nil {
		return nil, err
	}
	return tmp, nil
}

func Uint32SerializeFile(m matrix.Matrix, fn string) error {
	return createFile(fn, func(w io.Writer) error {
		return Uint32Serialize(m, w)
	})
}

// Uint32DeserializeFile loads a .wt count table written by
// Uint32SerializeFile; rows are word ids of the matching .vocab file.
func Uint32DeserializeFile(fn string) (*matrix.Uint32Matrix, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Uint32Deserialize(file)
}
