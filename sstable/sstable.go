// Package sstable reads and writes model tables as sorted text: a
// "rows,cols" header line followed by one "row,col,value" line per
// non-zero entry in row major order.
package sstable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

var ErrCorrupted = errors.New("sstable: model corrupted")

// entry handler called for every well formed data line
type entryFunc func(r, c uint32, val string) error

// scan reads the header, calls shape once and then fn for every entry.
// Malformed data lines are logged and skipped.
func scan(in io.Reader, shape func(r, c uint32) error, fn entryFunc) error {
	scanner := bufio.NewScanner(in)
	lineIdx := 0
	var nrow, ncol uint32
	for scanner.Scan() {
		txt := strings.TrimSpace(scanner.Text())
		if lineIdx == 0 {
			dims := strings.Split(txt, ",")
			if len(dims) != 2 {
				return fmt.Errorf("%w: shape not found: %q", ErrCorrupted, txt)
			}
			row, err := strconv.ParseUint(dims[0], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCorrupted, err)
			}
			col, err := strconv.ParseUint(dims[1], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCorrupted, err)
			}
			if row == 0 || col == 0 {
				return fmt.Errorf("%w: empty shape %dx%d", ErrCorrupted, row, col)
			}
			nrow, ncol = uint32(row), uint32(col)
			if err := shape(nrow, ncol); err != nil {
				return err
			}
			lineIdx += 1
			continue
		}
		lineIdx += 1
		if txt == "" {
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("data corrupted, line %d, data %s", lineIdx, txt)
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
		if uint32(ridx) >= nrow || uint32(cidx) >= ncol {
			return fmt.Errorf("%w: line %d: [%d, %d] outside %dx%d",
				ErrCorrupted, lineIdx, ridx, cidx, nrow, ncol)
		}
		if err := fn(uint32(ridx), uint32(cidx), value[2]); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrCorrupted, lineIdx, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if lineIdx == 0 {
		return fmt.Errorf("%w: shape not found", ErrCorrupted)
	}
	return nil
}

// createFile opens fn for writing and passes a buffered writer to
// write, flushing and closing on the way out.
func createFile(fn string, write func(io.Writer) error) (err error) {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(out)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}
