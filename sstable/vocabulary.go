package sstable

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteVocabulary writes one token per line, line i holding the token
// of row i in the word-topic table.
func WriteVocabulary(tokens []string, out io.Writer) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return err
		}
	}
	return nil
}

// ReadVocabulary reads one token per line, the line number being the
// word id, as written by WriteVocabulary.
func ReadVocabulary(in io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func WriteVocabularyFile(tokens []string, fn string) error {
	return createFile(fn, func(w io.Writer) error {
		return WriteVocabulary(tokens, w)
	})
}

// ReadVocabularyFile loads a .vocab file saved next to a .wt table.
func ReadVocabularyFile(fn string) ([]string, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadVocabulary(file)
}
