package corpus

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// edge punctuation removed from every token
const punctuation = ".,!?\"“”‘’():;\n\t'"

// Chunking says how a plain text is divided into documents. At most
// one field should be set; NumDocs wins over DocLength, which wins
// over SplitString. With nothing set the text is a single document.
type Chunking struct {
	// NumDocs splits the text into this many documents of equal
	// length; leftover words join the last one.
	NumDocs int
	// DocLength splits the text into documents of this many words. A
	// trailing document shorter than half of DocLength joins the one
	// before it.
	DocLength int
	// SplitString starts a new document at every occurrence of the
	// string, which is kept at the head of the new document.
	SplitString string
}

var ErrBadChunking = errors.New("corpus: chunk size must be positive")

// LoadText reads a plain text, lowercases it and chunks it into
// documents. Edge punctuation is stripped after chunking, so chunk
// sizes count whitespace separated tokens.
func LoadText(r io.Reader, chunk Chunking) (*Corpus, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := cases.Lower(language.Und).String(string(b))

	var chunks [][]string
	switch {
	case chunk.NumDocs != 0:
		if chunk.NumDocs < 0 {
			return nil, ErrBadChunking
		}
		chunks = docsOfCount(chunk.NumDocs, strings.Fields(text))
	case chunk.DocLength != 0:
		if chunk.DocLength < 0 {
			return nil, ErrBadChunking
		}
		chunks = docsOfLength(chunk.DocLength, strings.Fields(text))
	case chunk.SplitString != "":
		chunks = splitOn(text, strings.ToLower(chunk.SplitString))
	default:
		chunks = [][]string{strings.Fields(text)}
	}

	docs := make([][]string, 0, len(chunks))
	for _, c := range chunks {
		doc := make([]string, 0, len(c))
		for _, w := range c {
			if w = strings.Trim(w, punctuation); w != "" {
				doc = append(doc, w)
			}
		}
		docs = append(docs, doc)
	}
	return newCorpus(docs), nil
}

// docsOfCount cuts words into numDocs documents of equal length, the
// last one taking the remainder. With fewer words than numDocs every
// word is a document.
func docsOfCount(numDocs int, words []string) [][]string {
	docLen := len(words) / numDocs
	if docLen < 1 {
		docLen = 1
	}
	var docs [][]string
	for len(words) > 0 {
		n := docLen
		if len(docs) == numDocs-1 || n > len(words) {
			n = len(words)
		}
		docs = append(docs, words[:n:n])
		words = words[n:]
	}
	return docs
}

// docsOfLength cuts words into documents of docLen words. A last
// document shorter than docLen/2 is merged into the previous one.
func docsOfLength(docLen int, words []string) [][]string {
	var docs [][]string
	for len(words) > 0 {
		n := docLen
		if n > len(words) {
			n = len(words)
		}
		docs = append(docs, words[:n:n])
		words = words[n:]
	}
	if len(docs) < 2 {
		return docs
	}

	if stub := docs[len(docs)-1]; len(stub) < docLen/2 {
		docs = docs[:len(docs)-1]
		merged := make([]string, 0, len(docs[len(docs)-1])+len(stub))
		merged = append(merged, docs[len(docs)-1]...)
		docs[len(docs)-1] = append(merged, stub...)
	}
	return docs
}

func splitOn(text, sep string) [][]string {
	parts := strings.Split(text, sep)
	docs := make([][]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = sep + p
		}
		docs = append(docs, strings.Fields(p))
	}
	return docs
}
