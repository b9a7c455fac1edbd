package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Corpus holds the documents of a training run. Raw keeps every
// token in reading order, Docs the tokens left after stopword
// filtering. Both are indexed by document.
type Corpus struct {
	Raw       [][]string
	Docs      [][]string
	Stopwords []string
}

// DocNum returns the number of documents.
func (c *Corpus) DocNum() int {
	return len(c.Raw)
}

// Occurrences returns the number of filtered tokens.
func (c *Corpus) Occurrences() int {
	n := 0
	for _, d := range c.Docs {
		n += len(d)
	}
	return n
}

// newCorpus builds a corpus with no stopwords removed yet. Docs gets
// its own backing storage.
func newCorpus(raw [][]string) *Corpus {
	c := &Corpus{Raw: raw, Docs: make([][]string, len(raw))}
	for i, d := range raw {
		c.Docs[i] = append([]string(nil), d...)
	}
	return c
}

// Load reads a corpus from fn. Files ending in .csv are read with
// LoadCSV; any other file is read as plain text and chunked.
func Load(fn string, chunk Chunking) (*Corpus, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *Corpus
	if strings.EqualFold(filepath.Ext(fn), ".csv") {
		c, err = LoadCSV(f)
	} else {
		c, err = LoadText(f, chunk)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", fn, err)
	}

	log.Infof("number of documents %d", c.DocNum())
	log.Infof("number of tokens %d", c.Occurrences())
	return c, nil
}

// LoadCSV reads training data where every row is [word, docLabel].
// Rows are in reading order and a new document starts whenever the
// label differs from the previous row's label. Words are lowercased.
func LoadCSV(r io.Reader) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lower := cases.Lower(language.Und)
	var docs [][]string
	curDoc := ""
	row := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row += 1
		if len(rec) < 2 {
			log.Warningf("bad row %d: %v", row, rec)
			continue
		}

		word := lower.String(strings.TrimSpace(rec[0]))
		if word == "" {
			continue
		}
		if len(docs) == 0 || rec[1] != curDoc {
			curDoc = rec[1]
			docs = append(docs, nil)
		}
		docs[len(docs)-1] = append(docs[len(docs)-1], word)
	}

	return newCorpus(docs), nil
}
