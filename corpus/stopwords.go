package corpus

import (
	"math"
	"sort"
)

// StopwordFilter drops words by document frequency. Lower and Upper
// are fractions of the number of documents; a word is a stopword if
// it appears in at most ceil(D*Lower) documents or in at least
// ceil(D*Upper) documents. A non-positive bound is disabled.
// Blacklisted words are always dropped, whitelisted words never.
type StopwordFilter struct {
	Lower     float64
	Upper     float64
	Whitelist []string
	Blacklist []string
}

// Apply rebuilds c.Docs from c.Raw without the stopwords and records
// them, sorted, in c.Stopwords. Documents may become empty.
func (f StopwordFilter) Apply(c *Corpus) {
	docFreq := make(map[string]int)
	for _, doc := range c.Raw {
		seen := make(map[string]bool, len(doc))
		for _, w := range doc {
			if !seen[w] {
				seen[w] = true
				docFreq[w] += 1
			}
		}
	}

	numDocs := float64(len(c.Raw))
	stop := make(map[string]bool)
	for w, df := range docFreq {
		if f.Lower > 0 && df <= int(math.Ceil(numDocs*f.Lower)) {
			stop[w] = true
		}
		if f.Upper > 0 && df >= int(math.Ceil(numDocs*f.Upper)) {
			stop[w] = true
		}
	}
	for _, w := range f.Blacklist {
		stop[w] = true
	}
	for _, w := range f.Whitelist {
		delete(stop, w)
	}

	c.Stopwords = make([]string, 0, len(stop))
	for w := range stop {
		c.Stopwords = append(c.Stopwords, w)
	}
	sort.Strings(c.Stopwords)

	c.Docs = make([][]string, len(c.Raw))
	for i, doc := range c.Raw {
		kept := make([]string, 0, len(doc))
		for _, w := range doc {
			if !stop[w] {
				kept = append(kept, w)
			}
		}
		c.Docs[i] = kept
	}
}
