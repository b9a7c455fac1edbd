package model

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/bobonovski/gibbslda/corpus"
	"github.com/bobonovski/gibbslda/matrix"
	"github.com/bobonovski/gibbslda/util"
)

// InitPolicy chooses the topic every occurrence starts with.
type InitPolicy int

const (
	// InitRoundRobin cycles topics 0, 1, ..., K-1, 0, ... over all
	// occurrences in document then position order.
	InitRoundRobin InitPolicy = iota
	// InitRandom draws every initial topic uniformly from a seeded
	// source.
	InitRandom
)

func (p InitPolicy) String() string {
	switch p {
	case InitRoundRobin:
		return "roundrobin"
	case InitRandom:
		return "random"
	}
	return fmt.Sprintf("InitPolicy(%d)", int(p))
}

func ParseInitPolicy(s string) (InitPolicy, error) {
	switch strings.ToLower(s) {
	case "", "roundrobin", "round-robin":
		return InitRoundRobin, nil
	case "random":
		return InitRandom, nil
	}
	return 0, &ConfigurationError{Param: "init", Value: s, Reason: "want roundrobin or random"}
}

type occurrence struct {
	doc, pos int
}

// State is the mutable corpus state of the sampler: the topic of
// every word occurrence and the count tables aggregated from them.
// It is not safe for concurrent use.
type State struct {
	vocab     *corpus.Vocabulary
	words     [][]int // word ids by document and position
	assign    [][]int // topic ids by document and position
	docLen    []int
	numTopics int
	total     int

	wt  *matrix.Uint32Matrix // [w, t]: occurrences of word w assigned to topic t
	dt  *matrix.Uint32Matrix // [d, t]: occurrences in document d assigned to topic t
	wts *matrix.Uint32Matrix // [t, 0]: occurrences assigned to topic t

	pending *occurrence // retracted, not yet committed
}

// NewState copies docs, assigns every occurrence an initial topic and
// builds the count tables. Empty documents are kept with zero
// contribution so that document indices match the input. src is only
// used by InitRandom.
func NewState(docs [][]string, numTopics int, policy InitPolicy,
	src rand.Source) (*State, error) {
	if numTopics < 1 {
		return nil, &ConfigurationError{Param: "topics", Value: numTopics, Reason: "must be at least 1"}
	}
	var rng *rand.Rand
	switch policy {
	case InitRoundRobin:
	case InitRandom:
		if src == nil {
			return nil, &ConfigurationError{Param: "init", Value: policy, Reason: "random initialization needs a source"}
		}
		rng = rand.New(src)
	default:
		return nil, &ConfigurationError{Param: "init", Value: policy, Reason: "unknown policy"}
	}

	lengths := make([]int, len(docs))
	for d, doc := range docs {
		lengths[d] = len(doc)
	}
	total := util.IntSum(lengths)
	if len(docs) == 0 || total == 0 {
		return nil, &EmptyCorpusError{Documents: len(docs), Occurrences: total}
	}

	s := &State{
		vocab:     corpus.BuildVocabulary(docs),
		words:     make([][]int, len(docs)),
		assign:    make([][]int, len(docs)),
		docLen:    lengths,
		numTopics: numTopics,
		total:     total,
	}

	next := 0
	for d, doc := range docs {
		s.words[d] = make([]int, len(doc))
		s.assign[d] = make([]int, len(doc))
		for p, w := range doc {
			s.words[d][p] = s.vocab.Id(w)
			if rng != nil {
				s.assign[d][p] = rng.Intn(numTopics)
			} else {
				s.assign[d][p] = next
				next = (next + 1) % numTopics
			}
		}
	}

	s.wt, s.dt, s.wts = s.aggregate()
	return s, nil
}

// aggregate counts the assignment table from scratch.
func (s *State) aggregate() (wt, dt, wts *matrix.Uint32Matrix) {
	k := uint32(s.numTopics)
	wt = matrix.NewUint32Matrix(uint32(s.vocab.Len()), k)
	dt = matrix.NewUint32Matrix(uint32(len(s.words)), k)
	wts = matrix.NewUint32Matrix(k, uint32(1))
	for d := range s.words {
		for p, w := range s.words[d] {
			t := uint32(s.assign[d][p])
			wt.Incr(uint32(w), t, 1)
			dt.Incr(uint32(d), t, 1)
			wts.Incr(t, 0, 1)
		}
	}
	return wt, dt, wts
}

func (s *State) NumTopics() int { return s.numTopics }

func (s *State) NumDocs() int { return len(s.words) }

// VocabSize returns the number of distinct words in the corpus.
func (s *State) VocabSize() int { return s.vocab.Len() }

// Occurrences returns the total number of word occurrences.
func (s *State) Occurrences() int { return s.total }

// Tokens returns a copy of the vocabulary ordered by word id.
func (s *State) Tokens() []string { return s.vocab.Tokens() }

func (s *State) DocLen(d int) int { return s.docLen[d] }

func (s *State) Word(d, p int) string { return s.vocab.Token(s.words[d][p]) }

func (s *State) Topic(d, p int) int { return s.assign[d][p] }

func (s *State) TopicTotal(t int) int { return int(s.wts.Get(uint32(t), 0)) }

func (s *State) DocTopic(d, t int) int { return int(s.dt.Get(uint32(d), uint32(t))) }

// TopicWordCount returns how many occurrences of word are assigned to
// topic t; unknown words count zero.
func (s *State) TopicWordCount(t int, word string) int {
	w := s.vocab.Id(word)
	if w < 0 {
		return 0
	}
	return int(s.wt.Get(uint32(w), uint32(t)))
}

// Pending returns the occurrence between Retract and Commit, if any.
func (s *State) Pending() (doc, pos int, ok bool) {
	if s.pending == nil {
		return 0, 0, false
	}
	return s.pending.doc, s.pending.pos, true
}

// Words returns a copy of the word-location sequence.
func (s *State) Words() [][]string {
	out := make([][]string, len(s.words))
	for d, doc := range s.words {
		out[d] = make([]string, len(doc))
		for p, w := range doc {
			out[d][p] = s.vocab.Token(w)
		}
	}
	return out
}

// Assignments returns a copy of the topic assignment table.
func (s *State) Assignments() [][]int {
	out := make([][]int, len(s.assign))
	for d, a := range s.assign {
		out[d] = make([]int, len(a))
		copy(out[d], a)
	}
	return out
}

func (s *State) DocLengths() []int {
	return append([]int(nil), s.docLen...)
}

func (s *State) TopicTotals() []int {
	out := make([]int, s.numTopics)
	for t := range out {
		out[t] = s.TopicTotal(t)
	}
	return out
}

// DocTopicCounts returns a copy of the D x K document-topic table.
func (s *State) DocTopicCounts() [][]int {
	out := make([][]int, len(s.words))
	for d := range out {
		row := s.dt.GetRow(uint32(d))
		out[d] = make([]int, len(row))
		for t, c := range row {
			out[d][t] = int(c)
		}
	}
	return out
}

// TopicWordCounts returns, for every topic, the words assigned to it
// with their counts. Words with a zero count are left out.
func (s *State) TopicWordCounts() []map[string]int {
	out := make([]map[string]int, s.numTopics)
	for t := range out {
		out[t] = make(map[string]int)
	}
	for w := 0; w < s.vocab.Len(); w++ {
		for t, c := range s.wt.GetRow(uint32(w)) {
			if c > 0 {
				out[t][s.vocab.Token(w)] = int(c)
			}
		}
	}
	return out
}

// WordTopicMatrix returns a copy of the V x K word-topic counts,
// rows indexed by vocabulary id.
func (s *State) WordTopicMatrix() *matrix.Uint32Matrix {
	return s.wt.Clone()
}

// Check recounts every table from the assignment table and reports
// the first disagreement. It fails while an occurrence is pending.
func (s *State) Check() error {
	if s.pending != nil {
		return violation("check", s.pending.doc, s.pending.pos, "occurrence is retracted")
	}
	for d := range s.assign {
		if len(s.assign[d]) != s.docLen[d] || len(s.words[d]) != s.docLen[d] {
			return violation("check", d, -1, "document length changed")
		}
		for p, t := range s.assign[d] {
			if t < 0 || t >= s.numTopics {
				return violation("check", d, p, "topic %d out of range [0, %d)", t, s.numTopics)
			}
		}
	}

	wt, dt, wts := s.aggregate()
	if !wt.Equal(s.wt) {
		return violation("check", -1, -1, "word-topic counts drifted")
	}
	if !dt.Equal(s.dt) {
		return violation("check", -1, -1, "document-topic counts drifted")
	}
	if !wts.Equal(s.wts) {
		return violation("check", -1, -1, "topic totals drifted")
	}
	if n := s.wts.Sum(); n != uint64(s.total) {
		return violation("check", -1, -1, "topic totals sum to %d, want %d", n, s.total)
	}
	for d := range s.docLen {
		if n := util.VectorSum(s.dt.GetRow(uint32(d))); n != uint64(s.docLen[d]) {
			return violation("check", d, -1, "document topics sum to %d, want %d", n, s.docLen[d])
		}
	}
	return nil
}
