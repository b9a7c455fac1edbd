package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/bobonovski/gibbslda/corpus"
	"github.com/bobonovski/gibbslda/model"
)

// StopwordTopic marks a location holding a stopword.
const StopwordTopic = -1

// Run is the JSON record of a training run. Locations are indexed by
// document and position in the unfiltered corpus.
type Run struct {
	ID          string           `json:"runId"`
	Dataset     string           `json:"dataset"`
	Topics      int              `json:"topics"`
	Iterations  int              `json:"iterations"`
	Alpha       float64          `json:"alpha"`
	Beta        float64          `json:"beta"`
	Words       [][]string       `json:"wordsByLocationWithStopwords"`
	Assignments [][]int          `json:"topicsByLocationWithStopwords"`
	TopicWords  []map[string]int `json:"topicWordInstancesDict"`
	Stopwords   []string         `json:"stopwords"`
}

// NewRun records the state of a run over c. iterations is the number
// of sweeps actually done.
func NewRun(dataset string, c *corpus.Corpus, s *model.State, cfg model.Config, iterations int) (*Run, error) {
	assign, err := annotate(c.Raw, s.Words(), s.Assignments())
	if err != nil {
		return nil, err
	}
	stopwords := c.Stopwords
	if stopwords == nil {
		stopwords = []string{}
	}
	return &Run{
		ID:          uuid.NewString(),
		Dataset:     dataset,
		Topics:      s.NumTopics(),
		Iterations:  iterations,
		Alpha:       cfg.Alpha,
		Beta:        cfg.Beta,
		Words:       c.Raw,
		Assignments: assign,
		TopicWords:  s.TopicWordCounts(),
		Stopwords:   stopwords,
	}, nil
}

// annotate spreads the topics of the filtered documents over the raw
// ones, writing StopwordTopic where a word was filtered out.
func annotate(raw, filtered [][]string, assign [][]int) ([][]int, error) {
	if len(raw) != len(filtered) {
		return nil, fmt.Errorf("report: %d raw documents, %d sampled", len(raw), len(filtered))
	}
	out := make([][]int, len(raw))
	for d, doc := range raw {
		out[d] = make([]int, len(doc))
		next := 0
		for p, w := range doc {
			if next < len(filtered[d]) && filtered[d][next] == w {
				out[d][p] = assign[d][next]
				next++
				continue
			}
			out[d][p] = StopwordTopic
		}
		if next != len(filtered[d]) {
			return nil, fmt.Errorf("report: document %d does not match its raw text", d)
		}
	}
	return out, nil
}

func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(run)
}
