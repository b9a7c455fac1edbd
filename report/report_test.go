package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/gibbslda/corpus"
	"github.com/bobonovski/gibbslda/model"
)

func testState(t *testing.T, docs [][]string) *model.State {
	s, err := model.NewState(docs, 2, model.InitRoundRobin, nil)
	require.NoError(t, err)
	return s
}

func TestTopics(t *testing.T) {
	s := testState(t, [][]string{{"a", "b", "a"}, {"b", "b", "a"}})

	topics := Topics(s)
	require.Len(t, topics, 2)
	assert.Equal(t, 3, topics[0].Total)
	assert.Equal(t, "a", topics[0].Words[0].Word)
	assert.Equal(t, 2, topics[0].Words[0].Count)
	assert.InDelta(t, 200.0/3, topics[0].Words[0].Percent, 1e-9)
	assert.Equal(t, "b", topics[1].Words[0].Word)
}

func TestTopicsTiesByWord(t *testing.T) {
	s := testState(t, [][]string{{"z", "x", "y", "w"}})

	topics := Topics(s)
	assert.Equal(t, []TopicWord{{"y", 1, 50}, {"z", 1, 50}}, topics[0].Words)
	assert.Equal(t, []TopicWord{{"w", 1, 50}, {"x", 1, 50}}, topics[1].Words)
}

func TestPrintTopics(t *testing.T) {
	topics := Topics(testState(t, [][]string{{"a", "b", "a"}, {"b", "b", "a"}}))

	var buf bytes.Buffer
	require.NoError(t, PrintTopics(&buf, topics, 0))
	assert.Equal(t, "Topic 1: a, b\nTopic 2: b, a\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintTopics(&buf, topics, 1))
	assert.Equal(t, "Topic 1: a\nTopic 2: b\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	topics := Topics(testState(t, [][]string{{"z", "x", "y", "w", "v"}}))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, topics))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// topic 1 holds v, y, z and topic 2 holds w, x
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"", "Topic1", "", "", "Topic2", ""}, rows[0])
	assert.Equal(t, []string{"Word", "Count", "Percentage", "Word", "Count", "Percentage"}, rows[1])
	assert.Equal(t, []string{"v", "1"}, rows[2][:2])
	assert.Equal(t, []string{"w", "1", "50"}, rows[2][3:])
	pct, err := strconv.ParseFloat(rows[2][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3, pct, 1e-9)
	assert.Equal(t, []string{"z", "1"}, rows[4][:2])
	assert.Equal(t, []string{"", "", ""}, rows[4][3:])
}

func TestWriteCSVRowLimit(t *testing.T) {
	doc := make([]string, 500)
	for i := range doc {
		doc[i] = "w" + strconv.Itoa(i)
	}
	topics := Topics(testState(t, [][]string{doc}))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, topics))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, MaxCSVRows)
}

func TestWriteJSON(t *testing.T) {
	c := &corpus.Corpus{
		Raw:       [][]string{{"the", "cat", "sat"}, {"the", "dog"}},
		Docs:      [][]string{{"cat", "sat"}, {"dog"}},
		Stopwords: []string{"the"},
	}
	s := testState(t, c.Docs)
	run, err := NewRun("pets", c, s, model.Config{Topics: 2, Alpha: 0.5, Beta: 0.25}, 7)
	require.NoError(t, err)
	_, err = uuid.Parse(run.ID)
	assert.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, run))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n    \"runId\""))

	var got struct {
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
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "pets", got.Dataset)
	assert.Equal(t, 2, got.Topics)
	assert.Equal(t, 7, got.Iterations)
	assert.Equal(t, 0.25, got.Beta)
	assert.Equal(t, c.Raw, got.Words)
	assert.Equal(t, [][]int{{StopwordTopic, 0, 1}, {StopwordTopic, 0}}, got.Assignments)
	assert.Equal(t, []map[string]int{{"cat": 1, "dog": 1}, {"sat": 1}}, got.TopicWords)
	assert.Equal(t, []string{"the"}, got.Stopwords)
}

func TestAnnotateMismatch(t *testing.T) {
	_, err := annotate([][]string{{"x"}}, [][]string{{"y"}}, [][]int{{0}})
	assert.Error(t, err)

	_, err = annotate([][]string{{"x"}}, nil, nil)
	assert.Error(t, err)
}
