// Package report renders the outcome of a training run: topic word
// listings, a spreadsheet friendly CSV and a JSON dump of the corpus
// annotated with topics.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bobonovski/gibbslda/model"
)

// TopicWord is a word of a topic with the number of its occurrences
// assigned to the topic.
type TopicWord struct {
	Word    string
	Count   int
	Percent float64 // of all occurrences assigned to the topic
}

type Topic struct {
	ID    int
	Total int
	Words []TopicWord // by count, then word
}

// Topics lists every topic of s with the words assigned to it.
// Words with a zero count are left out.
func Topics(s *model.State) []Topic {
	counts := s.TopicWordCounts()
	topics := make([]Topic, len(counts))
	for t, words := range counts {
		total := s.TopicTotal(t)
		topic := Topic{ID: t, Total: total, Words: make([]TopicWord, 0, len(words))}
		for w, c := range words {
			tw := TopicWord{Word: w, Count: c}
			if total > 0 {
				tw.Percent = float64(c) / float64(total) * 100
			}
			topic.Words = append(topic.Words, tw)
		}
		sort.Slice(topic.Words, func(i, j int) bool {
			a, b := topic.Words[i], topic.Words[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Word < b.Word
		})
		topics[t] = topic
	}
	return topics
}

// PrintTopics writes one "Topic N: word, word, ..." line per topic,
// numbered from 1. top limits the words per topic; 0 prints all.
func PrintTopics(w io.Writer, topics []Topic, top int) error {
	for _, t := range topics {
		words := t.Words
		if top > 0 && len(words) > top {
			words = words[:top]
		}
		names := make([]string, len(words))
		for i, tw := range words {
			names[i] = tw.Word
		}
		if _, err := fmt.Fprintf(w, "Topic %d: %s\n", t.ID+1, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
