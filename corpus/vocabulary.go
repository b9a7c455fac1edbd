package corpus

import "fmt"

// Vocabulary maintains the bi-directional mapping between words and
// ids. Ids are assigned in order of first appearance and are in the
// range of [0, N), where N is the vocabulary size.
type Vocabulary struct {
	tokens []string
	ids    map[string]int
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		tokens: make([]string, 0),
		ids:    make(map[string]int),
	}
}

// BuildVocabulary scans docs in document then position order.
func BuildVocabulary(docs [][]string) *Vocabulary {
	v := NewVocabulary()
	for _, doc := range docs {
		for _, w := range doc {
			v.Add(w)
		}
	}
	return v
}

// Add returns the id of token, assigning the next free id if the
// token is new.
func (v *Vocabulary) Add(token string) int {
	if id, ok := v.ids[token]; ok {
		return id
	}
	id := len(v.tokens)
	v.tokens = append(v.tokens, token)
	v.ids[token] = id
	return id
}

// Tokens returns a copy of the words ordered by id.
func (v *Vocabulary) Tokens() []string {
	return append([]string(nil), v.tokens...)
}

func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

func (v *Vocabulary) Token(id int) string {
	if id < 0 || id >= len(v.tokens) {
		panic(fmt.Sprintf("id=%d out of range [0, %d)", id, len(v.tokens)))
	}
	return v.tokens[id]
}

// Id returns the index of token. If token is not in the vocabulary,
// it returns a negative value.
func (v *Vocabulary) Id(token string) int {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return -1
}
