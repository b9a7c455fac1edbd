package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	in := "Apple,1\norange,1\nbroken\ncat,2\nTiger,2\napple,3\n"
	c, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, c.DocNum())
	assert.Equal(t, [][]string{{"apple", "orange"}, {"cat", "tiger"}, {"apple"}}, c.Raw)
	assert.Equal(t, c.Raw, c.Docs)
	assert.Equal(t, 5, c.Occurrences())

	// Docs must not share storage with Raw.
	c.Docs[0][0] = "pear"
	assert.Equal(t, "apple", c.Raw[0][0])
}

func TestLoadTextNumDocs(t *testing.T) {
	c, err := LoadText(strings.NewReader("a b c d e f g"), Chunking{NumDocs: 3})
	require.NoError(t, err)
	// 7 words in 3 documents: 2, 2, then the remaining 3.
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e", "f", "g"}}, c.Raw)

	c, err = LoadText(strings.NewReader("a b c d e f g h"), Chunking{NumDocs: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e", "f", "g", "h"}}, c.Raw)

	c, err = LoadText(strings.NewReader("a b"), Chunking{NumDocs: 5})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, c.Raw)
}

func TestLoadTextDocLength(t *testing.T) {
	c, err := LoadText(strings.NewReader("a b c d e f"), Chunking{DocLength: 5})
	require.NoError(t, err)
	// The trailing stub of 1 word is shorter than 5/2 and is merged.
	assert.Equal(t, [][]string{{"a", "b", "c", "d", "e", "f"}}, c.Raw)

	c, err = LoadText(strings.NewReader("a b c d e"), Chunking{DocLength: 3})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "e"}}, c.Raw)
}

func TestLoadTextSplitString(t *testing.T) {
	in := "Chapter one. The cat!\nchapter two (the dog)"
	c, err := LoadText(strings.NewReader(in), Chunking{SplitString: "CHAPTER"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{},
		{"chapter", "one", "the", "cat"},
		{"chapter", "two", "the", "dog"},
	}, c.Raw)
}

func TestLoadTextBadChunking(t *testing.T) {
	_, err := LoadText(strings.NewReader("a"), Chunking{DocLength: -1})
	assert.ErrorIs(t, err, ErrBadChunking)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	csvFile := filepath.Join(dir, "corpus.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("a,1\nb,2\n"), 0o644))
	c, err := Load(csvFile, Chunking{})
	require.NoError(t, err)
	assert.Equal(t, 2, c.DocNum())

	txtFile := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(txtFile, []byte("a b c d"), 0o644))
	c, err = Load(txtFile, Chunking{DocLength: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, c.DocNum())

	_, err = Load(filepath.Join(dir, "missing.csv"), Chunking{})
	assert.Error(t, err)
}

func TestStopwordFilter(t *testing.T) {
	c := newCorpus([][]string{
		{"the", "cat", "sat", "rare"},
		{"the", "cat", "ran"},
		{"the", "dog", "sat"},
		{"the", "dog", "ran"},
	})

	// 4 documents: lower bound ceil(4*0.25)=1, upper ceil(4*1.0)=4.
	StopwordFilter{
		Lower:     0.25,
		Upper:     1.0,
		Whitelist: []string{"rare"},
		Blacklist: []string{"dog"},
	}.Apply(c)

	assert.Equal(t, []string{"dog", "the"}, c.Stopwords)
	assert.Equal(t, [][]string{
		{"cat", "sat", "rare"},
		{"cat", "ran"},
		{"sat"},
		{"ran"},
	}, c.Docs)
	assert.Len(t, c.Raw[0], 4)
}

func TestStopwordFilterDisabled(t *testing.T) {
	c := newCorpus([][]string{{"a", "b"}, {"a"}})
	StopwordFilter{}.Apply(c)
	assert.Empty(t, c.Stopwords)
	assert.Equal(t, c.Raw, c.Docs)
}

func TestVocabulary(t *testing.T) {
	v := BuildVocabulary([][]string{{"b", "a", "b"}, {"c", "a"}})

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 0, v.Id("b"))
	assert.Equal(t, 1, v.Id("a"))
	assert.Equal(t, 2, v.Id("c"))
	assert.Equal(t, -1, v.Id("unknown"))
	assert.Equal(t, "c", v.Token(2))
	assert.Panics(t, func() { v.Token(3) })
	assert.Equal(t, 1, v.Add("a"))
	assert.Equal(t, 3, v.Add("d"))

	tokens := v.Tokens()
	assert.Equal(t, []string{"b", "a", "c", "d"}, tokens)
	tokens[0] = "z"
	assert.Equal(t, "b", v.Token(0))
	assert.Equal(t, 0, v.Id("b"))
}
