package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/gibbslda/config"
)

const text = `The cat sat on the mat. The dog sat on the log.
The cat chased the dog. Apples and pears grow on trees.
Pears and apples are fruit. The fruit grows on the tree.`

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(`
required parameters:
  source: corpus.txt
  iterations: 40
  topics: 4
hyperparameters:
  alpha: 0.2
  beta: 0.1
`), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", fn, "--k", "3", "--stop_upper", "0.9"}))

	cfg, err := loadConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Required.Topics)
	assert.Equal(t, 40, cfg.Required.Iterations)
	assert.Equal(t, 0.2, cfg.Hyperparameters.Alpha)
	assert.Equal(t, config.On(0.9), cfg.Stopwords.UpperLimit)
	assert.False(t, cfg.Stopwords.LowerLimit.Set)
}

func TestLoadConfigInvalid(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--input_file", "corpus.txt", "--k", "0"}))

	_, err := loadConfig(cmd.Flags())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "animals.txt")
	require.NoError(t, os.WriteFile(src, []byte(text), 0o644))
	out := filepath.Join(dir, "result")

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--input_file", src,
		"--output", out,
		"--k", "2",
		"--iter", "5",
		"--alpha", "0.1",
		"--beta", "0.1",
		"--chunk_docs", "3",
		"--stop_upper", "0.9",
		"--verify",
	})
	require.NoError(t, cmd.Execute())

	for _, ext := range []string{".csv", ".json", ".phi", ".theta", ".wt", ".vocab"} {
		assert.FileExists(t, out+ext)
	}

	b, err := os.ReadFile(out + ".json")
	require.NoError(t, err)
	var got struct {
		Dataset    string   `json:"dataset"`
		Topics     int      `json:"topics"`
		Iterations int      `json:"iterations"`
		Stopwords  []string `json:"stopwords"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "animals", got.Dataset)
	assert.Equal(t, 2, got.Topics)
	assert.Equal(t, 5, got.Iterations)
	assert.Contains(t, got.Stopwords, "the")
}
