// Package config loads training runs from a config file. The layout
// groups settings the same way the command line help does:
//
//	required parameters:
//	  source: corpus.txt
//	  iterations: 100
//	  topics: 10
//	  output name: corpus_out
//	stopword options:
//	  upper limit: 0.8
//	  lower limit: off
//	  whitelist: []
//	  blacklist: [the]
//	chunking options:
//	  number of documents: off
//	  length of documents: 500
//	  split string: off
//	hyperparameters:
//	  alpha: 0.1
//	  beta: 0.01
//	sampler:
//	  model: lda
//	  seed: 1
//
// JSON files with the same keys are read too.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bobonovski/gibbslda/corpus"
	"github.com/bobonovski/gibbslda/model"
)

var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Setting is an optional number; "off", null or an empty value leave
// it unset.
type Setting struct {
	Value float64
	Set   bool
}

// On returns a set Setting.
func On(v float64) Setting {
	return Setting{Value: v, Set: true}
}

func (s *Setting) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: want a number or off", n.Line)
	}
	if n.Tag == "!!null" || n.Value == "" || strings.EqualFold(n.Value, "off") {
		*s = Setting{}
		return nil
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return fmt.Errorf("line %d: want a number or off: %q", n.Line, n.Value)
	}
	*s = On(v)
	return nil
}

func (s Setting) MarshalYAML() (interface{}, error) {
	if !s.Set {
		return "off", nil
	}
	return s.Value, nil
}

func (s Setting) String() string {
	if !s.Set {
		return "off"
	}
	return strconv.FormatFloat(s.Value, 'g', -1, 64)
}

type Required struct {
	Source     string `yaml:"source" validate:"required"`
	Iterations int    `yaml:"iterations" validate:"gte=0"`
	Topics     int    `yaml:"topics" validate:"gte=1"`
	OutputName string `yaml:"output name"`
}

type Stopwords struct {
	UpperLimit Setting  `yaml:"upper limit"`
	LowerLimit Setting  `yaml:"lower limit"`
	Whitelist  []string `yaml:"whitelist"`
	Blacklist  []string `yaml:"blacklist"`
}

type Chunking struct {
	NumDocs     Setting `yaml:"number of documents"`
	DocLength   Setting `yaml:"length of documents"`
	SplitString string  `yaml:"split string"`
}

type Hyperparameters struct {
	Alpha float64 `yaml:"alpha" validate:"gte=0"`
	Beta  float64 `yaml:"beta" validate:"gte=0"`
}

type Sampler struct {
	Model         string `yaml:"model" validate:"required"`
	Seed          uint64 `yaml:"seed"`
	Init          string `yaml:"init" validate:"omitempty,oneof=roundrobin round-robin random"`
	Normalization string `yaml:"normalization" validate:"omitempty,oneof=simplified standard"`
	Verify        bool   `yaml:"verify"`
	Top           int    `yaml:"top words" validate:"gte=0"`
	MetricsAddr   string `yaml:"metrics address" validate:"omitempty,hostname_port"`
}

type Config struct {
	Required        Required        `yaml:"required parameters"`
	Stopwords       Stopwords       `yaml:"stopword options"`
	Chunking        Chunking        `yaml:"chunking options"`
	Hyperparameters Hyperparameters `yaml:"hyperparameters"`
	Sampler         Sampler         `yaml:"sampler"`
}

// Default returns the settings used for anything a file or flag does
// not set.
func Default() *Config {
	return &Config{
		Required: Required{
			Iterations: 10,
			Topics:     20,
		},
		Hyperparameters: Hyperparameters{
			Alpha: 0.01,
			Beta:  0.01,
		},
		Sampler: Sampler{
			Model: "lda",
			Init:  "roundrobin",
			Top:   10,
		},
	}
}

// Load reads fn over the defaults. It does not validate, so that
// command line flags can still fill in missing values.
func Load(fn string) (*Config, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return cfg, nil
}

// Parse decodes YAML, or JSON which is read as YAML, over the
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for name, s := range map[string]Setting{
		"upper limit": c.Stopwords.UpperLimit,
		"lower limit": c.Stopwords.LowerLimit,
	} {
		if s.Set && (math.IsNaN(s.Value) || s.Value < 0 || s.Value > 1) {
			return fmt.Errorf("%w: %s %v is not a fraction of documents", ErrInvalid, name, s.Value)
		}
	}

	set := 0
	for name, s := range map[string]Setting{
		"number of documents": c.Chunking.NumDocs,
		"length of documents": c.Chunking.DocLength,
	} {
		if !s.Set {
			continue
		}
		set += 1
		if s.Value < 1 || s.Value != math.Trunc(s.Value) {
			return fmt.Errorf("%w: %s %v is not a positive whole number", ErrInvalid, name, s.Value)
		}
	}
	if c.splitString() != "" {
		set += 1
	}
	if set > 1 {
		return fmt.Errorf("%w: only one chunking option can be on", ErrInvalid)
	}
	return nil
}

func (c *Config) splitString() string {
	if strings.EqualFold(c.Chunking.SplitString, "off") {
		return ""
	}
	return c.Chunking.SplitString
}

// CorpusChunking converts the chunking options.
func (c *Config) CorpusChunking() corpus.Chunking {
	var ch corpus.Chunking
	if s := c.Chunking.NumDocs; s.Set {
		ch.NumDocs = int(s.Value)
	}
	if s := c.Chunking.DocLength; s.Set {
		ch.DocLength = int(s.Value)
	}
	ch.SplitString = c.splitString()
	return ch
}

// StopwordFilter converts the stopword options.
func (c *Config) StopwordFilter() corpus.StopwordFilter {
	f := corpus.StopwordFilter{
		Whitelist: c.Stopwords.Whitelist,
		Blacklist: c.Stopwords.Blacklist,
	}
	if s := c.Stopwords.LowerLimit; s.Set {
		f.Lower = s.Value
	}
	if s := c.Stopwords.UpperLimit; s.Set {
		f.Upper = s.Value
	}
	return f
}

// ModelConfig converts the sampler settings.
func (c *Config) ModelConfig() (model.Config, error) {
	policy, err := model.ParseInitPolicy(c.Sampler.Init)
	if err != nil {
		return model.Config{}, err
	}
	norm, err := model.ParseNormalization(c.Sampler.Normalization)
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{
		Topics:        c.Required.Topics,
		Alpha:         c.Hyperparameters.Alpha,
		Beta:          c.Hyperparameters.Beta,
		Sweeps:        c.Required.Iterations,
		Seed:          c.Sampler.Seed,
		Normalization: norm,
		Init:          policy,
		Verify:        c.Sampler.Verify,
	}, nil
}

// OutputName returns the output name, or the source file name
// without its extension.
func (c *Config) OutputName() string {
	if c.Required.OutputName != "" {
		return c.Required.OutputName
	}
	src := c.Required.Source
	return strings.TrimSuffix(src, filepath.Ext(src))
}
