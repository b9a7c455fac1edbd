package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/golang/glog"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bobonovski/gibbslda/sstable"
)

func init() {
	Register("lda", NewModel)
	Register("lda-standard", func(docs [][]string, cfg Config, opts ...Option) (Model, error) {
		cfg.Normalization = NormalizationStandard
		return NewModel(docs, cfg, opts...)
	})
}

// Config holds the parameters of a training run.
type Config struct {
	Topics        int
	Alpha         float64 // document-topic mixture hyperparameter
	Beta          float64 // topic-word mixture hyperparameter
	Sweeps        int
	Seed          uint64
	Normalization Normalization
	Init          InitPolicy
	// Verify recounts all tables after every sweep.
	Verify bool
}

func (c Config) Validate() error {
	if c.Topics < 1 {
		return &ConfigurationError{Param: "topics", Value: c.Topics, Reason: "must be at least 1"}
	}
	if c.Sweeps < 0 {
		return &ConfigurationError{Param: "sweeps", Value: c.Sweeps, Reason: "must not be negative"}
	}
	switch c.Init {
	case InitRoundRobin, InitRandom:
	default:
		return &ConfigurationError{Param: "init", Value: c.Init, Reason: "unknown policy"}
	}
	return c.priors().validate()
}

func (c Config) priors() Priors {
	return Priors{Alpha: c.Alpha, Beta: c.Beta, Normalization: c.Normalization}
}

// Status is the lifecycle of a training run.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusCompleted
	StatusStopped // cancelled between two occurrences
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusStopped:
		return "stopped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Option func(*LDA)

// WithSource replaces the random source seeded from Config.Seed.
func WithSource(src rand.Source) Option {
	return func(l *LDA) { l.src = src }
}

func WithMetrics(m *Metrics) Option {
	return func(l *LDA) { l.metrics = m }
}

// LDA is a collapsed Gibbs sampler. Every sweep resamples the topic
// of each occurrence, in document then position order, from its
// distribution conditioned on all other assignments.
type LDA struct {
	state   *State
	cfg     Config
	priors  Priors
	src     rand.Source
	cat     distuv.Categorical
	dist    []float64
	metrics *Metrics

	status   Status
	sweeps   int
	zeroMass int
}

// NewLDA validates cfg and builds the initial state from docs.
func NewLDA(docs [][]string, cfg Config, opts ...Option) (*LDA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &LDA{
		cfg:    cfg,
		priors: cfg.priors(),
		src:    rand.NewSource(cfg.Seed),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.src == nil {
		return nil, &ConfigurationError{Param: "source", Value: nil, Reason: "random source must not be nil"}
	}

	state, err := NewState(docs, cfg.Topics, cfg.Init, l.src)
	if err != nil {
		return nil, err
	}
	l.state = state

	l.dist = make([]float64, cfg.Topics)
	uniform := make([]float64, cfg.Topics)
	for t := range uniform {
		uniform[t] = 1
	}
	l.cat = distuv.NewCategorical(uniform, l.src)

	log.Infof("lda: %d topics, %d documents, %d occurrences, vocabulary size %d",
		cfg.Topics, state.NumDocs(), state.Occurrences(), state.VocabSize())
	return l, nil
}

// NewModel is NewLDA behind the Model interface.
func NewModel(docs [][]string, cfg Config, opts ...Option) (Model, error) {
	return NewLDA(docs, cfg, opts...)
}

func (l *LDA) State() *State { return l.state }

func (l *LDA) Config() Config { return l.cfg }

func (l *LDA) Status() Status { return l.status }

// Sweeps returns the number of completed sweeps.
func (l *LDA) Sweeps() int { return l.sweeps }

// ZeroMassEvents returns how many resamples used the uniform fallback.
func (l *LDA) ZeroMassEvents() int { return l.zeroMass }

// Train runs Config.Sweeps sweeps. It can be called once. ctx is
// checked between occurrences; on cancellation the state is
// consistent and Train returns ctx.Err(). Any other error leaves the
// run failed with no rollback.
func (l *LDA) Train(ctx context.Context) error {
	if l.status != StatusNotStarted {
		return fmt.Errorf("model: training is %s", l.status)
	}
	l.status = StatusRunning

	for iter := 0; iter < l.cfg.Sweeps; iter++ {
		if err := l.sweep(ctx, iter); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				l.status = StatusStopped
				log.Warningf("lda: stopped after %d of %d sweeps: %v", l.sweeps, l.cfg.Sweeps, err)
				return err
			}
			l.status = StatusFailed
			log.Errorf("lda: sweep %d failed: %v", iter, err)
			return fmt.Errorf("sweep %d: %w", iter, err)
		}
	}

	l.status = StatusCompleted
	log.Infof("lda: %d sweeps completed, %d zero-mass fallbacks", l.sweeps, l.zeroMass)
	return nil
}

func (l *LDA) sweep(ctx context.Context, iter int) error {
	start := time.Now()
	zeroMass := 0
	for d := range l.state.words {
		for p := range l.state.words[d] {
			if err := ctx.Err(); err != nil {
				return err
			}
			zero, err := l.resample(d, p)
			if err != nil {
				return err
			}
			if zero {
				if zeroMass == 0 {
					log.Warningf("lda: sweep %d: %v", iter, &ZeroMassDistribution{Doc: d, Pos: p})
				}
				zeroMass++
			}
		}
	}
	if l.cfg.Verify {
		if err := l.state.Check(); err != nil {
			return err
		}
	}

	l.sweeps++
	l.zeroMass += zeroMass
	elapsed := time.Since(start)
	l.metrics.sweep(elapsed.Seconds())
	log.V(1).Infof("lda: sweep %5d done in %s, %d zero-mass fallbacks", iter, elapsed, zeroMass)
	return nil
}

// resample draws a new topic for (d, p). It reports whether the
// uniform fallback was used.
func (l *LDA) resample(d, p int) (bool, error) {
	s := l.state
	oldTopic := s.assign[d][p]
	if err := s.Retract(d, p, oldTopic); err != nil {
		return false, err
	}

	dist, err := s.Distribution(d, p, l.priors, l.dist)
	var zm *ZeroMassDistribution
	zero := errors.As(err, &zm)
	if err != nil && !zero {
		return false, err
	}
	l.dist = dist
	if zero {
		l.metrics.zeroMass()
	}

	if err := s.Commit(d, p, l.draw(dist)); err != nil {
		return false, err
	}
	l.metrics.resample()
	return zero, nil
}

// draw samples a topic from the normalized distribution dist.
func (l *LDA) draw(dist []float64) int {
	l.cat.ReweightAll(dist)
	topic := int(l.cat.Rand())
	if dist[topic] == 0 {
		// A draw of exactly 0 lands on the first heap node whatever
		// its weight.
		for t, w := range dist {
			if w > 0 {
				return t
			}
		}
	}
	return topic
}

// Phi returns the K x V point estimate of the topic-word mixtures,
// columns ordered by vocabulary id.
func (l *LDA) Phi() *mat.Dense {
	s := l.state
	k, v := s.numTopics, s.vocab.Len()
	phi := mat.NewDense(k, v, nil)
	for t := 0; t < k; t++ {
		denom := float64(s.TopicTotal(t)) + float64(v)*l.cfg.Beta
		for w := 0; w < v; w++ {
			phi.Set(t, w, ratio(float64(s.wt.Get(uint32(w), uint32(t)))+l.cfg.Beta, denom))
		}
	}
	return phi
}

// Theta returns the D x K point estimate of the document-topic
// mixtures.
func (l *LDA) Theta() *mat.Dense {
	s := l.state
	d, k := len(s.words), s.numTopics
	theta := mat.NewDense(d, k, nil)
	for i := 0; i < d; i++ {
		denom := float64(s.docLen[i]) + float64(k)*l.cfg.Alpha
		for t := 0; t < k; t++ {
			theta.Set(i, t, ratio(float64(s.DocTopic(i, t))+l.cfg.Alpha, denom))
		}
	}
	return theta
}

// serialize word-topic distribution
func (l *LDA) SavePhi(fn string) error {
	return sstable.DenseSerializeFile(l.Phi(), fn+".phi")
}

// serialize document-topic distribution
func (l *LDA) SaveTheta(fn string) error {
	return sstable.DenseSerializeFile(l.Theta(), fn+".theta")
}

// serialize word-topic count table together with its vocabulary
func (l *LDA) SaveWordTopic(fn string) error {
	if err := sstable.Uint32SerializeFile(l.state.WordTopicMatrix(), fn+".wt"); err != nil {
		return err
	}
	return sstable.WriteVocabularyFile(l.state.Tokens(), fn+".vocab")
}
