package model

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Normalization selects the smoothing mass in the denominator of
// P(w|t).
type Normalization int

const (
	// NormalizationSimplified divides by topic_total[t] + beta. This
	// is not the textbook collapsed Gibbs update but reproduces the
	// results of earlier releases.
	NormalizationSimplified Normalization = iota
	// NormalizationStandard divides by topic_total[t] + beta*V.
	NormalizationStandard
)

func (n Normalization) String() string {
	switch n {
	case NormalizationSimplified:
		return "simplified"
	case NormalizationStandard:
		return "standard"
	}
	return fmt.Sprintf("Normalization(%d)", int(n))
}

func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(s) {
	case "", "simplified":
		return NormalizationSimplified, nil
	case "standard":
		return NormalizationStandard, nil
	}
	return 0, &ConfigurationError{Param: "normalization", Value: s, Reason: "want simplified or standard"}
}

// Priors are the Dirichlet smoothing constants of the sampler.
type Priors struct {
	Alpha         float64 // document-topic
	Beta          float64 // topic-word
	Normalization Normalization
}

func (pr Priors) validate() error {
	if math.IsNaN(pr.Alpha) || math.IsInf(pr.Alpha, 0) || pr.Alpha < 0 {
		return &ConfigurationError{Param: "alpha", Value: pr.Alpha, Reason: "must be a finite non-negative number"}
	}
	if math.IsNaN(pr.Beta) || math.IsInf(pr.Beta, 0) || pr.Beta < 0 {
		return &ConfigurationError{Param: "beta", Value: pr.Beta, Reason: "must be a finite non-negative number"}
	}
	switch pr.Normalization {
	case NormalizationSimplified, NormalizationStandard:
	default:
		return &ConfigurationError{Param: "normalization", Value: pr.Normalization, Reason: "unknown"}
	}
	return nil
}

// ratio returns num/denom, or exactly zero when num is zero so that a
// topic with no mass never yields NaN.
func ratio(num, denom float64) float64 {
	if num == 0 || denom == 0 {
		return 0
	}
	return num / denom
}

// Distribution computes the conditional distribution over topics of
// the retracted occurrence (d, p):
//
//	P(w|t) = (n_wt + beta) / (n_t + beta*N)   N = 1 or V, see Normalization
//	P(t|d) = (n_dt + alpha) / (L_d - 1 + alpha*K)
//
// and writes the normalized products into dst, which is allocated if
// it does not have K elements. If every product is zero it writes the
// uniform distribution and returns a *ZeroMassDistribution along with
// it. It does not modify the state.
func (s *State) Distribution(d, p int, pr Priors, dst []float64) ([]float64, error) {
	if err := s.checkOccurrence("distribution", d, p); err != nil {
		return nil, err
	}
	if s.pending == nil || s.pending.doc != d || s.pending.pos != p {
		return nil, violation("distribution", d, p, "occurrence is not retracted")
	}
	if len(dst) != s.numTopics {
		dst = make([]float64, s.numTopics)
	}

	k := float64(s.numTopics)
	wordMass := pr.Beta
	if pr.Normalization == NormalizationStandard {
		wordMass = pr.Beta * float64(s.vocab.Len())
	}
	docDenom := float64(s.docLen[d]-1) + pr.Alpha*k

	w := uint32(s.words[d][p])
	for t := range dst {
		pwt := ratio(float64(s.wt.Get(w, uint32(t)))+pr.Beta,
			float64(s.wts.Get(uint32(t), 0))+wordMass)
		ptd := ratio(float64(s.dt.Get(uint32(d), uint32(t)))+pr.Alpha, docDenom)
		dst[t] = pwt * ptd
	}

	sum := floats.Sum(dst)
	if sum == 0 {
		for t := range dst {
			dst[t] = 1 / k
		}
		return dst, &ZeroMassDistribution{Doc: d, Pos: p}
	}
	floats.Scale(1/sum, dst)
	return dst, nil
}
