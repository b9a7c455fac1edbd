package model

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("model: invalid configuration")
	ErrEmptyCorpus        = errors.New("model: empty corpus")
	ErrInvariantViolation = errors.New("model: invariant violation")
	ErrZeroMass           = errors.New("model: all topic scores are zero")
)

// ConfigurationError reports an invalid construction parameter.
type ConfigurationError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s = %v: %s", ErrConfiguration, e.Param, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// EmptyCorpusError is returned when there is nothing to sample.
type EmptyCorpusError struct {
	Documents   int
	Occurrences int
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("%v: %d documents, %d occurrences",
		ErrEmptyCorpus, e.Documents, e.Occurrences)
}

func (e *EmptyCorpusError) Unwrap() error { return ErrEmptyCorpus }

// InvariantViolation means the count tables no longer agree with the
// assignments, or are about to stop agreeing. It is never recoverable.
type InvariantViolation struct {
	Op     string
	Doc    int
	Pos    int
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%v: %s(%d, %d): %s",
		ErrInvariantViolation, e.Op, e.Doc, e.Pos, e.Reason)
}

func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }

func violation(op string, doc, pos int, format string, args ...interface{}) error {
	return &InvariantViolation{Op: op, Doc: doc, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// ZeroMassDistribution is reported when every topic scored zero for
// an occurrence and the uniform distribution was used instead. It is
// not fatal.
type ZeroMassDistribution struct {
	Doc int
	Pos int
}

func (e *ZeroMassDistribution) Error() string {
	return fmt.Sprintf("%v at (%d, %d), using uniform distribution", ErrZeroMass, e.Doc, e.Pos)
}

func (e *ZeroMassDistribution) Unwrap() error { return ErrZeroMass }
