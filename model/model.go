package model

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var constructors = make(map[string]ModelCtor)

// the common interface topic samplers should follow
type Model interface {
	// run the configured number of sweeps
	Train(ctx context.Context) error
	// lifecycle of the training run
	Status() Status
	// number of completed sweeps
	Sweeps() int
	// corpus state after training
	State() *State
	// get topic-word distribution
	Phi() *mat.Dense
	// get document-topic distribution
	Theta() *mat.Dense
	// serialize posterior document topic distribution
	SaveTheta(fn string) error
	// serialize posterior word topic distribution
	SavePhi(fn string) error
	// serialize word topic count table
	SaveWordTopic(fn string) error
}

// samplers register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(docs [][]string, cfg Config, opts ...Option) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	ctor, ok := constructors[modelType]
	if !ok {
		return nil, &ConfigurationError{Param: "model", Value: modelType,
			Reason: fmt.Sprintf("not registered, have %v", Models())}
	}
	return ctor, nil
}

// Models returns the registered model names in order.
func Models() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
