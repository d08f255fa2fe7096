package weather

import (
	"context"
	"errors"
	"math"
)

// Engine runs the pretrained model. input holds InputSize bytes; output is a
// zeroed OutputSize region the engine fills with the category scores.
type Engine interface {
	Run(ctx context.Context, input, output []byte) error
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, input, output []byte) error

func (f EngineFunc) Run(ctx context.Context, input, output []byte) error {
	return f(ctx, input, output)
}

// Prediction is the decoded result of one inference.
type Prediction struct {
	Label  Label     `json:"label"`
	Index  int       `json:"index"`
	Scores []float32 `json:"scores"`
}

// Adapter encodes samples, drives the engine and decodes its output.
//
// Adapter keeps no state between calls. Whether the engine tolerates
// concurrent Run calls is up to the engine.
type Adapter struct {
	engine Engine
}

func NewAdapter(engine Engine) (*Adapter, error) {
	if engine == nil {
		return nil, errors.New("weather: nil engine")
	}
	return &Adapter{engine: engine}, nil
}

// Predict runs one fresh inference for s. Engine errors are returned as
// *InferenceError wrapping the original error.
func (a *Adapter) Predict(ctx context.Context, s Sample) (Prediction, error) {
	if err := s.Validate(); err != nil {
		return Prediction{}, err
	}
	output := make([]byte, OutputSize)
	if err := a.engine.Run(ctx, Encode(s), output); err != nil {
		return Prediction{}, &InferenceError{Err: err}
	}
	scores := Floats(output)
	idx := Argmax(scores)
	return Prediction{
		Label:  CategoryAt(idx),
		Index:  idx,
		Scores: scores,
	}, nil
}

// Decode maps a score distribution to its label.
func Decode(scores []float32) Label {
	return CategoryAt(Argmax(scores))
}

// Argmax returns the index of the largest score. The first of equal maxima
// wins and an empty slice yields 0. NaN ranks above every number and -0 below
// +0, matching a total float ordering.
func Argmax(scores []float32) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if greater(scores[i], scores[best]) {
			best = i
		}
	}
	return best
}

func greater(a, b float32) bool {
	an, bn := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case an || bn:
		return an && !bn
	case a == 0 && b == 0:
		return !math.Signbit(float64(a)) && math.Signbit(float64(b))
	default:
		return a > b
	}
}
