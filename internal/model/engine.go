package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Brownie44l1/weather-api/internal/weather"
)

// ErrEngineClosed is returned by Run after Close.
var ErrEngineClosed = errors.New("model engine is closed")

// EngineConfig locates the ONNX model and names its input and output nodes.
type EngineConfig struct {
	LibraryPath string
	ModelPath   string
	InputName   string
	OutputName  string
}

// Engine runs the weather classifier through onnxruntime. The input and
// output tensors are allocated once and reused, so Run is serialized.
type Engine struct {
	mu           sync.Mutex
	closeOnce    sync.Once
	closed       bool
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is required")
	}
	if cfg.InputName == "" {
		cfg.InputName = "input"
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "output"
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	e := &Engine{}
	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, weather.FeatureCount))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	e.inputTensor = inputTensor

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(weather.CategoryCount)))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	e.outputTensor = outputTensor

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}
	e.session = session

	return e, nil
}

// Run implements weather.Engine.
func (e *Engine) Run(_ context.Context, input, output []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if len(output) != weather.OutputSize {
		return fmt.Errorf("output region is %d bytes, want %d", len(output), weather.OutputSize)
	}
	sample, err := weather.DecodeInput(input)
	if err != nil {
		return err
	}

	in := e.inputTensor.GetData()
	in[0] = sample.TemperatureCelsius
	in[1] = sample.HumidityPercent
	clear(e.outputTensor.GetData())

	if err := e.session.Run(); err != nil {
		return fmt.Errorf("onnx session run: %w", err)
	}

	return weather.PutFloats(output, e.outputTensor.GetData())
}

// Close releases the session, tensors and ONNX environment. It is safe to
// call more than once; only the first call releases anything.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.closed = true
		if e.session != nil {
			e.session.Destroy()
		}
		if e.inputTensor != nil {
			e.inputTensor.Destroy()
		}
		if e.outputTensor != nil {
			e.outputTensor.Destroy()
		}
		ort.DestroyEnvironment()
	})
}
