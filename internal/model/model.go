// Package model runs the compiled-in anomaly model.
//
// The runtime mirrors a micro interpreter: the model description is parsed,
// its schema version is checked against SchemaVersion, a fixed-size arena is
// allocated once, and input/output tensors are bound inside that arena.
// Invoke refuses to run until setup has fully succeeded.
package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is the model schema version this runtime understands.
const SchemaVersion = 3

// DefaultArenaSize is the working memory reserved for tensors, in bytes.
const DefaultArenaSize = 25 * 1024

// bytesPerSlot is the size of one float32 tensor element.
const bytesPerSlot = 4

// Embedded is the compiled-in temperature/humidity anomaly model.
//
//go:embed dht_anomaly_model.json
var Embedded []byte

var (
	ErrSchemaMismatch = errors.New("model: schema version mismatch")
	ErrAllocation     = errors.New("model: tensor allocation failed")
	ErrNotReady       = errors.New("model: interpreter not ready")
	ErrInvoke         = errors.New("model: invoke failed")
)

// Runner runs one inference on a normalized input vector.
type Runner interface {
	Invoke(in [2]float64) (float64, error)
}

// Activation names accepted in layer descriptions.
const (
	ActivationLinear  = "linear"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
)

// Layer is a fully connected layer: out[i] = act(sum_j Weights[i][j]*in[j] + Biases[i]).
type Layer struct {
	Activation string      `json:"activation"`
	Weights    [][]float32 `json:"weights"`
	Biases     []float32   `json:"biases"`
}

// Model is a fixed-topology dense network.
type Model struct {
	Version int     `json:"version"`
	Name    string  `json:"name"`
	Inputs  int     `json:"inputs"`
	Layers  []Layer `json:"layers"`
}

// Parse decodes a model description.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return &m, nil
}

// slots returns the number of float32 elements needed for the input and
// every layer output.
func (m *Model) slots() int {
	n := m.Inputs
	for _, l := range m.Layers {
		n += len(l.Biases)
	}
	return n
}

// check validates that consecutive layer shapes line up and that the
// network ends in a single scalar.
func (m *Model) check() error {
	if m.Inputs != 2 {
		return fmt.Errorf("model has %d inputs, want 2", m.Inputs)
	}
	if len(m.Layers) == 0 {
		return errors.New("model has no layers")
	}
	prev := m.Inputs
	for i, l := range m.Layers {
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Biases) {
			return fmt.Errorf("layer %d: %d weight rows, %d biases", i, len(l.Weights), len(l.Biases))
		}
		for j, row := range l.Weights {
			if len(row) != prev {
				return fmt.Errorf("layer %d row %d: %d weights, want %d", i, j, len(row), prev)
			}
		}
		switch l.Activation {
		case ActivationLinear, ActivationReLU, ActivationSigmoid, "":
		default:
			return fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		prev = len(l.Biases)
	}
	if prev != 1 {
		return fmt.Errorf("model has %d outputs, want 1", prev)
	}
	return nil
}
