package model

import (
	"fmt"
	"log"
	"math"
)

// Interpreter executes a Model inside a fixed arena.
// A zero Interpreter is valid and not ready.
type Interpreter struct {
	model  *Model
	arena  []float32
	input  []float32
	layers [][]float32
	output []float32
	ready  bool
}

// NewInterpreter reserves an arena of arenaBytes for m. Tensors are not
// bound until AllocateTensors succeeds.
func NewInterpreter(m *Model, arenaBytes int) *Interpreter {
	if arenaBytes < 0 {
		arenaBytes = 0
	}
	return &Interpreter{
		model: m,
		arena: make([]float32, arenaBytes/bytesPerSlot),
	}
}

// AllocateTensors carves the input and every layer output out of the arena.
// The arena is never grown: a model that does not fit fails with ErrAllocation.
func (ip *Interpreter) AllocateTensors() error {
	if ip.model == nil {
		return fmt.Errorf("%w: no model", ErrAllocation)
	}
	if err := ip.model.check(); err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	need := ip.model.slots()
	if need > len(ip.arena) {
		return fmt.Errorf("%w: need %d bytes, arena has %d", ErrAllocation, need*bytesPerSlot, len(ip.arena)*bytesPerSlot)
	}

	off := 0
	carve := func(n int) []float32 {
		s := ip.arena[off : off+n : off+n]
		off += n
		return s
	}

	ip.input = carve(ip.model.Inputs)
	ip.layers = make([][]float32, len(ip.model.Layers))
	for i, l := range ip.model.Layers {
		ip.layers[i] = carve(len(l.Biases))
	}
	ip.output = ip.layers[len(ip.layers)-1]
	return nil
}

// Ready reports whether setup completed and Invoke may run.
func (ip *Interpreter) Ready() bool {
	return ip != nil && ip.ready
}

// ArenaUsed returns the number of arena bytes bound to tensors.
func (ip *Interpreter) ArenaUsed() int {
	if ip.model == nil || ip.input == nil {
		return 0
	}
	return ip.model.slots() * bytesPerSlot
}

// Invoke runs the network on in and returns the scalar output.
func (ip *Interpreter) Invoke(in [2]float64) (float64, error) {
	if !ip.Ready() {
		return 0, ErrNotReady
	}

	ip.input[0] = float32(in[0])
	ip.input[1] = float32(in[1])

	prev := ip.input
	for i, l := range ip.model.Layers {
		out := ip.layers[i]
		for r, row := range l.Weights {
			acc := l.Biases[r]
			for c, w := range row {
				acc += w * prev[c]
			}
			out[r] = activate(l.Activation, acc)
		}
		prev = out
	}

	score := float64(ip.output[0])
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%w: non-finite output", ErrInvoke)
	}
	return score, nil
}

func activate(name string, v float32) float32 {
	switch name {
	case ActivationReLU:
		if v < 0 {
			return 0
		}
		return v
	case ActivationSigmoid:
		return float32(1 / (1 + math.Exp(-float64(v))))
	default:
		return v
	}
}

// Setup loads a model description, verifies its schema version, allocates
// tensors in an arena of arenaBytes and marks the interpreter ready.
//
// On failure the returned interpreter is non-nil but not ready, so every
// Invoke fails with ErrNotReady instead of running on half-initialized state.
func Setup(data []byte, arenaBytes int) (*Interpreter, error) {
	log.Printf("tinyml: initializing model (arena %d bytes)", arenaBytes)

	m, err := Parse(data)
	if err != nil {
		log.Printf("tinyml: %v", err)
		return &Interpreter{}, err
	}

	if m.Version != SchemaVersion {
		log.Printf("tinyml: schema mismatch: model %d vs runtime %d", m.Version, SchemaVersion)
		return &Interpreter{model: m}, fmt.Errorf("%w: model %d, runtime %d", ErrSchemaMismatch, m.Version, SchemaVersion)
	}

	ip := NewInterpreter(m, arenaBytes)
	if err := ip.AllocateTensors(); err != nil {
		log.Printf("tinyml: allocate tensors failed: %v", err)
		return ip, err
	}

	ip.ready = true
	log.Printf("tinyml: model %q ready (%d/%d arena bytes)", m.Name, ip.ArenaUsed(), len(ip.arena)*bytesPerSlot)
	return ip, nil
}
