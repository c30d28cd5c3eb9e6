// Package emulator drives the interpreter for a frontend. It owns the
// machine state and serializes keypad input from frontend goroutines with
// the cycle execution.
package emulator

import (
	"sync"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate that frontends present frames and poll input at.
const FrameRate = 60

// StepResult summarizes a batch of executed cycles.
type StepResult struct {
	Redraw         bool // at least one cycle changed the framebuffer
	WaitingForKey  bool // the last cycle stalled on a key wait instruction
	UnknownOpcodes int  // number of cycles that hit an unknown opcode
}

// Emulator runs cycles of the interpreter on a machine state.
type Emulator struct {
	logger *log.Logger
	state  *vm.State
	interp *vm.Interpreter

	mu     sync.Mutex
	keys   [chip8.KeyCount]bool
	cycles uint64
}

// New returns an emulator for the given state and interpreter.
func New(logger *log.Logger, state *vm.State, interp *vm.Interpreter) *Emulator {
	return &Emulator{
		logger: logger,
		state:  state,
		interp: interp,
	}
}

// Step runs n interpreter cycles. The current keypad snapshot is applied
// before each cycle. The redraw flag of the state is consumed and reported
// in the result.
func (e *Emulator) Step(n int) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res StepResult
	for range n {
		e.state.SetKeys(e.keys)

		switch e.interp.Cycle(e.state) {
		case vm.WaitingForKey:
			res.WaitingForKey = true
		case vm.UnknownOpcode:
			res.UnknownOpcodes++
			res.WaitingForKey = false
		default:
			res.WaitingForKey = false
		}
		if e.state.Redraw() {
			res.Redraw = true
			e.state.ClearRedraw()
		}
		e.cycles++
	}
	return res
}

// PressKey marks a keypad key as pressed.
func (e *Emulator) PressKey(key uint8) {
	e.setKey(key, true)
}

// ReleaseKey marks a keypad key as released.
func (e *Emulator) ReleaseKey(key uint8) {
	e.setKey(key, false)
}

func (e *Emulator) setKey(key uint8, pressed bool) {
	if key >= chip8.KeyCount {
		e.logger.Debug("Ignoring invalid key", log.Uint8("key", key))
		return
	}

	e.mu.Lock()
	e.keys[key] = pressed
	e.mu.Unlock()
}

// SetKeys replaces the complete keypad snapshot.
func (e *Emulator) SetKeys(keys [chip8.KeyCount]bool) {
	e.mu.Lock()
	e.keys = keys
	e.mu.Unlock()
}

// Framebuffer returns a copy of the current framebuffer.
func (e *Emulator) Framebuffer() vm.Framebuffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.state.Framebuffer()
}

// SoundActive returns whether the tone should currently sound.
func (e *Emulator) SoundActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.SoundActive()
}

// Cycles returns the number of executed cycles.
func (e *Emulator) Cycles() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cycles
}

// CyclesPerFrame returns the number of cycles to run per frame to reach the
// given cycle rate. It is at least 1.
func CyclesPerFrame(hz, fps int) int {
	if fps <= 0 {
		return max(hz, 1)
	}
	return max((hz+fps/2)/fps, 1)
}
