// Package vm implements the CHIP-8 virtual machine: the machine state and the
// interpreter cycle that mutates it.
package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// ErrProgramTooLarge is returned when a program image does not fit into the
// program region of the memory.
var ErrProgramTooLarge = errors.New("program too large")

// State contains the complete mutable state of a CHIP-8 machine.
// It is exclusively owned by a single goroutine, the key latches must only be
// changed between interpreter cycles.
type State struct {
	memory [chip8.MemorySize]uint8
	v      [chip8.RegisterCount]uint8 // V0-VF
	i      uint16                     // index register
	pc     uint16

	stack [chip8.StackSize]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	display Framebuffer
	keys    [chip8.KeyCount]bool
	redraw  bool
}

// New returns a new machine state with the font loaded and the program
// counter pointing to the program entry.
func New() *State {
	s := &State{
		pc: chip8.ProgramStart,
	}
	copy(s.memory[chip8.FontAddress:], fontSet[:])
	return s
}

// LoadProgram copies the program image into memory at the program start
// address. It does not change the program counter or any register.
func (s *State) LoadProgram(image []byte) error {
	if len(image) > chip8.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the %d bytes available", ErrProgramTooLarge, len(image), chip8.MaxProgramSize)
	}
	copy(s.memory[chip8.ProgramStart:], image)
	return nil
}

// PC returns the program counter.
func (s *State) PC() uint16 {
	return s.pc
}

// Index returns the index register I.
func (s *State) Index() uint16 {
	return s.i
}

// SP returns the stack pointer.
func (s *State) SP() uint8 {
	return s.sp
}

// Register returns the value of register Vx.
func (s *State) Register(x uint8) uint8 {
	return s.v[x]
}

// Registers returns a copy of the registers V0-VF.
func (s *State) Registers() [chip8.RegisterCount]uint8 {
	return s.v
}

// Memory returns the byte at the given address.
func (s *State) Memory(address uint16) uint8 {
	return s.memory[address]
}

// DelayTimer returns the current delay timer value.
func (s *State) DelayTimer() uint8 {
	return s.delayTimer
}

// SoundTimer returns the current sound timer value.
func (s *State) SoundTimer() uint8 {
	return s.soundTimer
}

// SoundActive returns whether a tone should currently be audible.
func (s *State) SoundActive() bool {
	return s.soundTimer > 0
}

// Framebuffer returns the display. It must be treated as read-only and is
// only consistent between interpreter cycles.
func (s *State) Framebuffer() *Framebuffer {
	return &s.display
}

// Redraw returns whether the last cycle modified the framebuffer.
func (s *State) Redraw() bool {
	return s.redraw
}

// ClearRedraw resets the redraw flag after the framebuffer was presented.
func (s *State) ClearRedraw() {
	s.redraw = false
}

// Key returns whether the given key is pressed.
func (s *State) Key(key uint8) bool {
	return s.keys[key]
}

// SetKey sets the pressed state of a key.
func (s *State) SetKey(key uint8, pressed bool) {
	s.keys[key] = pressed
}

// SetKeys replaces the state of all keys.
func (s *State) SetKeys(keys [chip8.KeyCount]bool) {
	s.keys = keys
}
