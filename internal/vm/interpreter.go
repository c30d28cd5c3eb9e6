package vm

import (
	"math/rand/v2"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Result describes the outcome of a single interpreter cycle.
type Result int

const (
	// Executed means that the instruction at the program counter was executed.
	Executed Result = iota
	// WaitingForKey means that the cycle stalled on a key wait instruction
	// because no key was pressed. The cycle has to be repeated.
	WaitingForKey
	// UnknownOpcode means that the instruction word could not be decoded.
	// The program counter was not advanced.
	UnknownOpcode
)

func (r Result) String() string {
	switch r {
	case Executed:
		return "executed"
	case WaitingForKey:
		return "waiting for key"
	case UnknownOpcode:
		return "unknown opcode"
	default:
		return "invalid"
	}
}

// Interpreter executes CHIP-8 instructions against a machine state.
// It holds no machine state itself, only the random number source and the
// logging setup.
type Interpreter struct {
	logger *log.Logger
	rnd    *rand.Rand
	trace  bool

	// last reported unknown instruction, repeated hits on a hanging
	// program are only logged at debug level.
	lastUnknownPC   uint16
	lastUnknownWord uint16
	reportedUnknown bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRandomSource sets the source used by the random number instruction.
func WithRandomSource(src rand.Source) Option {
	return func(in *Interpreter) {
		in.rnd = rand.New(src)
	}
}

// WithSeed makes the random number instruction reproducible.
func WithSeed(seed uint64) Option {
	return WithRandomSource(rand.NewPCG(seed, seed))
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(in *Interpreter) {
		in.trace = trace
	}
}

// NewInterpreter returns a new interpreter.
func NewInterpreter(logger *log.Logger, options ...Option) *Interpreter {
	seed := uint64(time.Now().UnixNano())
	in := &Interpreter{
		logger: logger,
		rnd:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
	for _, option := range options {
		option(in)
	}
	return in
}

// Cycle performs exactly one fetch-decode-execute step followed by one
// timer tick.
func (in *Interpreter) Cycle(s *State) Result {
	s.redraw = false

	word := uint16(s.memory[s.pc])<<8 | uint16(s.memory[int(s.pc)+1])
	result := in.step(s, word)

	if s.delayTimer > 0 {
		s.delayTimer--
	}
	if s.soundTimer > 0 {
		s.soundTimer--
	}
	return result
}

func (in *Interpreter) step(s *State, word uint16) Result {
	ins, ok := chip8.Decode(word)
	if !ok {
		in.reportUnknown(s.pc, word)
		return UnknownOpcode
	}

	if in.trace {
		in.logger.Debug("Executing instruction",
			log.Hex("pc", s.pc),
			log.Hex("opcode", word),
			log.Stringer("instruction", ins))
	}

	if !in.execute(s, ins) {
		return WaitingForKey
	}
	return Executed
}

func (in *Interpreter) reportUnknown(pc, word uint16) {
	if in.reportedUnknown && in.lastUnknownPC == pc && in.lastUnknownWord == word {
		in.logger.Debug("Unknown opcode", log.Hex("pc", pc), log.Hex("opcode", word))
		return
	}

	in.logger.Warn("Unknown opcode", log.Hex("pc", pc), log.Hex("opcode", word))
	in.reportedUnknown = true
	in.lastUnknownPC = pc
	in.lastUnknownWord = word
}

// randomByte returns a random 8-bit value.
func (in *Interpreter) randomByte() uint8 {
	return uint8(in.rnd.UintN(256))
}
