package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Op identifies a decoded CHIP-8 operation.
type Op int

// All operations of the canonical CHIP-8 instruction set.
const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XNN
	OpSneByte    // 4XNN
	OpSeReg      // 5XY0
	OpLdByte     // 6XNN
	OpAddByte    // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65
)

// opcode maps an instruction word pattern to the operation it encodes.
type opcode struct {
	info chip8.OpcodeInfo
	op   Op
}

// operations maps the pattern values of the retrogolib opcode table to
// operations. Mnemonics like ld cover many operations, the pattern value
// tells them apart.
var operations = map[uint16]Op{
	0x00E0: OpCls,
	0x00EE: OpRet,
	0x1000: OpJp,
	0x2000: OpCall,
	0x3000: OpSeByte,
	0x4000: OpSneByte,
	0x5000: OpSeReg,
	0x6000: OpLdByte,
	0x7000: OpAddByte,
	0x8000: OpLdReg,
	0x8001: OpOr,
	0x8002: OpAnd,
	0x8003: OpXor,
	0x8004: OpAddReg,
	0x8005: OpSub,
	0x8006: OpShr,
	0x8007: OpSubn,
	0x800E: OpShl,
	0x9000: OpSneReg,
	0xA000: OpLdI,
	0xB000: OpJpV0,
	0xC000: OpRnd,
	0xD000: OpDrw,
	0xE09E: OpSkp,
	0xE0A1: OpSknp,
	0xF007: OpLdVxDT,
	0xF00A: OpLdVxK,
	0xF015: OpLdDTVx,
	0xF018: OpLdSTVx,
	0xF01E: OpAddI,
	0xF029: OpLdF,
	0xF033: OpLdB,
	0xF055: OpLdIVx,
	0xF065: OpLdVxI,
}

// dispatchMasks replaces the masks of patterns that classic interpreters
// match on fewer bits: the 0 group only compares the low nibble, so any 0NN0
// clears the screen and any 0NNE returns, and 5XYN and 9XYN ignore the low
// nibble.
var dispatchMasks = map[uint16]uint16{
	0x00E0: 0xF00F,
	0x00EE: 0xF00F,
	0x5000: 0xF000,
	0x9000: 0xF000,
}

// opcodes contains all known instruction patterns, indexed by the high nibble
// of the instruction word. instructions maps every operation to its
// retrogolib instruction definition, which provides the mnemonic.
var opcodes, instructions = buildOpcodes()

// buildOpcodes derives the decode table from the retrogolib opcode table.
// Patterns without an operation, like extensions of later interpreters, are
// left out and decode as unknown.
func buildOpcodes() ([16][]opcode, map[Op]*chip8.Instruction) {
	var table [16][]opcode
	definitions := make(map[Op]*chip8.Instruction, len(operations))

	for nibble, group := range chip8.Opcodes {
		for _, entry := range group {
			op, ok := operations[entry.Info.Value]
			if !ok {
				continue
			}

			info := entry.Info
			if mask, ok := dispatchMasks[info.Value]; ok {
				info = chip8.OpcodeInfo{Value: info.Value & mask, Mask: mask}
			}

			table[nibble] = append(table[nibble], opcode{info: info, op: op})
			definitions[op] = entry.Instruction
		}
	}

	return table, definitions
}
