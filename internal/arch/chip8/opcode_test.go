package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		op   Op
	}{
		{"clear screen", 0x00E0, OpCls},
		{"clear screen low nibble dispatch", 0x0000, OpCls},
		{"clear screen any middle bits", 0x0120, OpCls},
		{"return", 0x00EE, OpRet},
		{"return low nibble dispatch", 0x000E, OpRet},
		{"return any middle bits", 0x012E, OpRet},
		{"jump", 0x1234, OpJp},
		{"call", 0x2ABC, OpCall},
		{"skip equal byte", 0x3A12, OpSeByte},
		{"skip not equal byte", 0x4A12, OpSneByte},
		{"skip equal register", 0x5AB0, OpSeReg},
		{"skip equal register any low nibble", 0x5AB1, OpSeReg},
		{"load byte", 0x6A12, OpLdByte},
		{"add byte", 0x7A12, OpAddByte},
		{"load register", 0x8AB0, OpLdReg},
		{"or", 0x8AB1, OpOr},
		{"and", 0x8AB2, OpAnd},
		{"xor", 0x8AB3, OpXor},
		{"add register", 0x8AB4, OpAddReg},
		{"sub", 0x8AB5, OpSub},
		{"shift right", 0x8AB6, OpShr},
		{"subn", 0x8AB7, OpSubn},
		{"shift left", 0x8ABE, OpShl},
		{"skip not equal register", 0x9AB0, OpSneReg},
		{"skip not equal register any low nibble", 0x9ABF, OpSneReg},
		{"load index", 0xA123, OpLdI},
		{"jump plus V0", 0xB123, OpJpV0},
		{"random", 0xCA0F, OpRnd},
		{"draw", 0xDAB5, OpDrw},
		{"skip key pressed", 0xEA9E, OpSkp},
		{"skip key not pressed", 0xEAA1, OpSknp},
		{"load delay timer", 0xFA07, OpLdVxDT},
		{"wait key", 0xFA0A, OpLdVxK},
		{"set delay timer", 0xFA15, OpLdDTVx},
		{"set sound timer", 0xFA18, OpLdSTVx},
		{"add index", 0xFA1E, OpAddI},
		{"font glyph", 0xFA29, OpLdF},
		{"bcd", 0xFA33, OpLdB},
		{"store registers", 0xFA55, OpLdIVx},
		{"load registers", 0xFA65, OpLdVxI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, ok := Decode(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	words := []uint16{
		0x0123, // machine code routine call
		0x00E1,
		0x8AB8,
		0x8ABF,
		0xEA00,
		0xEA9F,
		0xFA00,
		0xFA56,
		0xFAFF,
	}

	for _, word := range words {
		ins, ok := Decode(word)
		assert.False(t, ok)
		assert.Equal(t, OpInvalid, ins.Op)
		assert.Equal(t, word, ins.Word)
	}
}

func TestDecode_Operands(t *testing.T) {
	ins, ok := Decode(0xD12F)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x1), ins.X)
	assert.Equal(t, uint8(0x2), ins.Y)
	assert.Equal(t, uint8(0xF), ins.N)
	assert.Equal(t, uint8(0x2F), ins.NN)
	assert.Equal(t, uint16(0x12F), ins.NNN)
}

func TestOpcodes_HaveInstruction(t *testing.T) {
	for nibble, group := range opcodes {
		for _, opc := range group {
			assert.Equal(t, uint16(nibble)<<12, opc.info.Value&0xF000)
			assert.NotNil(t, instructions[opc.op])
		}
	}
}

func TestOpcodes_FromLibrary(t *testing.T) {
	libraryOps := 0
	for nibble, group := range chip8.Opcodes {
		for _, entry := range group {
			op, ok := operations[entry.Info.Value]
			assert.True(t, ok)
			assert.Equal(t, entry.Instruction, instructions[op])
			libraryOps++
		}
		assert.Len(t, opcodes[nibble], len(group))
	}
	assert.Equal(t, len(operations), libraryOps)
}

func TestReadWord(t *testing.T) {
	word, ok := ReadWord([]byte{0xA2, 0x1E, 0xFF})
	assert.True(t, ok)
	assert.Equal(t, uint16(0xA21E), word)

	_, ok = ReadWord([]byte{0xA2})
	assert.False(t, ok)
}
