package chip8

import (
	"fmt"
)

// CHIP-8 memory layout and machine dimensions.
const (
	// MemorySize is the size of the complete address space.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space (4KB total).
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits between ProgramStart and MaxAddress.
	MaxProgramSize = MemorySize - ProgramStart

	// FontAddress is the memory address of the first built-in font glyph.
	FontAddress = 0x000

	// FontGlyphSize is the number of bytes (rows) of one font glyph.
	FontGlyphSize = 5

	DisplayWidth  = 64
	DisplayHeight = 32

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// FlagRegister is the register used as implicit carry, borrow and collision flag.
	FlagRegister = 0xF
)

// Disassemble returns a linear listing of the given program image, assuming
// that it is loaded at the base address. Words that do not decode to a known
// instruction are listed as data. Instructions that the previous skip
// instruction can step over are indented, an empty line follows every
// unconditional jump or return that ends a block of code.
func Disassemble(image []byte, base uint16) []string {
	lines := make([]string, 0, len(image)/opcodeSize+1)

	skippable := false
	for offset := 0; offset < len(image); offset += opcodeSize {
		address := base + uint16(offset)
		word, ok := ReadWord(image[offset:])
		if !ok {
			lines = append(lines, fmt.Sprintf("$%04X: %02X    .byte $%02X", address, image[offset], image[offset]))
			break
		}

		ins, _ := Decode(word)
		indent := ""
		if skippable {
			indent = "  "
		}
		lines = append(lines, fmt.Sprintf("$%04X: %04X  %s%s", address, word, indent, ins))

		if !skippable && (ins.IsJump() || ins.IsReturn()) && offset+opcodeSize < len(image) {
			lines = append(lines, "")
		}
		skippable = ins.IsSkip()
	}

	return lines
}
