// Package chip8 provides the CHIP-8 instruction set definition used by the interpreter.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - FontAddress-0x04F: built-in hexadecimal font, 16 glyphs of FontGlyphSize bytes
//   - 0x050-0x1FF: unused interpreter area
//   - ProgramStart-MaxAddress: program image, at most MaxProgramSize bytes
//
// The display buffer (DisplayWidth x DisplayHeight pixels) and the call stack
// are maintained outside of the 4KB address space.
//
// # Instruction Set
//
// All instructions are 2 bytes, stored big-endian. Decode converts a raw
// instruction word into an Instruction that carries the operation and all
// operand fields, so that decoding and execution can be tested separately:
//
//	ins, ok := chip8.Decode(0xD125)
//	if !ok {
//		return fmt.Errorf("unknown opcode %04X", word)
//	}
//	fmt.Println(ins) // drw V1, V2, $5
//
// Mnemonic names and the skip classification come from the retrogolib CHIP-8
// CPU definitions.
package chip8
