package chip8

// Decode converts a big-endian CHIP-8 instruction word into an instruction.
// It dispatches on the high nibble first and then matches the sub-patterns
// of that group. The second return value is false for unknown instruction
// words.
func Decode(word uint16) (Instruction, bool) {
	firstNibble := (word & 0xF000) >> 12

	var op Op
	for _, opc := range opcodes[firstNibble] {
		if opc.info.Mask&word == opc.info.Value {
			op = opc.op
			break
		}
	}
	if op == OpInvalid {
		return Instruction{Word: word}, false
	}

	return Instruction{
		Op:   op,
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}, true
}

// ReadWord reads a big-endian instruction word from the given data.
// It returns false if the data is shorter than an instruction.
func ReadWord(data []byte) (uint16, bool) {
	if len(data) < opcodeSize {
		return 0, false
	}
	return uint16(data[0])<<8 | uint16(data[1]), true
}
