package vm

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

const flag = chip8.FlagRegister

// execute runs a decoded instruction. It returns false if the instruction
// did not complete because it is waiting for a key press, in which case the
// state is unchanged.
//
// Instructions that write the flag register VF do so before writing their
// result, and compute the result from the register values after the flag
// write. An X or Y operand of VF therefore observes the new flag.
func (in *Interpreter) execute(s *State, ins chip8.Instruction) bool {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case chip8.OpCls:
		s.display.clear()
		s.redraw = true
		s.pc += 2

	case chip8.OpRet:
		s.sp--
		s.pc = s.stack[s.sp]
		s.pc += 2

	case chip8.OpJp:
		s.pc = ins.NNN

	case chip8.OpCall:
		s.stack[s.sp] = s.pc
		s.sp++
		s.pc = ins.NNN

	case chip8.OpSeByte:
		s.skipIf(s.v[x] == ins.NN)

	case chip8.OpSneByte:
		s.skipIf(s.v[x] != ins.NN)

	case chip8.OpSeReg:
		s.skipIf(s.v[x] == s.v[y])

	case chip8.OpSneReg:
		s.skipIf(s.v[x] != s.v[y])

	case chip8.OpLdByte:
		s.v[x] = ins.NN
		s.pc += 2

	case chip8.OpAddByte:
		s.v[x] += ins.NN
		s.pc += 2

	case chip8.OpLdReg, chip8.OpOr, chip8.OpAnd, chip8.OpXor,
		chip8.OpAddReg, chip8.OpSub, chip8.OpShr, chip8.OpSubn, chip8.OpShl:
		s.arithmetic(ins.Op, x, y)
		s.pc += 2

	case chip8.OpLdI:
		s.i = ins.NNN
		s.pc += 2

	case chip8.OpJpV0:
		s.pc = ins.NNN + uint16(s.v[0])

	case chip8.OpRnd:
		s.v[x] = in.randomByte() & ins.NN
		s.pc += 2

	case chip8.OpDrw:
		s.draw(x, y, ins.N)
		s.redraw = true
		s.pc += 2

	case chip8.OpSkp:
		s.skipIf(s.keys[s.v[x]])

	case chip8.OpSknp:
		s.skipIf(!s.keys[s.v[x]])

	case chip8.OpLdVxK:
		return s.waitKey(x)

	default:
		s.loadStore(ins.Op, x)
		s.pc += 2
	}

	return true
}

// skipIf skips the next instruction if the condition is true.
func (s *State) skipIf(condition bool) {
	if condition {
		s.pc += 4
	} else {
		s.pc += 2
	}
}

// arithmetic executes the register to register operations of the 8XY group.
// All results wrap around at 8 bits.
func (s *State) arithmetic(op chip8.Op, x, y uint8) {
	switch op {
	case chip8.OpLdReg:
		s.v[x] = s.v[y]

	case chip8.OpOr:
		s.v[x] |= s.v[y]

	case chip8.OpAnd:
		s.v[x] &= s.v[y]

	case chip8.OpXor:
		s.v[x] ^= s.v[y]

	case chip8.OpAddReg:
		s.v[flag] = boolToFlag(uint16(s.v[x])+uint16(s.v[y]) > 0xFF)
		s.v[x] += s.v[y]

	case chip8.OpSub:
		s.v[flag] = boolToFlag(s.v[y] <= s.v[x])
		s.v[x] -= s.v[y]

	case chip8.OpSubn:
		s.v[flag] = boolToFlag(s.v[x] <= s.v[y])
		s.v[x] = s.v[y] - s.v[x]

	case chip8.OpShr:
		s.v[flag] = s.v[x] & 0x01
		s.v[x] >>= 1

	case chip8.OpShl:
		s.v[flag] = s.v[x] >> 7
		s.v[x] <<= 1
	}
}

// loadStore executes the timer, index and memory transfer operations of the
// FX group, except for the key wait.
func (s *State) loadStore(op chip8.Op, x uint8) {
	switch op {
	case chip8.OpLdVxDT:
		s.v[x] = s.delayTimer

	case chip8.OpLdDTVx:
		s.delayTimer = s.v[x]

	case chip8.OpLdSTVx:
		s.soundTimer = s.v[x]

	case chip8.OpAddI:
		s.v[flag] = boolToFlag(s.i+uint16(s.v[x]) > chip8.MaxAddress)
		s.i += uint16(s.v[x])

	case chip8.OpLdF:
		s.i = chip8.FontAddress + uint16(s.v[x])*chip8.FontGlyphSize

	case chip8.OpLdB:
		value := s.v[x]
		s.memory[s.i] = value / 100
		s.memory[int(s.i)+1] = (value / 10) % 10
		s.memory[int(s.i)+2] = value % 10

	case chip8.OpLdIVx:
		for reg := 0; reg <= int(x); reg++ {
			s.memory[int(s.i)+reg] = s.v[reg]
		}

	case chip8.OpLdVxI:
		for reg := 0; reg <= int(x); reg++ {
			s.v[reg] = s.memory[int(s.i)+reg]
		}
	}
}

// draw XORs a sprite of the given height, read from memory at the index
// register, onto the framebuffer at (Vx, Vy). Coordinates wrap around per
// pixel. VF is set to 1 if any lit pixel was turned off.
func (s *State) draw(x, y, height uint8) {
	s.v[flag] = 0

	for row := range int(height) {
		sprite := s.memory[int(s.i)+row]
		py := (int(s.v[y]) + row) % Height

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (int(s.v[x]) + col) % Width
			s.v[flag] |= s.display.flip(px, py)
		}
	}
}

// waitKey stores the highest pressed key in Vx and advances the program
// counter. If no key is pressed the state is left unchanged and false is
// returned.
func (s *State) waitKey(x uint8) bool {
	pressed := false
	for key := range chip8.KeyCount {
		if s.keys[key] {
			s.v[x] = uint8(key)
			pressed = true
		}
	}
	if !pressed {
		return false
	}

	s.pc += 2
	return true
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
