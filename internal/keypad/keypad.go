// Package keypad maps physical key names to the 16 keys of the CHIP-8 hexadecimal keypad.
//
// The keypad layout of the original hardware is:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
package keypad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// Layout maps lower case physical key names to keypad indices.
type Layout map[string]uint8

// Default returns the layout that maps the left block of a keyboard to the keypad:
//
//	1 2 3 4
//	Q W E R
//	A S D F
//	Y X C V
func Default() Layout {
	return Layout{
		"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
		"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
		"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
		"y": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
	}
}

// Parse builds a layout from a map of physical key names to hexadecimal
// keypad digits. An empty map returns the default layout.
func Parse(keys map[string]string) (Layout, error) {
	if len(keys) == 0 {
		return Default(), nil
	}

	layout := make(Layout, len(keys))
	for name, digit := range keys {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("empty key name for keypad digit '%s'", digit)
		}

		value, err := strconv.ParseUint(strings.TrimSpace(digit), 16, 8)
		if err != nil || value >= chip8.KeyCount {
			return nil, fmt.Errorf("invalid keypad digit '%s' for key '%s'", digit, name)
		}
		layout[name] = uint8(value)
	}
	return layout, nil
}

// Lookup returns the keypad index for the given physical key name.
func (l Layout) Lookup(name string) (uint8, bool) {
	key, ok := l[strings.ToLower(name)]
	return key, ok
}
