//go:build headless

package frontend

import (
	"errors"

	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

func newWindow(_ *log.Logger, _ options.Program, _ keypad.Layout) (Frontend, error) {
	return nil, errors.New("window frontend is not available in headless builds")
}
