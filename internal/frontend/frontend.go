// Package frontend presents the emulated display and feeds keypad input.
//
// Three frontends are supported: a scaled desktop window, an interactive
// terminal renderer and a headless runner that executes a fixed number of
// cycles and prints the final framebuffer.
package frontend

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Supported frontend names.
const (
	Window   = "window"
	Terminal = "terminal"
	Headless = "headless"
)

// Frontend runs an emulator until the user quits, the program finishes or
// the context is canceled.
type Frontend interface {
	Run(ctx context.Context, emu *emulator.Emulator) error
}

// New returns the frontend selected in the options. Output of the terminal
// and headless frontends is written to out.
func New(logger *log.Logger, opts options.Program, layout keypad.Layout, out io.Writer) (Frontend, error) {
	switch opts.Frontend {
	case Window:
		return newWindow(logger, opts, layout)
	case Terminal:
		return newTerminal(logger, opts, layout, out), nil
	case Headless:
		return newHeadless(logger, opts, out), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
