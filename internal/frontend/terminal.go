package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Terminals only report key presses, a pressed key is held for this number
// of frames after its last press.
const holdFrames = 8

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	bell        = "\a"
)

var errNotTerminal = errors.New("standard input is not a terminal")

type terminal struct {
	logger   *log.Logger
	layout   keypad.Layout
	perFrame int
	out      io.Writer

	held  [chip8.KeyCount]int // remaining frames per held key
	sound bool
	drawn bool
}

func newTerminal(logger *log.Logger, opts options.Program, layout keypad.Layout, out io.Writer) *terminal {
	return &terminal{
		logger:   logger,
		layout:   layout,
		perFrame: emulator.CyclesPerFrame(opts.Hz, emulator.FrameRate),
		out:      out,
	}
}

// Run switches the terminal to raw mode and runs the emulator until escape
// or ctrl-c is pressed or the context is canceled.
func (t *terminal) Run(ctx context.Context, emu *emulator.Emulator) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// the reader goroutine stays blocked in the read until the next key
	// press or the process exits, done stops it from delivering further keys
	input := make(chan byte, 16)
	done := make(chan struct{})
	defer close(done)
	go readInput(os.Stdin, input, done)

	ticker := time.NewTicker(time.Second / emulator.FrameRate)
	defer ticker.Stop()

	return t.loop(ctx, emu, input, ticker.C)
}

// readInput forwards the bytes read from reader to input until the reader
// fails or done is closed.
func readInput(reader io.Reader, input chan<- byte, done <-chan struct{}) {
	defer close(input)

	buf := make([]byte, 32)
	for {
		n, err := reader.Read(buf)
		for _, b := range buf[:n] {
			select {
			case input <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// loop processes key input and runs one frame of cycles per tick.
func (t *terminal) loop(ctx context.Context, emu *emulator.Emulator, input <-chan byte, tick <-chan time.Time) error {
	if _, err := io.WriteString(t.out, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.out, showCursor)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case b, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			if b == keyEscape || b == keyCtrlC {
				return nil
			}
			t.press(emu, b)

		case <-tick:
			if err := t.frame(emu); err != nil {
				return err
			}
		}
	}
}

func (t *terminal) press(emu *emulator.Emulator, b byte) {
	key, ok := t.layout.Lookup(string(rune(b)))
	if !ok {
		return
	}
	if t.held[key] == 0 {
		emu.PressKey(key)
	}
	t.held[key] = holdFrames
}

// frame runs the cycles of one frame, releases expired keys and renders the
// display if a cycle of the frame requested a redraw.
func (t *terminal) frame(emu *emulator.Emulator) error {
	res := emu.Step(t.perFrame)

	for key, frames := range t.held {
		if frames == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 {
			emu.ReleaseKey(uint8(key))
		}
	}

	var out strings.Builder
	if sound := emu.SoundActive(); sound != t.sound {
		t.sound = sound
		if sound {
			out.WriteString(bell)
		}
	}

	if res.Redraw || !t.drawn {
		t.drawn = true
		fb := emu.Framebuffer()
		out.WriteString(cursorHome)
		out.WriteString(renderHalfBlocks(&fb))
	}

	if out.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(t.out, out.String()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// renderHalfBlocks renders two framebuffer rows per text line using unicode
// half block characters. Lines end with CR LF as the terminal is in raw mode.
func renderHalfBlocks(fb *vm.Framebuffer) string {
	var sb strings.Builder
	sb.Grow((vm.Width*3 + 2) * vm.Height / 2)

	for y := 0; y < vm.Height; y += 2 {
		for x := range vm.Width {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
