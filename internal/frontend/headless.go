package frontend

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// headlessBatch is the number of cycles executed between context checks.
const headlessBatch = 256

type headless struct {
	logger *log.Logger
	cycles int
	out    io.Writer
}

func newHeadless(logger *log.Logger, opts options.Program, out io.Writer) *headless {
	return &headless{
		logger: logger,
		cycles: opts.Cycles,
		out:    out,
	}
}

// Run executes the configured number of cycles as fast as possible and
// writes the final framebuffer as text. The run ends early when the program
// waits for a key press, as no key can be pressed without an input device.
func (h *headless) Run(ctx context.Context, emu *emulator.Emulator) error {
	unknown := 0
	for remaining := h.cycles; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(remaining, headlessBatch)
		res := emu.Step(n)
		unknown += res.UnknownOpcodes
		remaining -= n

		if res.WaitingForKey {
			h.logger.Debug("Program waits for a key press, stopping")
			break
		}
	}

	h.logger.Debug("Headless run finished",
		log.Uint64("cycles", emu.Cycles()),
		log.Int("unknown_opcodes", unknown))

	fb := emu.Framebuffer()
	if _, err := fmt.Fprint(h.out, fb.String()); err != nil {
		return fmt.Errorf("writing framebuffer: %w", err)
	}
	return nil
}
