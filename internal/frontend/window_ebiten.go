//go:build !headless

package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "chip8vm"

// pixel colors as RGBA
var (
	colorOn  = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	colorOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

type keyBinding struct {
	key    ebiten.Key
	keypad uint8
}

// window renders the display in a desktop window and implements ebiten.Game.
type window struct {
	logger   *log.Logger
	scale    int
	perFrame int
	bindings []keyBinding

	ctx    context.Context
	emu    *emulator.Emulator
	image  *ebiten.Image
	pixels []byte
	dirty  bool // the image does not show the current framebuffer
	sound  bool
}

func newWindow(logger *log.Logger, opts options.Program, layout keypad.Layout) (Frontend, error) {
	bindings, err := bindKeys(layout)
	if err != nil {
		return nil, err
	}

	return &window{
		logger:   logger,
		scale:    opts.Scale,
		perFrame: emulator.CyclesPerFrame(opts.Hz, emulator.FrameRate),
		bindings: bindings,
		pixels:   make([]byte, vm.Width*vm.Height*4),
	}, nil
}

// bindKeys resolves the physical key names of the layout to ebiten keys,
// using the ebiten key names like "q", "1", "space" or "arrowup".
func bindKeys(layout keypad.Layout) ([]keyBinding, error) {
	bindings := make([]keyBinding, 0, len(layout))
	for name, digit := range layout {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("unsupported window key '%s': %w", name, err)
		}
		bindings = append(bindings, keyBinding{key: key, keypad: digit})
	}
	return bindings, nil
}

// Run opens the window and blocks until it is closed, escape is pressed or
// the context is canceled.
func (w *window) Run(ctx context.Context, emu *emulator.Emulator) error {
	w.ctx = ctx
	w.emu = emu

	ebiten.SetWindowSize(vm.Width*w.scale, vm.Height*w.scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(emulator.FrameRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return ctx.Err()
}

// Update runs the cycles of one frame with the current keyboard state.
func (w *window) Update() error {
	if w.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var keys [chip8.KeyCount]bool
	for _, binding := range w.bindings {
		if ebiten.IsKeyPressed(binding.key) {
			keys[binding.keypad] = true
		}
	}
	w.emu.SetKeys(keys)
	if res := w.emu.Step(w.perFrame); res.Redraw {
		w.dirty = true
	}

	if sound := w.emu.SoundActive(); sound != w.sound {
		w.sound = sound
		if sound {
			ebiten.SetWindowTitle(windowTitle + " ♪")
		} else {
			ebiten.SetWindowTitle(windowTitle)
		}
	}
	return nil
}

// Draw renders the framebuffer, the screen is scaled by ebiten. The image is
// only updated after a cycle requested a redraw.
func (w *window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(vm.Width, vm.Height)
		w.dirty = true
	}

	if w.dirty {
		fillPixels(w.pixels, w.emu.Framebuffer())
		w.image.WritePixels(w.pixels)
		w.dirty = false
	}
	screen.DrawImage(w.image, nil)
}

func (w *window) Layout(_, _ int) (int, int) {
	return vm.Width, vm.Height
}

// fillPixels converts the framebuffer to RGBA pixel data.
func fillPixels(pixels []byte, fb vm.Framebuffer) {
	for y := range vm.Height {
		for x := range vm.Width {
			color := colorOff
			if fb.Pixel(x, y) {
				color = colorOn
			}
			copy(pixels[(y*vm.Width+x)*4:], color[:])
		}
	}
}
