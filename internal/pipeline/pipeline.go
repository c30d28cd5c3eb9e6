// Package pipeline orchestrates the stages of running a program: system
// detection, loading, machine setup and the frontend run loop.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	output   io.Writer
}

// New creates a new emulation pipeline. Listings and the output of the
// terminal and headless frontends are written to output.
func New(logger *log.Logger, output io.Writer) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		output:   output,
	}
}

// Execute runs the complete emulation pipeline for the input file.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	if _, err := p.detector.Detect(opts); err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	image, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithImage(ctx, image, opts)
}

// ExecuteWithImage runs the pipeline with an already loaded program image.
// This is useful for testing and programmatic usage.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, image []byte, opts options.Program) error {
	if opts.List {
		return p.list(image)
	}

	layout, err := keypad.Parse(opts.Keys)
	if err != nil {
		return fmt.Errorf("parsing key bindings: %w", err)
	}

	fe, err := frontend.New(p.logger, opts, layout, p.output)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	emu, err := p.createEmulator(image, opts)
	if err != nil {
		return err
	}

	app.PrintInfo(p.logger, opts, len(image))

	if err := fe.Run(ctx, emu); err != nil {
		return fmt.Errorf("running %s frontend: %w", opts.Frontend, err)
	}

	p.logger.Debug("Emulation stopped", log.Int("cycles", int(emu.Cycles())))
	return nil
}

// createEmulator sets up a fresh machine with the program loaded.
func (p *Pipeline) createEmulator(image []byte, opts options.Program) (*emulator.Emulator, error) {
	state := vm.New()
	if err := state.LoadProgram(image); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	interpOpts := []vm.Option{vm.WithTrace(opts.Debug)}
	if opts.Seed != 0 {
		interpOpts = append(interpOpts, vm.WithSeed(opts.Seed))
	}
	interp := vm.NewInterpreter(p.logger, interpOpts...)

	return emulator.New(p.logger, state, interp), nil
}

// list writes a disassembly listing of the program image.
func (p *Pipeline) list(image []byte) error {
	lines := chip8.Disassemble(image, chip8.ProgramStart)
	if len(lines) == 0 {
		return nil
	}

	if _, err := io.WriteString(p.output, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}
