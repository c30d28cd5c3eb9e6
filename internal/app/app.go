// Package app provides the main application helpers of the emulator.
package app

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints the program name and version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8vm - CHIP-8 interpreter",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the loaded program and the
// emulation settings.
func PrintInfo(logger *log.Logger, opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.Hz),
	)
	if size == 0 {
		logger.Warn("Program is empty, 0000 executes as cls until the program counter leaves memory")
	}
}
