// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/options"
)

// Frontends lists the supported frontend names.
var Frontends = []string{"window", "terminal", "headless"}

// ParseFlags parses command line flags, merges an optional config file and
// returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if opts.Config != "" {
		file, err := config.LoadFile(opts.Config)
		if err != nil {
			return opts, err
		}

		explicit := map[string]bool{}
		flags.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})
		config.Apply(file, &opts, explicit)
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.System = strings.ToLower(opts.System)

	valid := false
	for _, name := range Frontends {
		if opts.Frontend == name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(Frontends, ", "))
	}

	switch {
	case opts.Hz <= 0:
		return fmt.Errorf("invalid cycle rate %d: must be positive", opts.Hz)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	case opts.Cycles <= 0:
		return fmt.Errorf("invalid cycle count %d: must be positive", opts.Cycles)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Config, "c", "", "TOML config file with emulation options and key bindings")
	flags.StringVar(&opts.System, "s", "", "system of the rom file (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Frontend, "frontend", options.DefaultFrontend, "frontend to run the rom with (window/terminal/headless)")
	flags.IntVar(&opts.Hz, "hz", options.DefaultHz, "number of interpreter cycles per second")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixel scale")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "number of cycles to run with the headless frontend")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, time based if 0")
	flags.BoolVar(&opts.List, "list", false, "print a disassembly listing of the rom file and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
