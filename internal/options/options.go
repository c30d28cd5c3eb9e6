// Package options contains the program options.
package options

// Default values of the emulation options.
const (
	DefaultFrontend = "window"
	DefaultHz       = 500 // matches a 2ms pause between cycles
	DefaultScale    = 10
	DefaultCycles   = 1000
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image to run
	Config string // optional TOML config file
	System string // system name, auto-detected if empty
}

// Flags contains behavior options.
type Flags struct {
	Frontend string // window, terminal or headless
	List     bool   // print a disassembly listing and exit
	Debug    bool
	Quiet    bool
}

// Emulation contains options that control the running machine.
type Emulation struct {
	Hz     int    // cycles per second
	Scale  int    // window pixel scale
	Cycles int    // number of cycles to run in headless mode
	Seed   uint64 // random seed, 0 for a time based seed

	Keys map[string]string // physical key name to keypad digit, default layout if empty
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
}

// New returns program options with default values.
func New() Program {
	return Program{
		Flags: Flags{
			Frontend: DefaultFrontend,
		},
		Emulation: Emulation{
			Hz:     DefaultHz,
			Scale:  DefaultScale,
			Cycles: DefaultCycles,
		},
	}
}
