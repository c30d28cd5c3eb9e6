package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(t *testing.T, opts options.Program)
	}{
		{
			name: "defaults",
			args: []string{"game.ch8"},
			want: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "game.ch8", opts.Input)
				assert.Equal(t, options.DefaultFrontend, opts.Frontend)
				assert.Equal(t, options.DefaultHz, opts.Hz)
				assert.Equal(t, options.DefaultScale, opts.Scale)
				assert.Equal(t, options.DefaultCycles, opts.Cycles)
				assert.Equal(t, uint64(0), opts.Seed)
				assert.False(t, opts.List)
			},
		},
		{
			name: "emulation flags",
			args: []string{"-frontend", "Headless", "-hz", "700", "-cycles", "50", "-seed", "7", "game.ch8"},
			want: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "headless", opts.Frontend)
				assert.Equal(t, 700, opts.Hz)
				assert.Equal(t, 50, opts.Cycles)
				assert.Equal(t, uint64(7), opts.Seed)
			},
		},
		{
			name: "list and logging flags",
			args: []string{"-list", "-debug", "-q", "-s", "CHIP8", "game.bin"},
			want: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.List)
				assert.True(t, opts.Debug)
				assert.True(t, opts.Quiet)
				assert.Equal(t, "chip8", opts.System)
				assert.Equal(t, "game.bin", opts.Input)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			opts, err := ParseFlags()
			assert.NoError(t, err)
			tt.want(t, opts)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	t.Run("missing rom file", func(t *testing.T) {
		setArgs(t)

		_, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
	})

	t.Run("flag after rom file", func(t *testing.T) {
		setArgs(t, "game.ch8", "-debug")

		_, err := ParseFlags()
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr))
		assert.ErrorContains(t, err, "-debug")
	})
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"frontend", []string{"-frontend", "sdl", "game.ch8"}, "unsupported frontend: sdl"},
		{"hz", []string{"-hz", "0", "game.ch8"}, "invalid cycle rate"},
		{"scale", []string{"-scale", "-1", "game.ch8"}, "invalid scale"},
		{"cycles", []string{"-cycles", "0", "game.ch8"}, "invalid cycle count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip8vm.toml")
	content := "frontend = \"terminal\"\nhz = 900\ncycles = 20\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	setArgs(t, "-c", path, "-hz", "600", "game.ch8")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "terminal", opts.Frontend)
	assert.Equal(t, 600, opts.Hz)
	assert.Equal(t, 20, opts.Cycles)
}

func TestParseFlags_MissingConfigFile(t *testing.T) {
	setArgs(t, "-c", "/nonexistent/chip8vm.toml", "game.ch8")

	_, err := ParseFlags()
	assert.ErrorContains(t, err, "reading config file")
}
