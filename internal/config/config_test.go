package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
frontend = "terminal"
hz = 700
scale = 4
seed = 42

[keys]
k = "a"
`)

	file, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "terminal", file.Frontend)
	assert.Equal(t, 700, file.Hz)
	assert.Equal(t, 4, file.Scale)
	assert.Equal(t, 0, file.Cycles)
	assert.Equal(t, uint64(42), file.Seed)
	assert.Equal(t, "a", file.Keys["k"])
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile("/nonexistent/chip8vm.toml")
		assert.Error(t, err)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "hz = = 1"))
		assert.ErrorContains(t, err, "parsing config file")
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "speed = 1"))
		assert.ErrorContains(t, err, "unknown option 'speed'")
	})
}

func TestApply(t *testing.T) {
	file := File{
		Frontend: "terminal",
		Hz:       700,
		Scale:    4,
		Keys:     map[string]string{"k": "a"},
	}

	opts := options.New()
	Apply(file, &opts, map[string]bool{"hz": true})

	assert.Equal(t, "terminal", opts.Frontend)
	assert.Equal(t, options.DefaultHz, opts.Hz)
	assert.Equal(t, 4, opts.Scale)
	assert.Equal(t, options.DefaultCycles, opts.Cycles)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.Equal(t, "a", opts.Keys["k"])
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chip8vm.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}
