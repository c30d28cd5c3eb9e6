package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawProgram draws the font glyph 8 at (8, 4) and loops forever.
var drawProgram = []byte{
	0x60, 0x08, // ld V0, $08
	0x61, 0x04, // ld V1, $04
	0xF0, 0x29, // ld F, V0
	0xD0, 0x15, // drw V0, V1, $5
	0x12, 0x08, // jp $208
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func headlessOptions(input string) options.Program {
	opts := options.New()
	opts.Input = input
	opts.Frontend = "headless"
	opts.Cycles = 100
	opts.Quiet = true
	return opts
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, &bytes.Buffer{})

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecute_Headless(t *testing.T) {
	logger := log.NewTestLogger(t)
	var out bytes.Buffer
	p := New(logger, &out)

	opts := headlessOptions(createTempFile(t, drawProgram))
	assert.NoError(t, p.Execute(context.Background(), opts))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, vm.Height)
	// glyph 8 rows: ####, #..#, ####, #..#, ####
	assert.Equal(t, strings.Repeat(".", vm.Width), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "........####...."))
	assert.True(t, strings.HasPrefix(lines[5], "........#..#...."))
	assert.True(t, strings.HasPrefix(lines[6], "........####...."))
}

func TestExecute_List(t *testing.T) {
	logger := log.NewTestLogger(t)
	var out bytes.Buffer
	p := New(logger, &out)

	opts := headlessOptions(createTempFile(t, append(drawProgram, 0xF0)))
	opts.List = true
	assert.NoError(t, p.Execute(context.Background(), opts))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "$0200: 6008  ld V0, $08", lines[0])
	assert.Equal(t, "$0208: 1208  jp $208", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "$020A: F0    .byte $F0", lines[6])
}

func TestExecute_Errors(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, &bytes.Buffer{})

	t.Run("missing file", func(t *testing.T) {
		opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"))
		err := p.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "loading program")
	})

	t.Run("program too large", func(t *testing.T) {
		opts := headlessOptions(createTempFile(t, make([]byte, 3585)))
		err := p.Execute(context.Background(), opts)
		assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
	})

	t.Run("unsupported system", func(t *testing.T) {
		opts := headlessOptions(createTempFile(t, drawProgram))
		opts.System = "nes"
		err := p.Execute(context.Background(), opts)
		assert.ErrorContains(t, err, "unsupported system")
	})

	t.Run("invalid key binding", func(t *testing.T) {
		opts := headlessOptions("")
		opts.Keys = map[string]string{"q": "10"}
		err := p.ExecuteWithImage(context.Background(), drawProgram, opts)
		assert.ErrorContains(t, err, "parsing key bindings")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.ExecuteWithImage(ctx, drawProgram, headlessOptions(""))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestExecuteWithImage_Seed(t *testing.T) {
	logger := log.NewTestLogger(t)

	// draws the font glyph of a random digit
	program := []byte{
		0xC0, 0x0F, // rnd V0, $0F
		0xF0, 0x29, // ld F, V0
		0xD1, 0x15, // drw V1, V1, $5
		0x12, 0x06, // jp $206
	}

	run := func() string {
		var out bytes.Buffer
		p := New(logger, &out)
		opts := headlessOptions("")
		opts.Seed = 1234
		assert.NoError(t, p.ExecuteWithImage(context.Background(), program, opts))
		return out.String()
	}

	assert.Equal(t, run(), run())
}
