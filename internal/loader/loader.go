// Package loader handles program image loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/vm"
)

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image from the given file. The image has no header
// and is returned as is. Images that do not fit into the program region of the
// memory are rejected without reading the whole file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file, path)
}

// LoadFromReader reads a program image from the given reader, the name is
// used for error messages only.
func (l *Loader) LoadFromReader(reader io.Reader, name string) ([]byte, error) {
	limited := io.LimitReader(reader, chip8.MaxProgramSize+1)
	image, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}

	if len(image) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("file %s: %w: more than %d bytes", name, vm.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return image, nil
}
