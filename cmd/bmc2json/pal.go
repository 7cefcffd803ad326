package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pish-pish/bmc2json/internal/riffpal"
	"github.com/pish-pish/bmc2json/pkg/bmc"
)

// readPAL loads a RIFF palette file and wraps its colors in a container.
func readPAL(path string) (*bmc.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	colors, err := riffpal.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return bmc.New(colors), nil
}

// writePAL writes colors as a RIFF palette, going through a temp file so a
// failed write cannot leave a half-written palette behind.
func writePAL(path string, colors []bmc.Color) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	if err := riffpal.WriteTo(tmp, colors); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not rename temp file: %w", err)
	}
	return nil
}
