package bmc

import (
	"fmt"
	"os"
	"path/filepath"
)

// Header records how a decoded section announced itself: its signature and
// the size the file declared. Declared sizes are informational; Decode
// stores them without enforcing them, and Encode ignores them in favor of
// measured sizes.
type Header struct {
	Signature string
	Size      uint32
}

// Table is the color table section of a container.
type Table struct {
	Header Header
	Colors []Color
}

// Container is one decoded or constructed BMC file.
type Container struct {
	Header Header
	Table  Table
}

// New builds a container around colors. Headers carry the format
// signatures and zero sizes; sizes are computed when the container is
// encoded. The slice is referenced, not copied.
func New(colors []Color) *Container {
	return &Container{
		Header: Header{Signature: ContainerMagic},
		Table: Table{
			Header: Header{Signature: TableMagic},
			Colors: colors,
		},
	}
}

// Decode parses a binary container image.
func Decode(data []byte) (*Container, error) {
	r := &reader{data: data}

	size, err := r.section(ContainerMagic)
	if err != nil {
		return nil, fmt.Errorf("container header: %w", err)
	}
	sections, err := r.readU32()
	if err != nil {
		return nil, fmt.Errorf("section count: %w", err)
	}
	if sections != CurrentSectionCount {
		return nil, fmt.Errorf("%w: %d", ErrSectionCount, sections)
	}
	if err := r.skip(containerPad); err != nil {
		return nil, fmt.Errorf("container padding: %w", err)
	}

	table, err := readTable(r)
	if err != nil {
		return nil, err
	}

	return &Container{
		Header: Header{Signature: ContainerMagic, Size: size},
		Table:  *table,
	}, nil
}

func readTable(r *reader) (*Table, error) {
	size, err := r.section(TableMagic)
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	count, err := r.readU16()
	if err != nil {
		return nil, fmt.Errorf("entry count: %w", err)
	}
	if err := r.skip(tablePad); err != nil {
		return nil, fmt.Errorf("table padding: %w", err)
	}

	colors := make([]Color, count)
	for i := range colors {
		c, err := r.readColor()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		colors[i] = c
	}

	return &Table{
		Header: Header{Signature: TableMagic, Size: size},
		Colors: colors,
	}, nil
}

// Encode renders the container in its binary form. Section sizes are
// measured while writing; sizes stored on the headers play no part.
func (c *Container) Encode() ([]byte, error) {
	if len(c.Table.Colors) > MaxTableEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrTableTooLarge, len(c.Table.Colors))
	}

	var w writer
	w.section(ContainerMagic, func(w *writer) {
		w.u32(CurrentSectionCount)
		w.pad(containerPad)
		w.section(TableMagic, func(w *writer) {
			w.u16(uint16(len(c.Table.Colors)))
			w.pad(tablePad)
			for _, col := range c.Table.Colors {
				w.color(col)
			}
			w.pad(containerPad) // trailing padding sits inside the table span
		})
	})
	return w.buf, nil
}

// WriteFile encodes the container and writes it through a temporary file
// renamed into place, so a fault cannot leave a half-written container
// behind.
func (c *Container) WriteFile(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
