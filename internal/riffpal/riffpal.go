// Package riffpal converts color tables to and from Microsoft RIFF
// palette files (PAL form, LOGPALETTE version 3). PAL entries carry no
// alpha channel: imports assign every color full opacity, and exports drop
// alpha on the floor and write a zero flags byte in its place.
package riffpal

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/riff"

	"github.com/pish-pish/bmc2json/pkg/bmc"
)

// Extension is the conventional suffix for RIFF palette files.
const Extension = ".pal"

const palVersion = 3

var (
	riffMagic = []byte("RIFF")
	palType   = riff.FourCC{'P', 'A', 'L', ' '}
	dataType  = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFrom decodes the first data chunk of a RIFF PAL stream.
func ReadFrom(r io.Reader) ([]bmc.Color, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", formType[:])
	}

	for {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("RIFF stream has no data chunk")
		}
		if err != nil {
			return nil, fmt.Errorf("could not read chunk: %w", err)
		}
		if id != dataType {
			continue
		}
		return readPalette(data)
	}
}

func readPalette(r io.Reader) ([]bmc.Color, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("could not read palette version: %w", err)
	}
	if ver := binary.BigEndian.Uint16(buf[:]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %d", ver)
	}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("could not read entry count: %w", err)
	}
	count := binary.LittleEndian.Uint16(buf[:])

	colors := make([]bmc.Color, count)
	var rec [4]byte
	for i := range colors {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("could not read entry %d/%d: %w", i, count, err)
		}
		colors[i] = bmc.Color{R: rec[0], G: rec[1], B: rec[2], A: 0xFF}
	}
	return colors, nil
}

// WriteTo writes the colors as a single-chunk RIFF PAL document. Chunk
// sizes are computed up front, so the stream is written in one pass with
// no patching.
func WriteTo(w io.Writer, colors []bmc.Color) error {
	if len(colors) > 0xFFFF {
		return fmt.Errorf("too many colors for a PAL document: %d", len(colors))
	}

	chunkSize := 2 + 2 + len(colors)*4 // version, count, entries
	docSize := 4 + 4 + 4 + chunkSize   // form type, chunk header, chunk body

	if err := writeAll(w, riffMagic); err != nil {
		return fmt.Errorf("could not write RIFF magic: %w", err)
	}
	if err := writeAll(w, binary.LittleEndian.AppendUint32(nil, uint32(docSize))); err != nil {
		return fmt.Errorf("could not write document size: %w", err)
	}
	if err := writeAll(w, palType[:]); err != nil {
		return fmt.Errorf("could not write content type: %w", err)
	}
	if err := writeAll(w, dataType[:]); err != nil {
		return fmt.Errorf("could not write chunk type: %w", err)
	}
	if err := writeAll(w, binary.LittleEndian.AppendUint32(nil, uint32(chunkSize))); err != nil {
		return fmt.Errorf("could not write chunk size: %w", err)
	}
	if err := writeAll(w, []byte{0x00, palVersion}); err != nil {
		return fmt.Errorf("could not write palette version: %w", err)
	}
	if err := writeAll(w, binary.LittleEndian.AppendUint16(nil, uint16(len(colors)))); err != nil {
		return fmt.Errorf("could not write entry count: %w", err)
	}
	for i, c := range colors {
		if err := writeAll(w, []byte{c.R, c.G, c.B, 0x00}); err != nil {
			return fmt.Errorf("could not write entry %d/%d: %w", i, len(colors), err)
		}
	}
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}
	return nil
}
