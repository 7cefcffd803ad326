package riffpal

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pish-pish/bmc2json/pkg/bmc"
)

func TestWriteLayout(t *testing.T) {
	t.Parallel()

	colors := []bmc.Color{
		{R: 0xFF, A: 0x80},
		{R: 0x11, G: 0x22, B: 0x33, A: 0x44},
	}
	var buf bytes.Buffer
	if err := WriteTo(&buf, colors); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()

	if len(data) != 8+16+2*4 {
		t.Fatalf("document length: got %d want %d", len(data), 8+16+2*4)
	}
	if string(data[0:4]) != "RIFF" {
		t.Fatalf("magic: %q", data[0:4])
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 16+2*4 {
		t.Fatalf("document size: got %d want %d", got, 16+2*4)
	}
	if string(data[8:12]) != "PAL " {
		t.Fatalf("content type: %q", data[8:12])
	}
	if string(data[12:16]) != "data" {
		t.Fatalf("chunk type: %q", data[12:16])
	}
	if got := binary.LittleEndian.Uint32(data[16:20]); got != 4+2*4 {
		t.Fatalf("chunk size: got %d want %d", got, 4+2*4)
	}
	if data[20] != 0x00 || data[21] != 0x03 {
		t.Fatalf("palette version bytes: % x", data[20:22])
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Fatalf("entry count: got %d", got)
	}
	// Alpha does not survive: the fourth byte is the flags byte, zero.
	if !bytes.Equal(data[24:28], []byte{0xFF, 0x00, 0x00, 0x00}) {
		t.Fatalf("first entry: % x", data[24:28])
	}
	if !bytes.Equal(data[28:32], []byte{0x11, 0x22, 0x33, 0x00}) {
		t.Fatalf("second entry: % x", data[28:32])
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	colors := []bmc.Color{
		{R: 0xFF, A: 0x80},
		{G: 0xFF, A: 0xFF},
		{R: 0x11, G: 0x22, B: 0x33, A: 0x44},
	}
	var buf bytes.Buffer
	if err := WriteTo(&buf, colors); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(colors) {
		t.Fatalf("read %d entries, want %d", len(got), len(colors))
	}
	for i, c := range got {
		want := colors[i]
		want.A = 0xFF // alpha is not representable in PAL
		if c != want {
			t.Fatalf("entry %d: got %v want %v", i, c, want)
		}
	}
}

func TestEmptyPalette(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTo(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("read %d entries, want 0", len(got))
	}
}

func TestReadRejectsWrongContentType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTo(&buf, []bmc.Color{{A: 0xFF}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()
	copy(data[8:12], "WAVE")

	if _, err := ReadFrom(bytes.NewReader(data)); err == nil ||
		!strings.Contains(err.Error(), "unsupported RIFF content type") {
		t.Fatalf("want content type error, got %v", err)
	}
}

func TestReadRejectsBadVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTo(&buf, []bmc.Color{{A: 0xFF}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()
	data[21] = 0x04

	if _, err := ReadFrom(bytes.NewReader(data)); err == nil ||
		!strings.Contains(err.Error(), "unsupported palette version") {
		t.Fatalf("want version error, got %v", err)
	}
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTo(&buf, []bmc.Color{{R: 1, A: 0xFF}, {R: 2, A: 0xFF}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()

	for _, cut := range []int{2, 10, 18, 26} {
		if _, err := ReadFrom(bytes.NewReader(data[:cut])); err == nil {
			t.Fatalf("cut at %d: want error, got nil", cut)
		}
	}
}
