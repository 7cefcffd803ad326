package bmc

import (
	"errors"
	"strings"
	"testing"
)

func TestColorTextRoundTrip(t *testing.T) {
	t.Parallel()

	colors := []Color{
		{},
		{R: 0xFF, A: 0x80},
		{G: 0xFF, A: 0xFF},
		{B: 0xFF, A: 0xFF},
		{R: 0x11, G: 0x22, B: 0x33, A: 0x44},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
	for _, c := range colors {
		s := c.String()
		if len(s) != 8 || s != strings.ToUpper(s) {
			t.Fatalf("text form %q is not 8 uppercase hex digits", s)
		}
		back, err := ParseColor(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if back != c {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", c, s, back)
		}
	}
}

func TestColorTextKeepsLeadingZeroBytes(t *testing.T) {
	t.Parallel()

	if got := (Color{R: 0, G: 255, B: 0, A: 1}).String(); got != "00FF0001" {
		t.Fatalf("leading zero channels lost: got %q want %q", got, "00FF0001")
	}
}

func TestParseColorAcceptsLowerCase(t *testing.T) {
	t.Parallel()

	c, err := ParseColor("ff00aa80")
	if err != nil {
		t.Fatalf("parse lowercase: %v", err)
	}
	if (c != Color{R: 0xFF, B: 0xAA, A: 0x80}) {
		t.Fatalf("unexpected color: %+v", c)
	}
}

func TestParseColorFaults(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"FF0001",    // too short
		"FF0000801", // too long
		"GG000080",  // not hex
		"FF 00080",  // embedded space
		"+F000080",  // sign is not a digit
	}
	for _, s := range bad {
		if _, err := ParseColor(s); !errors.Is(err, ErrColorSyntax) {
			t.Fatalf("ParseColor(%q): want ErrColorSyntax, got %v", s, err)
		}
	}
}
