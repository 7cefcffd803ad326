package bmc

import (
	"fmt"
	"strconv"
)

// Color is one RGBA table entry. Channels are independent; the zero value
// is fully transparent black.
type Color struct {
	R, G, B, A uint8
}

// String renders the color as eight uppercase hex digits, red channel
// first. Each channel is formatted on its own, so leading zero bytes
// survive: Color{0, 255, 0, 1} prints as "00FF0001".
func (c Color) String() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses an eight-hex-digit string, red channel first. Hex case
// is ignored; anything that is not exactly four hex byte pairs is an
// ErrColorSyntax fault.
func ParseColor(s string) (Color, error) {
	if len(s) != 8 {
		return Color{}, fmt.Errorf("%w: %q is not 8 hex digits", ErrColorSyntax, s)
	}
	var ch [4]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q is not 8 hex digits", ErrColorSyntax, s)
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
