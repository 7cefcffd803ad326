package bmc

import "encoding/binary"

var zeroPad [containerPad]byte

// writer appends little-endian fields to an in-memory buffer. Building the
// file in memory lets section sizes be patched in place, so the write path
// never seeks.
type writer struct {
	buf []byte
}

func (w *writer) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) pad(n int) {
	w.buf = append(w.buf, zeroPad[:n]...)
}

func (w *writer) color(c Color) {
	w.buf = append(w.buf, c.R, c.G, c.B, c.A)
}

// section writes a self-sizing frame: the signature, a size placeholder,
// then whatever body appends. The placeholder is patched with the byte
// count the body produced. Nested frames settle inner sizes first since
// the inner body returns first.
func (w *writer) section(signature string, body func(*writer)) {
	w.buf = append(w.buf, signature...)
	sizeOff := len(w.buf)
	w.u32(0) // placeholder, patched below
	body(w)
	binary.LittleEndian.PutUint32(w.buf[sizeOff:], uint32(len(w.buf)-sizeOff-sizeWidth))
}
