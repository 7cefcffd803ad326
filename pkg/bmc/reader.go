package bmc

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// reader walks an in-memory container image, tracking the byte offset for
// fault reporting. Reading past the end of the image is a truncation
// fault; declared section sizes never clamp a read.
type reader struct {
	data []byte
	off  int
}

func (r *reader) readN(n int) ([]byte, error) {
	if r.off+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readU16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) skip(n int) error {
	_, err := r.readN(n)
	return err
}

func (r *reader) readColor() (Color, error) {
	b, err := r.readN(4)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// section reads a frame opening: the signature is verified against the
// format constant and the declared size is returned as read.
func (r *reader) section(signature string) (uint32, error) {
	b, err := r.readN(len(signature))
	if err != nil {
		return 0, err
	}
	if string(b) != signature {
		return 0, fmt.Errorf("%w: want %q, read %q", ErrSignature, signature, string(b))
	}
	return r.readU32()
}

// Open reads and decodes the container at path. The file is mapped
// read-only where the platform allows, with a plain read fallback. The
// mapping is released before Open returns; a decoded container keeps no
// reference to the file image.
func Open(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := int(stat.Size())
	if int64(size) != stat.Size() {
		return nil, fmt.Errorf("bmc: file too large to load: %d bytes", stat.Size())
	}

	if size > 0 {
		data, mErr := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
		if mErr == nil {
			c, err := Decode(data)
			_ = unix.Munmap(data)
			return c, err
		}
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// readAllAt reads exactly size bytes from the start of r. It tolerates
// short reads, which ReadAt may produce on some file types.
func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
