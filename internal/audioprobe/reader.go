package audioprobe

import (
	"encoding/binary"
	"fmt"
	"io"
)

// safeReader wraps io.ReaderAt with bounds checking and errors that name
// the file and the field being read.
type safeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

func newSafeReader(r io.ReaderAt, size int64, path string) *safeReader {
	return &safeReader{r: r, size: size, path: path}
}

// ReadAt fills b from off. Reads that would cross the end of the file fail
// before touching the underlying reader.
func (sr *safeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}
	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}
	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}
	return nil
}

// readLE reads a little-endian value of type T at off.
func readLE[T uint8 | uint16 | uint32 | uint64](sr *safeReader, off int64, what string) (T, error) {
	var zero T
	var buf [8]byte

	var size int
	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	if err := sr.ReadAt(buf[:size], off, what); err != nil {
		return zero, err
	}

	switch any(zero).(type) {
	case uint8:
		return T(buf[0]), nil
	case uint16:
		return T(binary.LittleEndian.Uint16(buf[:])), nil
	case uint32:
		return T(binary.LittleEndian.Uint32(buf[:])), nil
	default:
		return T(binary.LittleEndian.Uint64(buf[:])), nil
	}
}
