// Package fields decodes fixed-layout records out of an in-memory buffer.
package fields

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when a record does not fit in the buffer.
var ErrMalformedInput = errors.New("malformed input")

// Size returns the encoded size of the layout v, or -1 if v is not a fixed-size layout.
func Size(v any) int {
	return binary.Size(v)
}

// Decode reads the fixed-size layout v (a pointer to a struct of fixed-width
// fields) from buf at off. The bounds are checked before anything is read.
func Decode(buf []byte, off uint64, order binary.ByteOrder, v any) error {
	sz := Size(v)
	if sz < 0 {
		return fmt.Errorf("fields: %T is not a fixed-size layout", v)
	}
	if off > uint64(len(buf)) || uint64(sz) > uint64(len(buf))-off {
		return fmt.Errorf("%w: need %d bytes at offset %#x, buffer is %d bytes", ErrMalformedInput, sz, off, len(buf))
	}
	return binary.Read(bytes.NewReader(buf[off:off+uint64(sz)]), order, v)
}

// Uint32 reads a single little-endian uint32 at off.
func Uint32(buf []byte, off uint64) (uint32, error) {
	var v uint32
	if err := Decode(buf, off, binary.LittleEndian, &v); err != nil {
		return 0, err
	}
	return v, nil
}
