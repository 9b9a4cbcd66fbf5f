package fields

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A uint32
	B int32
}

func TestDecode(t *testing.T) {
	buf := []byte{0xff, 0x01, 0x00, 0x00, 0x00, 0xfe, 0xff, 0xff, 0xff}

	var p pair
	require.NoError(t, Decode(buf, 1, binary.LittleEndian, &p))
	assert.Equal(t, pair{A: 1, B: -2}, p)
	assert.Equal(t, 8, Size(&p))
}

func TestDecodeBounds(t *testing.T) {
	buf := make([]byte, 8)
	tests := []struct {
		name string
		off  uint64
	}{
		{"one past", 1},
		{"at end", 8},
		{"past end", 9},
		{"overflow", ^uint64(0) - 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pair{A: 7}
			err := Decode(buf, tt.off, binary.LittleEndian, &p)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Equal(t, pair{A: 7}, p, "layout must be untouched on error")
		})
	}
}

func TestDecodeNotFixedSize(t *testing.T) {
	var s []int
	err := Decode(make([]byte, 8), 0, binary.LittleEndian, &s)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedInput)
}

func TestUint32(t *testing.T) {
	v, err := Uint32([]byte{0xcf, 0xfa, 0xed, 0xfe}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xfeedfacf), v)

	_, err = Uint32([]byte{0xcf, 0xfa}, 0)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
