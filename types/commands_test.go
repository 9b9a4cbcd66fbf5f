package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadCmd(t *testing.T) {
	raw := LoadCmd(0x8000001f)
	assert.Equal(t, LC_REEXPORT_DYLIB, raw.Base())
	assert.True(t, raw.ReqDyld())
	assert.True(t, raw.Known())
	assert.Equal(t, "LC_REEXPORT_DYLIB | LC_REQ_DYLD", raw.String())
	assert.Equal(t, "LC_REEXPORT_DYLIB", raw.Base().String())

	assert.False(t, LC_UUID.ReqDyld())
	assert.Equal(t, "LC_UUID", LC_UUID.String())
	assert.Equal(t, "types.LC_UUID", LC_UUID.GoString())

	assert.Equal(t, "unknown(0x7f)", LoadCmd(0x7f).String())
	assert.False(t, LoadCmd(0x7f).Known())
	assert.Equal(t, "unknown(0x7f) | LC_REQ_DYLD", LoadCmd(0x8000007f).String())
}

func TestParseLoadCmd(t *testing.T) {
	tests := []struct {
		in   string
		want LoadCmd
		ok   bool
	}{
		{"LC_UUID", LC_UUID, true},
		{"lc_segment_64", LC_SEGMENT_64, true},
		{"main", LC_MAIN, true},
		{" LC_RPATH ", LC_RPATH, true},
		{"LC_NOPE", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLoadCmd(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestUUIDString(t *testing.T) {
	u := UUID{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	assert.Equal(t, "00112233-4455-6677-8899-aabbccddeeff", u.String())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", UUID{}.String())
}
