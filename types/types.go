package types

import (
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
)

// UUID is a macho uuid object
type UUID [16]byte

// String returns the canonical 8-4-4-4-12 lowercase hex form.
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// Uint128 returns the identifier as a single 128-bit big-endian value.
func (u UUID) Uint128() (hi, lo uint64) {
	return binary.BigEndian.Uint64(u[:8]), binary.BigEndian.Uint64(u[8:])
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

type intName struct {
	i uint32
	s string
}

func lookupName(i uint32, names []intName) (string, bool) {
	for _, n := range names {
		if n.i == i {
			return n.s, true
		}
	}
	return "", false
}

func stringName(i uint32, names []intName, goSyntax bool) string {
	if s, ok := lookupName(i, names); ok {
		if goSyntax {
			return "types." + s
		}
		return s
	}
	return unknownName(i)
}

func unknownName(i uint32) string {
	return "unknown(0x" + strconv.FormatUint(uint64(i), 16) + ")"
}

func knownName(i uint32, names []intName) bool {
	_, ok := lookupName(i, names)
	return ok
}
