package packer

import (
	"encoding/binary"
	"reflect"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the byte order used for every multi-byte field on the wire.
	Order = LE
)

func Ptr[T any](v T) *T { return &v }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// uint64Bits extracts rv's raw integer/bool value as a uint64, preserving
// the underlying bit pattern rather than the mathematical value (a
// negative int is returned as its two's-complement bits).
func uint64Bits(rv reflect.Value) uint64 {
	if rv.Kind() == reflect.Bool {
		if rv.Bool() {
			return 1
		}
		return 0
	}
	if isUnsignedKind(rv.Kind()) {
		return rv.Uint()
	}
	return uint64(rv.Int())
}

// signExtend reinterprets the low width*8 bits of bits as a two's
// complement signed integer of that width, sign-extended to int64.
func signExtend(bits uint64, width int) int64 {
	shift := uint(64 - width*8)
	return int64(bits<<shift) >> shift
}
