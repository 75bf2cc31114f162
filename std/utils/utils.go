// Package utils collects small generic helpers used throughout the wire
// encoding and engine packages.
package utils

import (
	"encoding/binary"
	"reflect"
	"time"

	"github.com/ndnkit/ndnkit/std/types/optional"
)

// IdPtr returns a pointer to a copy of v. Useful for constructing struct
// literals that hold optional pointer fields from a value expression.
func IdPtr[T any](v T) *T {
	return &v
}

// MakeTimestamp converts t to the number of milliseconds since the Unix
// epoch, as used by NDN version and timestamp name components.
func MakeTimestamp(t time.Time) uint64 {
	return uint64(t.UnixMilli())
}

// ConvertNonce interprets a 4-byte big-endian buffer as a nonce value. If
// nonce is not exactly 4 bytes, the result is unset.
func ConvertNonce(nonce []byte) optional.Optional[uint32] {
	if len(nonce) != 4 {
		return optional.None[uint32]()
	}
	return optional.Some(binary.BigEndian.Uint32(nonce))
}

// HeaderEqual reports whether a and b share the same underlying array,
// offset, length, and capacity - i.e. whether they are the same slice
// header, not merely slices with equal contents.
func HeaderEqual[T any](a, b []T) bool {
	if len(a) != len(b) || cap(a) != cap(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	return va.Pointer() == vb.Pointer()
}
