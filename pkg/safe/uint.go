// Package safe provides checked integer narrowing for wire encodings.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a value does not fit the target type.
var ErrOutOfRange = errors.New("value out of range")

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint8 converts v to uint8, failing on negatives and overflow.
func Uint8[T Integer](v T) (uint8, error) {
	n, err := narrow(v, math.MaxUint8, "uint8")
	return uint8(n), err
}

// Uint32 converts v to uint32, failing on negatives and overflow.
func Uint32[T Integer](v T) (uint32, error) {
	n, err := narrow(v, math.MaxUint32, "uint32")
	return uint32(n), err
}

// Uint64 converts v to uint64, failing on negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return narrow(v, math.MaxUint64, "uint64")
}

func narrow[T Integer](v T, limit uint64, target string) (uint64, error) {
	if v < 0 || uint64(v) > limit {
		return 0, fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, target)
	}
	return uint64(v), nil
}
