// SPDX-License-Identifier: MIT

package fpclass

import "math"

// IEEE-754 bit patterns: sign mask and the exponent-all-ones pattern of
// positive infinity, per width. A value with the sign bit cleared is NaN if
// it exceeds the infinity pattern and infinite if it equals it.
const (
	abs32 = 0x7FFFFFFF
	inf32 = 0x7F800000

	abs64 = 0x7FFFFFFFFFFFFFFF
	inf64 = 0x7FF0000000000000
)

// bitwiseClassifier classifies by bit pattern only, never trusting the
// platform's float routines.
type bitwiseClassifier struct{}

func (bitwiseClassifier) IsNaN(x float64) bool {
	return math.Float64bits(x)&abs64 > inf64
}

func (bitwiseClassifier) IsInf(x float64) bool {
	return math.Float64bits(x)&abs64 == inf64
}

func (bitwiseClassifier) IsFinite(x float64) bool {
	return math.Float64bits(x)&abs64 < inf64
}

func (bitwiseClassifier) SignBit(x float64) bool {
	return math.Float64bits(x)>>63 != 0
}

func (bitwiseClassifier) Classify(x float64) Class {
	bits := math.Float64bits(x) & abs64
	switch {
	case bits > inf64:
		return ClassNaN
	case bits == inf64:
		return ClassInfinite
	case bits == 0:
		return ClassZero
	case bits < 1<<52:
		return ClassSubnormal
	}
	return ClassNormal
}

func (bitwiseClassifier) IsNaN32(x float32) bool {
	return math.Float32bits(x)&abs32 > inf32
}

func (bitwiseClassifier) IsInf32(x float32) bool {
	return math.Float32bits(x)&abs32 == inf32
}

func (bitwiseClassifier) IsFinite32(x float32) bool {
	return math.Float32bits(x)&abs32 < inf32
}

func (bitwiseClassifier) SignBit32(x float32) bool {
	return math.Float32bits(x)>>31 != 0
}

func (bitwiseClassifier) Classify32(x float32) Class {
	bits := math.Float32bits(x) & abs32
	switch {
	case bits > inf32:
		return ClassNaN
	case bits == inf32:
		return ClassInfinite
	case bits == 0:
		return ClassZero
	case bits < 1<<23:
		return ClassSubnormal
	}
	return ClassNormal
}
