// SPDX-License-Identifier: MIT

// Package fpclass provides IEEE-754 classification predicates behind an
// explicit backend selection. The native backend delegates to the math
// package; the bitwise backend inspects the float's bit pattern directly,
// for platforms whose C library classification routines are missing or
// unreliable.
package fpclass

// Class mirrors the fpclassify result set.
type Class int

const (
	ClassNaN Class = iota
	ClassInfinite
	ClassZero
	ClassSubnormal
	ClassNormal
)

func (c Class) String() string {
	switch c {
	case ClassNaN:
		return "nan"
	case ClassInfinite:
		return "infinite"
	case ClassZero:
		return "zero"
	case ClassSubnormal:
		return "subnormal"
	case ClassNormal:
		return "normal"
	}
	return "unknown"
}

// Classifier answers the standard floating-point predicates. The 32-bit
// methods are the isnanf/isinff/isfinitef family; classification of a
// float32 must happen on its own bit width, conversion to float64 turns
// 32-bit subnormals into normals.
type Classifier interface {
	IsNaN(x float64) bool
	IsInf(x float64) bool
	IsFinite(x float64) bool
	SignBit(x float64) bool
	Classify(x float64) Class

	IsNaN32(x float32) bool
	IsInf32(x float32) bool
	IsFinite32(x float32) bool
	SignBit32(x float32) bool
	Classify32(x float32) Class
}

type Backend int

const (
	BackendNative Backend = iota
	BackendBitwise
)

// New selects a classifier implementation once; callers hold on to the
// result rather than re-deciding per call.
func New(b Backend) Classifier {
	if b == BackendBitwise {
		return bitwiseClassifier{}
	}
	return nativeClassifier{}
}
