// SPDX-License-Identifier: MIT

package fpclass

import "math"

// nativeClassifier delegates to the math package wherever it has a matching
// routine. NaN and infinity survive the float32 to float64 conversion, so
// the 32-bit predicates can forward; Classify32 cannot, see Classifier.
type nativeClassifier struct{}

func (nativeClassifier) IsNaN(x float64) bool {
	return math.IsNaN(x)
}

func (nativeClassifier) IsInf(x float64) bool {
	return math.IsInf(x, 0)
}

func (nativeClassifier) IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (nativeClassifier) SignBit(x float64) bool {
	return math.Signbit(x)
}

func (nativeClassifier) Classify(x float64) Class {
	switch {
	case math.IsNaN(x):
		return ClassNaN
	case math.IsInf(x, 0):
		return ClassInfinite
	case x == 0:
		return ClassZero
	case math.Abs(x) < math.SmallestNonzeroFloat64*float64(1<<52):
		return ClassSubnormal
	}
	return ClassNormal
}

func (c nativeClassifier) IsNaN32(x float32) bool {
	return math.IsNaN(float64(x))
}

func (c nativeClassifier) IsInf32(x float32) bool {
	return math.IsInf(float64(x), 0)
}

func (c nativeClassifier) IsFinite32(x float32) bool {
	return c.IsFinite(float64(x))
}

func (nativeClassifier) SignBit32(x float32) bool {
	return math.Signbit(float64(x))
}

func (nativeClassifier) Classify32(x float32) Class {
	switch {
	case math.IsNaN(float64(x)):
		return ClassNaN
	case math.IsInf(float64(x), 0):
		return ClassInfinite
	case x == 0:
		return ClassZero
	case math.Float32bits(x)&0x7F800000 == 0:
		return ClassSubnormal
	}
	return ClassNormal
}
