// Package math32 wraps the parts of the standard math package the rasterizer needs so that they take and return float32s.
// Vectors, matrices and buffer depths are all float32, so going through float64 by hand at every call site gets noisy quickly.
package math32

import "math"

const (
	Pi         = float32(math.Pi)
	MaxFloat32 = float32(math.MaxFloat32)
	// Epsilon is the tolerance used for "close enough to zero" checks, like discarding transparent pixels.
	Epsilon = float32(1e-6)
)

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
func Inf(sign int) float32 {
	return float32(math.Inf(sign))
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float32) float32 {
	return Pi * degrees / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(radians float32) float32 {
	return radians / Pi * 180
}

// Min returns the smaller of the two values.
func Min[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of the two values.
func Max[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x > y {
		return x
	}
	return y
}

// Clamp clamps a value to the minimum and maximum values provided.
func Clamp[number float32 | float64 | int | int32 | int64](value, min, max number) number {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// Saturate clamps a value to the 0-1 range.
func Saturate(value float32) float32 {
	return Clamp(value, 0, 1)
}

// Lerp linearly interpolates from a to b by the percentage given.
func Lerp(a, b, percent float32) float32 {
	return a + (b-a)*percent
}

// IsNaN returns if the provided float32 is a NaN.
func IsNaN(x float32) bool {
	return x != x
}

// IsInf returns if the provided float32 is Inf in the direction of the sign provided (0 meaning either direction).
func IsInf(x float32, sign int) bool {
	return math.IsInf(float64(x), sign)
}

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

func Acos(x float32) float32 {
	return float32(math.Acos(float64(x)))
}

func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func Ceil(x float32) float32 {
	return float32(math.Ceil(float64(x)))
}

func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Mod returns the floating-point remainder of x/y, with the sign of x.
func Mod(x, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}

func Round(x float32) float32 {
	return float32(math.Round(float64(x)))
}
