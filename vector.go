package acg

import (
	"fmt"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// WorldRight represents a unit vector in the global direction of +X on the right-handed coordinate system used by the renderer.
var WorldRight = Vector3{X: 1}

// WorldUp represents a unit vector in the global direction of +Y (upwards).
var WorldUp = Vector3{Y: 1}

// WorldBackward represents a unit vector in the global direction of +Z (backwards, towards the viewer; cameras look down -Z).
var WorldBackward = Vector3{Z: 1}

// Vector2 is a 2D vector, mostly used for texture coordinates.
type Vector2 struct {
	X, Y float32
}

func (vec Vector2) Add(other Vector2) Vector2 {
	vec.X += other.X
	vec.Y += other.Y
	return vec
}

func (vec Vector2) Scale(scalar float32) Vector2 {
	vec.X *= scalar
	vec.Y *= scalar
	return vec
}

// Vector3 represents a 3D Vector (position, direction, normal, etc).
// Any Vector3 functions that modify the calling Vector3 return copies of the modified Vector3, meaning you can do method-chaining easily.
type Vector3 struct {
	X, Y, Z float32
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// MultComp multiplies the calling Vector3 component-wise by the other Vector3.
func (vec Vector3) MultComp(other Vector3) Vector3 {
	vec.X *= other.X
	vec.Y *= other.Y
	vec.Z *= other.Z
	return vec
}

// Cross returns the cross product of the calling Vector3 and the provided other Vector3.
func (vec Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: vec.Y*other.Z - vec.Z*other.Y,
		Y: vec.Z*other.X - vec.X*other.Z,
		Z: vec.X*other.Y - vec.Y*other.X,
	}
}

// Dot returns the dot product of the calling Vector3 and the other Vector3.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Invert returns a copy of the Vector3 with all components inverted.
func (vec Vector3) Invert() Vector3 {
	return Vector3{-vec.X, -vec.Y, -vec.Z}
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the Vector3; this is faster than Magnitude() as it avoids a square root.
func (vec Vector3) MagnitudeSquared() float32 {
	return vec.Dot(vec)
}

// Distance returns the distance from the calling Vector3 to the other Vector3 provided.
func (vec Vector3) Distance(other Vector3) float32 {
	return vec.Sub(other).Magnitude()
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length).
// A zero Vector3 stays a zero Vector3.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 {
		return vec
	}
	return vec.Scale(1 / l)
}

// Lerp linearly interpolates towards the other Vector3 by the percentage given.
func (vec Vector3) Lerp(other Vector3, percent float32) Vector3 {
	return vec.Add(other.Sub(vec).Scale(percent))
}

// Equals returns true if the two Vector3s are close enough in all values (excluding W).
func (vec Vector3) Equals(other Vector3) bool {
	eps := float32(1e-4)
	return math32.Abs(vec.X-other.X) <= eps && math32.Abs(vec.Y-other.Y) <= eps && math32.Abs(vec.Z-other.Z) <= eps
}

// Vector4 returns the Vector3 as a Vector4 with the W component provided (1 for points, 0 for directions).
func (vec Vector3) Vector4(w float32) Vector4 {
	return Vector4{vec.X, vec.Y, vec.Z, w}
}

func (vec Vector3) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f}", vec.X, vec.Y, vec.Z)
}

// Vector4 represents a homogeneous position.
type Vector4 struct {
	X, Y, Z, W float32
}

func (vec Vector4) Add(other Vector4) Vector4 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	vec.W += other.W
	return vec
}

func (vec Vector4) Sub(other Vector4) Vector4 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	vec.W -= other.W
	return vec
}

func (vec Vector4) Scale(scalar float32) Vector4 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	vec.W *= scalar
	return vec
}

func (vec Vector4) Dot(other Vector4) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z + vec.W*other.W
}

// Lerp linearly interpolates all four components towards the other Vector4.
func (vec Vector4) Lerp(other Vector4, percent float32) Vector4 {
	return vec.Add(other.Sub(vec).Scale(percent))
}

// Vector3 drops the W component.
func (vec Vector4) Vector3() Vector3 {
	return Vector3{vec.X, vec.Y, vec.Z}
}

func (vec Vector4) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f, %.2f}", vec.X, vec.Y, vec.Z, vec.W)
}
