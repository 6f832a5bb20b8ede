package acg

import "github.com/asvorded/acg-labs-sub000/math32"

// Quaternion is a rotation, stored X, Y, Z, W in the same order glTF writes them.
type Quaternion struct {
	X, Y, Z, W float32
}

// NewQuaternion returns a new Quaternion.
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns a Quaternion that does not rotate.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating counter-clockwise by angle (in radians) around axis.
func NewQuaternionFromAxisAngle(axis Vector3, angle float32) Quaternion {
	axis = axis.Unit()
	s := math32.Sin(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math32.Cos(angle / 2)}
}

func (quat Quaternion) Dot(other Quaternion) float32 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

func (quat Quaternion) Magnitude() float32 {
	return math32.Sqrt(quat.Dot(quat))
}

// Unit returns a normalized copy of the Quaternion; a zero Quaternion becomes the identity.
func (quat Quaternion) Unit() Quaternion {
	m := quat.Magnitude()
	if m == 0 {
		return NewQuaternionIdentity()
	}
	return Quaternion{quat.X / m, quat.Y / m, quat.Z / m, quat.W / m}
}

// Slerp spherically interpolates towards the other Quaternion, taking the short way around.
func (quat Quaternion) Slerp(other Quaternion, percent float32) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	cosTheta := quat.Dot(other)

	if cosTheta < 0 {
		other = Quaternion{-other.X, -other.Y, -other.Z, -other.W}
		cosTheta = -cosTheta
	}

	// Nearly parallel; a normalized lerp is both stable and indistinguishable here.
	if cosTheta > 0.9995 {
		return Quaternion{
			math32.Lerp(quat.X, other.X, percent),
			math32.Lerp(quat.Y, other.Y, percent),
			math32.Lerp(quat.Z, other.Z, percent),
			math32.Lerp(quat.W, other.W, percent),
		}.Unit()
	}

	theta := math32.Acos(cosTheta)
	sinTheta := math32.Sin(theta)
	ratioA := math32.Sin((1-percent)*theta) / sinTheta
	ratioB := math32.Sin(percent*theta) / sinTheta

	return Quaternion{
		quat.X*ratioA + other.X*ratioB,
		quat.Y*ratioA + other.Y*ratioB,
		quat.Z*ratioA + other.Z*ratioB,
		quat.W*ratioA + other.W*ratioB,
	}

}

// ToMatrix4 returns the rotation as a row-major Matrix4 (see Matrix4 for the vector convention).
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Unit()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	return Matrix4{
		{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0},
		{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0},
		{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}

}
