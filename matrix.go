package acg

import (
	"strconv"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// Matrix4 represents a 4x4 matrix for translation, scale, rotation and projection.
// A Matrix4 is row-major and vectors are treated as rows, so a point is transformed with point * matrix and
// matrices combine left to right (world.Mult(view) applies world first, then view). Translation lives in matrix[3].
type Matrix4 [4][4]float32

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix4FromFloats builds a Matrix4 from 16 floats in column-major order (the layout glTF node matrices use).
func NewMatrix4FromFloats(floats [16]float32) Matrix4 {
	mat := Matrix4{}
	for i := range 16 {
		mat[i/4][i%4] = floats[i]
	}
	return mat
}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation components set as provided.
func NewMatrix4Translate(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians) along the axis given [x, y, z].
// This rotation works as though you pierced the object through by the axis, and then rotated it
// counter-clockwise by the angle in radians.
func NewMatrix4Rotate(x, y, z, angle float32) Matrix4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	axis := Vector3{X: x, Y: y, Z: z}.Unit()
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	m := 1 - c

	mat[0][0] = m*axis.X*axis.X + c
	mat[0][1] = m*axis.X*axis.Y + axis.Z*s
	mat[0][2] = m*axis.Z*axis.X - axis.Y*s

	mat[1][0] = m*axis.X*axis.Y - axis.Z*s
	mat[1][1] = m*axis.Y*axis.Y + c
	mat[1][2] = m*axis.Y*axis.Z + axis.X*s

	mat[2][0] = m*axis.Z*axis.X + axis.Y*s
	mat[2][1] = m*axis.Y*axis.Z - axis.X*s
	mat[2][2] = m*axis.Z*axis.Z + c

	return mat

}

// NewMatrix4TRS composes scale, then rotation, then translation.
func NewMatrix4TRS(translation Vector3, rotation Quaternion, scale Vector3) Matrix4 {
	return NewMatrix4Scale(scale.X, scale.Y, scale.Z).
		Mult(rotation.ToMatrix4()).
		Mult(NewMatrix4Translate(translation.X, translation.Y, translation.Z))
}

// NewLookAtMatrix returns the view matrix of an eye at from looking towards to, with up usually being +Y.
// The resulting space is right-handed with the eye at the origin looking down -Z.
func NewLookAtMatrix(from, to, up Vector3) Matrix4 {

	// If from and to are the same, an identity Matrix4 is the only sensible answer
	if from.Equals(to) {
		return NewMatrix4Translate(-from.X, -from.Y, -from.Z)
	}

	z := from.Sub(to).Unit()
	up = up.Unit()

	// If z lines up with up, the basis collapses, so we sub up out for another axis
	if z.Equals(up) || z.Equals(up.Invert()) {
		if !up.Equals(WorldRight) {
			up = WorldRight
		} else {
			up = WorldBackward
		}
	}

	x := up.Cross(z).Unit()
	y := z.Cross(x)

	return Matrix4{
		{x.X, y.X, z.X, 0},
		{x.Y, y.Y, z.Y, 0},
		{x.Z, y.Z, z.Z, 0},
		{-x.Dot(from), -y.Dot(from), -z.Dot(from), 1},
	}

}

// NewProjectionPerspective generates a right-handed perspective Matrix4. fovy is the vertical field of view in degrees,
// near and far are the near and far clipping planes, and viewWidth and viewHeight set the aspect ratio.
// Clip-space depth runs from 0 at the near plane to w at the far plane, so anything with clip Z < 0 sits behind the camera's near plane.
func NewProjectionPerspective(fovy, near, far, viewWidth, viewHeight float32) Matrix4 {

	aspect := viewWidth / viewHeight
	yScale := 1 / math32.Tan(fovy*math32.Pi/360)
	xScale := yScale / aspect
	depth := near - far

	return Matrix4{
		{xScale, 0, 0, 0},
		{0, yScale, 0, 0},
		{0, 0, far / depth, -1},
		{0, 0, near * far / depth, 0},
	}

}

// NewViewportMatrix maps normalized device coordinates to pixel coordinates for a screen of the given size;
// +Y in NDC points upwards, while pixel rows grow downwards.
func NewViewportMatrix(x, y, width, height float32) Matrix4 {
	return Matrix4{
		{width / 2, 0, 0, 0},
		{0, -height / 2, 0, 0},
		{0, 0, 1, 0},
		{x + width/2, y + height/2, 0, 1},
	}
}

// Transposed transposes a Matrix4, switching it from being row-major to being column-major.
func (matrix Matrix4) Transposed() Matrix4 {
	out := Matrix4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = matrix[j][i]
		}
	}
	return out
}

// Inverted returns an inverted version of the Matrix4. A singular matrix yields non-finite values.
func (matrix Matrix4) Inverted() Matrix4 {
	// Cofactor expansion along 2x2 sub-determinants
	// (https://stackoverflow.com/questions/1148309/inverting-a-4x4-matrix).

	a2323 := matrix[2][2]*matrix[3][3] - matrix[2][3]*matrix[3][2]
	a1323 := matrix[2][1]*matrix[3][3] - matrix[2][3]*matrix[3][1]
	a1223 := matrix[2][1]*matrix[3][2] - matrix[2][2]*matrix[3][1]
	a0323 := matrix[2][0]*matrix[3][3] - matrix[2][3]*matrix[3][0]
	a0223 := matrix[2][0]*matrix[3][2] - matrix[2][2]*matrix[3][0]
	a0123 := matrix[2][0]*matrix[3][1] - matrix[2][1]*matrix[3][0]
	a2313 := matrix[1][2]*matrix[3][3] - matrix[1][3]*matrix[3][2]
	a1313 := matrix[1][1]*matrix[3][3] - matrix[1][3]*matrix[3][1]
	a1213 := matrix[1][1]*matrix[3][2] - matrix[1][2]*matrix[3][1]
	a2312 := matrix[1][2]*matrix[2][3] - matrix[1][3]*matrix[2][2]
	a1312 := matrix[1][1]*matrix[2][3] - matrix[1][3]*matrix[2][1]
	a1212 := matrix[1][1]*matrix[2][2] - matrix[1][2]*matrix[2][1]
	a0313 := matrix[1][0]*matrix[3][3] - matrix[1][3]*matrix[3][0]
	a0213 := matrix[1][0]*matrix[3][2] - matrix[1][2]*matrix[3][0]
	a0312 := matrix[1][0]*matrix[2][3] - matrix[1][3]*matrix[2][0]
	a0212 := matrix[1][0]*matrix[2][2] - matrix[1][2]*matrix[2][0]
	a0113 := matrix[1][0]*matrix[3][1] - matrix[1][1]*matrix[3][0]
	a0112 := matrix[1][0]*matrix[2][1] - matrix[1][1]*matrix[2][0]

	det := matrix[0][0]*(matrix[1][1]*a2323-matrix[1][2]*a1323+matrix[1][3]*a1223) -
		matrix[0][1]*(matrix[1][0]*a2323-matrix[1][2]*a0323+matrix[1][3]*a0223) +
		matrix[0][2]*(matrix[1][0]*a1323-matrix[1][1]*a0323+matrix[1][3]*a0123) -
		matrix[0][3]*(matrix[1][0]*a1223-matrix[1][1]*a0223+matrix[1][2]*a0123)

	det = 1 / det

	var m Matrix4

	m[0][0] = det * (matrix[1][1]*a2323 - matrix[1][2]*a1323 + matrix[1][3]*a1223)
	m[0][1] = det * -(matrix[0][1]*a2323 - matrix[0][2]*a1323 + matrix[0][3]*a1223)
	m[0][2] = det * (matrix[0][1]*a2313 - matrix[0][2]*a1313 + matrix[0][3]*a1213)
	m[0][3] = det * -(matrix[0][1]*a2312 - matrix[0][2]*a1312 + matrix[0][3]*a1212)
	m[1][0] = det * -(matrix[1][0]*a2323 - matrix[1][2]*a0323 + matrix[1][3]*a0223)
	m[1][1] = det * (matrix[0][0]*a2323 - matrix[0][2]*a0323 + matrix[0][3]*a0223)
	m[1][2] = det * -(matrix[0][0]*a2313 - matrix[0][2]*a0313 + matrix[0][3]*a0213)
	m[1][3] = det * (matrix[0][0]*a2312 - matrix[0][2]*a0312 + matrix[0][3]*a0212)
	m[2][0] = det * (matrix[1][0]*a1323 - matrix[1][1]*a0323 + matrix[1][3]*a0123)
	m[2][1] = det * -(matrix[0][0]*a1323 - matrix[0][1]*a0323 + matrix[0][3]*a0123)
	m[2][2] = det * (matrix[0][0]*a1313 - matrix[0][1]*a0313 + matrix[0][3]*a0113)
	m[2][3] = det * -(matrix[0][0]*a1312 - matrix[0][1]*a0312 + matrix[0][3]*a0112)
	m[3][0] = det * -(matrix[1][0]*a1223 - matrix[1][1]*a0223 + matrix[1][2]*a0123)
	m[3][1] = det * (matrix[0][0]*a1223 - matrix[0][1]*a0223 + matrix[0][2]*a0123)
	m[3][2] = det * -(matrix[0][0]*a1213 - matrix[0][1]*a0213 + matrix[0][2]*a0113)
	m[3][3] = det * (matrix[0][0]*a1212 - matrix[0][1]*a0212 + matrix[0][2]*a0112)

	return m

}

// NormalMatrix returns the inverse-transpose of the Matrix4 with the translation stripped, used to carry normals
// through non-uniform scales.
func (matrix Matrix4) NormalMatrix() Matrix4 {
	n := matrix.Inverted().Transposed()
	n[3] = [4]float32{0, 0, 0, 1}
	n[0][3], n[1][3], n[2][3] = 0, 0, 0
	return n
}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them, applying the calling matrix first.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r][c] = matrix[r][0]*other[0][c] + matrix[r][1]*other[1][c] + matrix[r][2]*other[2][c] + matrix[r][3]*other[3][c]
		}
	}
	return out
}

// Add adds the other Matrix4 to the calling one component-wise.
func (matrix Matrix4) Add(other Matrix4) Matrix4 {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			matrix[i][j] += other[i][j]
		}
	}
	return matrix
}

// Scale multiplies every component of the Matrix4 by the scalar; used for weighted joint blending.
func (matrix Matrix4) Scale(scalar float32) Matrix4 {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			matrix[i][j] *= scalar
		}
	}
	return matrix
}

// MultVec transforms the point provided by the Matrix4, ignoring any projective W.
func (matrix Matrix4) MultVec(vect Vector3) Vector3 {
	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}
}

// MultDir transforms the direction provided by the Matrix4 (translation is not applied).
func (matrix Matrix4) MultDir(vect Vector3) Vector3 {
	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z,
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z,
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z,
	}
}

// MultVecW transforms the homogeneous vector provided by the Matrix4, including the fourth (W) component.
func (matrix Matrix4) MultVecW(vect Vector4) Vector4 {
	return Vector4{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0]*vect.W,
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1]*vect.W,
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2]*vect.W,
		W: matrix[0][3]*vect.X + matrix[1][3]*vect.Y + matrix[2][3]*vect.Z + matrix[3][3]*vect.W,
	}
}

// Row returns the indiced row from the Matrix4 as a Vector4.
func (matrix Matrix4) Row(rowIndex int) Vector4 {
	return Vector4{
		X: matrix[rowIndex][0],
		Y: matrix[rowIndex][1],
		Z: matrix[rowIndex][2],
		W: matrix[rowIndex][3],
	}
}

// Column returns the indiced column from the Matrix4 as a Vector4.
func (matrix Matrix4) Column(columnIndex int) Vector4 {
	return Vector4{
		X: matrix[0][columnIndex],
		Y: matrix[1][columnIndex],
		Z: matrix[2][columnIndex],
		W: matrix[3][columnIndex],
	}
}

// Position returns the translation stored in the Matrix4.
func (matrix Matrix4) Position() Vector3 {
	return Vector3{matrix[3][0], matrix[3][1], matrix[3][2]}
}

// Equals returns true if the matrix equals the same values in the provided other Matrix4.
func (matrix Matrix4) Equals(other Matrix4) bool {
	eps := float32(0.0001)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

var identityMatrix = NewMatrix4()

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(identityMatrix)
}

func (matrix Matrix4) String() string {
	s := "{"
	for i, y := range matrix {
		for _, x := range y {
			s += strconv.FormatFloat(float64(x), 'f', -1, 32) + ", "
		}
		if i < len(matrix)-1 {
			s += "\n"
		}
	}
	s += "}"
	return s
}
