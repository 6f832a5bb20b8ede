package acg

import "github.com/asvorded/acg-labs-sub000/math32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vector3
}

// NewEmptyAABB returns an inverted box that any Expand call will snap to.
func NewEmptyAABB() AABB {
	return AABB{
		Min: Vector3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vector3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// NewAABBFromPositions returns the bounds of a tightly packed XYZ float array.
func NewAABBFromPositions(positions []float32) AABB {
	box := NewEmptyAABB()
	for i := 0; i+2 < len(positions); i += 3 {
		box = box.Expand(Vector3{positions[i], positions[i+1], positions[i+2]})
	}
	return box
}

// Expand returns the box grown to contain point.
func (box AABB) Expand(point Vector3) AABB {
	box.Min = Vector3{math32.Min(box.Min.X, point.X), math32.Min(box.Min.Y, point.Y), math32.Min(box.Min.Z, point.Z)}
	box.Max = Vector3{math32.Max(box.Max.X, point.X), math32.Max(box.Max.Y, point.Y), math32.Max(box.Max.Z, point.Z)}
	return box
}

// IsEmpty is true for boxes that never had a point added.
func (box AABB) IsEmpty() bool {
	return box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z
}

// Center returns the middle of the box.
func (box AABB) Center() Vector3 {
	return box.Min.Add(box.Max).Scale(0.5)
}

// Corners returns the 8 corners of the box.
func (box AABB) Corners() [8]Vector3 {
	return [8]Vector3{
		{box.Min.X, box.Min.Y, box.Min.Z},
		{box.Max.X, box.Min.Y, box.Min.Z},
		{box.Min.X, box.Max.Y, box.Min.Z},
		{box.Max.X, box.Max.Y, box.Min.Z},
		{box.Min.X, box.Min.Y, box.Max.Z},
		{box.Max.X, box.Min.Y, box.Max.Z},
		{box.Min.X, box.Max.Y, box.Max.Z},
		{box.Max.X, box.Max.Y, box.Max.Z},
	}
}

// Transform moves all 8 corners by the matrix and returns the axis-aligned box around the result.
// The new box is looser than the rotated one, never smaller.
func (box AABB) Transform(matrix Matrix4) AABB {
	out := NewEmptyAABB()
	for _, corner := range box.Corners() {
		out = out.Expand(matrix.MultVec(corner))
	}
	return out
}

// PointInside returns true if the point lies within the box, edges included.
func (box AABB) PointInside(point Vector3) bool {
	return point.X >= box.Min.X && point.X <= box.Max.X &&
		point.Y >= box.Min.Y && point.Y <= box.Max.Y &&
		point.Z >= box.Min.Z && point.Z <= box.Max.Z
}
