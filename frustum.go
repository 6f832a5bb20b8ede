package acg

// Plane is the half-space Normal·p + D >= 0; Normal points inside.
type Plane struct {
	Normal Vector3
	D      float32
}

// Distance returns the signed distance from point to the plane, positive on the inside.
func (plane Plane) Distance(point Vector3) float32 {
	return plane.Normal.Dot(point) + plane.D
}

func newPlane(v Vector4) Plane {
	normal := v.Vector3()
	l := normal.Magnitude()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: normal.Scale(1 / l), D: v.W / l}
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is the six planes of a camera's view volume.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes from a combined view-projection matrix (Gribb/Hartmann). With row vectors,
// clip = p * viewProjection, so each clip coordinate is p dotted with a column of the matrix.
// If viewProjection is only a projection, the planes come out in camera space; with view included, in world space.
func NewFrustum(viewProjection Matrix4) Frustum {
	cx := viewProjection.Column(0)
	cy := viewProjection.Column(1)
	cz := viewProjection.Column(2)
	cw := viewProjection.Column(3)

	var frustum Frustum
	frustum.Planes[FrustumLeft] = newPlane(cw.Add(cx))
	frustum.Planes[FrustumRight] = newPlane(cw.Sub(cx))
	frustum.Planes[FrustumBottom] = newPlane(cw.Add(cy))
	frustum.Planes[FrustumTop] = newPlane(cw.Sub(cy))
	// Clip depth runs 0..w, so the near plane is z >= 0 rather than z >= -w.
	frustum.Planes[FrustumNear] = newPlane(cz)
	frustum.Planes[FrustumFar] = newPlane(cw.Sub(cz))
	return frustum
}

// ContainsPoint returns true if point is on the inside of every plane.
func (frustum Frustum) ContainsPoint(point Vector3) bool {
	for _, plane := range frustum.Planes {
		if plane.Distance(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB returns false only if box lies completely outside one of the planes. For each plane the
// corner furthest along the plane's normal (the positive vertex) is tested; boxes straddling a frustum corner
// may be kept even though they are invisible, but a visible box is never rejected.
func (frustum Frustum) IntersectsAABB(box AABB) bool {
	if box.IsEmpty() {
		return false
	}
	for _, plane := range frustum.Planes {
		positive := box.Max
		if plane.Normal.X < 0 {
			positive.X = box.Min.X
		}
		if plane.Normal.Y < 0 {
			positive.Y = box.Min.Y
		}
		if plane.Normal.Z < 0 {
			positive.Z = box.Min.Z
		}
		if plane.Distance(positive) < 0 {
			return false
		}
	}
	return true
}

// IntersectsTransformedAABB tests a local-space box placed by world.
func (frustum Frustum) IntersectsTransformedAABB(box AABB, world Matrix4) bool {
	return frustum.IntersectsAABB(box.Transform(world))
}
