package acg

import (
	"sort"

	"github.com/qmuntal/gltf"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// RayHit represents the result of a ray test against a Scene.
type RayHit struct {
	Node      *Node      // Node is the mesh Node that was struck.
	Primitive *Primitive // Primitive is the part of the Node's Mesh that was struck.
	Triangle  int        // Triangle is the index of the struck triangle, as used by Primitive.Triangle().
	Position  Vector3    // Position is the world position that was struck.
	Normal    Vector3    // Normal is the world-space face normal of the struck triangle.
	from      Vector3
}

// Distance returns the distance from the ray's starting point to the struck position.
func (r RayHit) Distance() float32 {
	return r.from.Distance(r.Position)
}

// ScreenRay returns the segment starting at the Camera's position and running depth world units through the pixel
// at (x, y) of the Camera's screen. A depth of 0 or less extends the ray to the far plane.
func (camera *Camera) ScreenRay(x, y, depth float32) (from, to Vector3) {
	if depth <= 0 {
		depth = camera.far
	}

	tanHalf := math32.Tan(camera.fieldOfView * math32.Pi / 360)
	ndcX := 2*x/float32(camera.width) - 1
	ndcY := 1 - 2*y/float32(camera.height)

	dir := Vector3{ndcX * tanHalf * camera.AspectRatio(), ndcY * tanHalf, -1}
	dir = camera.ViewMatrix().Inverted().MultDir(dir).Unit()

	return camera.Position, camera.Position.Add(dir.Scale(depth))
}

// RayTest casts a ray from the "from" world position to the "to" world position against every triangle of the
// Scene's meshes, as transformed by the last UpdateTransforms. Skinned meshes are tested in their bind pose.
// Triangles are struck from their front side only, unless doubleSided is set or their Material is double-sided.
// RayTest returns the hits sorted by distance from the starting point; the nearest one comes first.
func RayTest(scene *Scene, from, to Vector3, doubleSided bool) []RayHit {

	hits := []RayHit{}

	for _, root := range scene.Roots {
		root.Walk(func(node *Node) bool {
			if node.Mesh == nil {
				return true
			}

			invWorld := node.world.Inverted()
			localFrom := invWorld.MultVec(from)
			localTo := invWorld.MultVec(to)

			for _, prim := range node.Mesh.Primitives {
				if !prim.HasAttribute(gltf.POSITION, 3) {
					continue
				}
				if !prim.Bounds.PointInside(localFrom) && !prim.Bounds.PointInside(localTo) && !aabbRayTest(localFrom, localTo, prim.Bounds) {
					continue
				}
				hits = append(hits, trianglesRayTest(node, prim, localFrom, localTo, doubleSided || prim.material().DoubleSided)...)
			}
			return true
		})
	}

	for i := range hits {
		hits[i].from = from
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance() < hits[j].Distance() })

	return hits

}

// aabbRayTest reports whether the segment from -> to crosses the box; both ends being outside.
func aabbRayTest(from, to Vector3, box AABB) bool {

	rayLine := to.Sub(from)
	length := rayLine.Magnitude()
	if length == 0 {
		return false
	}
	rayLineUnit := rayLine.Scale(1 / length)

	t1 := (box.Min.X - from.X) / rayLineUnit.X
	t2 := (box.Max.X - from.X) / rayLineUnit.X
	t3 := (box.Min.Y - from.Y) / rayLineUnit.Y
	t4 := (box.Max.Y - from.Y) / rayLineUnit.Y
	t5 := (box.Min.Z - from.Z) / rayLineUnit.Z
	t6 := (box.Max.Z - from.Z) / rayLineUnit.Z

	tmin := math32.Max(math32.Max(math32.Min(t1, t2), math32.Min(t3, t4)), math32.Min(t5, t6))
	tmax := math32.Min(math32.Min(math32.Max(t1, t2), math32.Max(t3, t4)), math32.Max(t5, t6))

	if math32.IsNaN(tmin) || math32.IsNaN(tmax) {
		return false
	}

	return tmin >= 0 && tmin <= tmax && tmin <= length

}

func trianglesRayTest(node *Node, prim *Primitive, from, to Vector3, doubleSided bool) []RayHit {

	positions := Vec3View(prim.Attributes[gltf.POSITION])
	var results []RayHit

	for t := 0; t < prim.TriangleCount(); t++ {
		a, b, c := prim.Triangle(t)
		v0, v1, v2 := positions.At(a), positions.At(b), positions.At(c)

		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		// Degenerate triangles have no plane to strike.
		if normal.MagnitudeSquared() == 0 {
			continue
		}
		normal = normal.Unit()

		fs := normal.Dot(from.Sub(v0))
		ts := normal.Dot(to.Sub(v0))

		// Both ends on the same side: the segment can't cross the triangle's plane.
		if (fs > 0 && ts > 0) || (fs < 0 && ts < 0) || fs == ts {
			continue
		}
		if !doubleSided && fs < 0 {
			continue
		}

		point := from.Lerp(to, fs/(fs-ts))
		if !pointInsideTriangle(point, v0, v1, v2) {
			continue
		}

		results = append(results, RayHit{
			Node:      node,
			Primitive: prim,
			Triangle:  t,
			Position:  node.world.MultVec(point),
			Normal:    node.normal.MultDir(normal).Unit(),
		})
	}

	return results

}

// pointInsideTriangle reports whether point, lying on the triangle's plane, falls within its edges.
func pointInsideTriangle(point, v0, v1, v2 Vector3) bool {

	e0 := v2.Sub(v0)
	e1 := v1.Sub(v0)
	e2 := point.Sub(v0)

	dot00 := e0.Dot(e0)
	dot01 := e0.Dot(e1)
	dot02 := e0.Dot(e2)
	dot11 := e1.Dot(e1)
	dot12 := e1.Dot(e2)

	invDenom := 1 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	const eps = 1e-6
	return u >= -eps && v >= -eps && u+v <= 1+eps

}
