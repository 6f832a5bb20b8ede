package acg

// clipNear clips a clip-space triangle against the near plane (z >= 0), writing the surviving triangles into out
// and returning how many there are (0, 1 or 2). The winding of the input is kept: vertices are only rotated,
// never swapped. New vertices are interpolated with Lerp, so every varying is carried along, and land exactly
// on the plane.
func clipNear[V Vertex[V]](tri [3]V, out *[2][3]V) int {

	behind := 0
	first := -1 // first vertex behind the plane
	lone := -1  // the vertex in front when two are behind
	for i := range tri {
		if tri[i].Position().Z < 0 {
			behind++
			if first < 0 {
				first = i
			}
		} else {
			lone = i
		}
	}

	switch behind {

	case 0:
		out[0] = tri
		return 1

	case 1:
		a, b, c := rotateTriangle(tri, first)
		ab := nearIntersection(a, b)
		ac := nearIntersection(a, c)
		out[0] = [3]V{ab, b, c}
		out[1] = [3]V{ab, c, ac}
		return 2

	case 2:
		a, b, c := rotateTriangle(tri, lone)
		out[0] = [3]V{a, nearIntersection(b, a), nearIntersection(c, a)}
		return 1

	}

	return 0

}

// rotateTriangle returns the vertices of tri starting at index start, in the same cyclic order.
func rotateTriangle[V any](tri [3]V, start int) (V, V, V) {
	return tri[start], tri[(start+1)%3], tri[(start+2)%3]
}

// nearIntersection returns the point where the edge from behind (z < 0) to front (z >= 0) crosses z = 0.
func nearIntersection[V Vertex[V]](behind, front V) V {
	zb := behind.Position().Z
	zf := front.Position().Z
	v := behind.Lerp(front, zb/(zb-zf))
	pos := v.Position()
	pos.Z = 0
	return v.WithPosition(pos)
}
