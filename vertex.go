package acg

// Vertex is the arithmetic every vertex layout provides so the pipeline can clip and interpolate it without
// knowing what it carries. Implementations are small value types; every method returns a new value.
type Vertex[V any] interface {
	Add(other V) V
	Sub(other V) V
	Scale(scalar float32) V
	Divide(scalar float32) V
	// Lerp moves from the vertex towards other by percent (0 gives the vertex, 1 gives other).
	Lerp(other V, percent float32) V
	// Position returns the homogeneous position. Coming out of a vertex shader it is in world space with W = 1;
	// the pipeline replaces it with clip-space and then screen-space positions.
	Position() Vector4
	WithPosition(pos Vector4) V
}

// Every layout keeps its varyings in one array; all the operators below loop over the whole array, so adding a
// varying only means growing the array and adding an accessor.

func addVaryings(dst, other []float32) {
	for i := range dst {
		dst[i] += other[i]
	}
}

func subVaryings(dst, other []float32) {
	for i := range dst {
		dst[i] -= other[i]
	}
}

func scaleVaryings(dst []float32, scalar float32) {
	for i := range dst {
		dst[i] *= scalar
	}
}

func lerpVaryings(dst, other []float32, percent float32) {
	for i := range dst {
		dst[i] += (other[i] - dst[i]) * percent
	}
}

//---------------//

// DepthVertex carries only a position; used when rendering shadow maps.
type DepthVertex struct {
	Pos Vector4
}

func (v DepthVertex) Add(o DepthVertex) DepthVertex             { return DepthVertex{v.Pos.Add(o.Pos)} }
func (v DepthVertex) Sub(o DepthVertex) DepthVertex             { return DepthVertex{v.Pos.Sub(o.Pos)} }
func (v DepthVertex) Scale(s float32) DepthVertex               { return DepthVertex{v.Pos.Scale(s)} }
func (v DepthVertex) Divide(s float32) DepthVertex              { return DepthVertex{v.Pos.Scale(1 / s)} }
func (v DepthVertex) Lerp(o DepthVertex, p float32) DepthVertex { return DepthVertex{v.Pos.Lerp(o.Pos, p)} }
func (v DepthVertex) Position() Vector4                         { return v.Pos }
func (v DepthVertex) WithPosition(pos Vector4) DepthVertex      { return DepthVertex{pos} }

//---------------//

const (
	unlitUV       = 0
	unlitVaryings = 2
)

// UnlitVertex carries a texture coordinate.
type UnlitVertex struct {
	Pos      Vector4
	Varyings [unlitVaryings]float32
}

func (v UnlitVertex) Add(o UnlitVertex) UnlitVertex {
	v.Pos = v.Pos.Add(o.Pos)
	addVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v UnlitVertex) Sub(o UnlitVertex) UnlitVertex {
	v.Pos = v.Pos.Sub(o.Pos)
	subVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v UnlitVertex) Scale(s float32) UnlitVertex {
	v.Pos = v.Pos.Scale(s)
	scaleVaryings(v.Varyings[:], s)
	return v
}

func (v UnlitVertex) Divide(s float32) UnlitVertex {
	return v.Scale(1 / s)
}

func (v UnlitVertex) Lerp(o UnlitVertex, p float32) UnlitVertex {
	v.Pos = v.Pos.Lerp(o.Pos, p)
	lerpVaryings(v.Varyings[:], o.Varyings[:], p)
	return v
}

func (v UnlitVertex) Position() Vector4 { return v.Pos }

func (v UnlitVertex) WithPosition(pos Vector4) UnlitVertex {
	v.Pos = pos
	return v
}

func (v UnlitVertex) UV() Vector2 {
	return Vector2{v.Varyings[unlitUV], v.Varyings[unlitUV+1]}
}

func (v *UnlitVertex) SetUV(uv Vector2) {
	v.Varyings[unlitUV], v.Varyings[unlitUV+1] = uv.X, uv.Y
}

//---------------//

const (
	phongWorld    = 0
	phongNormal   = 3
	phongUV       = 6
	phongVaryings = 8
)

// PhongVertex carries the world position, normal and texture coordinate.
type PhongVertex struct {
	Pos      Vector4
	Varyings [phongVaryings]float32
}

func (v PhongVertex) Add(o PhongVertex) PhongVertex {
	v.Pos = v.Pos.Add(o.Pos)
	addVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v PhongVertex) Sub(o PhongVertex) PhongVertex {
	v.Pos = v.Pos.Sub(o.Pos)
	subVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v PhongVertex) Scale(s float32) PhongVertex {
	v.Pos = v.Pos.Scale(s)
	scaleVaryings(v.Varyings[:], s)
	return v
}

func (v PhongVertex) Divide(s float32) PhongVertex {
	return v.Scale(1 / s)
}

func (v PhongVertex) Lerp(o PhongVertex, p float32) PhongVertex {
	v.Pos = v.Pos.Lerp(o.Pos, p)
	lerpVaryings(v.Varyings[:], o.Varyings[:], p)
	return v
}

func (v PhongVertex) Position() Vector4 { return v.Pos }

func (v PhongVertex) WithPosition(pos Vector4) PhongVertex {
	v.Pos = pos
	return v
}

func (v PhongVertex) World() Vector3 {
	return Vector3{v.Varyings[phongWorld], v.Varyings[phongWorld+1], v.Varyings[phongWorld+2]}
}

func (v PhongVertex) Normal() Vector3 {
	return Vector3{v.Varyings[phongNormal], v.Varyings[phongNormal+1], v.Varyings[phongNormal+2]}
}

func (v PhongVertex) UV() Vector2 {
	return Vector2{v.Varyings[phongUV], v.Varyings[phongUV+1]}
}

func (v *PhongVertex) set(world, normal Vector3, uv Vector2) {
	v.Varyings = [phongVaryings]float32{world.X, world.Y, world.Z, normal.X, normal.Y, normal.Z, uv.X, uv.Y}
}

//---------------//

const (
	pbrWorld    = 0
	pbrNormal   = 3
	pbrUV       = 6
	pbrTangent  = 8
	pbrVaryings = 12
)

// PBRVertex carries the world position, normal, texture coordinate and tangent (with handedness in W).
type PBRVertex struct {
	Pos      Vector4
	Varyings [pbrVaryings]float32
}

func (v PBRVertex) Add(o PBRVertex) PBRVertex {
	v.Pos = v.Pos.Add(o.Pos)
	addVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v PBRVertex) Sub(o PBRVertex) PBRVertex {
	v.Pos = v.Pos.Sub(o.Pos)
	subVaryings(v.Varyings[:], o.Varyings[:])
	return v
}

func (v PBRVertex) Scale(s float32) PBRVertex {
	v.Pos = v.Pos.Scale(s)
	scaleVaryings(v.Varyings[:], s)
	return v
}

func (v PBRVertex) Divide(s float32) PBRVertex {
	return v.Scale(1 / s)
}

func (v PBRVertex) Lerp(o PBRVertex, p float32) PBRVertex {
	v.Pos = v.Pos.Lerp(o.Pos, p)
	lerpVaryings(v.Varyings[:], o.Varyings[:], p)
	return v
}

func (v PBRVertex) Position() Vector4 { return v.Pos }

func (v PBRVertex) WithPosition(pos Vector4) PBRVertex {
	v.Pos = pos
	return v
}

func (v PBRVertex) World() Vector3 {
	return Vector3{v.Varyings[pbrWorld], v.Varyings[pbrWorld+1], v.Varyings[pbrWorld+2]}
}

func (v PBRVertex) Normal() Vector3 {
	return Vector3{v.Varyings[pbrNormal], v.Varyings[pbrNormal+1], v.Varyings[pbrNormal+2]}
}

func (v PBRVertex) UV() Vector2 {
	return Vector2{v.Varyings[pbrUV], v.Varyings[pbrUV+1]}
}

func (v PBRVertex) Tangent() Vector4 {
	return Vector4{v.Varyings[pbrTangent], v.Varyings[pbrTangent+1], v.Varyings[pbrTangent+2], v.Varyings[pbrTangent+3]}
}

func (v *PBRVertex) set(world, normal Vector3, uv Vector2, tangent Vector4) {
	v.Varyings = [pbrVaryings]float32{
		world.X, world.Y, world.Z,
		normal.X, normal.Y, normal.Z,
		uv.X, uv.Y,
		tangent.X, tangent.Y, tangent.Z, tangent.W,
	}
}
