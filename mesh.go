package acg

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// Primitive is a single draw call: vertex attributes, optional indices, a draw mode and a Material.
// Primitives are read-only while a frame renders.
type Primitive struct {
	VertexCount int
	// Indices, if present, are assembled into triangles instead of the vertices themselves.
	Indices []uint32
	// Attributes holds tightly packed float arrays keyed by glTF semantic (gltf.POSITION, gltf.NORMAL,
	// gltf.TANGENT, gltf.TEXCOORD_0, gltf.JOINTS_0, gltf.WEIGHTS_0, ...).
	Attributes map[string][]float32
	// Mode is the triangle topology; gltf.PrimitiveTriangles, gltf.PrimitiveTriangleStrip and
	// gltf.PrimitiveTriangleFan are drawn, anything else is skipped.
	Mode     gltf.PrimitiveMode
	Material *Material
	// Bounds is the local-space box around the positions, used for frustum culling and transparency sorting.
	Bounds AABB
}

// NewPrimitive creates a triangle-list Primitive from its positions (XYZ triples), computing VertexCount and Bounds.
func NewPrimitive(positions []float32, indices []uint32, material *Material) *Primitive {
	return &Primitive{
		VertexCount: len(positions) / 3,
		Indices:     indices,
		Attributes:  map[string][]float32{gltf.POSITION: positions},
		Mode:        gltf.PrimitiveTriangles,
		Material:    material,
		Bounds:      NewAABBFromPositions(positions),
	}
}

// SetAttribute sets an attribute array on the Primitive and returns it for chaining.
func (prim *Primitive) SetAttribute(semantic string, values []float32) *Primitive {
	if prim.Attributes == nil {
		prim.Attributes = map[string][]float32{}
	}
	prim.Attributes[semantic] = values
	if semantic == gltf.POSITION {
		prim.Bounds = NewAABBFromPositions(values)
	}
	return prim
}

// HasAttribute returns true if the Primitive carries the semantic with enough components for every vertex.
func (prim *Primitive) HasAttribute(semantic string, components int) bool {
	return len(prim.Attributes[semantic]) >= prim.VertexCount*components
}

// TriangleCount returns how many triangles the Primitive assembles into.
func (prim *Primitive) TriangleCount() int {
	n := prim.VertexCount
	if prim.Indices != nil {
		n = len(prim.Indices)
	}
	switch prim.Mode {
	case gltf.PrimitiveTriangles:
		return n / 3
	case gltf.PrimitiveTriangleStrip, gltf.PrimitiveTriangleFan:
		return max(n-2, 0)
	}
	return 0
}

// Triangle returns the vertex indices of the triangle t. Strips flip every odd triangle to keep a consistent
// winding, and fans pivot around the first vertex.
func (prim *Primitive) Triangle(t int) (int, int, int) {
	var a, b, c int
	switch prim.Mode {
	case gltf.PrimitiveTriangleStrip:
		if t%2 == 0 {
			a, b, c = t, t+1, t+2
		} else {
			a, b, c = t, t+2, t+1
		}
	case gltf.PrimitiveTriangleFan:
		a, b, c = t+1, t+2, 0
	default:
		a, b, c = t*3, t*3+1, t*3+2
	}
	if prim.Indices != nil {
		return int(prim.Indices[a]), int(prim.Indices[b]), int(prim.Indices[c])
	}
	return a, b, c
}

func (prim *Primitive) material() *Material {
	if prim.Material == nil {
		return defaultMaterial
	}
	return prim.Material
}

// requireAttribute returns the attribute array or panics with ErrMissingAttribute.
func (prim *Primitive) requireAttribute(semantic string, components int) []float32 {
	if !prim.HasAttribute(semantic, components) {
		panic(fmt.Errorf("%s (%d components for %d vertices): %w", semantic, components, prim.VertexCount, ErrMissingAttribute))
	}
	return prim.Attributes[semantic]
}

// Vec2View reads an attribute of 2 components per vertex.
type Vec2View []float32

func (view Vec2View) At(i int) Vector2 {
	return Vector2{view[i*2], view[i*2+1]}
}

// Vec3View reads an attribute of 3 components per vertex.
type Vec3View []float32

func (view Vec3View) At(i int) Vector3 {
	return Vector3{view[i*3], view[i*3+1], view[i*3+2]}
}

// Vec4View reads an attribute of 4 components per vertex.
type Vec4View []float32

func (view Vec4View) At(i int) Vector4 {
	return Vector4{view[i*4], view[i*4+1], view[i*4+2], view[i*4+3]}
}

// attributeViews are the typed views shaders resolve once in BindPrimitive, so the per-vertex loop only indexes slices.
type attributeViews struct {
	positions Vec3View
	normals   Vec3View
	uvs       Vec2View
	tangents  Vec4View
	joints    Vec4View
	weights   Vec4View
}

// bindViews resolves the views of prim; required attributes panic when missing, optional ones are left nil.
func bindViews(prim *Primitive, needNormals bool) attributeViews {
	views := attributeViews{positions: prim.requireAttribute(gltf.POSITION, 3)}
	if needNormals {
		views.normals = prim.requireAttribute(gltf.NORMAL, 3)
	}
	if prim.HasAttribute(gltf.TEXCOORD_0, 2) {
		views.uvs = prim.Attributes[gltf.TEXCOORD_0]
	}
	if prim.HasAttribute(gltf.TANGENT, 4) {
		views.tangents = prim.Attributes[gltf.TANGENT]
	}
	if prim.HasAttribute(gltf.JOINTS_0, 4) && prim.HasAttribute(gltf.WEIGHTS_0, 4) {
		views.joints = prim.Attributes[gltf.JOINTS_0]
		views.weights = prim.Attributes[gltf.WEIGHTS_0]
	}
	return views
}

// Mesh is a named group of Primitives sharing a Node's transform.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// NewMesh creates a new Mesh.
func NewMesh(name string, primitives ...*Primitive) *Mesh {
	return &Mesh{Name: name, Primitives: primitives}
}

// Bounds returns the box around every Primitive of the Mesh.
func (mesh *Mesh) Bounds() AABB {
	box := NewEmptyAABB()
	for _, prim := range mesh.Primitives {
		if prim.Bounds.IsEmpty() {
			continue
		}
		box = box.Expand(prim.Bounds.Min).Expand(prim.Bounds.Max)
	}
	return box
}

// NewQuadPrimitive returns a width by height quad on the XY plane centered on the origin, facing +Z,
// with normals, tangents and UVs.
func NewQuadPrimitive(width, height float32, material *Material) *Primitive {
	w, h := width/2, height/2
	prim := NewPrimitive([]float32{
		-w, h, 0,
		-w, -h, 0,
		w, -h, 0,
		w, h, 0,
	}, []uint32{0, 1, 2, 0, 2, 3}, material)
	prim.SetAttribute(gltf.NORMAL, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1})
	prim.SetAttribute(gltf.TANGENT, []float32{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1})
	prim.SetAttribute(gltf.TEXCOORD_0, []float32{0, 0, 0, 1, 1, 1, 1, 0})
	return prim
}

// NewCubeMesh returns a cube of the given size centered on the origin, each face with its own normals,
// tangents and UVs.
func NewCubeMesh(name string, size float32, material *Material) *Mesh {

	s := size / 2

	// Each face: normal, tangent, and the "up" direction of its UV space.
	faces := []struct{ normal, tangent, up Vector3 }{
		{Vector3{0, 0, 1}, Vector3{1, 0, 0}, Vector3{0, 1, 0}},
		{Vector3{0, 0, -1}, Vector3{-1, 0, 0}, Vector3{0, 1, 0}},
		{Vector3{1, 0, 0}, Vector3{0, 0, -1}, Vector3{0, 1, 0}},
		{Vector3{-1, 0, 0}, Vector3{0, 0, 1}, Vector3{0, 1, 0}},
		{Vector3{0, 1, 0}, Vector3{1, 0, 0}, Vector3{0, 0, -1}},
		{Vector3{0, -1, 0}, Vector3{1, 0, 0}, Vector3{0, 0, 1}},
	}

	positions := make([]float32, 0, 6*4*3)
	normals := make([]float32, 0, 6*4*3)
	tangents := make([]float32, 0, 6*4*4)
	uvs := make([]float32, 0, 6*4*2)
	indices := make([]uint32, 0, 6*6)

	for f, face := range faces {
		center := face.normal.Scale(s)
		right := face.tangent.Scale(s)
		up := face.up.Scale(s)
		corners := [4]Vector3{
			center.Sub(right).Add(up),
			center.Sub(right).Sub(up),
			center.Add(right).Sub(up),
			center.Add(right).Add(up),
		}
		for _, c := range corners {
			positions = append(positions, c.X, c.Y, c.Z)
			normals = append(normals, face.normal.X, face.normal.Y, face.normal.Z)
			tangents = append(tangents, face.tangent.X, face.tangent.Y, face.tangent.Z, 1)
		}
		uvs = append(uvs, 0, 0, 0, 1, 1, 1, 1, 0)
		base := uint32(f * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	prim := NewPrimitive(positions, indices, material)
	prim.SetAttribute(gltf.NORMAL, normals)
	prim.SetAttribute(gltf.TANGENT, tangents)
	prim.SetAttribute(gltf.TEXCOORD_0, uvs)
	return NewMesh(name, prim)
}
