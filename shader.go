package acg

import (
	"fmt"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// Shader is a pair of vertex and pixel programs working on the vertex layout V, plus the bind and unbind hooks
// the pipeline calls around them. Bindings live on the Shader value, not in globals, so two Renderers can use two
// Shader values at once; a single Shader value serves one frame at a time.
//
// Call order for a frame is BindScene, then for every primitive BindPrimitive, optionally BindSkin, the vertex
// and pixel programs, optionally UnbindSkin, UnbindPrimitive; and UnbindScene at the end.
// VertexShader and PixelShader are called from several goroutines at once and must only read the bindings.
type Shader[V Vertex[V]] interface {
	BindScene(scene *Scene)
	UnbindScene()
	// BindPrimitive must only be called between BindScene and UnbindScene; otherwise it panics with ErrSceneUnbound.
	// It panics with ErrMissingAttribute when prim lacks an attribute the shader requires.
	BindPrimitive(prim *Primitive, world Matrix4)
	UnbindPrimitive()
	BindSkin(skin *Skin)
	UnbindSkin()

	// VertexShader returns vertex index of the bound primitive, with its position in world space (W = 1).
	VertexShader(index int) V
	// PixelShader returns the color of a pixel from the perspective-corrected, interpolated vertex. The vertex's
	// position holds the pixel center in X and Y and the interpolated 1/w in W.
	PixelShader(vertex V) Color
}

// ShadowReceiver is implemented by shaders that can look up a ShadowMap. The Renderer renders the Scene's ShadowMap
// and hands it over before the frame when the active shader is one.
type ShadowReceiver interface {
	SetShadowMap(shadow *ShadowMap)
}

// shaderState holds the bindings every shader shares; shaders embed it.
type shaderState struct {
	scene          *Scene
	cameraPosition Vector3
	lights         []Light
	ambient        Color

	prim     *Primitive
	material *Material
	world    Matrix4
	normal   Matrix4
	views    attributeViews
	skin     *Skin
}

func (s *shaderState) BindScene(scene *Scene) {
	s.scene = scene
	if scene.Camera != nil {
		s.cameraPosition = scene.Camera.Position
	}
	s.lights = scene.ActiveLights()
	s.ambient = scene.Ambient
}

func (s *shaderState) UnbindScene() {
	s.scene = nil
	s.lights = nil
}

func (s *shaderState) bindPrimitive(prim *Primitive, world Matrix4, needNormals bool) {
	if s.scene == nil {
		panic(fmt.Errorf("bind primitive: %w", ErrSceneUnbound))
	}
	s.views = bindViews(prim, needNormals)
	s.prim = prim
	s.material = prim.material()
	s.world = world
	s.normal = world.NormalMatrix()
}

func (s *shaderState) UnbindPrimitive() {
	s.prim = nil
	s.material = nil
	s.views = attributeViews{}
}

func (s *shaderState) BindSkin(skin *Skin) {
	s.skin = skin
}

func (s *shaderState) UnbindSkin() {
	s.skin = nil
}

// skinMatrix returns the blended joint matrix of vertex i, and false when the vertex isn't skinned.
func (s *shaderState) skinMatrix(i int) (Matrix4, bool) {
	if s.skin == nil || s.views.joints == nil || len(s.skin.JointMatrices) == 0 {
		return Matrix4{}, false
	}
	return s.skin.Matrix(s.views.joints.At(i), s.views.weights.At(i)), true
}

// worldPosition returns the world-space position of vertex i.
func (s *shaderState) worldPosition(i int) Vector3 {
	pos := s.views.positions.At(i)
	if m, ok := s.skinMatrix(i); ok {
		pos = m.MultVec(pos)
	}
	return s.world.MultVec(pos)
}

// worldVertex returns the world-space position, unit normal and tangent of vertex i. Missing normals come out
// zero and missing tangents as {1, 0, 0, 1} in local space.
func (s *shaderState) worldVertex(i int) (pos, normal Vector3, tangent Vector4) {
	pos = s.views.positions.At(i)
	if s.views.normals != nil {
		normal = s.views.normals.At(i)
	}
	tangent = Vector4{1, 0, 0, 1}
	if s.views.tangents != nil {
		tangent = s.views.tangents.At(i)
	}

	if m, ok := s.skinMatrix(i); ok {
		pos = m.MultVec(pos)
		normal = m.NormalMatrix().MultDir(normal)
		t := m.MultDir(tangent.Vector3())
		tangent = t.Vector4(tangent.W)
	}

	pos = s.world.MultVec(pos)
	normal = s.normal.MultDir(normal).Unit()
	t := s.world.MultDir(tangent.Vector3()).Unit()
	tangent = t.Vector4(tangent.W)
	return pos, normal, tangent
}

func (s *shaderState) uv(i int) Vector2 {
	if s.views.uvs == nil {
		return Vector2{}
	}
	return s.views.uvs.At(i)
}

// facing flips a double-sided surface's normal towards the viewer.
func (s *shaderState) facing(world, normal Vector3) Vector3 {
	if s.material.DoubleSided && normal.Dot(s.cameraPosition.Sub(world)) < 0 {
		return normal.Invert()
	}
	return normal
}

// blinnPhong lights base at world with the bound lights. visibility, if not nil, scales each light's contribution.
func (s *shaderState) blinnPhong(world, normal Vector3, base Color, visibility func(Light, Vector3) float32) Color {
	mat := s.material
	normal = s.facing(world, normal)
	view := s.cameraPosition.Sub(world).Unit()

	out := base.Mult(s.ambient)
	out.A = base.A

	for _, light := range s.lights {
		dir, radiance := light.Illuminate(world)
		diffuse := normal.Dot(dir)
		if diffuse <= 0 {
			continue
		}
		if visibility != nil {
			v := visibility(light, world)
			if v <= 0 {
				continue
			}
			radiance = radiance.ScaleRGB(v)
		}
		half := dir.Add(view).Unit()
		spec := math32.Pow(math32.Max(normal.Dot(half), 0), mat.Shininess) * mat.SpecularFactor
		out = out.Add(base.ScaleRGB(diffuse).Mult(radiance))
		out = out.Add(radiance.ScaleRGB(spec))
	}

	out.R = math32.Saturate(out.R)
	out.G = math32.Saturate(out.G)
	out.B = math32.Saturate(out.B)
	return out
}
