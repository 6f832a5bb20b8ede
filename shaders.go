package acg

import (
	"github.com/asvorded/acg-labs-sub000/math32"
)

// UnlitShader draws the material's base color (and texture) with no lighting.
type UnlitShader struct {
	shaderState
}

// NewUnlitShader returns a new UnlitShader.
func NewUnlitShader() *UnlitShader {
	return &UnlitShader{}
}

func (s *UnlitShader) BindPrimitive(prim *Primitive, world Matrix4) {
	s.bindPrimitive(prim, world, false)
}

func (s *UnlitShader) VertexShader(i int) UnlitVertex {
	v := UnlitVertex{Pos: s.worldPosition(i).Vector4(1)}
	v.SetUV(s.uv(i))
	return v
}

func (s *UnlitShader) PixelShader(v UnlitVertex) Color {
	return s.material.BaseColor(v.UV())
}

//---------------//

// PhongShader lights surfaces with the Blinn-Phong model: the Scene's ambient term plus a diffuse and a specular
// term per light. It requires normals.
type PhongShader struct {
	shaderState
}

// NewPhongShader returns a new PhongShader.
func NewPhongShader() *PhongShader {
	return &PhongShader{}
}

func (s *PhongShader) BindPrimitive(prim *Primitive, world Matrix4) {
	s.bindPrimitive(prim, world, true)
}

func (s *PhongShader) VertexShader(i int) PhongVertex {
	pos, normal, _ := s.worldVertex(i)
	v := PhongVertex{Pos: pos.Vector4(1)}
	v.set(pos, normal, s.uv(i))
	return v
}

func (s *PhongShader) PixelShader(v PhongVertex) Color {
	return s.blinnPhong(v.World(), v.Normal().Unit(), s.material.BaseColor(v.UV()), nil)
}

//---------------//

// ShadowShader is a PhongShader that darkens the contribution of the shadow-casting light where the ShadowMap
// says something is in the way. Without a ShadowMap it behaves like a PhongShader.
type ShadowShader struct {
	PhongShader
	shadow *ShadowMap
}

// NewShadowShader returns a new ShadowShader.
func NewShadowShader() *ShadowShader {
	return &ShadowShader{}
}

// SetShadowMap sets the ShadowMap looked up by the shader.
func (s *ShadowShader) SetShadowMap(shadow *ShadowMap) {
	s.shadow = shadow
}

func (s *ShadowShader) PixelShader(v PhongVertex) Color {
	base := s.material.BaseColor(v.UV())
	if s.shadow == nil {
		return s.blinnPhong(v.World(), v.Normal().Unit(), base, nil)
	}
	return s.blinnPhong(v.World(), v.Normal().Unit(), base, s.visibility)
}

func (s *ShadowShader) visibility(light Light, world Vector3) float32 {
	if s.shadow.Light != nil && s.shadow.Light != light {
		return 1
	}
	return s.shadow.Visibility(world)
}

//---------------//

// DepthShader only positions vertices; it is what the Renderer draws shadow maps with.
type DepthShader struct {
	shaderState
}

// NewDepthShader returns a new DepthShader.
func NewDepthShader() *DepthShader {
	return &DepthShader{}
}

func (s *DepthShader) BindPrimitive(prim *Primitive, world Matrix4) {
	s.bindPrimitive(prim, world, false)
}

func (s *DepthShader) VertexShader(i int) DepthVertex {
	return DepthVertex{Pos: s.worldPosition(i).Vector4(1)}
}

func (s *DepthShader) PixelShader(v DepthVertex) Color {
	return NewColor(1, 1, 1, 1)
}

//---------------//

// PBRShader shades the glTF metallic-roughness model: a Cook-Torrance specular term (GGX distribution, Smith
// geometry, Schlick Fresnel) over a Lambert diffuse, with normal mapping and emission. Output is Reinhard
// tone-mapped. It requires normals; tangents are needed for normal mapping.
type PBRShader struct {
	shaderState
}

// NewPBRShader returns a new PBRShader.
func NewPBRShader() *PBRShader {
	return &PBRShader{}
}

func (s *PBRShader) BindPrimitive(prim *Primitive, world Matrix4) {
	s.bindPrimitive(prim, world, true)
}

func (s *PBRShader) VertexShader(i int) PBRVertex {
	pos, normal, tangent := s.worldVertex(i)
	v := PBRVertex{Pos: pos.Vector4(1)}
	v.set(pos, normal, s.uv(i), tangent)
	return v
}

func (s *PBRShader) PixelShader(v PBRVertex) Color {
	mat := s.material
	uv := v.UV()
	world := v.World()
	base := mat.BaseColor(uv)

	metallic, roughness := mat.MetallicFactor, mat.RoughnessFactor
	if mat.MetallicRoughnessTexture != nil {
		mr := mat.MetallicRoughnessTexture.Sample(uv)
		roughness *= mr.G
		metallic *= mr.B
	}
	roughness = math32.Clamp(roughness, 0.04, 1)
	metallic = math32.Saturate(metallic)

	normal := s.facing(world, s.shadingNormal(v))
	view := s.cameraPosition.Sub(world).Unit()
	nDotV := math32.Max(normal.Dot(view), 1e-4)

	f0 := NewColor(0.04, 0.04, 0.04, 1).Lerp(base, metallic)

	out := base.Mult(s.ambient)
	for _, light := range s.lights {
		dir, radiance := light.Illuminate(world)
		nDotL := normal.Dot(dir)
		if nDotL <= 0 {
			continue
		}
		half := dir.Add(view).Unit()
		d := distributionGGX(normal.Dot(half), roughness)
		g := geometrySmith(nDotV, nDotL, roughness)
		f := fresnelSchlick(math32.Max(half.Dot(view), 0), f0)

		spec := f.ScaleRGB(d * g / (4*nDotV*nDotL + 1e-4))
		kd := Color{(1 - f.R) * (1 - metallic), (1 - f.G) * (1 - metallic), (1 - f.B) * (1 - metallic), 1}
		diffuse := kd.Mult(base).ScaleRGB(1 / math32.Pi)
		out = out.Add(diffuse.Add(spec).Mult(radiance).ScaleRGB(nDotL))
	}
	out = out.Add(mat.EmissiveFactor)

	out = Color{out.R / (1 + out.R), out.G / (1 + out.G), out.B / (1 + out.B), base.A}
	return out
}

// shadingNormal returns the interpolated normal, perturbed by the normal texture when there is one and the
// primitive has tangents.
func (s *PBRShader) shadingNormal(v PBRVertex) Vector3 {
	normal := v.Normal().Unit()
	mat := s.material
	if mat.NormalTexture == nil || s.views.tangents == nil {
		return normal
	}
	t4 := v.Tangent()
	tangent := t4.Vector3()
	// Gram-Schmidt against the interpolated normal.
	tangent = tangent.Sub(normal.Scale(normal.Dot(tangent))).Unit()
	sign := float32(1)
	if t4.W < 0 {
		sign = -1
	}
	bitangent := normal.Cross(tangent).Scale(sign)

	sample := mat.NormalTexture.Sample(v.UV())
	tx := (sample.R*2 - 1) * mat.NormalScale
	ty := (sample.G*2 - 1) * mat.NormalScale
	tz := sample.B*2 - 1
	return tangent.Scale(tx).Add(bitangent.Scale(ty)).Add(normal.Scale(tz)).Unit()
}

func distributionGGX(nDotH, roughness float32) float32 {
	a := roughness * roughness
	a2 := a * a
	nDotH = math32.Max(nDotH, 0)
	d := nDotH*nDotH*(a2-1) + 1
	return a2 / (math32.Pi * d * d)
}

func geometrySmith(nDotV, nDotL, roughness float32) float32 {
	r := roughness + 1
	k := r * r / 8
	schlick := func(x float32) float32 { return x / (x*(1-k) + k) }
	return schlick(nDotV) * schlick(nDotL)
}

func fresnelSchlick(cosTheta float32, f0 Color) Color {
	f := math32.Pow(1-cosTheta, 5)
	return Color{
		f0.R + (1-f0.R)*f,
		f0.G + (1-f0.G)*f,
		f0.B + (1-f0.B)*f,
		1,
	}
}
