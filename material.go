package acg

import (
	"github.com/qmuntal/gltf"
)

// Material describes how a Primitive's surface is shaded. The fields follow the glTF metallic-roughness model;
// which of them matter depends on the shader drawing the Primitive.
type Material struct {
	Name string

	BaseColorFactor  Color
	BaseColorTexture *Sampler // nil means the BaseColorFactor alone is used.

	NormalTexture *Sampler // Tangent-space normal map, used by the PBR shader when the primitive has tangents.
	NormalScale   float32

	// MetallicRoughnessTexture holds roughness in its green channel and metalness in its blue one.
	MetallicRoughnessTexture *Sampler
	MetallicFactor           float32
	RoughnessFactor          float32

	EmissiveFactor Color

	// Shininess is the Blinn-Phong specular exponent; SpecularFactor scales the highlight.
	Shininess      float32
	SpecularFactor float32

	// AlphaMode routes the primitive: gltf.AlphaOpaque primitives are drawn in the parallel opaque pass,
	// while gltf.AlphaMask and gltf.AlphaBlend primitives are sorted and drawn afterwards, back to front.
	AlphaMode gltf.AlphaMode
	// AlphaCutoff is the alpha under which AlphaMask pixels are discarded.
	AlphaCutoff float32

	// DoubleSided turns off back-face culling for the primitive.
	DoubleSided bool
}

// NewMaterial creates a new opaque white Material with the name given.
func NewMaterial(name string) *Material {
	return &Material{
		Name:            name,
		BaseColorFactor: NewColor(1, 1, 1, 1),
		NormalScale:     1,
		MetallicFactor:  1,
		RoughnessFactor: 1,
		EmissiveFactor:  NewColor(0, 0, 0, 1),
		Shininess:       32,
		SpecularFactor:  0.5,
		AlphaMode:       gltf.AlphaOpaque,
		AlphaCutoff:     0.5,
	}
}

// Clone creates a copy of the Material. Samplers are shared, as textures are read-only.
func (material *Material) Clone() *Material {
	newMat := *material
	return &newMat
}

// IsOpaque returns true if primitives using the Material belong in the opaque pass.
func (material *Material) IsOpaque() bool {
	return material == nil || material.AlphaMode == gltf.AlphaOpaque
}

// BaseColor returns the base color at uv: the factor multiplied by the texture, if any.
func (material *Material) BaseColor(uv Vector2) Color {
	if material.BaseColorTexture == nil {
		return material.BaseColorFactor
	}
	return material.BaseColorTexture.Sample(uv).Mult(material.BaseColorFactor)
}

// applyAlphaMode turns a shaded color into the one that gets written: opaque materials ignore alpha,
// masked ones are fully opaque or fully cut, and blended ones keep it.
func (material *Material) applyAlphaMode(c Color) Color {
	if material == nil {
		c.A = 1
		return c
	}
	switch material.AlphaMode {
	case gltf.AlphaMask:
		if c.A < material.AlphaCutoff {
			c.A = 0
		} else {
			c.A = 1
		}
	case gltf.AlphaBlend:
	default:
		c.A = 1
	}
	return c
}

var defaultMaterial = NewMaterial("default")
