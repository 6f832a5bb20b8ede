package acg

import (
	"image/color"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
// Shaders work in linear floats; colors only get sRGB encoded and packed into 8-bit ARGB when they are written
// into a Buffer.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromARGB unpacks a 32-bit 0xAARRGGBB value.
func NewColorFromARGB(argb uint32) Color {
	return Color{
		R: float32((argb>>16)&0xff) / 255,
		G: float32((argb>>8)&0xff) / 255,
		B: float32(argb&0xff) / 255,
		A: float32(argb>>24) / 255,
	}
}

// NewColorFromStd converts a standard library color (e.g. a decoded texel) into a Color.
func NewColorFromStd(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{float32(nc.R) / 255, float32(nc.G) / 255, float32(nc.B) / 255, float32(nc.A) / 255}
}

// Add adds the other Color's RGB to the calling Color, leaving alpha alone.
func (c Color) Add(other Color) Color {
	c.R += other.R
	c.G += other.G
	c.B += other.B
	return c
}

// Mult multiplies the Color component-wise (including alpha) by the other Color.
func (c Color) Mult(other Color) Color {
	c.R *= other.R
	c.G *= other.G
	c.B *= other.B
	c.A *= other.A
	return c
}

// ScaleRGB multiplies the RGB components by the scalar provided.
func (c Color) ScaleRGB(scalar float32) Color {
	c.R *= scalar
	c.G *= scalar
	c.B *= scalar
	return c
}

// Lerp linearly interpolates every channel towards the other Color.
func (c Color) Lerp(other Color, percent float32) Color {
	return Color{
		math32.Lerp(c.R, other.R, percent),
		math32.Lerp(c.G, other.G, percent),
		math32.Lerp(c.B, other.B, percent),
		math32.Lerp(c.A, other.A, percent),
	}
}

// Clamped returns the Color with all channels clamped to 0-1.
func (c Color) Clamped() Color {
	return Color{math32.Saturate(c.R), math32.Saturate(c.G), math32.Saturate(c.B), math32.Saturate(c.A)}
}

// Over composites the Color (using its alpha) over the dst Color, returning the result.
func (c Color) Over(dst Color) Color {
	a := math32.Saturate(c.A)
	return Color{
		R: c.R*a + dst.R*(1-a),
		G: c.G*a + dst.G*(1-a),
		B: c.B*a + dst.B*(1-a),
		A: a + dst.A*(1-a),
	}
}

// ToARGB packs the Color into a 32-bit 0xAARRGGBB value, clamping and rounding each channel.
func (c Color) ToARGB() uint32 {
	c = c.Clamped()
	return uint32(c.A*255+0.5)<<24 | uint32(c.R*255+0.5)<<16 | uint32(c.G*255+0.5)<<8 | uint32(c.B*255+0.5)
}

// ToSRGB converts the linear RGB channels of the Color to sRGB for display.
func (c Color) ToSRGB() Color {
	c.R = linearToSRGB(c.R)
	c.G = linearToSRGB(c.G)
	c.B = linearToSRGB(c.B)
	return c
}

// ToLinear converts sRGB-encoded RGB channels (like those of a base color texture) to linear.
func (c Color) ToLinear() Color {
	c.R = srgbToLinear(c.R)
	c.G = srgbToLinear(c.G)
	c.B = srgbToLinear(c.B)
	return c
}

// encodeARGB packs a linear Color into the sRGB-encoded ARGB a Buffer stores.
func encodeARGB(c Color) uint32 {
	return c.Clamped().ToSRGB().ToARGB()
}

// decodeARGB is the inverse of encodeARGB, up to 8-bit precision.
func decodeARGB(argb uint32) Color {
	return NewColorFromARGB(argb).ToLinear()
}

func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}
