package acg

import (
	"image"
)

// Surface is where a Renderer presents a finished frame.
type Surface interface {
	// SetPixels receives the frame: width*height packed 0xAARRGGBB values, row-major from the top-left.
	// The slice is reused by the Renderer; a Surface must copy what it keeps.
	SetPixels(pixels []uint32, width, height int)
}

// PixelSurface keeps the last frame as packed ARGB values.
type PixelSurface struct {
	Width, Height int
	Pixels        []uint32
}

// NewPixelSurface returns an empty PixelSurface.
func NewPixelSurface() *PixelSurface {
	return &PixelSurface{}
}

func (surface *PixelSurface) SetPixels(pixels []uint32, width, height int) {
	if cap(surface.Pixels) < len(pixels) {
		surface.Pixels = make([]uint32, len(pixels))
	}
	surface.Pixels = surface.Pixels[:len(pixels)]
	copy(surface.Pixels, pixels)
	surface.Width, surface.Height = width, height
}

// At returns the packed color at x, y.
func (surface *PixelSurface) At(x, y int) uint32 {
	return surface.Pixels[y*surface.Width+x]
}

// ImageSurface keeps the last frame as an *image.RGBA, ready for image/png or a windowing library.
type ImageSurface struct {
	Image *image.RGBA
}

// NewImageSurface returns an empty ImageSurface.
func NewImageSurface() *ImageSurface {
	return &ImageSurface{Image: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

func (surface *ImageSurface) SetPixels(pixels []uint32, width, height int) {
	if surface.Image == nil || surface.Image.Rect.Dx() != width || surface.Image.Rect.Dy() != height {
		surface.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	ARGBToRGBA(surface.Image.Pix, pixels)
}

// ARGBToRGBA unpacks 0xAARRGGBB pixels into dst as R, G, B, A bytes; dst must hold 4 bytes per pixel.
// The colors of a frame are opaque or composited over an opaque clear color, so no premultiplication is done.
func ARGBToRGBA(dst []byte, pixels []uint32) {
	for i, argb := range pixels {
		o := i * 4
		dst[o] = byte(argb >> 16)
		dst[o+1] = byte(argb >> 8)
		dst[o+2] = byte(argb)
		dst[o+3] = byte(argb >> 24)
	}
}
