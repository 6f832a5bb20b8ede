package acg

import (
	"context"
	"fmt"
	"image"

	"github.com/qmuntal/gltf"
	"golang.org/x/sync/errgroup"

	"github.com/asvorded/acg-labs-sub000/math32"
)

// Texture is an already-decoded image stored as linear float colors, row-major from the top-left texel.
type Texture struct {
	Width, Height int
	Texels        []Color
}

// NewTexture wraps texels of the given size.
func NewTexture(width, height int, texels []Color) *Texture {
	if len(texels) != width*height {
		panic(fmt.Sprintf("texture is %dx%d but has %d texels", width, height, len(texels)))
	}
	return &Texture{Width: width, Height: height, Texels: texels}
}

// NewTextureFromImage converts a decoded image into a Texture. Color textures are usually sRGB encoded;
// pass srgb so that their texels are converted to linear. Normal and metallic-roughness maps are not.
func NewTextureFromImage(img image.Image, srgb bool) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	texels := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := NewColorFromStd(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			if srgb {
				c = c.ToLinear()
			}
			texels[y*w+x] = c
		}
	}
	return NewTexture(w, h, texels)
}

// NewTexturesFromImages converts several images at once, at most limit at a time (0 meaning no limit).
// The result is in the same order as imgs.
func NewTexturesFromImages(ctx context.Context, imgs []image.Image, srgb bool, limit int) ([]*Texture, error) {
	textures := make([]*Texture, len(imgs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, img := range imgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if img == nil {
				return fmt.Errorf("image %d is nil", i)
			}
			textures[i] = NewTextureFromImage(img, srgb)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("convert textures: %w", err)
	}
	return textures, nil
}

// At returns the texel at x, y, which must be inside the Texture.
func (texture *Texture) At(x, y int) Color {
	return texture.Texels[y*texture.Width+x]
}

// Sampler reads a Texture with glTF wrapping and filtering rules.
type Sampler struct {
	Texture *Texture
	WrapS   gltf.WrappingMode
	WrapT   gltf.WrappingMode
	// Filter picks nearest or bilinear filtering; gltf.MagUndefined filters bilinearly.
	Filter gltf.MagFilter
}

// NewSampler returns a repeating, bilinear Sampler for the Texture.
func NewSampler(texture *Texture) *Sampler {
	return &Sampler{
		Texture: texture,
		WrapS:   gltf.WrapRepeat,
		WrapT:   gltf.WrapRepeat,
		Filter:  gltf.MagLinear,
	}
}

// Sample returns the filtered color at the uv coordinate; (0, 0) is the top-left corner of the texture.
// Sampling a Sampler without a Texture panics with ErrTextureUnbound.
func (sampler *Sampler) Sample(uv Vector2) Color {
	texture := sampler.Texture
	if texture == nil {
		panic(fmt.Errorf("sample at %v: %w", uv, ErrTextureUnbound))
	}

	x := uv.X*float32(texture.Width) - 0.5
	y := uv.Y*float32(texture.Height) - 0.5

	if sampler.Filter == gltf.MagNearest {
		tx := wrapCoord(int(math32.Floor(x+0.5)), texture.Width, sampler.WrapS)
		ty := wrapCoord(int(math32.Floor(y+0.5)), texture.Height, sampler.WrapT)
		return texture.At(tx, ty)
	}

	fx, fy := math32.Floor(x), math32.Floor(y)
	tx, ty := x-fx, y-fy
	x0, y0 := int(fx), int(fy)

	x1 := wrapCoord(x0+1, texture.Width, sampler.WrapS)
	y1 := wrapCoord(y0+1, texture.Height, sampler.WrapT)
	x0 = wrapCoord(x0, texture.Width, sampler.WrapS)
	y0 = wrapCoord(y0, texture.Height, sampler.WrapT)

	top := texture.At(x0, y0).Lerp(texture.At(x1, y0), tx)
	bottom := texture.At(x0, y1).Lerp(texture.At(x1, y1), tx)
	return top.Lerp(bottom, ty)
}

func wrapCoord(i, size int, mode gltf.WrappingMode) int {
	switch mode {
	case gltf.WrapClampToEdge:
		return math32.Clamp(i, 0, size-1)
	case gltf.WrapMirroredRepeat:
		period := size * 2
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	default:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	}
}
