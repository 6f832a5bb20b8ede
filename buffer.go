package acg

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Buffer is the render target: a grid of cells, each one atomic 64-bit word holding a float32 depth
// (upper 32 bits, as its bit pattern) and a 0xAARRGGBB color (lower 32 bits). Depth and color always change
// together in a single compare-and-swap, so a reader never sees one writer's depth with another writer's color.
//
// Colors are stored sRGB encoded, ready for display; the Color-typed methods take and return linear Colors.
//
// Smaller depths are nearer. The pipeline stores -1/w, so nearer fragments have more negative depths.
type Buffer struct {
	width, height int
	cells         []atomic.Uint64
	clearColor    uint32
}

// NewBuffer returns a cleared Buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	buffer := &Buffer{}
	buffer.Resize(width, height)
	return buffer
}

func packCell(depth float32, argb uint32) uint64 {
	return uint64(math.Float32bits(depth))<<32 | uint64(argb)
}

func unpackCell(cell uint64) (float32, uint32) {
	return math.Float32frombits(uint32(cell >> 32)), uint32(cell)
}

// Resize reallocates the Buffer if the size changed, then clears it.
func (buffer *Buffer) Resize(width, height int) {
	if width < 0 || height < 0 {
		panic(fmt.Errorf("resize to %dx%d: %w", width, height, ErrInvalidViewport))
	}
	if width != buffer.width || height != buffer.height || buffer.cells == nil {
		buffer.width = width
		buffer.height = height
		buffer.cells = make([]atomic.Uint64, width*height)
		Logger().Debug("buffer resized", "width", width, "height", height)
	}
	buffer.Clear()
}

// Size returns the width and height of the Buffer.
func (buffer *Buffer) Size() (int, int) {
	return buffer.width, buffer.height
}

// Clear resets every cell to an infinite depth and the clear color.
// It must not run while anything is drawing into the Buffer.
func (buffer *Buffer) Clear() {
	cleared := packCell(float32(math.Inf(1)), buffer.clearColor)
	for i := range buffer.cells {
		buffer.cells[i].Store(cleared)
	}
}

// ClearWithColor sets the clear color, then clears the Buffer.
func (buffer *Buffer) ClearWithColor(color Color) {
	buffer.clearColor = encodeARGB(color)
	buffer.Clear()
}

func (buffer *Buffer) cell(x, y int) *atomic.Uint64 {
	if x < 0 || y < 0 || x >= buffer.width || y >= buffer.height {
		panic(fmt.Errorf("cell (%d, %d) in %dx%d buffer: %w", x, y, buffer.width, buffer.height, ErrOutOfBounds))
	}
	return &buffer.cells[y*buffer.width+x]
}

// Test reports whether depth is strictly nearer than what the cell at x, y currently holds. It writes nothing.
func (buffer *Buffer) Test(x, y int, depth float32) bool {
	current, _ := unpackCell(buffer.cell(x, y).Load())
	return depth < current
}

// TestAndSet writes depth and the already encoded argb color into the cell at x, y if depth is strictly nearer than the cell's depth
// at the moment of the write. If another writer changes the cell in between, the comparison is retried against
// the new contents. It returns whether the write happened.
func (buffer *Buffer) TestAndSet(x, y int, depth float32, argb uint32) bool {
	cell := buffer.cell(x, y)
	next := packCell(depth, argb)
	for {
		old := cell.Load()
		current, _ := unpackCell(old)
		if !(depth < current) {
			return false
		}
		if cell.CompareAndSwap(old, next) {
			return true
		}
	}
}

// TestAndBlend composites the linear src over the color of the cell at x, y and writes the result with depth, if
// depth is strictly nearer than the cell's depth at the moment of the write. Blending happens in linear space.
func (buffer *Buffer) TestAndBlend(x, y int, depth float32, src Color) bool {
	cell := buffer.cell(x, y)
	for {
		old := cell.Load()
		current, argb := unpackCell(old)
		if !(depth < current) {
			return false
		}
		blended := encodeARGB(src.Over(decodeARGB(argb)))
		if cell.CompareAndSwap(old, packCell(depth, blended)) {
			return true
		}
	}
}

// Depth returns the raw depth stored at x, y (+Inf for untouched cells).
func (buffer *Buffer) Depth(x, y int) float32 {
	depth, _ := unpackCell(buffer.cell(x, y).Load())
	return depth
}

// Distance converts the depth stored at x, y back into the clip-space w of the fragment, which for a
// perspective camera is its distance along the view axis. Untouched cells return 0.
func (buffer *Buffer) Distance(x, y int) float32 {
	depth := buffer.Depth(x, y)
	if math.IsInf(float64(depth), 0) || depth == 0 {
		return 0
	}
	return -1 / depth
}

// ARGB returns the packed, sRGB-encoded color stored at x, y.
func (buffer *Buffer) ARGB(x, y int) uint32 {
	_, argb := unpackCell(buffer.cell(x, y).Load())
	return argb
}

// Color returns the color stored at x, y, decoded back to linear.
func (buffer *Buffer) Color(x, y int) Color {
	return decodeARGB(buffer.ARGB(x, y))
}

// Pixels copies the colors of the Buffer into dst, row-major, growing it as needed, and returns it.
func (buffer *Buffer) Pixels(dst []uint32) []uint32 {
	if cap(dst) < len(buffer.cells) {
		dst = make([]uint32, len(buffer.cells))
	}
	dst = dst[:len(buffer.cells)]
	for i := range buffer.cells {
		dst[i] = uint32(buffer.cells[i].Load())
	}
	return dst
}
