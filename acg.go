// Package acg is a CPU 3D rasterizer: it walks a scene graph of meshes, lights and a camera, and fills a packed
// depth/color buffer by transforming, culling, clipping, shading and scanline-rasterizing triangles.
//
// Opaque geometry is drawn in parallel and relies on the buffer's atomic depth test for ordering; blended
// geometry is sorted back-to-front and drawn afterwards.
package acg

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

var (
	// ErrNoCamera is returned when a Scene without a Camera is rendered.
	ErrNoCamera = errors.New("acg: scene has no camera")
	// ErrInvalidViewport is returned when the camera's screen size is not positive.
	ErrInvalidViewport = errors.New("acg: invalid viewport size")
	// ErrMissingAttribute is raised when a shader is handed a primitive lacking an attribute its vertex layout needs.
	ErrMissingAttribute = errors.New("acg: primitive is missing a required attribute")
	// ErrTextureUnbound is raised when a Sampler is read without a Texture.
	ErrTextureUnbound = errors.New("acg: sampler has no texture bound")
	// ErrSceneUnbound is raised when a shader is asked to draw before a scene was bound to it.
	ErrSceneUnbound = errors.New("acg: shader has no scene bound")
	// ErrOutOfBounds is raised when a Buffer is accessed outside of its size.
	ErrOutOfBounds = errors.New("acg: buffer coordinates out of bounds")
)

// nopHandler drops every record; Enabled reports false so nothing gets formatted.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by the renderer. By default nothing is logged; pass nil to go back to that.
//
// Levels used:
//   - [slog.LevelDebug]: buffer resizes, pipeline creation, skipped primitives
//   - [slog.LevelWarn]: settings that fell back to defaults
//
// Nothing is logged per triangle or per pixel.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
