package acg

import (
	"sync"
	"sync/atomic"

	"github.com/asvorded/acg-labs-sub000/internal/parallel"
	"github.com/asvorded/acg-labs-sub000/math32"
	"github.com/qmuntal/gltf"
)

// renderTarget is what a pass draws into: the Buffer, the camera matrices, and the frame's shared machinery.
type renderTarget struct {
	buffer        *Buffer
	width, height int

	view       Matrix4
	projection Matrix4
	viewport   Matrix4
	frustum    Frustum
	eye        Vector3

	pool     *parallel.Pool
	settings *Settings
	stats    *frameStats
}

func newRenderTarget(camera *Camera, buffer *Buffer, pool *parallel.Pool, settings *Settings, stats *frameStats) *renderTarget {
	w, h := buffer.Size()
	return &renderTarget{
		buffer:     buffer,
		width:      w,
		height:     h,
		view:       camera.ViewMatrix(),
		projection: camera.Projection(),
		viewport:   camera.Viewport(),
		frustum:    camera.Frustum(),
		eye:        camera.Position,
		pool:       pool,
		settings:   settings,
		stats:      stats,
	}
}

// frameStats are the counters triangles update while a frame renders, possibly from several goroutines.
type frameStats struct {
	drawnTriangles          atomic.Int64
	backfaceCulledTriangles atomic.Int64
	clippedTriangles        atomic.Int64
}

// drawer is the part of a Pipeline the Renderer drives without knowing its vertex type.
type drawer interface {
	begin(target *renderTarget, scene *Scene)
	draw(prim *Primitive, world Matrix4, skin *Skin)
	end()
	shaderValue() any
}

type passMode int

const (
	passOpaque passMode = iota
	passMask
	passBlend
)

func passModeOf(material *Material) passMode {
	switch material.AlphaMode {
	case gltf.AlphaMask:
		return passMask
	case gltf.AlphaBlend:
		return passBlend
	}
	return passOpaque
}

// Pipeline draws primitives with a Shader over the vertex layout V. Get one from UseShader.
type Pipeline[V Vertex[V]] struct {
	shader Shader[V]

	target   *renderTarget
	material *Material
	mode     passMode
	cull     bool

	scratch sync.Pool // *[]V holding shaded vertices
}

func newPipeline[V Vertex[V]](shader Shader[V]) *Pipeline[V] {
	return &Pipeline[V]{shader: shader}
}

// Shader returns the Shader the Pipeline draws with.
func (p *Pipeline[V]) Shader() Shader[V] {
	return p.shader
}

func (p *Pipeline[V]) shaderValue() any {
	return p.shader
}

func (p *Pipeline[V]) begin(target *renderTarget, scene *Scene) {
	p.target = target
	p.shader.BindScene(scene)
}

func (p *Pipeline[V]) end() {
	p.shader.UnbindScene()
	p.target = nil
}

// draw shades the vertices of prim, then assembles, culls, clips and rasterizes its triangles. Opaque primitives
// rasterize their triangles in parallel; masked and blended ones in order, on the calling goroutine.
func (p *Pipeline[V]) draw(prim *Primitive, world Matrix4, skin *Skin) {

	target := p.target
	tris := prim.TriangleCount()
	if tris == 0 {
		return
	}

	p.material = prim.material()
	p.mode = passModeOf(p.material)
	p.cull = target.settings.BackfaceCulling && !p.material.DoubleSided

	p.shader.BindPrimitive(prim, world)
	if skin != nil {
		p.shader.BindSkin(skin)
	}

	scratch := p.vertices(prim.VertexCount)
	verts := *scratch

	target.pool.For(len(verts), target.settings.VertexParallelThreshold, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			verts[i] = p.shader.VertexShader(i)
		}
	})

	if p.mode == passOpaque {
		target.pool.For(tris, target.settings.TriangleParallelThreshold, func(lo, hi int) {
			p.drawTriangles(prim, verts, lo, hi)
		})
	} else {
		p.drawTriangles(prim, verts, 0, tris)
	}

	p.scratch.Put(scratch)

	if skin != nil {
		p.shader.UnbindSkin()
	}
	p.shader.UnbindPrimitive()
	p.material = nil

}

func (p *Pipeline[V]) vertices(n int) *[]V {
	buf, _ := p.scratch.Get().(*[]V)
	if buf == nil {
		buf = new([]V)
	}
	if cap(*buf) < n {
		*buf = make([]V, n)
	}
	*buf = (*buf)[:n]
	return buf
}

func (p *Pipeline[V]) drawTriangles(prim *Primitive, verts []V, lo, hi int) {
	var drawn, culled, clipped int64
	for t := lo; t < hi; t++ {
		a, b, c := prim.Triangle(t)
		switch p.drawTriangle([3]V{verts[a], verts[b], verts[c]}) {
		case triangleDrawn:
			drawn++
		case triangleClipped:
			drawn++
			clipped++
		case triangleCulled:
			culled++
		}
	}
	stats := p.target.stats
	stats.drawnTriangles.Add(drawn)
	stats.backfaceCulledTriangles.Add(culled)
	stats.clippedTriangles.Add(clipped)
}

type triangleResult int

const (
	triangleDrawn triangleResult = iota
	triangleClipped
	triangleCulled
	triangleRejected
)

func (p *Pipeline[V]) drawTriangle(tri [3]V) triangleResult {

	target := p.target

	var cam [3]Vector3
	for i := range tri {
		cam[i] = target.view.MultVec(tri[i].Position().Vector3())
	}

	// Counter-clockwise triangles face the camera; anything whose normal doesn't point back at the eye
	// (which sits at the origin of camera space) is culled, degenerate triangles included.
	if p.cull {
		normal := cam[1].Sub(cam[0]).Cross(cam[2].Sub(cam[0]))
		if normal.Dot(cam[0]) >= 0 {
			return triangleCulled
		}
	}

	var clip [3]Vector4
	for i := range tri {
		clip[i] = target.projection.MultVecW(cam[i].Vector4(1))
		tri[i] = tri[i].WithPosition(clip[i])
	}
	if outsideClipVolume(clip) {
		return triangleRejected
	}

	var pieces [2][3]V
	count := clipNear(tri, &pieces)
	if count == 0 {
		return triangleRejected
	}
	result := triangleDrawn
	if count == 2 || clip[0].Z < 0 || clip[1].Z < 0 || clip[2].Z < 0 {
		result = triangleClipped
	}

	for k := 0; k < count; k++ {
		piece := pieces[k]
		for i := range piece {
			piece[i] = p.toScreen(piece[i])
		}
		p.fill(piece)
	}

	return result

}

// outsideClipVolume returns true if all three vertices lie outside the same side of the view volume, other than
// the near side, which clipNear handles.
func outsideClipVolume(clip [3]Vector4) bool {
	var left, right, bottom, top, far int
	for _, v := range clip {
		if v.X < -v.W {
			left++
		}
		if v.X > v.W {
			right++
		}
		if v.Y < -v.W {
			bottom++
		}
		if v.Y > v.W {
			top++
		}
		if v.Z > v.W {
			far++
		}
	}
	return left == 3 || right == 3 || bottom == 3 || top == 3 || far == 3
}

// toScreen divides the vertex by w and maps it onto the screen. Every varying is divided too, for perspective
// correct interpolation; the position keeps 1/w in W to undo it per pixel.
func (p *Pipeline[V]) toScreen(v V) V {
	pos := v.Position()
	invW := 1 / pos.W
	v = v.Scale(invW)
	screen := p.target.viewport.MultVecW(Vector4{pos.X * invW, pos.Y * invW, pos.Z * invW, 1})
	screen.W = invW
	return v.WithPosition(screen)
}

// fill rasterizes a screen-space triangle. It is split at the middle vertex into a flat-bottomed and a
// flat-topped half; a pixel is covered when its center is, with centers exactly on a top or left edge included
// and those on a bottom or right edge excluded, so triangles sharing an edge never cover a pixel twice.
func (p *Pipeline[V]) fill(tri [3]V) {

	if tri[1].Position().Y < tri[0].Position().Y {
		tri[0], tri[1] = tri[1], tri[0]
	}
	if tri[2].Position().Y < tri[1].Position().Y {
		tri[1], tri[2] = tri[2], tri[1]
	}
	if tri[1].Position().Y < tri[0].Position().Y {
		tri[0], tri[1] = tri[1], tri[0]
	}

	top, mid, bottom := tri[0], tri[1], tri[2]
	yTop, yMid, yBottom := top.Position().Y, mid.Position().Y, bottom.Position().Y
	if !(yBottom > yTop) {
		return
	}

	split := top.Lerp(bottom, (yMid-yTop)/(yBottom-yTop))
	left, right := mid, split
	if split.Position().X < mid.Position().X {
		left, right = split, mid
	}

	if yMid > yTop {
		p.fillSpan(top, left, top, right, yTop, yMid)
	}
	if yBottom > yMid {
		p.fillSpan(left, bottom, right, bottom, yMid, yBottom)
	}

}

// fillSpan fills the rows with centers in [y0, y1), between the left edge l0-l1 and the right edge r0-r1.
func (p *Pipeline[V]) fillSpan(l0, l1, r0, r1 V, y0, y1 float32) {

	height := float32(p.target.height)
	yStart := math32.Clamp(math32.Ceil(y0-0.5), 0, height)
	yEnd := math32.Clamp(math32.Ceil(y1-0.5), 0, height)
	if yStart >= yEnd {
		return
	}

	invHeight := 1 / (y1 - y0)
	leftStep := l1.Sub(l0).Scale(invHeight)
	rightStep := r1.Sub(r0).Scale(invHeight)

	offset := yStart + 0.5 - y0
	left := l0.Add(leftStep.Scale(offset))
	right := r0.Add(rightStep.Scale(offset))

	for y := int(yStart); y < int(yEnd); y++ {
		p.scanline(left, right, y)
		left = left.Add(leftStep)
		right = right.Add(rightStep)
	}

}

func (p *Pipeline[V]) scanline(left, right V, y int) {

	xl, xr := left.Position().X, right.Position().X
	if xl > xr {
		left, right = right, left
		xl, xr = xr, xl
	}
	if !(xr > xl) {
		return
	}

	width := float32(p.target.width)
	xStart := math32.Clamp(math32.Ceil(xl-0.5), 0, width)
	xEnd := math32.Clamp(math32.Ceil(xr-0.5), 0, width)
	if xStart >= xEnd {
		return
	}

	step := right.Sub(left).Scale(1 / (xr - xl))
	v := left.Add(step.Scale(xStart + 0.5 - xl))

	for x := int(xStart); x < int(xEnd); x++ {
		p.shadePixel(x, y, v)
		v = v.Add(step)
	}

}

// shadePixel runs the pixel shader for the interpolated vertex v, if it would pass the depth test, and writes the
// result according to the material's alpha mode.
func (p *Pipeline[V]) shadePixel(x, y int, v V) {

	pos := v.Position()
	invW := pos.W
	if !(invW > 0) {
		return
	}

	// Nearer fragments have a larger 1/w; the buffer keeps the smallest depth.
	depth := -invW
	buffer := p.target.buffer
	if !buffer.Test(x, y, depth) {
		return
	}

	restored := v.Scale(1 / invW).WithPosition(Vector4{float32(x) + 0.5, float32(y) + 0.5, pos.Z, invW})
	color := p.material.applyAlphaMode(p.shader.PixelShader(restored))
	if color.A <= math32.Epsilon {
		return
	}

	if p.mode == passBlend {
		buffer.TestAndBlend(x, y, depth, color)
		return
	}
	buffer.TestAndSet(x, y, depth, encodeARGB(color))

}
