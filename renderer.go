package acg

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"time"

	"github.com/asvorded/acg-labs-sub000/internal/parallel"
)

// DebugInfo is a struct that holds debugging information for a Renderer's last frame. It's reset at the start of
// every Render call.
type DebugInfo struct {
	FrameTime time.Duration // Time spent in Render, shadow pass and presentation included.

	TotalPrimitives       int // Number of primitives in the scene
	DrawnPrimitives       int // Number of primitives drawn, excluding those frustum culled
	CulledPrimitives      int // Number of primitives skipped because their node's bounds were outside the view
	TransparentPrimitives int // Number of drawn primitives that went through the sorted alpha pass

	DrawnTriangles          int // Number of triangles rasterized, excluding those back-face culled
	BackfaceCulledTriangles int
	ClippedTriangles        int // Number of triangles that crossed the near plane and were clipped

	ShadowTriangles int // Number of triangles rasterized into the shadow map
}

// Renderer turns Scenes into frames. It owns the depth and color Buffer, the worker pool, and one Pipeline per
// Shader type it has been given. A Renderer renders one frame at a time.
type Renderer struct {
	Settings  Settings
	DebugInfo DebugInfo

	buffer    *Buffer
	pool      *parallel.Pool
	pixels    []uint32
	active    drawer
	pipelines map[reflect.Type]drawer
	shadows   *Pipeline[DepthVertex]
}

// NewRenderer returns a Renderer drawing with a PhongShader.
func NewRenderer(settings Settings) *Renderer {
	settings.sanitize()
	r := &Renderer{
		Settings:  settings,
		buffer:    NewBuffer(0, 0),
		pool:      parallel.NewPool(settings.Workers),
		pipelines: map[reflect.Type]drawer{},
	}
	r.shadows = newPipeline[DepthVertex](NewDepthShader())
	UseShader[PhongVertex](r, NewPhongShader())
	Logger().Debug("renderer created", "workers", r.pool.Workers())
	return r
}

// UseShader makes shader the one r draws with from the next frame on, and returns its Pipeline. Pipelines are
// kept per Shader type, so switching back and forth between shaders doesn't allocate.
func UseShader[V Vertex[V]](r *Renderer, shader Shader[V]) *Pipeline[V] {
	key := reflect.TypeOf(shader)
	if existing, ok := r.pipelines[key]; ok {
		if p, ok := existing.(*Pipeline[V]); ok {
			p.shader = shader
			r.active = p
			return p
		}
	}
	p := newPipeline[V](shader)
	r.pipelines[key] = p
	r.active = p
	Logger().Debug("pipeline created", "shader", key.String())
	return p
}

// ActiveShader returns the Shader last passed to UseShader.
func (r *Renderer) ActiveShader() any {
	return r.active.shaderValue()
}

// Buffer returns the Buffer holding the last rendered frame.
func (r *Renderer) Buffer() *Buffer {
	return r.buffer
}

// Close stops the Renderer's workers. A closed Renderer still works, rendering on the calling goroutine.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Render draws scene from its Camera into the Renderer's Buffer and presents the result to surface, which may be
// nil to only fill the Buffer.
//
// Node transforms and skins are updated first, at scene.Time. Nodes whose mesh bounds fall outside the camera's
// frustum are skipped. Opaque primitives are drawn as they are reached; masked and blended ones are drawn last,
// farthest first.
//
// Render returns ErrNoCamera or ErrInvalidViewport for scenes it can't draw. A primitive missing an attribute the
// shader requires, or sampling an unbound texture, aborts the frame and is returned wrapped. Runtime errors raised
// while drawing (a bad index in a custom shader, say) are not turned into errors; they keep panicking.
func (r *Renderer) Render(scene *Scene, surface Surface) (err error) {

	if scene == nil || scene.Camera == nil {
		return ErrNoCamera
	}
	width, height := scene.Camera.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render %q at %dx%d: %w", scene.Name, width, height, ErrInvalidViewport)
	}

	defer func() {
		if rec := recover(); rec != nil {
			e, ok := rec.(error)
			if !ok || errors.As(e, new(runtime.Error)) {
				panic(rec)
			}
			err = fmt.Errorf("render %q: %w", scene.Name, e)
			Logger().Error("frame aborted", "scene", scene.Name, "err", e)
		}
	}()

	start := time.Now()
	r.DebugInfo = DebugInfo{}

	r.buffer.clearColor = encodeARGB(r.Settings.ClearColor)
	r.buffer.Resize(width, height)

	scene.UpdateTransforms()

	if scene.Shadow != nil {
		if receiver, ok := r.active.shaderValue().(ShadowReceiver); ok {
			r.renderShadowMap(scene)
			receiver.SetShadowMap(scene.Shadow)
		}
	}

	stats := &frameStats{}
	target := newRenderTarget(scene.Camera, r.buffer, r.pool, &r.Settings, stats)
	r.renderPass(scene, target, r.active, false)

	r.DebugInfo.DrawnTriangles = int(stats.drawnTriangles.Load())
	r.DebugInfo.BackfaceCulledTriangles = int(stats.backfaceCulledTriangles.Load())
	r.DebugInfo.ClippedTriangles = int(stats.clippedTriangles.Load())

	if surface != nil {
		r.pixels = r.buffer.Pixels(r.pixels)
		surface.SetPixels(r.pixels, width, height)
	}

	r.DebugInfo.FrameTime = time.Since(start)
	return nil

}

// renderShadowMap draws the opaque and masked primitives of scene into its ShadowMap.
func (r *Renderer) renderShadowMap(scene *Scene) {
	shadow := scene.Shadow
	shadow.prepare(r.Settings.ShadowMapSize, r.Settings.ShadowBias)

	stats := &frameStats{}
	target := newRenderTarget(shadow.Camera, shadow.buffer, r.pool, &r.Settings, stats)
	// The map only needs depth, and surfaces facing away from the light still cast shadows.
	settings := r.Settings
	settings.BackfaceCulling = false
	target.settings = &settings

	r.renderPass(scene, target, r.shadows, true)
	r.DebugInfo.ShadowTriangles = int(stats.drawnTriangles.Load())
}

type queuedPrimitive struct {
	prim     *Primitive
	world    Matrix4
	skin     *Skin
	distance float32
}

// renderPass walks the scene depth first and draws every visible primitive with d. Counting into DebugInfo only
// happens for the main pass; the shadow pass (shadowPass true) skips blended primitives entirely.
func (r *Renderer) renderPass(scene *Scene, target *renderTarget, d drawer, shadowPass bool) {

	d.begin(target, scene)
	defer d.end()

	var queue []queuedPrimitive

	for _, root := range scene.Roots {
		root.Walk(func(node *Node) bool {

			mesh := node.Mesh
			if mesh == nil || len(mesh.Primitives) == 0 {
				return true
			}

			if !shadowPass {
				r.DebugInfo.TotalPrimitives += len(mesh.Primitives)
			}

			// Skinned vertices can move outside the bind-pose bounds, so those meshes are never culled.
			if target.settings.FrustumCulling && node.Skin == nil && !target.frustum.IntersectsTransformedAABB(mesh.Bounds(), node.world) {
				if !shadowPass {
					r.DebugInfo.CulledPrimitives += len(mesh.Primitives)
				}
				return true
			}

			for _, prim := range mesh.Primitives {
				material := prim.material()
				if material.IsOpaque() || (shadowPass && passModeOf(material) == passMask) {
					d.draw(prim, node.world, node.Skin)
				} else if !shadowPass {
					center := prim.Bounds.Transform(node.world).Center()
					queue = append(queue, queuedPrimitive{prim, node.world, node.Skin, center.Distance(target.eye)})
				}
				if !shadowPass {
					r.DebugInfo.DrawnPrimitives++
				}
			}

			return true
		})
	}

	sort.SliceStable(queue, func(i, j int) bool { return queue[i].distance > queue[j].distance })
	for _, q := range queue {
		d.draw(q.prim, q.world, q.skin)
	}
	if !shadowPass {
		r.DebugInfo.TransparentPrimitives = len(queue)
	}

}
