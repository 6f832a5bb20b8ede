package acg

import (
	"errors"
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/asvorded/acg-labs-sub000/math32"
	"github.com/qmuntal/gltf"
)

const testSize = 64

func testSettings() Settings {
	settings := DefaultSettings()
	settings.Workers = 4
	// Low thresholds so the tests go through the parallel paths.
	settings.VertexParallelThreshold = 2
	settings.TriangleParallelThreshold = 2
	return settings
}

func colorMaterial(c Color) *Material {
	mat := NewMaterial("color")
	mat.BaseColorFactor = c
	return mat
}

// newTestScene returns a scene looking from (0, 0, 5) at the origin, through a testSize square camera.
func newTestScene(nodes ...*Node) *Scene {
	scene := NewScene("test")
	scene.Camera = NewCamera(testSize, testSize)
	scene.AddNodes(nodes...)
	return scene
}

func quadNode(name string, size, z float32, mat *Material) *Node {
	node := NewMeshNode(name, NewMesh(name, NewQuadPrimitive(size, size, mat)))
	node.Translation = Vector3{0, 0, z}
	return node
}

func newUnlitRenderer(t testing.TB) *Renderer {
	r := NewRenderer(testSettings())
	t.Cleanup(r.Close)
	UseShader[UnlitVertex](r, NewUnlitShader())
	return r
}

func TestRenderFullscreenQuad(t *testing.T) {
	r := newUnlitRenderer(t)
	scene := newTestScene(quadNode("quad", 20, 0, colorMaterial(NewColor(1, 0, 0, 1))))
	surface := NewPixelSurface()

	if err := r.Render(scene, surface); err != nil {
		t.Fatal(err)
	}

	if surface.Width != testSize || surface.Height != testSize || len(surface.Pixels) != testSize*testSize {
		t.Fatalf("surface is %dx%d with %d pixels", surface.Width, surface.Height, len(surface.Pixels))
	}
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			if c := surface.At(x, y); c != 0xffff0000 {
				t.Fatalf("pixel (%d, %d) = %#x, want 0xffff0000", x, y, c)
			}
			if d := r.Buffer().Distance(x, y); !approx(d, 5, 1e-3) {
				t.Fatalf("pixel (%d, %d) distance = %v, want 5", x, y, d)
			}
		}
	}

	if r.DebugInfo.DrawnPrimitives != 1 || r.DebugInfo.DrawnTriangles != 2 {
		t.Errorf("debug info = %+v, want 1 primitive and 2 triangles drawn", r.DebugInfo)
	}
}

func TestRenderClearsToClearColor(t *testing.T) {
	r := newUnlitRenderer(t)
	r.Settings.ClearColor = NewColor(0, 0, 1, 1)
	surface := NewPixelSurface()

	if err := r.Render(newTestScene(), surface); err != nil {
		t.Fatal(err)
	}
	for i, c := range surface.Pixels {
		if c != 0xff0000ff {
			t.Fatalf("pixel %d = %#x, want the clear color", i, c)
		}
	}
}

func TestRenderCullsClockwiseTriangles(t *testing.T) {
	r := newUnlitRenderer(t)

	prim := NewPrimitive([]float32{
		-1, 1, 0,
		1, -1, 0,
		-1, -1, 0,
	}, nil, colorMaterial(NewColor(1, 0, 0, 1)))
	scene := newTestScene(NewMeshNode("cw", NewMesh("cw", prim)))

	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			if r.Buffer().ARGB(x, y) != 0xff000000 {
				t.Fatalf("pixel (%d, %d) was written by a back-facing triangle", x, y)
			}
		}
	}
	if r.DebugInfo.BackfaceCulledTriangles != 1 || r.DebugInfo.DrawnTriangles != 0 {
		t.Errorf("debug info = %+v, want 1 triangle back-face culled", r.DebugInfo)
	}

	t.Run("double sided", func(t *testing.T) {
		prim.Material.DoubleSided = true
		if err := r.Render(scene, nil); err != nil {
			t.Fatal(err)
		}
		if r.Buffer().ARGB(testSize/2-8, testSize/2+8) != 0xffff0000 {
			t.Errorf("double-sided triangle should be drawn from behind")
		}
	})
}

func TestRenderDepthIsOrderIndependent(t *testing.T) {

	near := quadNode("near", 2, 1, colorMaterial(NewColor(0, 1, 0, 1)))
	far := quadNode("far", 4, -1, colorMaterial(NewColor(1, 0, 0, 1)))

	render := func(nodes ...*Node) []uint32 {
		r := newUnlitRenderer(t)
		surface := NewPixelSurface()
		if err := r.Render(newTestScene(nodes...), surface); err != nil {
			t.Fatal(err)
		}
		return surface.Pixels
	}

	nearFirst := render(near, far)
	farFirst := render(far, near)

	for i := range nearFirst {
		if nearFirst[i] != farFirst[i] {
			t.Fatalf("pixel %d differs with draw order: %#x vs %#x", i, nearFirst[i], farFirst[i])
		}
	}
	if c := nearFirst[testSize/2*testSize+testSize/2]; c != 0xff00ff00 {
		t.Errorf("center pixel = %#x, want the near quad's green", c)
	}
}

func TestRenderBlendOverOpaque(t *testing.T) {
	r := newUnlitRenderer(t)

	glass := colorMaterial(NewColor(1, 0, 0, 0.5))
	glass.AlphaMode = gltf.AlphaBlend

	scene := newTestScene(
		quadNode("glass", 20, 1, glass),
		quadNode("wall", 20, 0, colorMaterial(NewColor(0, 0, 1, 1))),
	)

	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	// Blending happens in linear space; reading back through 8-bit sRGB costs a little precision.
	c := r.Buffer().Color(testSize/2, testSize/2)
	if !approx(c.R, 0.5, 0.01) || c.G != 0 || !approx(c.B, 0.5, 0.01) {
		t.Errorf("blended color = %v, want half red, half blue", c)
	}
	if d := r.Buffer().Distance(testSize/2, testSize/2); !approx(d, 4, 1e-3) {
		t.Errorf("distance = %v, want the glass at 4", d)
	}
	if r.DebugInfo.TransparentPrimitives != 1 {
		t.Errorf("TransparentPrimitives = %d, want 1", r.DebugInfo.TransparentPrimitives)
	}
}

func TestRenderTransparentPixelsLeaveNoTrace(t *testing.T) {
	invisible := colorMaterial(NewColor(1, 0, 0, 0))
	invisible.AlphaMode = gltf.AlphaBlend

	blendedWall := colorMaterial(NewColor(0, 0, 1, 1))
	blendedWall.AlphaMode = gltf.AlphaBlend

	tests := []struct {
		name string
		wall *Material
		want uint32
	}{
		{"over opaque", colorMaterial(NewColor(0, 1, 0, 1)), 0xff00ff00},
		{"over blended", blendedWall, 0xff0000ff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newUnlitRenderer(t)
			scene := newTestScene(
				quadNode("invisible", 20, 1, invisible),
				quadNode("wall", 20, 0, tt.wall),
			)
			if err := r.Render(scene, nil); err != nil {
				t.Fatal(err)
			}
			if c := r.Buffer().ARGB(testSize/2, testSize/2); c != tt.want {
				t.Errorf("pixel = %#x, want the wall's %#x", c, tt.want)
			}
			// A zero-alpha pixel must not write depth either: the wall at 5 stays the stored surface.
			if d := r.Buffer().Distance(testSize/2, testSize/2); !approx(d, 5, 1e-3) {
				t.Errorf("distance = %v, want the wall at 5", d)
			}
		})
	}
}

func TestRenderKeepsSRGBTexels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{0x80, 0x80, 0x80, 0xff})

	mat := NewMaterial("gray")
	mat.BaseColorTexture = NewSampler(NewTextureFromImage(img, true))

	tests := []struct {
		name string
		use  func(r *Renderer)
	}{
		{"unlit", func(r *Renderer) { UseShader[UnlitVertex](r, NewUnlitShader()) }},
		{"phong", func(r *Renderer) { UseShader[PhongVertex](r, NewPhongShader()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(testSettings())
			defer r.Close()
			tt.use(r)

			scene := newTestScene(quadNode("quad", 20, 0, mat))
			scene.Ambient = NewColor(1, 1, 1, 1)
			surface := NewPixelSurface()
			if err := r.Render(scene, surface); err != nil {
				t.Fatal(err)
			}
			if c := surface.Pixels[testSize/2*testSize+testSize/2]; c != 0xff808080 {
				t.Errorf("pixel = %#x, want the texel's own 0xff808080", c)
			}
		})
	}
}

func TestRenderAlphaMask(t *testing.T) {
	r := newUnlitRenderer(t)

	cutout := colorMaterial(NewColor(1, 0, 0, 0.2))
	cutout.AlphaMode = gltf.AlphaMask

	scene := newTestScene(
		quadNode("cutout", 20, 1, cutout),
		quadNode("wall", 20, 0, colorMaterial(NewColor(0, 0, 1, 1))),
	)
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	if c := r.Buffer().ARGB(testSize/2, testSize/2); c != 0xff0000ff {
		t.Errorf("pixel = %#x, a masked pixel under the cutoff should leave the wall visible", c)
	}

	cutout.BaseColorFactor.A = 0.8
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	if c := r.Buffer().ARGB(testSize/2, testSize/2); c != 0xffff0000 {
		t.Errorf("pixel = %#x, a masked pixel over the cutoff should be opaque", c)
	}
}

// uvShader writes the interpolated texture coordinate as the red and green channels.
type uvShader struct {
	UnlitShader
}

func (s *uvShader) PixelShader(v UnlitVertex) Color {
	uv := v.UV()
	return NewColor(uv.X, uv.Y, 0, 1)
}

func TestRenderPerspectiveCorrectUV(t *testing.T) {
	r := NewRenderer(testSettings())
	defer r.Close()
	UseShader[UnlitVertex](r, &uvShader{})

	// A quad tilting away from the camera: position = (-2+4u, 1-2v, -2+4v).
	prim := NewPrimitive([]float32{
		-2, -1, 2,
		2, -1, 2,
		2, 1, -2,
		-2, 1, -2,
	}, []uint32{0, 1, 2, 0, 2, 3}, nil)
	prim.SetAttribute(gltf.TEXCOORD_0, []float32{0, 1, 1, 1, 1, 0, 0, 0})

	scene := newTestScene(NewMeshNode("floor", NewMesh("floor", prim)))
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}

	tanHalf := math32.Tan(math32.ToRadians(scene.Camera.FieldOfView()) / 2)
	checked := 0

	for y := 0; y < testSize; y++ {
		for x := 0; x < testSize; x++ {
			// Cast the ray through the pixel center and intersect it with the quad's plane.
			dx := ((float32(x)+0.5)/testSize*2 - 1) * tanHalf
			dy := (1 - (float32(y)+0.5)/testSize*2) * tanHalf
			dz := float32(-1)
			hit := -5 / (dz + 2*dy)
			u := (hit*dx + 2) / 4
			v := (1 - hit*dy) / 2
			if u < 0.02 || u > 0.98 || v < 0.02 || v > 0.98 {
				continue
			}
			c := r.Buffer().Color(x, y)
			if !approx(c.R, u, 0.015) || !approx(c.G, v, 0.015) {
				t.Fatalf("pixel (%d, %d) uv = (%v, %v), want (%v, %v)", x, y, c.R, c.G, u, v)
			}
			checked++
		}
	}

	if checked < 200 {
		t.Fatalf("only %d pixels checked; the quad should cover much more of the screen", checked)
	}
}

func TestRenderSharedEdgeCoversPixelsOnce(t *testing.T) {

	positions := []float32{
		-1.3, 0.7, 0,
		-0.9, -1.1, 0,
		1.2, -0.8, 0,
		0.8, 1.05, 0,
	}

	render := func(indices []uint32) []uint32 {
		r := newUnlitRenderer(t)
		prim := NewPrimitive(positions, indices, colorMaterial(NewColor(1, 1, 1, 1)))
		surface := NewPixelSurface()
		if err := r.Render(newTestScene(NewMeshNode("tri", NewMesh("tri", prim))), surface); err != nil {
			t.Fatal(err)
		}
		return surface.Pixels
	}

	first := render([]uint32{0, 1, 2})
	second := render([]uint32{0, 2, 3})
	both := render([]uint32{0, 1, 2, 0, 2, 3})

	covered := 0
	for i := range both {
		a, b := first[i] == 0xffffffff, second[i] == 0xffffffff
		if a && b {
			t.Fatalf("pixel %d is covered by both triangles", i)
		}
		if (a || b) != (both[i] == 0xffffffff) {
			t.Fatalf("pixel %d: coverage of the halves doesn't add up to the whole quad", i)
		}
		if a || b {
			covered++
		}
	}
	if covered == 0 {
		t.Fatal("nothing was drawn")
	}
}

func TestRenderFrustumCulling(t *testing.T) {
	r := newUnlitRenderer(t)

	behind := NewMeshNode("behind", NewCubeMesh("cube", 1, nil))
	behind.Translation = Vector3{0, 0, 10}
	visible := NewMeshNode("visible", NewCubeMesh("cube", 1, nil))

	if err := r.Render(newTestScene(behind, visible), nil); err != nil {
		t.Fatal(err)
	}
	info := r.DebugInfo
	if info.TotalPrimitives != 2 || info.CulledPrimitives != 1 || info.DrawnPrimitives != 1 {
		t.Errorf("debug info = %+v, want 2 primitives with 1 culled", info)
	}
	// Looked at head on, only the front face of the cube faces the camera.
	if info.BackfaceCulledTriangles != 10 || info.DrawnTriangles != 2 {
		t.Errorf("debug info = %+v, want 10 triangles back-face culled and 2 drawn", info)
	}
}

func TestRenderClipsNearPlane(t *testing.T) {
	r := newUnlitRenderer(t)

	// A floor running from far in front of the camera to behind it.
	prim := NewPrimitive([]float32{
		-10, -1, -50,
		-10, -1, 20,
		10, -1, 20,
		10, -1, -50,
	}, []uint32{0, 1, 2, 0, 2, 3}, colorMaterial(NewColor(0, 1, 0, 1)))

	if err := r.Render(newTestScene(NewMeshNode("floor", NewMesh("floor", prim))), nil); err != nil {
		t.Fatal(err)
	}
	if r.DebugInfo.ClippedTriangles == 0 {
		t.Error("the floor should have been clipped against the near plane")
	}
	if c := r.Buffer().ARGB(testSize/2, testSize-1); c != 0xff00ff00 {
		t.Errorf("bottom pixel = %#x, want the floor", c)
	}
	if c := r.Buffer().ARGB(testSize/2, 0); c != 0xff000000 {
		t.Errorf("top pixel = %#x, want the clear color", c)
	}
}

func floorNode(size float32, mat *Material) *Node {
	s := size / 2
	prim := NewPrimitive([]float32{
		-s, 0, -s,
		-s, 0, s,
		s, 0, s,
		s, 0, -s,
	}, []uint32{0, 1, 2, 0, 2, 3}, mat)
	prim.SetAttribute(gltf.NORMAL, []float32{0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0})
	return NewMeshNode("floor", NewMesh("floor", prim))
}

// newShadowScene returns a floor with a small occluder floating 1 unit above its center, lit straight down.
func newShadowScene() *Scene {
	occluder := floorNode(1, NewMaterial("occluder"))
	occluder.Translation = Vector3{0, 1, 0}

	sun := NewDirectionalLight("sun", Vector3{0, -1, 0}, 1)
	scene := newTestScene(floorNode(6, NewMaterial("floor")), occluder)
	scene.AddLights(sun)
	scene.Camera.LookAt(Vector3{0, 5, 5}, Vector3{})
	scene.Shadow = NewDirectionalShadowMap(sun, Vector3{}, 10)
	return scene
}

// brightnessAt returns the red channel the last frame left at the screen position of p.
func brightnessAt(t *testing.T, r *Renderer, scene *Scene, p Vector3) float32 {
	t.Helper()
	screen, ok := scene.Camera.WorldToScreen(p)
	if !ok {
		t.Fatalf("%v is not in view", p)
	}
	return r.Buffer().Color(int(screen.X), int(screen.Y)).R
}

func TestRenderShadows(t *testing.T) {
	r := NewRenderer(testSettings())
	defer r.Close()
	UseShader[PhongVertex](r, NewShadowShader())

	scene := newShadowScene()
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	if r.DebugInfo.ShadowTriangles == 0 {
		t.Fatal("nothing was drawn into the shadow map")
	}

	shadowed := brightnessAt(t, r, scene, Vector3{0, 0, 0})
	lit := brightnessAt(t, r, scene, Vector3{2, 0, 0})
	if !(shadowed < lit) {
		t.Errorf("shadowed floor = %v, lit floor = %v; the point under the occluder should be darker", shadowed, lit)
	}
	if !approx(shadowed, 0.1, 0.01) {
		t.Errorf("shadowed floor = %v, want only the ambient term", shadowed)
	}
}

func TestRenderShadowBiasFollowsSettings(t *testing.T) {
	r := NewRenderer(testSettings())
	defer r.Close()
	UseShader[PhongVertex](r, NewShadowShader())

	scene := newShadowScene()
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	shadowed := brightnessAt(t, r, scene, Vector3{0, 0, 0})

	// A bias wider than the gap between occluder and floor lets the floor through.
	r.Settings.ShadowBias = 2
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	if unbiased := brightnessAt(t, r, scene, Vector3{0, 0, 0}); !(unbiased > shadowed) {
		t.Errorf("floor under the occluder = %v with a bias of 2, was %v; the new bias should have applied", unbiased, shadowed)
	}
	if scene.Shadow.Bias != 0 {
		t.Errorf("ShadowMap.Bias = %v, rendering should leave it alone", scene.Shadow.Bias)
	}

	// An explicit Bias on the map wins over Settings.
	scene.Shadow.Bias = 0.01
	if err := r.Render(scene, nil); err != nil {
		t.Fatal(err)
	}
	if again := brightnessAt(t, r, scene, Vector3{0, 0, 0}); !approx(again, shadowed, 0.01) {
		t.Errorf("floor under the occluder = %v with the map's own bias, want shadowed %v", again, shadowed)
	}
}

// outOfRangeShader indexes an empty palette, failing with a runtime error on its first pixel.
type outOfRangeShader struct {
	UnlitShader
	palette []Color
}

func (s *outOfRangeShader) PixelShader(v UnlitVertex) Color {
	return s.palette[int(v.Position().X)]
}

func TestRenderRepanicsRuntimeErrors(t *testing.T) {
	r := NewRenderer(testSettings())
	defer r.Close()
	UseShader[UnlitVertex](r, &outOfRangeShader{})

	defer func() {
		if _, ok := recover().(runtime.Error); !ok {
			t.Error("Render should panic with the runtime error")
		}
	}()

	err := r.Render(newTestScene(quadNode("quad", 2, 0, nil)), nil)
	t.Errorf("Render() = %v, want a panic", err)
}

func TestRenderErrors(t *testing.T) {
	r := newUnlitRenderer(t)

	t.Run("no camera", func(t *testing.T) {
		if err := r.Render(NewScene("empty"), nil); !errors.Is(err, ErrNoCamera) {
			t.Errorf("Render() = %v, want ErrNoCamera", err)
		}
		if err := r.Render(nil, nil); !errors.Is(err, ErrNoCamera) {
			t.Errorf("Render(nil) = %v, want ErrNoCamera", err)
		}
	})

	t.Run("invalid viewport", func(t *testing.T) {
		scene := newTestScene()
		scene.Camera.Resize(0, 10)
		if err := r.Render(scene, nil); !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("Render() = %v, want ErrInvalidViewport", err)
		}
	})

	t.Run("missing attribute", func(t *testing.T) {
		UseShader[PhongVertex](r, NewPhongShader())
		defer UseShader[UnlitVertex](r, NewUnlitShader())

		prim := NewPrimitive([]float32{-1, -1, 0, 1, -1, 0, 0, 1, 0}, nil, nil)
		scene := newTestScene(NewMeshNode("bare", NewMesh("bare", prim)))
		if err := r.Render(scene, nil); !errors.Is(err, ErrMissingAttribute) {
			t.Errorf("Render() = %v, want ErrMissingAttribute", err)
		}
	})

	t.Run("unbound texture", func(t *testing.T) {
		mat := NewMaterial("broken")
		mat.BaseColorTexture = &Sampler{}
		scene := newTestScene(quadNode("quad", 2, 0, mat))
		if err := r.Render(scene, nil); !errors.Is(err, ErrTextureUnbound) {
			t.Errorf("Render() = %v, want ErrTextureUnbound", err)
		}
	})
}

func TestUseShaderReusesPipelines(t *testing.T) {
	r := NewRenderer(testSettings())
	defer r.Close()

	first := UseShader[UnlitVertex](r, NewUnlitShader())
	UseShader[PhongVertex](r, NewPhongShader())
	replacement := NewUnlitShader()
	again := UseShader[UnlitVertex](r, replacement)

	if first != again {
		t.Error("UseShader should reuse the pipeline of a shader type it has seen")
	}
	if again.Shader() != Shader[UnlitVertex](replacement) {
		t.Error("the reused pipeline should draw with the new shader value")
	}
	if r.ActiveShader() != any(replacement) {
		t.Error("ActiveShader should be the last shader given")
	}
}

func TestShaderBindPrimitiveWithoutScene(t *testing.T) {
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrSceneUnbound) {
			t.Errorf("recovered %v, want ErrSceneUnbound", err)
		}
	}()
	NewUnlitShader().BindPrimitive(NewQuadPrimitive(1, 1, nil), NewMatrix4())
}

func TestRenderSkinnedMesh(t *testing.T) {
	r := newUnlitRenderer(t)

	joint := NewNode("joint")
	joint.Translation = Vector3{100, 0, 0} // moved far off to the side...
	skinned := quadNode("skinned", 20, 0, colorMaterial(NewColor(1, 0, 0, 1)))
	prim := skinned.Mesh.Primitives[0]
	prim.SetAttribute(gltf.JOINTS_0, make([]float32, 16))
	prim.SetAttribute(gltf.WEIGHTS_0, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0})
	skinned.Skin = NewSkin("skin", []*Node{joint}, nil)

	if err := r.Render(newTestScene(skinned, joint), nil); err != nil {
		t.Fatal(err)
	}
	// ...so the skinned quad follows it out of view.
	if c := r.Buffer().ARGB(testSize/2, testSize/2); c != 0xff000000 {
		t.Errorf("center pixel = %#x, the skinned quad should have moved away", c)
	}

	joint.Translation = Vector3{}
	if err := r.Render(newTestScene(skinned, joint), nil); err != nil {
		t.Fatal(err)
	}
	if c := r.Buffer().ARGB(testSize/2, testSize/2); c != 0xffff0000 {
		t.Errorf("center pixel = %#x, want the skinned quad back in place", c)
	}
}

func BenchmarkRenderCubes(b *testing.B) {
	r := NewRenderer(DefaultSettings())
	defer r.Close()

	scene := NewScene("bench")
	scene.Camera = NewCamera(320, 240)
	scene.Camera.LookAt(Vector3{0, 4, 12}, Vector3{})
	scene.AddLights(NewPointLight("light", Vector3{2, 5, 4}, 20))
	for i := range 25 {
		node := NewMeshNode("cube", NewCubeMesh("cube", 1, nil))
		node.Translation = Vector3{float32(i%5)*2 - 4, 0, float32(i/5)*2 - 4}
		scene.AddNodes(node)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Render(scene, nil); err != nil {
			b.Fatal(err)
		}
	}
}
