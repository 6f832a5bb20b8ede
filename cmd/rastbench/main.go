// Command rastbench renders a procedural scene headlessly for a number of frames and reports the frame times.
// The last frame can be written out as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/schollz/progressbar/v3"
	xdraw "golang.org/x/image/draw"

	acg "github.com/asvorded/acg-labs-sub000"
	"github.com/asvorded/acg-labs-sub000/colors"
	"github.com/asvorded/acg-labs-sub000/math32"
)

type options struct {
	frames   int
	settings string
	out      string
	scale    float64
	width    int
	height   int
	grid     int
	shader   string
	verbose  bool
}

func main() {
	var opts options
	flag.IntVar(&opts.frames, "frames", 120, "number of frames to render")
	flag.StringVar(&opts.settings, "settings", "", "YAML file with renderer settings")
	flag.StringVar(&opts.out, "out", "", "write the last frame to this PNG file")
	flag.Float64Var(&opts.scale, "scale", 1, "scale factor applied to the written PNG")
	flag.IntVar(&opts.width, "width", 800, "frame width in pixels")
	flag.IntVar(&opts.height, "height", 600, "frame height in pixels")
	flag.IntVar(&opts.grid, "grid", 8, "number of cubes along each side of the grid")
	flag.StringVar(&opts.shader, "shader", "shadow", "shader to render with: unlit, phong, pbr or shadow")
	flag.BoolVar(&opts.verbose, "v", false, "log renderer debug output")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "rastbench: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	if opts.width < 1 || opts.height < 1 {
		return fmt.Errorf("invalid frame size %dx%d", opts.width, opts.height)
	}
	if opts.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", opts.scale)
	}

	if opts.verbose {
		acg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := acg.DefaultSettings()
	if opts.settings != "" {
		var err error
		settings, err = acg.LoadSettings(opts.settings)
		if err != nil {
			return err
		}
	}

	renderer := acg.NewRenderer(settings)
	defer renderer.Close()

	switch opts.shader {
	case "unlit":
		acg.UseShader(renderer, acg.NewUnlitShader())
	case "phong":
		acg.UseShader(renderer, acg.NewPhongShader())
	case "pbr":
		acg.UseShader(renderer, acg.NewPBRShader())
	case "shadow":
		acg.UseShader(renderer, acg.NewShadowShader())
	default:
		return fmt.Errorf("unknown shader %q", opts.shader)
	}

	scene := buildScene(opts.width, opts.height, opts.grid)
	surface := acg.NewImageSurface()

	bar := progressbar.Default(int64(opts.frames), "rendering")

	var total, worst time.Duration
	for frame := 0; frame < opts.frames; frame++ {
		scene.Time = float32(frame) / 60
		orbit(scene.Camera, scene.Time, float32(opts.grid))

		var target acg.Surface
		if frame == opts.frames-1 {
			target = surface
		}
		if err := renderer.Render(scene, target); err != nil {
			return err
		}

		total += renderer.DebugInfo.FrameTime
		worst = max(worst, renderer.DebugInfo.FrameTime)
		bar.Add(1)
	}
	bar.Finish()

	info := renderer.DebugInfo
	fmt.Printf("%d frames at %dx%d: avg %v, worst %v\n", opts.frames, opts.width, opts.height, total/time.Duration(opts.frames), worst)
	fmt.Printf("last frame: %d/%d primitives drawn, %d triangles drawn, %d back-facing, %d clipped, %d shadow triangles\n",
		info.DrawnPrimitives, info.TotalPrimitives, info.DrawnTriangles, info.BackfaceCulledTriangles, info.ClippedTriangles, info.ShadowTriangles)

	if opts.out == "" {
		return nil
	}
	return writePNG(opts.out, surface.Image, opts.scale)
}

// buildScene lays a grid of spinning cubes over a floor, lit by a sun casting shadows and a point light.
func buildScene(width, height, grid int) *acg.Scene {
	scene := acg.NewScene("rastbench")
	scene.Camera = acg.NewCamera(width, height)
	scene.Camera.SetFar(float32(grid) * 6)

	floorMat := acg.NewMaterial("floor")
	floorMat.BaseColorFactor = colors.LightGray()
	floorMat.MetallicFactor = 0

	size := float32(grid) * 2
	floor := acg.NewMeshNode("floor", acg.NewMesh("floor", acg.NewQuadPrimitive(size+4, size+4, floorMat)))
	floor.Rotation = acg.NewQuaternionFromAxisAngle(acg.WorldRight, -math32.Pi/2)
	scene.AddNodes(floor)

	palette := []acg.Color{colors.Red(), colors.Green(), colors.Blue(), colors.Yellow()}
	for i := 0; i < grid*grid; i++ {
		mat := acg.NewMaterial(fmt.Sprintf("cube %d", i))
		mat.BaseColorFactor = palette[i%len(palette)]
		mat.MetallicFactor = float32(i%3) / 2
		mat.RoughnessFactor = 0.3 + float32(i%5)*0.15
		if i%7 == 3 {
			mat.BaseColorFactor.A = 0.5
			mat.AlphaMode = gltf.AlphaBlend
		}

		x := float32(i%grid)*2 - size/2 + 1
		z := float32(i/grid)*2 - size/2 + 1

		cube := acg.NewMeshNode(mat.Name, acg.NewCubeMesh(mat.Name, 1, mat))
		cube.Animation = acg.NewAnimation("spin", acg.NewAnimationTrack(gltf.TRSRotation, []float32{0, 2, 4}, spinKeys()))
		cube.Animation.Tracks = append(cube.Animation.Tracks,
			acg.NewAnimationTrack(gltf.TRSTranslation, []float32{0}, []float32{x, 0.5, z}))
		scene.AddNodes(cube)
	}

	sun := acg.NewDirectionalLight("sun", acg.NewVector3(-0.4, -1, -0.2), 1)
	lamp := acg.NewPointLight("lamp", acg.NewVector3(0, 4, 0), float32(grid)*2)
	scene.AddLights(sun, lamp)
	scene.Shadow = acg.NewDirectionalShadowMap(sun, acg.Vector3{}, size)

	return scene
}

// spinKeys returns the keyframes of a full turn around the up axis in two halves.
func spinKeys() []float32 {
	keys := make([]float32, 0, 12)
	for _, angle := range []float32{0, math32.Pi, 2 * math32.Pi} {
		q := acg.NewQuaternionFromAxisAngle(acg.WorldUp, angle)
		keys = append(keys, q.X, q.Y, q.Z, q.W)
	}
	return keys
}

func orbit(camera *acg.Camera, t, grid float32) {
	distance := grid * 1.8
	position := acg.NewVector3(math32.Sin(t*0.5)*distance, grid, math32.Cos(t*0.5)*distance)
	camera.LookAt(position, acg.Vector3{})
}

func writePNG(path string, img *image.RGBA, scale float64) error {
	var out image.Image = img
	if scale != 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale))))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		out = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
