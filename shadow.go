package acg

import "github.com/asvorded/acg-labs-sub000/math32"

// ShadowMap is a depth Buffer rendered from a light's point of view. When a Scene has one, the Renderer draws its
// opaque and masked primitives into it with a DepthShader before the frame, then shaders implementing
// ShadowReceiver compare against it.
type ShadowMap struct {
	// Light is the light whose contribution gets shadowed; nil shadows every light.
	Light Light
	// Camera looks from the light over the area that should receive shadows. The Renderer resizes it to the
	// map's resolution.
	Camera *Camera
	// Bias is how much farther than the stored depth a point must be to count as shadowed; 0 means the
	// Renderer's Settings.ShadowBias.
	Bias float32

	buffer         *Buffer
	viewProjection Matrix4
	viewport       Matrix4
	bias           float32 // Bias, or the Renderer's default, as of the last frame.
}

// NewShadowMap returns a ShadowMap for light, rendered from camera.
func NewShadowMap(light Light, camera *Camera) *ShadowMap {
	return &ShadowMap{
		Light:  light,
		Camera: camera,
		buffer: NewBuffer(0, 0),
	}
}

// NewDirectionalShadowMap returns a ShadowMap for a DirectionalLight, rendered by a narrow-angle camera placed
// distance away from center against the light's direction.
func NewDirectionalShadowMap(light *DirectionalLight, center Vector3, distance float32) *ShadowMap {
	camera := NewCamera(1, 1)
	camera.SetFieldOfView(30)
	camera.SetFar(distance * 2)
	position := center.Sub(light.Direction.Unit().Scale(distance))
	if math32.Abs(light.Direction.Unit().Dot(WorldUp)) > 0.99 {
		camera.Up = WorldBackward
	}
	camera.LookAt(position, center)
	return NewShadowMap(light, camera)
}

// Buffer returns the depth Buffer of the ShadowMap, as of the last rendered frame.
func (shadow *ShadowMap) Buffer() *Buffer {
	return shadow.buffer
}

// prepare sizes the Buffer and caches the light camera's matrices and the bias for a new frame.
func (shadow *ShadowMap) prepare(size int, bias float32) {
	shadow.Camera.Resize(size, size)
	shadow.buffer.Resize(size, size)
	shadow.viewProjection = shadow.Camera.ViewProjection()
	shadow.viewport = shadow.Camera.Viewport()
	shadow.bias = shadow.Bias
	if shadow.bias == 0 {
		shadow.bias = bias
	}
}

// Visibility returns how lit the world-space point is, from 0 (fully shadowed) to 1, averaging a 3x3 block of
// the map around the point. Points outside the light camera's view are lit.
func (shadow *ShadowMap) Visibility(point Vector3) float32 {
	clip := shadow.viewProjection.MultVecW(point.Vector4(1))
	if clip.W <= 0 || clip.Z < 0 || clip.Z > clip.W {
		return 1
	}
	invW := 1 / clip.W
	screen := shadow.viewport.MultVecW(Vector4{clip.X * invW, clip.Y * invW, clip.Z * invW, 1})

	w, h := shadow.buffer.Size()
	cx, cy := int(math32.Floor(screen.X)), int(math32.Floor(screen.Y))
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return 1
	}

	lit, samples := 0, 0
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			samples++
			stored := shadow.buffer.Distance(x, y)
			if stored == 0 || clip.W <= stored+shadow.bias {
				lit++
			}
		}
	}
	return float32(lit) / float32(samples)
}
