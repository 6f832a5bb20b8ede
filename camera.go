package acg

import "github.com/asvorded/acg-labs-sub000/math32"

// Camera represents where a Scene is looked at from. Cameras look from Position towards Target, down their local -Z.
type Camera struct {
	Position Vector3
	Target   Vector3
	Up       Vector3 // Up is the upward direction used to orient the camera; defaults to +Y.

	width, height int
	near, far     float32 // Near defaults to 0.1, far to 100.
	fieldOfView   float32 // Vertical field of view in degrees; defaults to 60.

	updateProjectionMatrix bool
	cachedProjectionMatrix Matrix4
}

// NewCamera returns a Camera rendering to a w by h screen, at +Z looking towards the origin.
func NewCamera(w, h int) *Camera {
	return &Camera{
		Position:               Vector3{0, 0, 5},
		Up:                     WorldUp,
		width:                  w,
		height:                 h,
		near:                   0.1,
		far:                    100,
		fieldOfView:            60,
		updateProjectionMatrix: true,
	}
}

// Resize sets the screen size of the Camera, which is also the size of the Buffer it renders into.
func (camera *Camera) Resize(w, h int) {
	if w == camera.width && h == camera.height {
		return
	}
	camera.width = w
	camera.height = h
	camera.updateProjectionMatrix = true
}

// Size returns the screen size of the Camera in pixels.
func (camera *Camera) Size() (w, h int) {
	return camera.width, camera.height
}

// AspectRatio returns the width of the Camera's screen divided by its height.
func (camera *Camera) AspectRatio() float32 {
	return float32(camera.width) / float32(camera.height)
}

// LookAt points the Camera from position towards target.
func (camera *Camera) LookAt(position, target Vector3) {
	camera.Position = position
	camera.Target = target
}

// Forward returns the unit direction the Camera looks in.
func (camera *Camera) Forward() Vector3 {
	return camera.Target.Sub(camera.Position).Unit()
}

// ViewMatrix returns the Camera's view matrix, moving world space into camera space.
func (camera *Camera) ViewMatrix() Matrix4 {
	up := camera.Up
	if up == (Vector3{}) {
		up = WorldUp
	}
	return NewLookAtMatrix(camera.Position, camera.Target, up)
}

// Projection returns the Camera's projection matrix.
func (camera *Camera) Projection() Matrix4 {

	if !camera.updateProjectionMatrix {
		return camera.cachedProjectionMatrix
	}

	camera.updateProjectionMatrix = false
	camera.cachedProjectionMatrix = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, float32(camera.width), float32(camera.height))
	return camera.cachedProjectionMatrix

}

// Viewport returns the matrix mapping normalized device coordinates onto the Camera's screen in pixels.
func (camera *Camera) Viewport() Matrix4 {
	return NewViewportMatrix(0, 0, float32(camera.width), float32(camera.height))
}

// ViewProjection returns the view matrix combined with the projection.
func (camera *Camera) ViewProjection() Matrix4 {
	return camera.ViewMatrix().Mult(camera.Projection())
}

// Frustum returns the world-space view frustum of the Camera.
func (camera *Camera) Frustum() Frustum {
	return NewFrustum(camera.ViewProjection())
}

// WorldToScreen projects a world position to pixel coordinates. The returned W is 1/w; ok is false
// for points behind the near plane.
func (camera *Camera) WorldToScreen(point Vector3) (screen Vector4, ok bool) {
	clip := camera.ViewProjection().MultVecW(point.Vector4(1))
	if clip.Z < 0 || clip.W <= 0 {
		return Vector4{}, false
	}
	invW := 1 / clip.W
	screen = camera.Viewport().MultVecW(Vector4{clip.X * invW, clip.Y * invW, clip.Z * invW, 1})
	screen.W = invW
	return screen, true
}

// SetFieldOfView sets the vertical field of the view of the camera in degrees.
func (camera *Camera) SetFieldOfView(fovY float32) {
	if camera.fieldOfView == fovY {
		return
	}
	camera.fieldOfView = math32.Clamp(fovY, 1, 179)
	camera.updateProjectionMatrix = true
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float32 {
	return camera.fieldOfView
}

// Near returns the near plane of a camera.
func (camera *Camera) Near() float32 {
	return camera.near
}

// SetNear sets the near plane of a camera.
func (camera *Camera) SetNear(near float32) {
	if camera.near == near {
		return
	}
	camera.near = near
	camera.updateProjectionMatrix = true
}

// Far returns the far plane of a camera.
func (camera *Camera) Far() float32 {
	return camera.far
}

// SetFar sets the far plane of the camera.
func (camera *Camera) SetFar(far float32) {
	if camera.far == far {
		return
	}
	camera.far = far
	camera.updateProjectionMatrix = true
}
