package acg

import "github.com/asvorded/acg-labs-sub000/math32"

// Light represents an interface that is fulfilled by an object that emits light. Ambient light is not a Light;
// it is the Scene's Ambient color.
type Light interface {
	// Illuminate returns the unit direction from point towards the light, and the radiance reaching point.
	Illuminate(point Vector3) (direction Vector3, radiance Color)
	IsOn() bool
}

//---------------//

// PointLight represents a point light emitting in all directions.
type PointLight struct {
	Name     string
	Position Vector3
	Color    Color   // Color is the color of the PointLight.
	Energy   float32 // Energy scales the light's color; it falls off with the square of the distance.
	// Range is the distance beyond which the light contributes nothing; 0 means infinite.
	Range float32
	On    bool // If the light is on and contributing to the scene.
}

// NewPointLight returns a new, white PointLight that is on.
func NewPointLight(name string, position Vector3, energy float32) *PointLight {
	return &PointLight{
		Name:     name,
		Position: position,
		Color:    NewColor(1, 1, 1, 1),
		Energy:   energy,
		On:       true,
	}
}

func (point *PointLight) Illuminate(p Vector3) (Vector3, Color) {
	toLight := point.Position.Sub(p)
	distSq := math32.Max(toLight.MagnitudeSquared(), 1e-4)
	attenuation := point.Energy / distSq
	if point.Range > 0 {
		ratio := distSq / (point.Range * point.Range)
		window := math32.Saturate(1 - ratio*ratio)
		attenuation *= window * window
	}
	return toLight.Unit(), point.Color.ScaleRGB(attenuation)
}

func (point *PointLight) IsOn() bool {
	return point.On
}

//---------------//

// DirectionalLight represents a light infinitely far away, like the sun, with parallel rays.
type DirectionalLight struct {
	Name string
	// Direction is the way the light travels (e.g. {0, -1, 0} shines straight down).
	Direction Vector3
	Color     Color
	Energy    float32
	On        bool
}

// NewDirectionalLight returns a new, white DirectionalLight that is on.
func NewDirectionalLight(name string, direction Vector3, energy float32) *DirectionalLight {
	return &DirectionalLight{
		Name:      name,
		Direction: direction.Unit(),
		Color:     NewColor(1, 1, 1, 1),
		Energy:    energy,
		On:        true,
	}
}

func (sun *DirectionalLight) Illuminate(Vector3) (Vector3, Color) {
	return sun.Direction.Unit().Invert(), sun.Color.ScaleRGB(sun.Energy)
}

func (sun *DirectionalLight) IsOn() bool {
	return sun.On
}
