package acg

// Scene is everything a Renderer needs for a frame: the node tree, the camera, the lights and the playback time.
type Scene struct {
	Name   string
	Roots  []*Node
	Camera *Camera
	Lights []Light
	// Ambient is added to every lit surface regardless of the lights.
	Ambient Color
	// Time is the playback time, in seconds, that node animations are sampled at.
	Time float32
	// Shadow, if set, is rendered before the frame and handed to shaders that can receive shadows.
	Shadow *ShadowMap
}

// NewScene creates a new, empty Scene with a dim white ambient term.
func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Ambient: NewColor(0.1, 0.1, 0.1, 1),
	}
}

// AddNodes adds root Nodes to the Scene.
func (scene *Scene) AddNodes(nodes ...*Node) {
	scene.Roots = append(scene.Roots, nodes...)
}

// AddLights adds Lights to the Scene.
func (scene *Scene) AddLights(lights ...Light) {
	scene.Lights = append(scene.Lights, lights...)
}

// ActiveLights returns the lights that are on.
func (scene *Scene) ActiveLights() []Light {
	active := make([]Light, 0, len(scene.Lights))
	for _, light := range scene.Lights {
		if light.IsOn() {
			active = append(active, light)
		}
	}
	return active
}

// FindNode returns the first Node named name in the Scene, or nil.
func (scene *Scene) FindNode(name string) *Node {
	for _, root := range scene.Roots {
		if n := root.FindNode(name); n != nil {
			return n
		}
	}
	return nil
}

// UpdateTransforms recomputes every Node's world transform at the Scene's Time, then every Skin's joint
// matrices. Renderer.Render does this itself; it is exposed for callers that need world transforms between frames.
func (scene *Scene) UpdateTransforms() {
	for _, root := range scene.Roots {
		root.UpdateTransforms(NewMatrix4(), scene.Time)
	}
	for _, root := range scene.Roots {
		root.Walk(func(n *Node) bool {
			if n.Skin != nil {
				n.Skin.Update(n.world)
			}
			return true
		})
	}
}
