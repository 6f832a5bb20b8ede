package acg

// Node is an element of the scene graph: a local transform, optional Mesh, Skin and Animation, and children.
// Nodes form a tree; a Node must not be its own ancestor.
type Node struct {
	Name string

	Translation Vector3
	Rotation    Quaternion
	Scale       Vector3
	// Matrix, if set, is used as the local transform instead of Translation, Rotation and Scale.
	// An Animation on the Node takes precedence over it.
	Matrix *Matrix4

	Mesh      *Mesh
	Skin      *Skin
	Animation *Animation

	Children []*Node
	parent   *Node

	// world and normal are recomputed by the Renderer at the start of every frame.
	world  Matrix4
	normal Matrix4
}

// NewNode returns a new Node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: NewQuaternionIdentity(),
		Scale:    Vector3{1, 1, 1},
		world:    NewMatrix4(),
		normal:   NewMatrix4(),
	}
}

// NewMeshNode returns a new Node drawing the Mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	node := NewNode(name)
	node.Mesh = mesh
	return node
}

// AddChildren parents the provided children to the Node. Children already parented elsewhere are moved.
func (node *Node) AddChildren(children ...*Node) *Node {
	for _, child := range children {
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		child.parent = node
		node.Children = append(node.Children, child)
	}
	return node
}

// RemoveChildren unparents the provided children from the Node.
func (node *Node) RemoveChildren(children ...*Node) {
	for _, child := range children {
		for i, c := range node.Children {
			if c == child {
				node.Children = append(node.Children[:i], node.Children[i+1:]...)
				child.parent = nil
				break
			}
		}
	}
}

// Parent returns the Node's parent, or nil for a root.
func (node *Node) Parent() *Node {
	return node.parent
}

// LocalTransform returns the Node's transform relative to its parent at playback time t.
func (node *Node) LocalTransform(t float32) Matrix4 {
	if node.Animation == nil && node.Matrix != nil {
		return *node.Matrix
	}
	translation, rotation, scale := node.Translation, node.Rotation, node.Scale
	if node.Animation != nil {
		node.Animation.Apply(t, &translation, &rotation, &scale)
	}
	return NewMatrix4TRS(translation, rotation, scale)
}

// WorldTransform returns the Node's transform as of the last rendered frame (or the last UpdateTransforms call).
func (node *Node) WorldTransform() Matrix4 {
	return node.world
}

// NormalMatrix returns the inverse-transpose of WorldTransform, used to transform normals.
func (node *Node) NormalMatrix() Matrix4 {
	return node.normal
}

// WorldPosition returns the translation of the Node's world transform.
func (node *Node) WorldPosition() Vector3 {
	return node.world.Position()
}

// UpdateTransforms recomputes the world transforms of the Node and its descendants at playback time t, given the
// parent's world transform.
func (node *Node) UpdateTransforms(parent Matrix4, t float32) {
	node.world = node.LocalTransform(t).Mult(parent)
	node.normal = node.world.NormalMatrix()
	for _, child := range node.Children {
		child.UpdateTransforms(node.world, t)
	}
}

// Walk calls fn for the Node and its descendants, depth first. Returning false from fn skips a Node's children.
func (node *Node) Walk(fn func(*Node) bool) {
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		child.Walk(fn)
	}
}

// FindNode returns the first Node named name in the Node's subtree.
func (node *Node) FindNode(name string) *Node {
	var found *Node
	node.Walk(func(n *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}
