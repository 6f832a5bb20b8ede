package acg

// Skin binds a Mesh to a set of joint Nodes. JointMatrices are written once per frame, before any vertex is
// shaded, and only read afterwards.
type Skin struct {
	Name                string
	Joints              []*Node
	InverseBindMatrices []Matrix4
	// JointMatrices take a bind-pose vertex into the skinned Node's local space. When Joints is empty they are
	// assumed to be filled in by whoever built the Skin and are left alone.
	JointMatrices []Matrix4
}

// NewSkin creates a Skin over the joints. A nil inverseBind means identity matrices.
func NewSkin(name string, joints []*Node, inverseBind []Matrix4) *Skin {
	if inverseBind == nil {
		inverseBind = make([]Matrix4, len(joints))
		for i := range inverseBind {
			inverseBind[i] = NewMatrix4()
		}
	}
	skin := &Skin{
		Name:                name,
		Joints:              joints,
		InverseBindMatrices: inverseBind,
		JointMatrices:       make([]Matrix4, len(joints)),
	}
	for i := range skin.JointMatrices {
		skin.JointMatrices[i] = NewMatrix4()
	}
	return skin
}

// Update recomputes JointMatrices from the joints' current world transforms. meshWorld is the world transform of
// the Node drawing the skinned Mesh; it is divided out so the shader can apply it again as usual.
func (skin *Skin) Update(meshWorld Matrix4) {
	if len(skin.Joints) == 0 {
		return
	}
	if len(skin.JointMatrices) != len(skin.Joints) {
		skin.JointMatrices = make([]Matrix4, len(skin.Joints))
	}
	invMesh := meshWorld.Inverted()
	for i, joint := range skin.Joints {
		skin.JointMatrices[i] = skin.InverseBindMatrices[i].Mult(joint.WorldTransform()).Mult(invMesh)
	}
}

// Matrix blends up to four joint matrices by weight. Joints and weights hold four entries each, as in the
// JOINTS_0 and WEIGHTS_0 attributes.
func (skin *Skin) Matrix(joints, weights Vector4) Matrix4 {
	var out Matrix4
	out = out.Add(skin.JointMatrices[int(joints.X)].Scale(weights.X))
	if weights.Y != 0 {
		out = out.Add(skin.JointMatrices[int(joints.Y)].Scale(weights.Y))
	}
	if weights.Z != 0 {
		out = out.Add(skin.JointMatrices[int(joints.Z)].Scale(weights.Z))
	}
	if weights.W != 0 {
		out = out.Add(skin.JointMatrices[int(joints.W)].Scale(weights.W))
	}
	return out
}
