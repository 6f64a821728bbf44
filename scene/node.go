package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Base vectors of a standard right hand coordinate system.
var (
	UnitRight = mgl32.Vec3{1.0, 0.0, 0.0} // "right of the world"
	UnitUp    = mgl32.Vec3{0.0, 1.0, 0.0} // "up of the world"
	UnitFront = mgl32.Vec3{0.0, 0.0, 1.0} // "front of the world"
)

// Node is an entity of the scene graph. It holds a pose (orientation and
// translation) relative to its parent, an optional constant-speed motion,
// drawables to render at that pose, and child nodes.
//
// The composed translate*rotate matrix is cached and recalculated only
// after the pose changed.
type Node struct {
	name      string
	children  []*Node
	drawables []Drawable

	orientation mgl32.Quat
	translation mgl32.Vec3
	motion      Motion

	matrix      mgl32.Mat4
	matrixDirty bool
}

func NewNode(name string) *Node {
	return &Node{
		name:        name,
		orientation: mgl32.QuatIdent(),
		matrix:      mgl32.Ident4(),
	}
}

func (n *Node) Name() string { return n.name }

func (n *Node) Children() []*Node { return n.children }

func (n *Node) Drawables() []Drawable { return n.drawables }

func (n *Node) Orientation() mgl32.Quat { return n.orientation }

func (n *Node) Translation() mgl32.Vec3 { return n.translation }

func (n *Node) Motion() *Motion { return &n.motion }

// AddChildNode appends a child. The child must not belong to any other
// node: every node has exactly one parent across the whole graph.
func (n *Node) AddChildNode(child *Node) {
	n.children = append(n.children, child)
}

// AddMesh attaches a drawable to the node. The node does not own the
// drawable's resources, it only asks it to draw.
func (n *Node) AddMesh(d Drawable) {
	n.drawables = append(n.drawables, d)
}

// Move translates the node relatively to its current orientation, so that
// moving along UnitFront always means "forward of where the node faces".
func (n *Node) Move(translation mgl32.Vec3) {
	relative := n.orientation.Rotate(translation)
	n.translation = n.translation.Add(relative)
	n.matrixDirty = true
}

// Pitch rotates the node vertically around its current local X axis.
func (n *Node) Pitch(angle float32) {
	localX := n.orientation.Rotate(UnitRight)
	n.orientation = RotateLocal(n.orientation, angle, localX)
	n.matrixDirty = true
}

// Yaw rotates the node horizontally around its current local Y axis.
func (n *Node) Yaw(angle float32) {
	localY := n.orientation.Rotate(UnitUp)
	n.orientation = RotateLocal(n.orientation, angle, localY)
	n.matrixDirty = true
}

// Roll rotates the node around its current local Z axis.
func (n *Node) Roll(angle float32) {
	localZ := n.orientation.Rotate(UnitFront)
	n.orientation = RotateLocal(n.orientation, angle, localZ)
	n.matrixDirty = true
}

// SetOrientation places the node exactly as authored in imported data.
// The quaternion is normalized once on the way in.
func (n *Node) SetOrientation(w, x, y, z float32) {
	n.orientation = mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}.Normalize()
	n.matrixDirty = true
}

func (n *Node) SetTranslation(x, y, z float32) {
	n.translation = mgl32.Vec3{x, y, z}
	n.matrixDirty = true
}

func (n *Node) SetLinearSpeed(speed mgl32.Vec3) {
	n.motion.SetLinearSpeed(speed)
}

func (n *Node) SetRotationalSpeed(speed mgl32.Vec3) {
	n.motion.SetRotationalSpeed(speed)
}

// Integrate advances the pose by the node's own motion over dt seconds and
// recurses into the children. Linear speed is parent-relative and is not
// rotated by the node's facing; rotational speed is pitch/yaw/roll rates in
// radians per second applied around the current local axes. Children do not
// inherit speed, only the resulting transform at draw time.
func (n *Node) Integrate(dt float32) {
	if n.motion.InMotion() {
		n.translation = n.translation.Add(n.motion.LinearSpeed().Mul(dt))

		rotational := n.motion.RotationalSpeed()
		n.Pitch(rotational[0] * dt)
		n.Yaw(rotational[1] * dt)
		n.Roll(rotational[2] * dt)

		n.matrixDirty = true
	}

	for _, child := range n.children {
		child.Integrate(dt)
	}
}

// Matrix returns the up to date matrix composed of the relative orientation
// and translation. We want rotation applied first, then translation, so the
// product is translate(translation) * rotate(orientation). The result is
// cached until a pose mutation flags it dirty.
func (n *Node) Matrix() mgl32.Mat4 {
	if n.matrixDirty {
		translation := mgl32.Translate3D(n.translation[0], n.translation[1], n.translation[2])
		rotation := n.orientation.Mat4()
		n.matrix = translation.Mul4(rotation)
		n.matrixDirty = false
	}
	return n.matrix
}

// Draw composes the node's matrix onto the stack, uploads the resulting
// model transform, draws the attached drawables in order and then the
// children in order. The stack is restored before returning, so a subtree
// can never leak its transform to a sibling.
func (n *Node) Draw(stack *MatrixStack, sink TransformSink) {
	defer stack.Push()()

	stack.Multiply(n.Matrix())
	sink.SetModelTransform(stack.Top())

	for _, d := range n.drawables {
		d.Draw()
	}
	for _, child := range n.children {
		child.Draw(stack, sink)
	}
}

// RotateLocal offsets the orientation by angle radians around the given
// normalized axis by left-multiplying the offset quaternion.
func RotateLocal(orientation mgl32.Quat, angle float32, axis mgl32.Vec3) mgl32.Quat {
	offset := mgl32.QuatRotate(angle, axis)
	return offset.Mul(orientation).Normalize()
}

// RotateWorld offsets the orientation by angle radians around the given
// normalized axis by right-multiplying the offset quaternion. Call sites
// must pick RotateLocal or RotateWorld deliberately: the two compose the
// rotation in different frames.
func RotateWorld(orientation mgl32.Quat, angle float32, axis mgl32.Vec3) mgl32.Quat {
	offset := mgl32.QuatRotate(angle, axis)
	return orientation.Mul(offset).Normalize()
}
