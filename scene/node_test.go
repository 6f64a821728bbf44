package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testEpsilon = 1e-5

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, testEpsilon)
}

func matNear(a, b mgl32.Mat4) bool {
	return a.ApproxEqualThreshold(b, testEpsilon)
}

func quatNear(a, b mgl32.Quat) bool {
	return mgl32.FloatEqualThreshold(a.W, b.W, testEpsilon) &&
		a.V.ApproxEqualThreshold(b.V, testEpsilon)
}

func TestNodeMatrixCaching(t *testing.T) {
	n := NewNode("cache")

	if n.matrixDirty {
		t.Errorf("fresh node should not be dirty")
	}
	if !matNear(n.Matrix(), mgl32.Ident4()) {
		t.Errorf("fresh node matrix should be identity, got %v", n.Matrix())
	}

	n.SetTranslation(1, 2, 3)
	if !n.matrixDirty {
		t.Errorf("SetTranslation should flag the matrix dirty")
	}
	if !matNear(n.Matrix(), mgl32.Translate3D(1, 2, 3)) {
		t.Errorf("matrix after SetTranslation should be the translation matrix")
	}
	if n.matrixDirty {
		t.Errorf("Matrix() should clear the dirty flag")
	}

	// A clean read must return the cached value without recomputation.
	sentinel := mgl32.Scale3D(7, 7, 7)
	n.matrix = sentinel
	if !matNear(n.Matrix(), sentinel) {
		t.Errorf("clean Matrix() read recomputed the cached matrix")
	}

	n.Yaw(0.5)
	want := mgl32.Translate3D(1, 2, 3).Mul4(n.orientation.Mat4())
	if !matNear(n.Matrix(), want) {
		t.Errorf("matrix after mutation = %v; expected %v", n.Matrix(), want)
	}
}

func TestNodeMatrixComposition(t *testing.T) {
	n := NewNode("compose")
	n.SetTranslation(4, 5, 6)
	n.Pitch(0.3)
	n.Yaw(-1.1)
	n.Roll(2.0)
	n.Move(mgl32.Vec3{0, 0, 2})

	want := mgl32.Translate3D(n.translation[0], n.translation[1], n.translation[2]).
		Mul4(n.orientation.Mat4())
	if !matNear(n.Matrix(), want) {
		t.Errorf("Matrix() = %v; expected translate*rotate = %v", n.Matrix(), want)
	}
}

func TestNodeYawIdempotence(t *testing.T) {
	n := NewNode("yawer")
	n.Pitch(0.4) // start from a non-trivial orientation
	before := n.orientation

	n.Yaw(1.3)
	n.Yaw(-1.3)
	if !quatNear(n.orientation, before) {
		t.Errorf("yaw(a) then yaw(-a) = %v; expected %v", n.orientation, before)
	}
}

func TestNodeMoveRelativeToFacing(t *testing.T) {
	n := NewNode("mover")
	n.Yaw(math.Pi / 2)
	n.Move(UnitFront)

	// After a 90 degree turn around Y, "forward" is the world +X axis.
	if !vecNear(n.translation, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("translation after yaw+move = %v; expected (1,0,0)", n.translation)
	}
}

func TestNodeSetOrientationNormalizes(t *testing.T) {
	n := NewNode("loader-placed")
	n.SetOrientation(2, 0, 0, 0)
	if !quatNear(n.orientation, mgl32.QuatIdent()) {
		t.Errorf("SetOrientation should normalize, got %v", n.orientation)
	}
}

func TestRotateLocalVersusWorld(t *testing.T) {
	start := mgl32.QuatRotate(0.7, UnitUp)

	local := RotateLocal(start, 0.5, UnitRight)
	world := RotateWorld(start, 0.5, UnitRight)

	if quatNear(local, world) {
		t.Errorf("left and right multiplication should differ for non-commuting axes")
	}
	if !mgl32.FloatEqualThreshold(local.Len(), 1, testEpsilon) {
		t.Errorf("RotateLocal result not normalized: len=%v", local.Len())
	}
	if !mgl32.FloatEqualThreshold(world.Len(), 1, testEpsilon) {
		t.Errorf("RotateWorld result not normalized: len=%v", world.Len())
	}

	// Both undo themselves with the opposite angle on the same side.
	if !quatNear(RotateLocal(local, -0.5, UnitRight), start) {
		t.Errorf("RotateLocal did not invert")
	}
	if !quatNear(RotateWorld(world, -0.5, UnitRight), start) {
		t.Errorf("RotateWorld did not invert")
	}
}

func TestNodeIntegrateLinear(t *testing.T) {
	n := NewNode("linear")
	n.SetLinearSpeed(mgl32.Vec3{1, 0, 0})

	n.Integrate(0.5)
	if !n.matrixDirty {
		t.Errorf("Integrate should flag the matrix dirty")
	}
	n.Matrix()
	n.Integrate(0.5)

	if !vecNear(n.translation, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("translation after 2x integrate(0.5) = %v; expected (1,0,0)", n.translation)
	}
	if !matNear(n.Matrix(), mgl32.Translate3D(1, 0, 0)) {
		t.Errorf("Matrix() does not reflect integrated translation")
	}
}

func TestNodeIntegrateLinearIsNotFacingRelative(t *testing.T) {
	n := NewNode("platform")
	n.Yaw(math.Pi / 2)
	n.SetLinearSpeed(mgl32.Vec3{0, 0, 1})

	n.Integrate(1.0)

	// Unlike Move, the linear speed is parent-relative.
	if !vecNear(n.translation, mgl32.Vec3{0, 0, 1}) {
		t.Errorf("integrated translation = %v; expected world-axis (0,0,1)", n.translation)
	}
}

func TestNodeIntegrateRotational(t *testing.T) {
	n := NewNode("spinner")
	n.SetRotationalSpeed(mgl32.Vec3{0, 2, 0})

	n.Integrate(0.25)

	want := NewNode("reference")
	want.Yaw(0.5)
	if !quatNear(n.orientation, want.orientation) {
		t.Errorf("orientation after integrate = %v; expected %v", n.orientation, want.orientation)
	}
}

func TestNodeIntegrateRecursesChildren(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	child.SetLinearSpeed(mgl32.Vec3{0, 3, 0})
	parent.AddChildNode(child)

	parent.Integrate(1.0)

	if !vecNear(parent.translation, mgl32.Vec3{}) {
		t.Errorf("motionless parent moved to %v", parent.translation)
	}
	if !vecNear(child.translation, mgl32.Vec3{0, 3, 0}) {
		t.Errorf("child with own speed did not advance, got %v", child.translation)
	}
}

type recordingDrawable struct {
	name string
	log  *[]string
}

func (d *recordingDrawable) Draw() {
	*d.log = append(*d.log, d.name)
}

type recordingSink struct {
	transforms []mgl32.Mat4
}

func (s *recordingSink) SetModelTransform(m mgl32.Mat4) {
	s.transforms = append(s.transforms, m)
}

func TestNodeDrawOrder(t *testing.T) {
	var drawLog []string
	mesh := func(name string) *recordingDrawable {
		return &recordingDrawable{name: name, log: &drawLog}
	}

	root := NewNode("root")
	root.AddMesh(mesh("root.mesh0"))
	root.AddMesh(mesh("root.mesh1"))

	childA := NewNode("childA")
	childA.AddMesh(mesh("childA.mesh0"))
	grandchild := NewNode("grandchild")
	grandchild.AddMesh(mesh("grandchild.mesh0"))
	childA.AddChildNode(grandchild)

	childB := NewNode("childB")
	childB.AddMesh(mesh("childB.mesh0"))

	root.AddChildNode(childA)
	root.AddChildNode(childB)

	root.Draw(NewMatrixStack(mgl32.Ident4()), &recordingSink{})

	want := []string{"root.mesh0", "root.mesh1", "childA.mesh0", "grandchild.mesh0", "childB.mesh0"}
	if len(drawLog) != len(want) {
		t.Fatalf("draw log %v; expected %v", drawLog, want)
	}
	for i := range want {
		if drawLog[i] != want[i] {
			t.Errorf("draw order [%d] = %q; expected %q", i, drawLog[i], want[i])
		}
	}
}

func TestNodeDrawComposesAndRestores(t *testing.T) {
	root := NewNode("root")
	root.SetTranslation(1, 0, 0)

	childA := NewNode("childA")
	childA.SetTranslation(0, 1, 0)
	grandchild := NewNode("grandchild")
	grandchild.SetTranslation(0, 0, 1)
	childA.AddChildNode(grandchild)

	childB := NewNode("childB")
	childB.SetTranslation(0, 2, 0)

	root.AddChildNode(childA)
	root.AddChildNode(childB)

	seed := mgl32.Translate3D(10, 20, 30)
	stack := NewMatrixStack(seed)
	sink := &recordingSink{}
	root.Draw(stack, sink)

	want := []mgl32.Mat4{
		seed.Mul4(mgl32.Translate3D(1, 0, 0)),
		seed.Mul4(mgl32.Translate3D(1, 1, 0)),
		seed.Mul4(mgl32.Translate3D(1, 1, 1)),
		// childB must see only the root transform, not childA's subtree.
		seed.Mul4(mgl32.Translate3D(1, 2, 0)),
	}
	if len(sink.transforms) != len(want) {
		t.Fatalf("got %d uploaded transforms; expected %d", len(sink.transforms), len(want))
	}
	for i := range want {
		if !matNear(sink.transforms[i], want[i]) {
			t.Errorf("transform [%d] = %v; expected %v", i, sink.transforms[i], want[i])
		}
	}

	if !matNear(stack.Top(), seed) {
		t.Errorf("stack top after draw = %v; expected the seed %v", stack.Top(), seed)
	}
	if stack.Depth() != 0 {
		t.Errorf("stack depth after draw = %d; expected 0", stack.Depth())
	}
}
