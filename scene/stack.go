package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MatrixStack accumulates transforms while walking down the scene graph.
// It maintains a current matrix plus the saved ancestor matrices; saving
// and restoring only happen through the scoped Push interface so that a
// traversal can never leave the stack unbalanced.
//
// A stack is a transient, single-traversal object: construct a fresh one
// for every draw pass and do not share or copy it.
type MatrixStack struct {
	current mgl32.Mat4
	saved   []mgl32.Mat4
}

// NewMatrixStack returns a stack seeded with the given matrix, usually the
// camera view transform, or identity.
func NewMatrixStack(m mgl32.Mat4) *MatrixStack {
	return &MatrixStack{current: m}
}

// Multiply right-multiplies the current matrix with the one provided,
// applying m after the transforms already accumulated from ancestors.
func (s *MatrixStack) Multiply(m mgl32.Mat4) {
	s.current = s.current.Mul4(m)
}

// Top returns the current composite matrix.
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.current
}

// Depth returns the number of saved matrices.
func (s *MatrixStack) Depth() int {
	return len(s.saved)
}

// Push saves the current matrix and returns the matching pop. Use it as a
// scope guard:
//
//	defer stack.Push()()
//
// so the ancestor matrix is restored on every exit path, normal or not.
// Popping more times than pushed is a bug in the caller and panics.
func (s *MatrixStack) Push() (pop func()) {
	s.saved = append(s.saved, s.current)
	return s.pop
}

func (s *MatrixStack) pop() {
	if len(s.saved) == 0 {
		panic("scene: matrix stack underflow")
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}
