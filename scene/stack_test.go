package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMatrixStackMultiply(t *testing.T) {
	s := NewMatrixStack(mgl32.Translate3D(1, 0, 0))
	s.Multiply(mgl32.Translate3D(0, 1, 0))

	want := mgl32.Translate3D(1, 1, 0)
	if !matNear(s.Top(), want) {
		t.Errorf("Top() = %v; expected %v", s.Top(), want)
	}
}

func TestMatrixStackScopedPush(t *testing.T) {
	seed := mgl32.Translate3D(5, 0, 0)
	s := NewMatrixStack(seed)

	func() {
		defer s.Push()()
		s.Multiply(mgl32.Translate3D(0, 5, 0))

		func() {
			defer s.Push()()
			s.Multiply(mgl32.Translate3D(0, 0, 5))
			if !matNear(s.Top(), mgl32.Translate3D(5, 5, 5)) {
				t.Errorf("inner Top() = %v", s.Top())
			}
			if s.Depth() != 2 {
				t.Errorf("inner Depth() = %d; expected 2", s.Depth())
			}
		}()

		if !matNear(s.Top(), mgl32.Translate3D(5, 5, 0)) {
			t.Errorf("Top() after inner scope = %v", s.Top())
		}
	}()

	if !matNear(s.Top(), seed) {
		t.Errorf("Top() after all scopes = %v; expected the seed", s.Top())
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() after all scopes = %d; expected 0", s.Depth())
	}
}

func TestMatrixStackPopRestoresDespitePanic(t *testing.T) {
	seed := mgl32.Ident4()
	s := NewMatrixStack(seed)

	func() {
		defer func() { recover() }()
		defer s.Push()()
		s.Multiply(mgl32.Translate3D(1, 2, 3))
		panic("abnormal exit")
	}()

	if !matNear(s.Top(), seed) {
		t.Errorf("Top() after panic = %v; expected the seed", s.Top())
	}
}

func TestMatrixStackUnderflowPanics(t *testing.T) {
	s := NewMatrixStack(mgl32.Ident4())
	pop := s.Push()
	pop()

	defer func() {
		if recover() == nil {
			t.Errorf("unbalanced pop should panic")
		}
	}()
	pop()
}
