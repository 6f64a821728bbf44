package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is anything a Node can render. The node never owns the GPU
// resources behind it; it only asks it to draw at the current transform.
type Drawable interface {
	Draw()
}

// TransformSink receives the composed model transform of the node being
// drawn, typically by writing it to a shader uniform.
type TransformSink interface {
	SetModelTransform(m mgl32.Mat4)
}
