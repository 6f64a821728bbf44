package render

import (
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scene_viewer/scene"
)

// The unit is the meter.
const (
	zNear = 0.1
	zFar  = 10000.0
	fovY  = 45.0 // degrees
)

// Renderer owns the GL drawing state: the shader program, the camera and
// the scene. It implements scene.TransformSink by writing the composed
// transform to the model-to-camera uniform during the traversal.
type Renderer struct {
	program *Program
	camera  *Camera
	scene   *scene.Scene

	dirToLight       mgl32.Vec4
	lightIntensity   mgl32.Vec4
	ambientIntensity mgl32.Vec4
}

func NewRenderer(program *Program, camera *Camera, s *scene.Scene) *Renderer {
	r := &Renderer{
		program: program,
		camera:  camera,
		scene:   s,

		dirToLight:       mgl32.Vec4{0.866, -0.5, 0, 0},
		lightIntensity:   mgl32.Vec4{0.8, 0.8, 0.8, 1},
		ambientIntensity: mgl32.Vec4{0.2, 0.2, 0.2, 1},
	}
	r.initState()
	return r
}

func (r *Renderer) Camera() *Camera { return r.camera }

func (r *Renderer) Scene() *scene.Scene { return r.scene }

func (r *Renderer) initState() {
	// Counter clockwise winding order, back face culling.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthRange(0.0, 1.0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var multiSampling, numSamples int32
	gl.GetIntegerv(gl.SAMPLE_BUFFERS, &multiSampling)
	if multiSampling != 0 {
		gl.GetIntegerv(gl.SAMPLES, &numSamples)
		gl.Enable(gl.MULTISAMPLE)
		log.Printf("[render] MultiSampling %dx", numSamples)
	} else {
		gl.Disable(gl.MULTISAMPLE)
		log.Printf("[render] MultiSampling not working")
	}

	gl.Enable(gl.FRAMEBUFFER_SRGB)

	gl.UseProgram(r.program.Handle)
	gl.Uniform4fv(r.program.DirToLightUnif, 1, &r.dirToLight[0])
	gl.Uniform4fv(r.program.LightIntensityUnif, 1, &r.lightIntensity[0])
	gl.Uniform4fv(r.program.AmbientIntensityUnif, 1, &r.ambientIntensity[0])
	gl.UseProgram(0)
}

// SetViewport updates the GL viewport and the perspective projection after
// a window resize.
func (r *Renderer) SetViewport(width, height int) {
	if height == 0 {
		height = 1
	}
	gl.Viewport(0, 0, int32(width), int32(height))

	projection := mgl32.Perspective(mgl32.DegToRad(fovY), float32(width)/float32(height), zNear, zFar)
	gl.UseProgram(r.program.Handle)
	gl.UniformMatrix4fv(r.program.CameraToClipUnif, 1, false, &projection[0])
	gl.UseProgram(0)
}

// SetModelTransform uploads the composed model-to-camera matrix for the
// node currently being drawn.
func (r *Renderer) SetModelTransform(m mgl32.Mat4) {
	gl.UniformMatrix4fv(r.program.ModelToCameraUnif, 1, false, &m[0])
}

// Frame advances the scene by dt seconds and draws it. A fresh matrix
// stack seeded with the camera view matrix is used for the traversal.
func (r *Renderer) Frame(dt float32) {
	r.scene.Integrate(dt)

	gl.ClearColor(0.0, 0.0, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program.Handle)
	stack := scene.NewMatrixStack(r.camera.ViewMatrix())
	r.scene.Draw(stack, r)
	gl.UseProgram(0)
}
