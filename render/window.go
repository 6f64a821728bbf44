package render

import (
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Window wraps the GLFW window and context. Callbacks are bound through
// closures over the handler values, never through package-level state.
type Window struct {
	glfwWindow *glfw.Window
}

// NewWindow initializes GLFW, opens a 3.3 core profile window and makes
// its context current. Call from the locked main goroutine.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrapf(err, "Failed to init glfw")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrapf(err, "Failed to create window %dx%d", width, height)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, errors.Wrapf(err, "Failed to init gl")
	}
	log.Printf("[render] OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Window{glfwWindow: w}, nil
}

// OnResize registers a framebuffer size callback.
func (w *Window) OnResize(fn func(width, height int)) {
	w.glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
	fn(w.glfwWindow.GetFramebufferSize())
}

// OnKey registers a key press callback.
func (w *Window) OnKey(fn func(key glfw.Key)) {
	w.glfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press || action == glfw.Repeat {
			fn(key)
		}
	})
}

// KeyPressed reports whether the key is currently held down.
func (w *Window) KeyPressed(key glfw.Key) bool {
	return w.glfwWindow.GetKey(key) == glfw.Press
}

func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

func (w *Window) Close() {
	w.glfwWindow.SetShouldClose(true)
}

func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Terminate() {
	glfw.Terminate()
}
