package render

import (
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// Program wraps the linked shader program and the attribute/uniform
// locations the renderer and meshes need.
type Program struct {
	Handle uint32

	PositionAttrib uint32
	ColorAttrib    uint32
	NormalAttrib   uint32

	ModelToCameraUnif    int32
	CameraToClipUnif     int32
	DirToLightUnif       int32
	LightIntensityUnif   int32
	AmbientIntensityUnif int32
}

// NewProgram compiles the vertex and fragment shader files and links them.
func NewProgram(vertexPath, fragmentPath string) (*Program, error) {
	log.Printf("[render] compiling shaders and linking program...")

	vertexShader, err := compileShaderFile(vertexPath, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShaderFile(fragmentPath, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vertexShader)
	gl.AttachShader(handle, fragmentShader)
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(infoLog))

		gl.DeleteProgram(handle)
		return nil, errors.Errorf("Failed to link %q + %q: %s", vertexPath, fragmentPath, infoLog)
	}

	p := &Program{
		Handle:               handle,
		PositionAttrib:       uint32(gl.GetAttribLocation(handle, gl.Str("position\x00"))),
		ColorAttrib:          uint32(gl.GetAttribLocation(handle, gl.Str("diffuseColor\x00"))),
		NormalAttrib:         uint32(gl.GetAttribLocation(handle, gl.Str("normal\x00"))),
		ModelToCameraUnif:    gl.GetUniformLocation(handle, gl.Str("modelToCameraMatrix\x00")),
		CameraToClipUnif:     gl.GetUniformLocation(handle, gl.Str("cameraToClipMatrix\x00")),
		DirToLightUnif:       gl.GetUniformLocation(handle, gl.Str("dirToLight\x00")),
		LightIntensityUnif:   gl.GetUniformLocation(handle, gl.Str("lightIntensity\x00")),
		AmbientIntensityUnif: gl.GetUniformLocation(handle, gl.Str("ambientIntensity\x00")),
	}
	return p, nil
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.Handle)
}

func compileShaderFile(path string, shaderType uint32) (uint32, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to read shader %q", path)
	}

	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(string(source) + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		gl.DeleteShader(shader)
		return 0, errors.Errorf("Failed to compile %q: %s", path, infoLog)
	}
	return shader, nil
}
