package shaders

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed *.glsl
var sources embed.FS

// Source returns the named shader from dir, or the built-in copy when dir
// is empty.
func Source(dir, name string) (string, error) {
	if dir == "" {
		data, err := sources.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to read built-in shader %q: %w", name, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read shader file %q: %w", name, err)
	}
	return string(data), nil
}

// Compile compiles the named shader, reading it from dir when set.
func Compile(dir, name string, shaderType uint32) (uint32, error) {
	if dir != "" {
		return CompileShaderFromFile(filepath.Join(dir, name), shaderType)
	}
	source, err := Source("", name)
	if err != nil {
		return 0, err
	}
	shader, err := CompileShaderFromSource(source, shaderType)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return shader, nil
}

func CompileShaderFromFile(path string, shaderType uint32) (uint32, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read shader file %q: %v", path, err)
	}

	shader, err := CompileShaderFromSource(string(sourceBytes), shaderType)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return shader, nil
}

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(logMsg, "\x00\n "))
	}

	return shader, nil
}

// LinkProgram links the vertex and fragment shaders and deletes them.
func LinkProgram(vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &logMsg[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(string(logMsg), "\x00\n "))
	}
	return program, nil
}
