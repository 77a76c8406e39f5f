package opengl

import (
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type App struct {
	scene *models.Scene
}

func New(scene *models.Scene) *App {
	return &App{scene: scene}
}

// InitGL compiles the programs and allocates the vertex arrays. shaderDir
// overrides the built-in shader sources when set.
func (a *App) InitGL(shaderDir string) error {
	if err := gl.Init(); err != nil {
		return err
	}

	pointProgram, err := program(shaderDir, shaders.PointVertexPath, shaders.PointFragmentPath)
	if err != nil {
		return err
	}
	a.scene.PointProgram = pointProgram

	gl.GenVertexArrays(1, &a.scene.PointVAO)
	gl.BindVertexArray(a.scene.PointVAO)

	// One buffer per attribute, matching the store's flat arrays.
	attribs := []struct {
		vbo  *uint32
		size int32
	}{
		{&a.scene.PositionVBO, 3},
		{&a.scene.ColorVBO, 3},
		{&a.scene.SizeVBO, 1},
		{&a.scene.GlowVBO, 1},
	}
	for i, attr := range attribs {
		gl.GenBuffers(1, attr.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, *attr.vbo)
		gl.VertexAttribPointer(uint32(i), attr.size, gl.FLOAT, false, attr.size*4, nil)
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindVertexArray(0)

	bgProgram, err := program(shaderDir, shaders.BackgroundVertexPath, shaders.BackgroundFragmentPath)
	if err != nil {
		return err
	}
	a.scene.BgProgram = bgProgram

	gl.GenVertexArrays(1, &a.scene.BgVAO)
	gl.GenBuffers(1, &a.scene.BgVBO)

	gl.BindVertexArray(a.scene.BgVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.scene.BgVBO)

	quadVertices := []float32{
		-1.0, -1.0,
		1.0, -1.0,
		-1.0, 1.0,
		1.0, 1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return nil
}

func program(dir, vertPath, fragPath string) (uint32, error) {
	vertShader, err := shaders.Compile(dir, vertPath, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragShader, err := shaders.Compile(dir, fragPath, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertShader)
		return 0, err
	}
	return shaders.LinkProgram(vertShader, fragShader)
}

// Destroy releases every GL object in the scene.
func (a *App) Destroy() {
	s := a.scene
	buffers := []uint32{s.PositionVBO, s.ColorVBO, s.SizeVBO, s.GlowVBO, s.BgVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	arrays := []uint32{s.PointVAO, s.BgVAO}
	gl.DeleteVertexArrays(int32(len(arrays)), &arrays[0])
	gl.DeleteProgram(s.PointProgram)
	gl.DeleteProgram(s.BgProgram)
}
