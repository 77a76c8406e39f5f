package draw

import (
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	fadeDuration = time.Second
	exitDuration = 800 * time.Millisecond
)

type App struct {
	scene *models.Scene
	count int
}

func New(scene *models.Scene) *App {
	return &App{scene: scene}
}

// easeOut is a quintic ease-out of progress in [0, 1].
func easeOut(progress float32) float32 {
	inv := 1 - progress
	return 1 - inv*inv*inv*inv*inv
}

// Fade is the overall opacity at now: an ease-in from start, then an
// ease-out once exiting.
func Fade(scene *models.Scene, now time.Time) float32 {
	alpha := float32(1)
	if elapsed := now.Sub(scene.StartTime); elapsed < fadeDuration {
		alpha = easeOut(float32(elapsed.Seconds() / fadeDuration.Seconds()))
	}
	if scene.IsExiting {
		elapsed := now.Sub(scene.ExitStartTime)
		if elapsed >= exitDuration {
			return 0
		}
		alpha *= 1 - easeOut(float32(elapsed.Seconds()/exitDuration.Seconds()))
	}
	return max(alpha, 0)
}

// ExitDone reports whether the exit fade has finished.
func ExitDone(scene *models.Scene, now time.Time) bool {
	return scene.IsExiting && now.Sub(scene.ExitStartTime) >= exitDuration
}

func (a *App) Draw(out models.Output, width, height int, cursorX, cursorY float64) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	fade := Fade(a.scene, time.Now())
	a.drawBackground(fade, width, height, cursorX, cursorY)
	a.drawPoints(out, fade, height)
}

func upload(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (a *App) drawPoints(out models.Output, fade float32, height int) {
	if out.Dirty {
		upload(a.scene.PositionVBO, out.Positions)
		upload(a.scene.ColorVBO, out.Colors)
		upload(a.scene.SizeVBO, out.Sizes)
		upload(a.scene.GlowVBO, out.Glows)
		a.count = out.Count
	}
	if a.count == 0 {
		return
	}

	program := a.scene.PointProgram
	gl.UseProgram(program)

	modelLoc := gl.GetUniformLocation(program, gl.Str("model\x00"))
	gl.UniformMatrix4fv(modelLoc, 1, false, &out.Model[0])
	viewLoc := gl.GetUniformLocation(program, gl.Str("view\x00"))
	gl.UniformMatrix4fv(viewLoc, 1, false, &out.View[0])
	projectionLoc := gl.GetUniformLocation(program, gl.Str("projection\x00"))
	gl.UniformMatrix4fv(projectionLoc, 1, false, &out.Projection[0])

	// Projection[5] is cot(fov/2), so this maps world size to pixels.
	pixelScaleLoc := gl.GetUniformLocation(program, gl.Str("pixelScale\x00"))
	gl.Uniform1f(pixelScaleLoc, out.Projection[5]*float32(height)/2)
	fadeLoc := gl.GetUniformLocation(program, gl.Str("fade\x00"))
	gl.Uniform1f(fadeLoc, fade)

	gl.BindVertexArray(a.scene.PointVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(a.count))
	gl.BindVertexArray(0)
}

func (a *App) drawBackground(fade float32, width, height int, cursorX, cursorY float64) {
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	program := a.scene.BgProgram
	gl.UseProgram(program)

	alphaLoc := gl.GetUniformLocation(program, gl.Str("alpha\x00"))
	gl.Uniform1f(alphaLoc, fade*a.scene.OverlayAlpha)

	cursorPosLoc := gl.GetUniformLocation(program, gl.Str("cursorPos\x00"))
	gl.Uniform2f(cursorPosLoc, float32(cursorX), float32(float64(height)-cursorY))

	resolutionLoc := gl.GetUniformLocation(program, gl.Str("resolution\x00"))
	gl.Uniform2f(resolutionLoc, float32(width), float32(height))

	gl.BindVertexArray(a.scene.BgVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
}
