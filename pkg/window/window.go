// Package window opens a transparent GLFW window with a GL 4.1 core context
// and forwards pointer input to callbacks.
package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowError struct {
	msg string
}

func (e *WindowError) Error() string {
	return e.msg
}

type PointerFunc func(x, y float64)

type Window struct {
	win           *glfw.Window
	inputDisabled bool

	lastKey    glfw.Key
	lastAction glfw.Action
	hasKey     bool

	onDown   PointerFunc
	onUp     PointerFunc
	onMove   PointerFunc
	onLeave  func()
	onResize func(width, height int)
}

// NewWindow must be called from the main OS thread.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{fmt.Sprintf("failed to initialize glfw: %v", err)}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{fmt.Sprintf("failed to create window: %v", err)}
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{win: win}
	win.SetKeyCallback(w.keyCallback)
	win.SetMouseButtonCallback(w.buttonCallback)
	win.SetCursorPosCallback(w.cursorCallback)
	win.SetCursorEnterCallback(w.enterCallback)
	win.SetSizeCallback(w.sizeCallback)
	return w, nil
}

func (w *Window) OnPointer(down, move, up PointerFunc) {
	w.onDown, w.onMove, w.onUp = down, move, up
}

func (w *Window) OnLeave(fn func()) {
	w.onLeave = fn
}

func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w.lastKey, w.lastAction, w.hasKey = key, action, true
}

func (w *Window) buttonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if w.inputDisabled || button != glfw.MouseButtonLeft {
		return
	}
	x, y := w.win.GetCursorPos()
	switch action {
	case glfw.Press:
		if w.onDown != nil {
			w.onDown(x, y)
		}
	case glfw.Release:
		if w.onUp != nil {
			w.onUp(x, y)
		}
	}
}

func (w *Window) cursorCallback(_ *glfw.Window, x, y float64) {
	if !w.inputDisabled && w.onMove != nil {
		w.onMove(x, y)
	}
}

func (w *Window) enterCallback(_ *glfw.Window, entered bool) {
	if !entered && !w.inputDisabled && w.onLeave != nil {
		w.onLeave()
	}
}

func (w *Window) sizeCallback(_ *glfw.Window, width, height int) {
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// GetSize is the window size in screen coordinates, the space cursor
// positions are reported in.
func (w *Window) GetSize() (int, int) {
	return w.win.GetSize()
}

// GetFramebufferSize is the drawable size in pixels.
func (w *Window) GetFramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.win.GetCursorPos()
}

func (w *Window) GetMouseButton() bool {
	return w.win.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
}

// DisableInput stops forwarding pointer events, used during the exit fade.
func (w *Window) DisableInput() {
	w.inputDisabled = true
}

func (w *Window) GetLastKey() (glfw.Key, glfw.Action, bool) {
	return w.lastKey, w.lastAction, w.hasKey
}

func (w *Window) ClearLastKey() {
	w.hasKey = false
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
