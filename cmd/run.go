package cmd

import (
	"log"
	"runtime"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/draw"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/opengl"
	"github.com/ThatOtherAndrew/Glyphdust/pkg/window"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
)

var runFlags sceneFlags

var (
	shaderDir string
	showStats bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the particle window",
	Run:   Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()

	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&shaderDir, "shaders", "", "directory of GLSL overrides")
	runCmd.Flags().BoolVar(&showStats, "stats", false, "log frame rate and particle count")
}

func Run(cmd *cobra.Command, args []string) {
	settings := loadSettings(cmd, &runFlags)

	win, err := window.NewWindow("Glyphdust", 1280, 720)
	if err != nil {
		log.Fatal("Failed to create window:", err)
	}
	defer win.Destroy()

	eng, err := buildEngine(settings, &runFlags)
	if err != nil {
		log.Fatal("Failed to build scene:", err)
	}

	width, height := win.GetSize()
	eng.Resize(width, height)
	win.OnResize(eng.Resize)
	win.OnPointer(eng.PointerDown, eng.PointerMove, func(x, y float64) {
		eng.PointerUp(x, y)
	})
	win.OnLeave(eng.PointerLeave)

	scene := &models.Scene{StartTime: time.Now(), OverlayAlpha: settings.OverlayAlpha}
	renderer := opengl.New(scene)
	if err := renderer.InitGL(shaderDir); err != nil {
		log.Fatal("Failed to initialize OpenGL:", err)
	}
	defer renderer.Destroy()
	drawer := draw.New(scene)

	gl.ClearColor(0, 0, 0, 0)

	lastTime := time.Now()
	var frames int
	statsTime := lastTime

	for !win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		win.PollEvents()

		if key, action, hasKey := win.GetLastKey(); hasKey {
			if action == glfw.Press && (key == glfw.KeyEscape || key == glfw.KeyQ) {
				if !scene.IsExiting {
					scene.IsExiting = true
					scene.ExitStartTime = now
					win.DisableInput()
					eng.PointerLeave()
				}
			}
			win.ClearLastKey()
		}

		if draw.ExitDone(scene, now) {
			break
		}

		eng.Tick(dt)
		out := eng.Output()

		fbWidth, fbHeight := win.GetFramebufferSize()
		x, y := win.GetCursorPos()
		if width, _ := win.GetSize(); width > 0 {
			scale := float64(fbWidth) / float64(width)
			x, y = x*scale, y*scale
		}
		drawer.Draw(out, fbWidth, fbHeight, x, y)
		win.SwapBuffers()

		frames++
		if showStats && now.Sub(statsTime) >= time.Second {
			log.Printf("%d fps, %d particles, %s", frames, out.Count, out.State)
			frames = 0
			statsTime = now
		}
	}
}
