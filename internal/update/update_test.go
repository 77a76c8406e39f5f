package update

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/camera"
	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	gestures "github.com/ThatOtherAndrew/Glyphdust/internal/gesture"
	"github.com/ThatOtherAndrew/Glyphdust/internal/interaction"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/ThatOtherAndrew/Glyphdust/internal/spawn"
	"github.com/ThatOtherAndrew/Glyphdust/internal/video"
	"github.com/go-gl/mathgl/mgl32"
)

const frame = time.Second / 60

// squareOutline yields one closed contour and no holes for any text.
type squareOutline struct{}

func (squareOutline) Outlines(text string, size float32) ([]shape.SubPath, error) {
	return []shape.SubPath{{
		Points: []mgl32.Vec2{{0, 0}, {20, 0}, {20, 10}, {0, 10}},
		Closed: true,
	}}, nil
}

func newApp(t *testing.T, preset string, def *shape.Definition) (*models.App, *App) {
	t.Helper()
	p := config.Builtin()[preset]
	cam := camera.New(p.CameraFOV, p.CameraZ)
	cam.Resize(800, 600)
	rng := rand.New(rand.NewPCG(1, 1))
	app := &models.App{
		Preset: p,
		Camera: cam,
		Rng:    rng,
		Store:  spawn.Store(def, p, rng),
	}
	return app, New(app, interaction.New(app), 1)
}

func single(x, y float32) *shape.Definition {
	return &shape.Definition{Points: []mgl32.Vec3{{x, y, 0}}, Amount: 1}
}

func run(a *App, ptr models.PointerState, ticks int) {
	for i := 0; i < ticks; i++ {
		a.app.Now += frame
		a.Tick(ptr, nil, frame)
	}
}

func maxRestError(s *models.ParticleStore) float32 {
	var worst float32
	for i := 0; i < s.Count; i++ {
		d := models.Vec3At(s.Positions, i).Sub(models.Vec3At(s.Rest, i)).Len()
		worst = max(worst, d)
	}
	return worst
}

func TestIdleSettlesOnRest(t *testing.T) {
	def, err := shape.NewSampler(squareOutline{}, 2.85).Sample("OK", 12, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Points) != 300 {
		t.Fatalf("expected 300 rest points, got %d", len(def.Points))
	}

	app, u := newApp(t, "lock", def)
	if maxRestError(app.Store) < 1 {
		t.Fatalf("expected scattered start")
	}
	run(u, models.PointerState{}, 300)
	if got := maxRestError(app.Store); got > 0.01 {
		t.Fatalf("expected every particle within 0.01 of rest, worst %.5f", got)
	}
	if !app.Dirty {
		t.Fatalf("expected output marked dirty")
	}
}

func TestEasingIsMonotonic(t *testing.T) {
	def, _ := shape.NewSampler(squareOutline{}, 2).Sample("x", 12, 40)
	app, u := newApp(t, "sphere", def)
	prev := maxRestError(app.Store)
	for i := 0; i < 60; i++ {
		run(u, models.PointerState{}, 1)
		got := maxRestError(app.Store)
		if got > prev*0.95+1e-4 {
			t.Fatalf("tick %d: error %.5f did not shrink from %.5f", i, got, prev)
		}
		prev = got
	}
}

func TestHoverRepels(t *testing.T) {
	def := &shape.Definition{Points: []mgl32.Vec3{{5, 0, 0}, {5, 0, 0}}, Amount: 2}
	app, u := newApp(t, "repel", def)
	run(u, models.PointerState{Present: true}, 1)
	if x := app.Store.Positions[0]; x >= 5 {
		t.Fatalf("expected every fifth particle drawn in, got x=%.3f", x)
	}
	if x := app.Store.Positions[3]; x <= 5 {
		t.Fatalf("expected particle pushed away from the pointer, got x=%.3f", x)
	}
	if app.Store.Sizes[1] <= app.Preset.ParticleSize {
		t.Fatalf("expected hovered particle to swell")
	}
}

func TestDragRotatesWithoutRipple(t *testing.T) {
	def, _ := shape.NewSampler(squareOutline{}, 2).Sample("x", 12, 20)
	app, u := newApp(t, "lock", def)
	tr := gestures.NewTracker(app.Preset.TapDistance, app.Preset.TapDuration.D())
	tr.Resize(800, 600)

	step := func(at time.Duration) {
		app.Now = at
		u.Tick(tr.Snapshot(), tr.Drain(), frame)
	}

	tr.Press(400, 300, 0)
	tr.Move(450, 300, 50*time.Millisecond)
	step(50 * time.Millisecond)
	if app.State != models.StateDragging {
		t.Fatalf("expected dragging, got %v", app.State)
	}

	tr.Move(500, 300, 66*time.Millisecond)
	step(66 * time.Millisecond)
	tr.Release(500, 300, 80*time.Millisecond)
	step(80 * time.Millisecond)

	if len(app.Sessions) != 0 {
		t.Fatalf("expected no ripple from a drag, got %d sessions", len(app.Sessions))
	}
	if app.State != models.StateIdle {
		t.Fatalf("expected idle after release, got %v", app.State)
	}
	want := float32(100) * app.Preset.RotateSpeed
	if d := app.Rotation.TargetY - want; d > 1e-5 || d < -1e-5 {
		t.Fatalf("expected target rotation %.3f, got %.3f", want, app.Rotation.TargetY)
	}
	for i := 0; i < 10; i++ {
		step(app.Now + frame)
	}
	if app.Rotation.Y <= 0 {
		t.Fatalf("expected the set to rotate, got %.4f", app.Rotation.Y)
	}
}

func TestRotateDragSuspendsRepel(t *testing.T) {
	def := &shape.Definition{Points: []mgl32.Vec3{{3, 0, 0}, {3, 0, 0}}, Amount: 2}
	app, u := newApp(t, "drift", def)
	tr := gestures.NewTracker(app.Preset.TapDistance, app.Preset.TapDuration.D())
	tr.Resize(800, 600)

	tr.Press(400, 300, 0)
	tr.Move(415, 300, 20*time.Millisecond)
	app.Now = 20 * time.Millisecond
	u.Tick(tr.Snapshot(), tr.Drain(), frame)

	if app.State != models.StateDragging {
		t.Fatalf("expected dragging, got %v", app.State)
	}
	for i := 0; i < app.Store.Count; i++ {
		v := models.Vec3At(app.Store.Velocities, i)
		if v.X() != 0 || v.Y() != 0 {
			t.Fatalf("expected no planar force on particle %d while rotating, got %v", i, v)
		}
	}
}

func TestEventHorizonThroughTick(t *testing.T) {
	app, u := newApp(t, "singularity", single(0.5, 0))
	run(u, models.PointerState{Present: true, Pressed: true}, 1)
	if c := models.Vec3At(app.Store.Colors, 0); c != (mgl32.Vec3{}) {
		t.Fatalf("expected swallowed particle to go dark, got %v", c)
	}
	if app.Store.Sizes[0] > app.Preset.Hole.MinSize {
		t.Fatalf("expected swallowed particle to shrink, got %.2f", app.Store.Sizes[0])
	}
}

func TestExpandedEasesToTargets(t *testing.T) {
	def, _ := shape.NewSampler(squareOutline{}, 2).Sample("x", 12, 50)
	p := config.Builtin()["sphere"]
	def.Targets = spawn.AltTargets(len(def.Points), p, rand.New(rand.NewPCG(3, 3)))
	app, u := newApp(t, "sphere", def)
	app.State = models.StateExpanded

	run(u, models.PointerState{}, 300)
	for i := 0; i < app.Store.Count; i++ {
		d := models.Vec3At(app.Store.Positions, i).Sub(models.Vec3At(app.Store.Targets, i)).Len()
		if d > 0.01 {
			t.Fatalf("expected particle %d on the alternate shape, off by %.4f", i, d)
		}
	}
	active := models.Vec3At(app.Store.Colors, 0)
	r, g, b := app.Preset.ActiveColor.RGB()
	if active != (mgl32.Vec3{r, g, b}) {
		t.Fatalf("expected expand tint, got %v", active)
	}
}

func TestBehaviorSelection(t *testing.T) {
	for _, tc := range []struct {
		preset  string
		pressed bool
		state   models.EngineState
		want    int
	}{
		{"repel", false, models.StateIdle, 1},
		{"drift", false, models.StateIdle, 2},
		{"wash", false, models.StateIdle, 3},
		{"launch", true, models.StateCharging, 2},
		{"launch", false, models.StateIdle, 1},
		{"singularity", true, models.StateIdle, 1},
		{"drift", true, models.StateDragging, 1},
		{"lock", true, models.StateDragging, 1},
		{"wash", true, models.StateDragging, 3},
	} {
		app, u := newApp(t, tc.preset, single(0, 0))
		app.Pointer.Pressed = tc.pressed
		app.State = tc.state
		if got := len(u.Behaviors()); got != tc.want {
			t.Fatalf("%s: expected %d behaviors, got %d", tc.preset, tc.want, got)
		}
	}
}

type stillFrame struct {
	frame *image.RGBA
}

func (s stillFrame) Playing() bool { return true }
func (s stillFrame) Ready() bool { return true }
func (s stillFrame) Frame(w, h int) (*image.RGBA, error) {
	return s.frame, nil
}

func TestVideoDrivesBaseColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})

	sampler := &video.Sampler{Cols: 2, Rows: 1, Spacing: 6, Bright: mgl32.Vec3{1, 1, 1}, Dark: mgl32.Vec3{0.2, 0.2, 0.2}}
	app, u := newApp(t, "video", sampler.Grid())
	u.SetVideo(stillFrame{frame: img}, sampler)

	run(u, models.PointerState{}, 1)
	if models.Vec3At(app.Store.Colors, 0) != sampler.Bright || models.Vec3At(app.Store.Colors, 1) != sampler.Dark {
		t.Fatalf("expected luminance colours, got %v", app.Store.Colors)
	}
}

func TestNoStoreIsSafe(t *testing.T) {
	p := config.Builtin()["lock"]
	app := &models.App{Preset: p, Camera: camera.New(p.CameraFOV, p.CameraZ)}
	u := New(app, interaction.New(app), 1)
	u.Tick(models.PointerState{Present: true}, []gestures.Request{{Kind: gestures.ReqPress}}, frame)
	if app.Dirty {
		t.Fatalf("expected nothing to draw without a store")
	}
}
