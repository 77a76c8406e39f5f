// Package engine owns one particle scene: its store, input tracker,
// interaction machine and frame updater. Input handlers may be called from
// any goroutine; Tick and Output belong to the frame loop.
package engine

import (
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/camera"
	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	gestures "github.com/ThatOtherAndrew/Glyphdust/internal/gesture"
	"github.com/ThatOtherAndrew/Glyphdust/internal/interaction"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/ThatOtherAndrew/Glyphdust/internal/spawn"
	"github.com/ThatOtherAndrew/Glyphdust/internal/update"
	"github.com/ThatOtherAndrew/Glyphdust/internal/video"
	"github.com/go-gl/mathgl/mgl32"
)

type Engine struct {
	mu      sync.Mutex
	app     *models.App
	machine *interaction.App
	updater *update.App
	tracker *gestures.Tracker
	preset  config.Preset
	seed    uint64

	clock      atomic.Int64
	generation atomic.Uint64

	frames video.FrameSource
	out    models.Output
}

// advancer is a frame source with its own playhead.
type advancer interface {
	Advance(dt time.Duration)
}

func New(preset config.Preset, seed uint64) *Engine {
	cam := camera.New(preset.CameraFOV, preset.CameraZ)
	app := &models.App{
		Preset: preset,
		Camera: cam,
		Rng:    rand.New(rand.NewPCG(seed, 0)),
	}
	machine := interaction.New(app)
	return &Engine{
		app:     app,
		machine: machine,
		updater: update.New(app, machine, int64(seed)),
		tracker: gestures.NewTracker(preset.TapDistance, preset.TapDuration.D()),
		preset:  preset,
		seed:    seed,
	}
}

func (e *Engine) Preset() config.Preset {
	return e.preset
}

// Now is the engine clock: the sum of every dt passed to Tick.
func (e *Engine) Now() time.Duration {
	return time.Duration(e.clock.Load())
}

func (e *Engine) Resize(width, height int) {
	e.tracker.Resize(width, height)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.app.Camera.Resize(width, height)
}

func (e *Engine) PointerDown(x, y float64) {
	e.tracker.Press(x, y, e.Now())
}

func (e *Engine) PointerMove(x, y float64) {
	e.tracker.Move(x, y, e.Now())
}

func (e *Engine) PointerUp(x, y float64) models.Classification {
	return e.tracker.Release(x, y, e.Now())
}

func (e *Engine) PointerLeave() {
	e.tracker.Leave(e.Now())
}

func (e *Engine) rng(gen uint64) *rand.Rand {
	return rand.New(rand.NewPCG(e.seed, gen))
}

// SetText samples text with provider and installs the result. Sampling runs
// outside the engine lock; when several rebuilds overlap, the one requested
// last wins and the others are dropped. A failed rebuild leaves the engine
// with no shape and returns the load error.
func (e *Engine) SetText(provider shape.OutlineProvider, text string) error {
	p := e.preset
	return e.SetShape(provider, text, p.TextSize, p.Amount)
}

func (e *Engine) SetShape(provider shape.OutlineProvider, text string, size float32, amount int) error {
	gen := e.generation.Add(1)

	def, err := shape.NewSampler(provider, e.preset.CenterRatio).Sample(text, size, amount)
	if err != nil {
		e.install(gen, nil, nil)
		return err
	}
	rng := e.rng(gen)
	if e.preset.AltShape != config.AltNone {
		def.Targets = spawn.AltTargets(len(def.Points), e.preset, rng)
	}
	store := spawn.Store(def, e.preset, rng)
	if e.install(gen, store, nil) {
		log.Printf("Built %d particles for %q", store.Count, text)
	}
	return nil
}

// SetVideo replaces the shape with the luminance grid driven by src.
func (e *Engine) SetVideo(src video.FrameSource) {
	gen := e.generation.Add(1)
	sampler := video.NewSampler(e.preset.Video)
	store := spawn.Store(sampler.Grid(), e.preset, e.rng(gen))
	attach := func() {
		e.updater.SetVideo(src, sampler)
		e.frames = src
	}
	if e.install(gen, store, attach) {
		log.Printf("Video grid %dx%d ready", sampler.Cols, sampler.Rows)
	}
}

// install swaps in store if gen is still the newest request. A nil store
// clears the shape.
func (e *Engine) install(gen uint64, store *models.ParticleStore, attach func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation.Load() {
		log.Printf("Dropped stale rebuild %d", gen)
		return false
	}
	if store != nil {
		store.Generation = gen
	}
	e.app.Store = store
	e.tracker.Reset()
	e.machine.Reset()
	e.updater.SetVideo(nil, nil)
	e.frames = nil
	e.app.Dirty = true
	if attach != nil {
		attach()
	}
	return true
}

// Tick advances the clock by dt and runs one frame.
func (e *Engine) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	now := time.Duration(e.clock.Add(int64(dt)))

	e.mu.Lock()
	defer e.mu.Unlock()

	if a, ok := e.frames.(advancer); ok {
		a.Advance(dt)
	}
	e.app.Now = now
	ptr, reqs := e.tracker.Take()
	e.updater.Tick(ptr, reqs, dt)
}

// Output copies the current frame for a renderer and clears the dirty flag.
// The returned slices are reused by the next call.
func (e *Engine) Output() models.Output {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := &e.out
	out.Model = e.app.Rotation.Matrix()
	out.View = e.app.Camera.View()
	out.Projection = e.app.Camera.Projection()
	out.State = e.machine.State()
	out.Dirty = e.app.Dirty
	e.app.Dirty = false

	s := e.app.Store
	if s == nil {
		out.Count = 0
		out.Generation = 0
		out.Positions, out.Colors = out.Positions[:0], out.Colors[:0]
		out.Sizes, out.Glows = out.Sizes[:0], out.Glows[:0]
		return *out
	}
	out.Count = s.Count
	out.Generation = s.Generation
	out.Positions = append(out.Positions[:0], s.Positions...)
	out.Colors = append(out.Colors[:0], s.Colors...)
	out.Sizes = append(out.Sizes[:0], s.Sizes...)
	out.Glows = append(out.Glows[:0], s.Glows...)
	return *out
}

func (e *Engine) State() models.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.State()
}

func (e *Engine) Sessions() []models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Session(nil), e.app.Sessions...)
}

func (e *Engine) Rotation() models.Rotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.app.Rotation
}

// WorldToScreen projects a particle-space point to window pixels.
func (e *Engine) WorldToScreen(p mgl32.Vec3) (float64, float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.app.Rotation.Matrix().Mul4x1(p.Vec4(1)).Vec3()
	return e.app.Camera.WorldToScreen(w)
}
