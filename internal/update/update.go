package update

import (
	"log"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/behavior"
	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	gestures "github.com/ThatOtherAndrew/Glyphdust/internal/gesture"
	"github.com/ThatOtherAndrew/Glyphdust/internal/interaction"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/video"
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

type App struct {
	app     *models.App
	machine *interaction.App
	noise   *perlin.Perlin

	frames  video.FrameSource
	sampler *video.Sampler
}

func New(app *models.App, machine *interaction.App, seed int64) *App {
	return &App{app: app, machine: machine, noise: behavior.NewNoise(seed)}
}

// SetVideo attaches a frame source whose luminance drives the base colours.
// A nil source detaches it.
func (a *App) SetVideo(src video.FrameSource, sampler *video.Sampler) {
	a.frames = src
	a.sampler = sampler
}

// Tick runs one frame at a.app.Now: pointer snapshot and queued requests
// first, then the behaviors over every particle.
func (a *App) Tick(ptr models.PointerState, reqs []gestures.Request, dt time.Duration) {
	a.app.Pointer = ptr
	a.machine.Apply(reqs)
	a.machine.Advance(dt)
	a.UpdatePointer()

	if a.app.Store == nil {
		return
	}
	a.sampleVideo()
	a.UpdateParticles()
	a.app.Dirty = true
}

// UpdatePointer maps the pointer into particle space and tracks the swipe
// since last tick.
func (a *App) UpdatePointer() {
	if !a.app.Pointer.Present {
		a.app.HasPrevWorld = false
		a.app.Swipe = mgl32.Vec3{}
		return
	}
	w := a.app.Camera.PointerToWorld(a.app.Pointer.X, a.app.Pointer.Y, a.app.Preset.PlaneDepth)
	w = a.app.Rotation.ToModel(w)
	if a.app.HasPrevWorld {
		a.app.Swipe = w.Sub(a.app.PrevWorld)
	} else {
		a.app.Swipe = mgl32.Vec3{}
	}
	a.app.PointerWorld = w
	a.app.PrevWorld = w
	a.app.HasPrevWorld = true
}

func (a *App) sampleVideo() {
	if a.frames == nil || a.sampler == nil {
		return
	}
	if _, err := a.sampler.Sample(a.frames, a.app.Store); err != nil {
		log.Printf("Video frame skipped: %v", err)
	}
}

func (a *App) input() *behavior.Input {
	ptr := a.app.Pointer
	in := &behavior.Input{
		Now:         a.app.Now,
		Pointer:     a.app.PointerWorld,
		HasPointer:  ptr.Present,
		Pressed:     ptr.Pressed,
		Swipe:       a.app.Swipe,
		ChargePoint: a.app.ChargePoint,
		Sessions:    a.app.Sessions,
		Preset:      &a.app.Preset,
		Noise:       a.noise,
		Rng:         a.app.Rng,
	}
	if ptr.Pressed {
		in.Held = a.app.Now - ptr.PressStart
	}
	in.Trail = a.app.State == models.StateDragging && a.app.Preset.DragMode == config.DragTrail
	return in
}

func (a *App) swarming() bool {
	for _, s := range a.app.Sessions {
		if s.Kind == models.SessionSwarm && s.Active(a.app.Now) {
			return true
		}
	}
	return false
}

func (a *App) morphed() bool {
	return a.app.Store.Targets != nil &&
		(a.app.State == models.StateExpanding || a.app.State == models.StateExpanded)
}

// Behaviors picks the effects that run this tick, in order.
func (a *App) Behaviors() []behavior.Func {
	if a.app.State == models.StateDragging && a.app.Preset.DragMode == config.DragRotate {
		return a.rigid()
	}
	pressed := a.app.Pointer.Pressed
	switch a.app.Preset.Behavior {
	case config.BehaviorRepel:
		if pressed {
			return []behavior.Func{behavior.Vortex}
		}
		return []behavior.Func{behavior.Repel}
	case config.BehaviorDrift:
		return []behavior.Func{behavior.Drift, behavior.Repel}
	case config.BehaviorRipple:
		return []behavior.Func{behavior.Ripple, behavior.HoverGlow, behavior.Trail}
	case config.BehaviorLaunch:
		if a.app.State == models.StateCharging {
			return []behavior.Func{behavior.Charge, behavior.Launch}
		}
		return []behavior.Func{behavior.Launch}
	case config.BehaviorSwarm:
		if a.swarming() {
			return []behavior.Func{behavior.Swarm}
		}
		return []behavior.Func{behavior.PropWash}
	case config.BehaviorMorph:
		if a.morphed() {
			return []behavior.Func{behavior.Expand}
		}
		return []behavior.Func{behavior.HoverTint}
	case config.BehaviorSingularity:
		if pressed {
			return []behavior.Func{behavior.BlackHole}
		}
		return []behavior.Func{behavior.Repel}
	case config.BehaviorVideo:
		return []behavior.Func{behavior.VideoHover}
	}
	return nil
}

// rigid keeps only the effects that do not depend on the pointer while the
// whole set is being rotated.
func (a *App) rigid() []behavior.Func {
	switch a.app.Preset.Behavior {
	case config.BehaviorDrift:
		return []behavior.Func{behavior.Drift}
	case config.BehaviorRipple:
		return []behavior.Func{behavior.Ripple}
	case config.BehaviorLaunch:
		return []behavior.Func{behavior.Launch}
	case config.BehaviorSwarm:
		if a.swarming() {
			return []behavior.Func{behavior.Swarm}
		}
	case config.BehaviorMorph:
		if a.morphed() {
			return []behavior.Func{behavior.Expand}
		}
	}
	return nil
}

// UpdateParticles runs the selected behaviors, then damping, integration,
// easing and glow decay over every particle.
func (a *App) UpdateParticles() {
	s := a.app.Store
	pre := &a.app.Preset
	in := a.input()
	fx := a.Behaviors()
	alt := a.morphed()

	for i := 0; i < s.Count; i++ {
		p := behavior.Particle{
			Index: i,
			Pos:   models.Vec3At(s.Positions, i),
			Vel:   models.Vec3At(s.Velocities, i),
			Rest:  models.Vec3At(s.Rest, i),
			Color: models.Vec3At(s.Base, i),
			Size:  pre.ParticleSize,
			Glow:  s.Glows[i],
		}
		p.Target = p.Rest
		if alt {
			p.Target = models.Vec3At(s.Targets, i)
		}

		for _, fn := range fx {
			p = fn(p, in)
		}
		p = behavior.Integrate(p, pre.Damping)
		p = behavior.Ease(p, pre.Ease)
		p = behavior.DecayGlow(p, pre.Ripple.GlowDecay)

		models.SetVec3(s.Positions, i, p.Pos)
		models.SetVec3(s.Velocities, i, p.Vel)
		models.SetVec3(s.Colors, i, p.Color)
		s.Sizes[i] = p.Size
		s.Glows[i] = p.Glow
	}
}
