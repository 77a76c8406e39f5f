package interaction

import (
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	gestures "github.com/ThatOtherAndrew/Glyphdust/internal/gesture"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotation spring tuning; a damping ratio of 1 never overshoots.
const (
	springFrequency = 6.0
	springDamping   = 1.0
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// State reports Hovering while idle with the pointer over the surface.
func (a *App) State() models.EngineState {
	if a.app.State == models.StateIdle && a.app.Pointer.Present {
		return models.StateHovering
	}
	return a.app.State
}

// world projects an NDC point onto the interaction plane in particle space.
func (a *App) world(x, y float32) mgl32.Vec3 {
	w := a.app.Camera.PointerToWorld(x, y, a.app.Preset.PlaneDepth)
	return a.app.Rotation.ToModel(w)
}

func (a *App) hasActive(kind models.SessionKind) bool {
	for _, s := range a.app.Sessions {
		if s.Kind == kind && s.Active(a.app.Now) {
			return true
		}
	}
	return false
}

func (a *App) addSession(s models.Session) {
	a.app.Sessions = append(a.app.Sessions, s)
}

// Apply consumes queued input requests in arrival order.
func (a *App) Apply(reqs []gestures.Request) {
	for _, r := range reqs {
		switch r.Kind {
		case gestures.ReqPress:
			a.press(r)
		case gestures.ReqDragStart:
			a.dragStart()
		case gestures.ReqDragDelta:
			a.drag(r.DX, r.DY)
		case gestures.ReqRelease:
			a.release(r)
		}
	}
}

func (a *App) press(r gestures.Request) {
	p := &a.app.Preset
	switch p.Behavior {
	case config.BehaviorLaunch:
		if a.app.State == models.StateIdle {
			a.app.State = models.StateCharging
			a.app.ChargeStart = r.At
			a.app.ChargePoint = a.world(r.X, r.Y)
		}
	case config.BehaviorSwarm:
		// A running swarm ignores further presses.
		if !a.hasActive(models.SessionSwarm) {
			a.addSession(models.Session{
				Kind:     models.SessionSwarm,
				Origin:   a.world(r.X, r.Y),
				Start:    r.At,
				Duration: p.Swarm.Duration.D(),
			})
		}
	}
}

func (a *App) dragStart() {
	a.app.DragActive = true
	if a.app.State == models.StateIdle && a.app.Preset.DragMode != config.DragNone {
		a.app.State = models.StateDragging
		a.app.Rotation.SpinX, a.app.Rotation.SpinY = 0, 0
	}
}

func (a *App) rotating() bool {
	switch a.app.State {
	case models.StateDragging:
		return a.app.Preset.DragMode == config.DragRotate
	case models.StateExpanded:
		return a.app.DragActive
	}
	return false
}

func (a *App) drag(dx, dy float64) {
	if !a.rotating() {
		return
	}
	speed := a.app.Preset.RotateSpeed
	ry := float32(dx) * speed
	rx := float32(dy) * speed
	rot := &a.app.Rotation
	rot.TargetY += ry
	rot.TargetX += rx
	if a.app.Preset.Inertia {
		gain := a.app.Preset.SpinGain
		rot.SpinY = float32(dx) * gain
		rot.SpinX = float32(dy) * gain
	}
}

func (a *App) release(r gestures.Request) {
	a.app.DragActive = false
	p := &a.app.Preset

	switch a.app.State {
	case models.StateCharging:
		a.app.State = models.StateIdle
		a.addSession(models.Session{
			Kind:           models.SessionLaunch,
			Origin:         a.app.ChargePoint,
			Start:          r.At,
			Duration:       p.Charge.LaunchDuration.D(),
			ChargeDuration: r.At - a.app.ChargeStart,
		})
	case models.StateDragging:
		a.app.State = models.StateIdle
	case models.StateIdle:
		if r.Class != models.ClassTap {
			return
		}
		switch p.Behavior {
		case config.BehaviorMorph:
			if a.app.Store != nil && a.app.Store.Targets != nil {
				a.app.State = models.StateExpanding
				a.app.ExpandStart = r.At
			}
		case config.BehaviorRipple:
			a.addSession(models.Session{
				Kind:      models.SessionRipple,
				Origin:    a.world(r.X, r.Y),
				Start:     r.At,
				Duration:  p.Ripple.Duration.D(),
				MaxRadius: p.Ripple.MaxRadius,
			})
		}
	case models.StateExpanded:
		if r.Class == models.ClassTap {
			a.app.State = models.StateIdle
			a.app.Rotation = models.Rotation{}
		}
	}
}

// Advance runs the timed transitions, prunes expired sessions and steps the
// rotation spring.
func (a *App) Advance(dt time.Duration) {
	now := a.app.Now

	if a.app.State == models.StateExpanding &&
		now-a.app.ExpandStart >= a.app.Preset.Morph.Duration.D() {
		a.app.State = models.StateExpanded
	}

	if a.app.State == models.StateCharging && a.app.Pointer.Present {
		a.app.ChargePoint = a.world(a.app.Pointer.X, a.app.Pointer.Y)
	}

	live := a.app.Sessions[:0]
	for _, s := range a.app.Sessions {
		if now-s.Start < s.Duration {
			live = append(live, s)
		}
	}
	// Drop references held past the new length.
	for i := len(live); i < len(a.app.Sessions); i++ {
		a.app.Sessions[i] = models.Session{}
	}
	a.app.Sessions = live

	a.stepRotation(dt)
}

func (a *App) stepRotation(dt time.Duration) {
	rot := &a.app.Rotation
	if a.app.Preset.Inertia && !a.app.DragActive {
		rot.TargetX += rot.SpinX
		rot.TargetY += rot.SpinY
		rot.SpinX *= a.app.Preset.RotationDamping
		rot.SpinY *= a.app.Preset.RotationDamping
	}
	if dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(dt.Seconds(), springFrequency, springDamping)
	x, vx := spring.Update(float64(rot.X), float64(rot.VelX), float64(rot.TargetX))
	y, vy := spring.Update(float64(rot.Y), float64(rot.VelY), float64(rot.TargetY))
	rot.X, rot.VelX = float32(x), float32(vx)
	rot.Y, rot.VelY = float32(y), float32(vy)
}

// Reset returns to Idle and drops every session, used when the shape changes.
func (a *App) Reset() {
	a.app.State = models.StateIdle
	a.app.Sessions = nil
	a.app.Rotation = models.Rotation{}
	a.app.DragActive = false
}
