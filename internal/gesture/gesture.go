package gestures

import (
	"math"
	"sync"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
)

type RequestKind int

const (
	ReqPress RequestKind = iota
	ReqDragStart
	ReqDragDelta
	ReqRelease
	ReqLeave
)

// Request is a state-transition request produced by an input handler and
// consumed at the start of the next tick.
type Request struct {
	Kind   RequestKind
	X, Y   float32 // NDC
	DX, DY float64 // screen pixels, drags only
	Class  models.Classification
	At     time.Duration
}

// Tracker turns raw pointer events into normalized pointer state and
// classifies each press as a tap or a drag.
type Tracker struct {
	mu           sync.Mutex
	state        models.PointerState
	width        float64
	height       float64
	lastX, lastY float64
	tapDistance  float64
	tapDuration  time.Duration
	pending      []Request
}

func NewTracker(tapDistance float64, tapDuration time.Duration) *Tracker {
	return &Tracker{
		width:       1,
		height:      1,
		tapDistance: tapDistance,
		tapDuration: tapDuration,
	}
}

// Classify reports a tap iff the pointer moved less than tapDistance and was
// held for less than tapDuration.
func Classify(dx, dy float64, held time.Duration, tapDistance float64, tapDuration time.Duration) models.Classification {
	if math.Hypot(dx, dy) < tapDistance && held < tapDuration {
		return models.ClassTap
	}
	return models.ClassDrag
}

func (t *Tracker) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = math.Max(1, float64(width))
	t.height = math.Max(1, float64(height))
}

func (t *Tracker) ndc(x, y float64) (float32, float32) {
	return float32(x/t.width*2 - 1), float32(-(y/t.height)*2 + 1)
}

func (t *Tracker) moveTo(x, y float64) {
	t.state.ScreenX, t.state.ScreenY = x, y
	t.state.X, t.state.Y = t.ndc(x, y)
	t.state.Present = true
}

func (t *Tracker) push(r Request) {
	if r.Kind == ReqDragDelta && len(t.pending) > 0 {
		last := &t.pending[len(t.pending)-1]
		if last.Kind == ReqDragDelta {
			last.DX += r.DX
			last.DY += r.DY
			last.X, last.Y, last.At = r.X, r.Y, r.At
			return
		}
	}
	t.pending = append(t.pending, r)
}

func (t *Tracker) Press(x, y float64, at time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.moveTo(x, y)
	t.state.Pressed = true
	t.state.Class = models.ClassNone
	t.state.PressStart = at
	t.state.PressX, t.state.PressY = x, y
	t.lastX, t.lastY = x, y
	t.push(Request{Kind: ReqPress, X: t.state.X, Y: t.state.Y, At: at})
}

func (t *Tracker) Move(x, y float64, at time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.moveTo(x, y)
	if !t.state.Pressed {
		return
	}

	if t.state.Class != models.ClassDrag &&
		math.Hypot(x-t.state.PressX, y-t.state.PressY) >= t.tapDistance {
		t.state.Class = models.ClassDrag
		t.push(Request{Kind: ReqDragStart, X: t.state.X, Y: t.state.Y, At: at})
	}
	if t.state.Class == models.ClassDrag {
		t.push(Request{
			Kind: ReqDragDelta,
			X:    t.state.X,
			Y:    t.state.Y,
			DX:   x - t.lastX,
			DY:   y - t.lastY,
			At:   at,
		})
	}
	t.lastX, t.lastY = x, y
}

func (t *Tracker) Release(x, y float64, at time.Duration) models.Classification {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.moveTo(x, y)
	return t.release(at)
}

func (t *Tracker) release(at time.Duration) models.Classification {
	if !t.state.Pressed {
		return models.ClassNone
	}
	class := Classify(
		t.state.ScreenX-t.state.PressX,
		t.state.ScreenY-t.state.PressY,
		at-t.state.PressStart,
		t.tapDistance,
		t.tapDuration,
	)
	if t.state.Class == models.ClassDrag {
		class = models.ClassDrag
	}
	t.state.Pressed = false
	t.state.Class = class
	t.push(Request{Kind: ReqRelease, X: t.state.X, Y: t.state.Y, Class: class, At: at})
	return class
}

// Leave ends any press in progress and marks the pointer absent.
func (t *Tracker) Leave(at time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.release(at)
	t.state.Present = false
	t.push(Request{Kind: ReqLeave, At: at})
}

func (t *Tracker) Snapshot() models.PointerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Drain returns and clears the queued requests.
func (t *Tracker) Drain() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	reqs := t.pending
	t.pending = nil
	return reqs
}

// Take returns the pointer state and the queued requests from one locked
// read, so a release cannot land between them.
func (t *Tracker) Take() (models.PointerState, []Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	reqs := t.pending
	t.pending = nil
	return t.state, reqs
}

// Reset drops queued requests and ends any press without releasing it.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = nil
	t.state.Pressed = false
	t.state.Class = models.ClassNone
}
