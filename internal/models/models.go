package models

import (
	"math/rand/v2"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/camera"
	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/go-gl/mathgl/mgl32"
)

type EngineState int

const (
	StateIdle EngineState = iota
	StateHovering
	StateDragging
	StateCharging
	StateExpanding
	StateExpanded
)

func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	case StateCharging:
		return "charging"
	case StateExpanding:
		return "expanding"
	case StateExpanded:
		return "expanded"
	}
	return "unknown"
}

type Classification int

const (
	ClassNone Classification = iota
	ClassTap
	ClassDrag
)

// PointerState is written by input handlers and read once per tick as a copy.
type PointerState struct {
	X, Y             float32 // NDC
	ScreenX, ScreenY float64
	Present          bool
	Pressed          bool
	Class            Classification
	PressStart       time.Duration
	PressX, PressY   float64
}

type SessionKind int

const (
	SessionRipple SessionKind = iota
	SessionLaunch
	SessionSwarm
)

func (k SessionKind) String() string {
	switch k {
	case SessionRipple:
		return "ripple"
	case SessionLaunch:
		return "launch"
	case SessionSwarm:
		return "swarm"
	}
	return "unknown"
}

// Session is a timed gesture effect, active on [Start, Start+Duration).
type Session struct {
	Kind           SessionKind
	Origin         mgl32.Vec3
	Start          time.Duration
	Duration       time.Duration
	ChargeDuration time.Duration
	MaxRadius      float32
}

func (s Session) Elapsed(now time.Duration) time.Duration {
	return now - s.Start
}

func (s Session) Active(now time.Duration) bool {
	e := now - s.Start
	return e >= 0 && e < s.Duration
}

// Progress is elapsed/duration clamped to [0, 1].
func (s Session) Progress(now time.Duration) float32 {
	if s.Duration <= 0 {
		return 1
	}
	p := float32(now-s.Start) / float32(s.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ParticleStore holds per-particle attributes as flat parallel arrays.
// Vector attributes are packed xyz, scalars one per particle. Base is the
// resting colour each tick starts from; Colors is what gets drawn.
type ParticleStore struct {
	Count      int
	Positions  []float32
	Velocities []float32
	Rest       []float32
	Base       []float32
	Colors     []float32
	Sizes      []float32
	Glows      []float32
	Targets    []float32
	Generation uint64
}

func NewParticleStore(n int, withTargets bool) *ParticleStore {
	s := &ParticleStore{
		Count:      n,
		Positions:  make([]float32, n*3),
		Velocities: make([]float32, n*3),
		Rest:       make([]float32, n*3),
		Base:       make([]float32, n*3),
		Colors:     make([]float32, n*3),
		Sizes:      make([]float32, n),
		Glows:      make([]float32, n),
	}
	if withTargets {
		s.Targets = make([]float32, n*3)
	}
	return s
}

func Vec3At(a []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{a[i*3], a[i*3+1], a[i*3+2]}
}

func SetVec3(a []float32, i int, v mgl32.Vec3) {
	a[i*3] = v[0]
	a[i*3+1] = v[1]
	a[i*3+2] = v[2]
}

// Rotation is the rigid whole-set rotation around the x and y axes.
type Rotation struct {
	X, Y             float32
	VelX, VelY       float32
	TargetX, TargetY float32
	SpinX, SpinY     float32
}

func (r Rotation) Matrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(r.Y).Mul4(mgl32.HomogRotate3DX(r.X))
}

// ToModel maps a world point into the rotated particle frame.
func (r Rotation) ToModel(p mgl32.Vec3) mgl32.Vec3 {
	if r.X == 0 && r.Y == 0 {
		return p
	}
	return r.Matrix().Inv().Mul4x1(p.Vec4(1)).Vec3()
}

// App is the engine context shared by the interaction, update and spawn stages.
type App struct {
	Preset   config.Preset
	Camera   *camera.Camera
	Store    *ParticleStore
	Rng      *rand.Rand
	Now      time.Duration
	State    EngineState
	Sessions []Session
	Rotation Rotation

	Pointer      PointerState
	PointerWorld mgl32.Vec3
	PrevWorld    mgl32.Vec3
	HasPrevWorld bool
	Swipe        mgl32.Vec3

	DragActive  bool
	ChargeStart time.Duration
	ChargePoint mgl32.Vec3
	ExpandStart time.Duration

	Dirty bool
}

// Output is the per-tick view handed to renderers.
type Output struct {
	Count      int
	Positions  []float32
	Colors     []float32
	Sizes      []float32
	Glows      []float32
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Generation uint64
	State      EngineState
	Dirty      bool
}

// Scene holds the GL objects and fade state of the window host.
type Scene struct {
	PointVAO     uint32
	PositionVBO  uint32
	ColorVBO     uint32
	SizeVBO      uint32
	GlowVBO      uint32
	PointProgram uint32
	BgVAO        uint32
	BgVBO        uint32
	BgProgram    uint32

	StartTime     time.Time
	OverlayAlpha  float32
	IsExiting     bool
	ExitStartTime time.Time
}
