package config

import (
	"fmt"
	"sort"
	"time"
)

type BehaviorKind string

const (
	BehaviorRepel       BehaviorKind = "repel"
	BehaviorDrift       BehaviorKind = "drift"
	BehaviorRipple      BehaviorKind = "ripple"
	BehaviorLaunch      BehaviorKind = "launch"
	BehaviorSwarm       BehaviorKind = "swarm"
	BehaviorMorph       BehaviorKind = "morph"
	BehaviorSingularity BehaviorKind = "singularity"
	BehaviorVideo       BehaviorKind = "video"
)

type DragMode string

const (
	DragNone   DragMode = "none"
	DragRotate DragMode = "rotate"
	DragTrail  DragMode = "trail"
)

type AltShape string

const (
	AltNone   AltShape = ""
	AltSphere AltShape = "sphere"
	AltDrone  AltShape = "drone"
)

// Millis is a duration stored as whole milliseconds in preset files.
type Millis int

func (m Millis) D() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// HSL components are all in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

type RippleParams struct {
	Duration    Millis  `json:"duration"`
	MaxRadius   float32 `json:"max_radius"`
	Band        float32 `json:"band"`
	Glow        float32 `json:"glow"`
	TrailRadius float32 `json:"trail_radius"`
	TrailForce  float32 `json:"trail_force"`
	HoverGlow   float32 `json:"hover_glow"`
	GlowDecay   float32 `json:"glow_decay"`
}

type ChargeParams struct {
	Radius           float32 `json:"radius"`
	Pull             float32 `json:"pull"`
	Jitter           float32 `json:"jitter"`
	FullCharge       Millis  `json:"full_charge"`
	LaunchDuration   Millis  `json:"launch_duration"`
	IgnitionDuration Millis  `json:"ignition_duration"`
	IgnitionPeriod   Millis  `json:"ignition_period"`
	IgnitionRadius   float32 `json:"ignition_radius"`
	IgnitionBand     float32 `json:"ignition_band"`
	IgnitionPush     float32 `json:"ignition_push"`
	LaunchRadius     float32 `json:"launch_radius"`
	LaunchDepth      float32 `json:"launch_depth"`
}

type SwarmParams struct {
	Duration  Millis  `json:"duration"`
	Scale     float64 `json:"scale"`
	TimeScale float64 `json:"time_scale"`
	Amplitude float32 `json:"amplitude"`
	Lift      float32 `json:"lift"`
	Climb     float32 `json:"climb"`
	Ease      float32 `json:"ease"`
}

type MorphParams struct {
	Duration     Millis  `json:"duration"`
	SphereRadius float32 `json:"sphere_radius"`
	DroneScale   float32 `json:"drone_scale"`
}

type HoleParams struct {
	Radius        float32 `json:"radius"`
	GrowDuration  Millis  `json:"grow_duration"`
	HorizonRatio  float32 `json:"horizon_ratio"`
	LensRatio     float32 `json:"lens_ratio"`
	ShadowRatio   float32 `json:"shadow_ratio"`
	DiskThickness float32 `json:"disk_thickness"`
	OrbitSpeed    float32 `json:"orbit_speed"`
	Spiral        float32 `json:"spiral"`
	Lensing       float32 `json:"lensing"`
	MinSize       float32 `json:"min_size"`
}

type VideoParams struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Density     int     `json:"density"`
	Spacing     float32 `json:"spacing"`
	HoverRadius float32 `json:"hover_radius"`
	PressRadius float32 `json:"press_radius"`
	Force       float32 `json:"force"`
	Bright      HSL     `json:"bright"`
	Dark        HSL     `json:"dark"`
}

// Preset is the full parameter set of one engine variant.
type Preset struct {
	Name     string       `json:"name"`
	Behavior BehaviorKind `json:"behavior"`
	DragMode DragMode     `json:"drag_mode"`
	AltShape AltShape     `json:"alt_shape,omitempty"`
	Inertia  bool         `json:"inertia"`

	Text        string  `json:"text,omitempty"`
	TextSize    float32 `json:"text_size"`
	Amount      int     `json:"amount"`
	CenterRatio float32 `json:"center_ratio"`

	CameraFOV  float32 `json:"camera_fov"`
	CameraZ    float32 `json:"camera_z"`
	PlaneDepth float32 `json:"plane_depth"`

	ParticleSize   float32 `json:"particle_size"`
	BaseColor      HSL     `json:"base_color"`
	HighlightColor HSL     `json:"highlight_color"`
	ActiveColor    HSL     `json:"active_color"`

	Ease           float32 `json:"ease"`
	Damping        float32 `json:"damping"`
	Area           float32 `json:"area"`
	RepelStrength  float32 `json:"repel_strength"`
	DetachDistance float32 `json:"detach_distance"`
	Epsilon        float32 `json:"epsilon"`

	Scatter       bool       `json:"scatter"`
	ScatterVolume [3]float32 `json:"scatter_volume"`
	DepthJitter   float32    `json:"depth_jitter"`

	TapDistance     float64 `json:"tap_distance"`
	TapDuration     Millis  `json:"tap_duration"`
	RotateSpeed     float32 `json:"rotate_speed"`
	RotationDamping float32 `json:"rotation_damping"`
	SpinGain        float32 `json:"spin_gain"`

	Ripple RippleParams `json:"ripple"`
	Charge ChargeParams `json:"charge"`
	Swarm  SwarmParams  `json:"swarm"`
	Morph  MorphParams  `json:"morph"`
	Hole   HoleParams   `json:"hole"`
	Video  VideoParams  `json:"video"`
}

func (p *Preset) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("preset has no name")
	case p.Amount <= 0:
		return fmt.Errorf("preset %s: amount must be positive, got %d", p.Name, p.Amount)
	case p.TextSize <= 0:
		return fmt.Errorf("preset %s: text_size must be positive, got %.2f", p.Name, p.TextSize)
	case p.Ease <= 0 || p.Ease > 1:
		return fmt.Errorf("preset %s: ease must be in (0, 1], got %.3f", p.Name, p.Ease)
	case p.Damping < 0 || p.Damping > 1:
		return fmt.Errorf("preset %s: damping must be in [0, 1], got %.3f", p.Name, p.Damping)
	case p.CameraZ <= p.PlaneDepth:
		return fmt.Errorf("preset %s: camera must sit in front of the interaction plane", p.Name)
	case p.Epsilon <= 0:
		return fmt.Errorf("preset %s: epsilon must be positive", p.Name)
	}
	switch p.Behavior {
	case BehaviorRepel, BehaviorDrift, BehaviorRipple, BehaviorLaunch, BehaviorSwarm,
		BehaviorMorph, BehaviorSingularity, BehaviorVideo:
	default:
		return fmt.Errorf("preset %s: unknown behavior %q", p.Name, p.Behavior)
	}
	if p.Behavior == BehaviorMorph && p.AltShape == AltNone {
		return fmt.Errorf("preset %s: morph behavior needs an alt_shape", p.Name)
	}
	if h := p.Hole; h.HorizonRatio <= 0 || h.HorizonRatio >= h.LensRatio || h.LensRatio >= h.ShadowRatio {
		return fmt.Errorf("preset %s: hole ratios must satisfy 0 < horizon < lens < shadow, got %.2f %.2f %.2f",
			p.Name, h.HorizonRatio, h.LensRatio, h.ShadowRatio)
	}
	if p.DepthJitter < 0 {
		return fmt.Errorf("preset %s: depth_jitter must not be negative", p.Name)
	}
	if p.Hole.MinSize < 0 {
		return fmt.Errorf("preset %s: hole min_size must not be negative", p.Name)
	}
	return nil
}

// Base returns the parameters shared by every built-in preset.
func Base() Preset {
	return Preset{
		Behavior:        BehaviorRepel,
		DragMode:        DragNone,
		TextSize:        12,
		Amount:          120,
		CenterRatio:     2.85,
		CameraFOV:       65,
		CameraZ:         100,
		PlaneDepth:      0,
		ParticleSize:    1.5,
		BaseColor:       HSL{0.5, 1, 1},
		HighlightColor:  HSL{0.15, 1, 0.5},
		ActiveColor:     HSL{0.55, 1, 0.7},
		Ease:            0.05,
		Damping:         0.85,
		Area:            20,
		RepelStrength:   0.6,
		DetachDistance:  10,
		Epsilon:         1e-3,
		ScatterVolume:   [3]float32{400, 200, 200},
		TapDistance:     10,
		TapDuration:     200,
		RotateSpeed:     0.005,
		RotationDamping: 0.95,
		SpinGain:        0.01,
		Ripple: RippleParams{
			Duration:    400,
			MaxRadius:   40,
			Band:        2.5,
			Glow:        0.5,
			TrailRadius: 6,
			TrailForce:  2,
			HoverGlow:   0.2,
			GlowDecay:   0.96,
		},
		Charge: ChargeParams{
			Radius:           20,
			Pull:             0.1,
			Jitter:           2,
			FullCharge:       2000,
			LaunchDuration:   1000,
			IgnitionDuration: 500,
			IgnitionPeriod:   300,
			IgnitionRadius:   30,
			IgnitionBand:     3,
			IgnitionPush:     3,
			LaunchRadius:     10,
			LaunchDepth:      15,
		},
		Swarm: SwarmParams{
			Duration:  3000,
			Scale:     0.05,
			TimeScale: 0.5,
			Amplitude: 5,
			Lift:      2,
			Climb:     10,
			Ease:      0.03,
		},
		Morph: MorphParams{
			Duration:     2000,
			SphereRadius: 30,
			DroneScale:   0.35,
		},
		Hole: HoleParams{
			Radius:        30,
			GrowDuration:  1500,
			HorizonRatio:  0.15,
			LensRatio:     0.5,
			ShadowRatio:   1.3,
			DiskThickness: 3,
			OrbitSpeed:    2.5,
			Spiral:        0.04,
			Lensing:       0.6,
			MinSize:       0.2,
		},
		Video: VideoParams{
			Width:       160,
			Height:      90,
			Density:     2,
			Spacing:     6,
			HoverRadius: 40,
			PressRadius: 60,
			Force:       5,
			Bright:      HSL{0, 0, 1},
			Dark:        HSL{0, 0, 0.13},
		},
	}
}

// Builtin returns fresh copies of the built-in presets keyed by name.
func Builtin() map[string]Preset {
	presets := map[string]Preset{}
	add := func(name string, fn func(p *Preset)) {
		p := Base()
		p.Name = name
		fn(&p)
		presets[name] = p
	}

	add("repel", func(p *Preset) {})
	add("drift", func(p *Preset) {
		p.Behavior = BehaviorDrift
		p.DragMode = DragRotate
		p.Inertia = true
		p.DepthJitter = 40
		p.BaseColor = HSL{0.5, 1, 0.5}
		p.CenterRatio = 2
	})
	add("lock", func(p *Preset) {
		p.Behavior = BehaviorRipple
		p.DragMode = DragRotate
		p.Scatter = true
		p.BaseColor = HSL{0.4, 1, 0.5}
	})
	add("wash", func(p *Preset) {
		p.Behavior = BehaviorRipple
		p.DragMode = DragTrail
		p.Scatter = true
		p.BaseColor = HSL{0.4, 1, 0.5}
	})
	add("launch", func(p *Preset) {
		p.Behavior = BehaviorLaunch
		p.BaseColor = HSL{0.4, 1, 0.5}
		p.ActiveColor = HSL{0.55, 1, 0.8}
	})
	add("swarm", func(p *Preset) {
		p.Behavior = BehaviorSwarm
		p.BaseColor = HSL{0.5, 1, 0.5}
		p.HighlightColor = HSL{0.3, 1, 0.6}
	})
	add("sphere", func(p *Preset) {
		p.Behavior = BehaviorMorph
		p.AltShape = AltSphere
		p.Scatter = true
		p.BaseColor = HSL{0.4, 1, 0.5}
	})
	add("drone", func(p *Preset) {
		p.Behavior = BehaviorMorph
		p.AltShape = AltDrone
		p.Scatter = true
		p.BaseColor = HSL{0.4, 1, 0.5}
	})
	add("singularity", func(p *Preset) {
		p.Behavior = BehaviorSingularity
		p.BaseColor = HSL{0.6, 0.3, 0.85}
	})
	add("video", func(p *Preset) {
		p.Behavior = BehaviorVideo
		p.CameraFOV = 45
		p.CameraZ = 400
		p.ParticleSize = 6
	})
	return presets
}

func SortedNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
