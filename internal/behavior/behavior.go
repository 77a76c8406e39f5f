// Package behavior holds the per-particle effects. Each effect takes a
// particle by value and returns the updated copy; none of them touch the
// store directly.
package behavior

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

type Particle struct {
	Index  int
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Rest   mgl32.Vec3
	Target mgl32.Vec3
	Color  mgl32.Vec3
	Size   float32
	Glow   float32
	// Owned means an effect drove the position directly this tick and
	// rest easing must not fight it.
	Owned bool
}

type Input struct {
	Now         time.Duration
	Pointer     mgl32.Vec3
	HasPointer  bool
	Pressed     bool
	Held        time.Duration
	Trail       bool
	Swipe       mgl32.Vec3
	ChargePoint mgl32.Vec3
	Sessions    []models.Session
	Preset      *config.Preset
	Noise       *perlin.Perlin
	Rng         *rand.Rand
}

type Func func(p Particle, in *Input) Particle

func NewNoise(seed int64) *perlin.Perlin {
	return perlin.NewPerlin(2, 2, 3, seed)
}

func rgb(c config.HSL) mgl32.Vec3 {
	r, g, b := c.RGB()
	return mgl32.Vec3{r, g, b}
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

// planar returns the xy offset from origin to p and its length, clamped
// to eps so callers can divide by it.
func planar(p, origin mgl32.Vec3, eps float32) (mgl32.Vec3, float32) {
	off := mgl32.Vec3{p[0] - origin[0], p[1] - origin[1], 0}
	return off, max(off.Len(), eps)
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}

// Repel pushes particles away from the pointer with a linear falloff. Every
// fifth particle is pulled slightly toward it instead.
func Repel(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	off, d := planar(p.Pos, in.Pointer, pre.Epsilon)
	if d < pre.Area {
		falloff := (pre.Area - d) / pre.Area
		dir := off.Mul(1 / d)
		if p.Index%5 == 0 {
			p.Vel = p.Vel.Sub(dir.Mul(pre.RepelStrength * falloff * 0.1))
			p.Color = rgb(pre.HighlightColor)
			p.Size = pre.ParticleSize / 1.2
		} else {
			p.Vel = p.Vel.Add(dir.Mul(pre.RepelStrength * falloff))
			p.Size = pre.ParticleSize * 1.3
		}
	}
	if abs(p.Pos[0]-p.Rest[0]) > pre.DetachDistance || abs(p.Pos[1]-p.Rest[1]) > pre.DetachDistance {
		p.Color = rgb(pre.HighlightColor)
		p.Size = pre.ParticleSize / 1.8
	}
	return p
}

// Vortex swirls particles around the pointer with a small inward component.
// The hue zigzags on a twelve second cycle.
func Vortex(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	off, d := planar(p.Pos, in.Pointer, pre.Epsilon)
	if d >= pre.Area {
		return p
	}
	falloff := (pre.Area - d) / pre.Area
	dir := off.Mul(1 / d)
	tangent := mgl32.Vec3{-dir[1], dir[0], 0}
	f := pre.RepelStrength * falloff
	p.Vel = p.Vel.Add(tangent.Mul(f * 0.8)).Sub(dir.Mul(f * 0.1))

	t := math.Mod(seconds(in.Now), 12) / 12
	zigzag := (1 + math.Sin(t*2*math.Pi)) / 6
	p.Color = rgb(config.HSL{H: 0.6 + zigzag, S: 1, L: 0.5})
	return p
}

// PropWash pushes and swirls particles under the pointer.
func PropWash(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	off, d := planar(p.Pos, in.Pointer, pre.Epsilon)
	if d >= pre.Area {
		return p
	}
	f := pre.RepelStrength * (pre.Area - d) / pre.Area
	dir := off.Mul(1 / d)
	swirl := mgl32.Vec3{-dir[1], dir[0], 0}
	p.Vel = p.Vel.Add(dir.Mul(f * 0.5)).Add(swirl.Mul(f * 0.5))
	p.Color = rgb(pre.HighlightColor)
	return p
}

// HoverTint recolours and enlarges particles near the pointer.
func HoverTint(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	if _, d := planar(p.Pos, in.Pointer, pre.Epsilon); d < pre.Area {
		p.Color = rgb(pre.HighlightColor)
		p.Size = pre.ParticleSize * 1.3
	}
	return p
}

// HoverGlow lights particles near the pointer without moving them.
func HoverGlow(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	if _, d := planar(p.Pos, in.Pointer, pre.Epsilon); d < pre.Area {
		p.Glow = max(p.Glow, (1-d/pre.Area)*pre.Ripple.HoverGlow)
	}
	return p
}

// Ripple recolours the band around each expanding ripple ring.
func Ripple(p Particle, in *Input) Particle {
	pre := in.Preset
	for _, s := range in.Sessions {
		if s.Kind != models.SessionRipple || !s.Active(in.Now) {
			continue
		}
		radius := RingRadius(s, in.Now)
		if _, d := planar(p.Pos, s.Origin, pre.Epsilon); abs(d-radius) < pre.Ripple.Band {
			p.Color = rgb(pre.ActiveColor)
			p.Glow = max(p.Glow, pre.Ripple.Glow)
		}
	}
	return p
}

// RingRadius is the ripple ring radius of s at now.
func RingRadius(s models.Session, now time.Duration) float32 {
	return s.Progress(now) * s.MaxRadius
}

// Trail pushes particles near the pointer along the swipe direction.
func Trail(p Particle, in *Input) Particle {
	if !in.Trail || !in.HasPointer || in.Swipe.Len() == 0 {
		return p
	}
	pre := in.Preset
	_, d := planar(p.Pos, in.Pointer, pre.Epsilon)
	if d >= pre.Ripple.TrailRadius {
		return p
	}
	falloff := 1 - d/pre.Ripple.TrailRadius
	p.Vel = p.Vel.Add(in.Swipe.Normalize().Mul(pre.Ripple.TrailForce * falloff))
	p.Glow = 1
	return p
}

// Drift wobbles the easing target around the rest position.
func Drift(p Particle, in *Input) Particle {
	t := seconds(in.Now) * 0.5
	r := p.Rest
	p.Target = r.Add(mgl32.Vec3{
		float32(math.Sin(t+float64(r[0]))) * 0.5,
		float32(math.Cos(t*0.8+float64(r[1]))) * 0.5,
		float32(math.Sin(t*0.6+float64(r[0]+r[1]))) * 0.5,
	})
	return p
}

// Swarm flies particles along a noise field keyed on their rest position.
func Swarm(p Particle, in *Input) Particle {
	sw := in.Preset.Swarm
	n := float32(in.Noise.Noise3D(
		float64(p.Rest[0])*sw.Scale,
		float64(p.Rest[1])*sw.Scale,
		seconds(in.Now)*sw.TimeScale,
	))
	offset := mgl32.Vec3{n * sw.Amplitude, (n + 1) * sw.Lift, sw.Climb}
	p.Pos = p.Pos.Add(offset.Mul(sw.Ease))
	p.Color = rgb(in.Preset.ActiveColor)
	p.Size = in.Preset.ParticleSize * 1.5
	p.Owned = true
	return p
}

// Charge draws particles toward the charge point and heats them up.
// Every particle is held in place while charging.
func Charge(p Particle, in *Input) Particle {
	ch := in.Preset.Charge
	p.Owned = true
	to := in.ChargePoint.Sub(p.Pos)
	d := max(to.Len(), in.Preset.Epsilon)
	if d >= ch.Radius {
		return p
	}
	pf := 1 - d/ch.Radius
	p.Pos = p.Pos.Add(to.Mul(pf * ch.Pull))
	p.Pos[2] += (in.Rng.Float32() - 0.5) * pf * ch.Jitter
	p.Size = in.Preset.ParticleSize + pf*2
	p.Color = rgb(config.HSL{H: 0.55, S: 1, L: 0.5 + float64(pf)*0.5})
	return p
}

// LaunchPower scales launch effects by how long the charge was held.
func LaunchPower(s models.Session, full time.Duration) float32 {
	if full <= 0 {
		return 1
	}
	return 1 + clamp01(float32(s.ChargeDuration)/float32(full))
}

// Launch runs every active launch session: an ignition ring sweeping
// outward, and a burst that throws the core toward the viewer.
func Launch(p Particle, in *Input) Particle {
	pre := in.Preset
	ch := pre.Charge
	for _, s := range in.Sessions {
		if s.Kind != models.SessionLaunch || !s.Active(in.Now) {
			continue
		}
		elapsed := s.Elapsed(in.Now)
		power := LaunchPower(s, ch.FullCharge.D())
		off, d := planar(p.Pos, s.Origin, pre.Epsilon)
		dir := off.Mul(1 / d)

		if elapsed < ch.IgnitionDuration.D() && ch.IgnitionPeriod > 0 {
			ring := float32(elapsed) / float32(ch.IgnitionPeriod.D()) * ch.IgnitionRadius
			if abs(d-ring) < ch.IgnitionBand {
				p.Vel = p.Vel.Add(dir.Mul(ch.IgnitionPush * power))
				p.Color = rgb(pre.ActiveColor)
			}
		}

		if d < ch.LaunchRadius {
			progress := s.Progress(in.Now)
			p.Pos[2] += progress * ch.LaunchDepth * 0.1 * power
			p.Pos = p.Pos.Add(off.Mul(progress * 0.05))
			p.Size = pre.ParticleSize * (1 - progress) * 3
			p.Color = rgb(config.HSL{H: 0.6, S: 1, L: 0.8})
		}
	}
	return p
}

// Expand tints particles travelling to or holding the alternate shape.
func Expand(p Particle, in *Input) Particle {
	p.Color = rgb(in.Preset.ActiveColor)
	return p
}

// HoleRadius is the accretion radius after the pointer has been held.
func HoleRadius(hp config.HoleParams, held time.Duration) float32 {
	grow := float32(1)
	if hp.GrowDuration > 0 {
		grow = clamp01(0.25 + 0.75*float32(held)/float32(hp.GrowDuration.D()))
	}
	return hp.Radius * grow
}

// Temperature maps t in [0, 1] from dull red through orange and yellow to white.
func Temperature(t float32) mgl32.Vec3 {
	t = clamp01(t)
	return rgb(config.HSL{H: 0.15 * float64(t), S: 1, L: 0.35 + 0.65*float64(t*t)})
}

// BlackHole models an accretion disk around the pointer. The disk is the
// horizontal band |dy| < DiskThickness; inside it particles orbit with
// Keplerian speed and spiral in. Outside the disk, the lensing band bends
// particles around the hole and the shadow dims them. Anything inside the
// event horizon is swallowed.
func BlackHole(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	hp := pre.Hole
	R := HoleRadius(hp, in.Held)
	horizon := R * hp.HorizonRatio
	lens := R * hp.LensRatio
	shadow := R * hp.ShadowRatio

	off := p.Pos.Sub(in.Pointer)
	d := max(off.Len(), pre.Epsilon)
	if d >= shadow && d >= horizon {
		return p
	}

	inDisk := abs(off[1]) < hp.DiskThickness
	switch {
	case inDisk && d < R:
		rxz := max(float32(math.Hypot(float64(off[0]), float64(off[2]))), pre.Epsilon)
		tangent := mgl32.Vec3{-off[2] / rxz, 0, off[0] / rxz}
		inward := mgl32.Vec3{-off[0] / rxz, 0, -off[2] / rxz}
		speed := hp.OrbitSpeed / float32(math.Sqrt(float64(rxz)))
		p.Vel = p.Vel.Add(tangent.Mul(speed * 0.1)).Add(inward.Mul(speed * hp.Spiral))
		heat := clamp01(1 - (d-horizon)/max(R-horizon, pre.Epsilon))
		p.Color = Temperature(heat)
		p.Size = pre.ParticleSize * (0.6 + heat)
	case !inDisk && d < lens:
		bend := hp.Lensing * horizon / d * 0.1
		c, s := float32(math.Cos(float64(bend))), float32(math.Sin(float64(bend)))
		bent := mgl32.Vec3{off[0]*c - off[1]*s, off[0]*s + off[1]*c, off[2]}
		p.Pos = in.Pointer.Add(bent)
		p.Color = p.Color.Mul(1 + bend)
	case !inDisk:
		k := d / shadow
		p.Color = p.Color.Mul(k)
		p.Vel = p.Vel.Sub(off.Mul(hp.Spiral * (1 - k) / d))
	}

	if d < horizon {
		p.Color = mgl32.Vec3{}
		p.Size = min(p.Size, hp.MinSize)
		p.Pos = p.Pos.Add(in.Pointer.Sub(p.Pos).Mul(0.3))
	}
	return p
}

// PressHue cycles the hue of pressed video particles.
func PressHue(now time.Duration) float64 {
	return math.Mod(0.5+math.Sin(seconds(now)*5), 1)
}

// VideoHover repels grid particles from the pointer and animates their hue
// while pressed.
func VideoHover(p Particle, in *Input) Particle {
	if !in.HasPointer {
		return p
	}
	pre := in.Preset
	v := pre.Video
	off, d := planar(p.Pos, in.Pointer, pre.Epsilon)
	if d < v.HoverRadius {
		falloff := (v.HoverRadius - d) / v.HoverRadius
		p.Vel = p.Vel.Add(off.Mul(falloff * v.Force / d))
		p.Color = rgb(pre.HighlightColor)
		p.Size = pre.ParticleSize * (1 + falloff)
	}
	if in.Pressed && d < v.PressRadius {
		p.Color = rgb(pre.HighlightColor.WithHue(PressHue(in.Now)))
	}
	return p
}

// Integrate damps the velocity then advances the position by it.
func Integrate(p Particle, damping float32) Particle {
	p.Vel = p.Vel.Mul(damping)
	p.Pos = p.Pos.Add(p.Vel)
	return p
}

// Ease moves the position a fixed fraction of the way to its target.
func Ease(p Particle, ease float32) Particle {
	if p.Owned {
		return p
	}
	p.Pos = p.Pos.Add(p.Target.Sub(p.Pos).Mul(ease))
	return p
}

func DecayGlow(p Particle, decay float32) Particle {
	p.Glow *= decay
	return p
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
