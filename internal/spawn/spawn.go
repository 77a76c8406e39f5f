package spawn

import (
	"math/rand/v2"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// Store allocates a particle store for def. Rest positions come from the
// definition; start positions are the rest positions or, for scatter presets,
// uniform random points in the scatter volume. DepthJitter spreads rest
// points in z to give flat text some depth.
func Store(def *shape.Definition, preset config.Preset, rng *rand.Rand) *models.ParticleStore {
	n := len(def.Points)
	s := models.NewParticleStore(n, len(def.Targets) == n && n > 0)
	r, g, b := preset.BaseColor.RGB()
	vol := preset.ScatterVolume

	for i, p := range def.Points {
		if preset.DepthJitter > 0 {
			p[2] += (rng.Float32() - 0.5) * preset.DepthJitter
		}
		models.SetVec3(s.Rest, i, p)
		if preset.Scatter {
			models.SetVec3(s.Positions, i, mgl32.Vec3{
				(rng.Float32() - 0.5) * vol[0],
				(rng.Float32() - 0.5) * vol[1],
				(rng.Float32() - 0.5) * vol[2],
			})
		} else {
			models.SetVec3(s.Positions, i, p)
		}
		s.Colors[i*3], s.Colors[i*3+1], s.Colors[i*3+2] = r, g, b
		s.Base[i*3], s.Base[i*3+1], s.Base[i*3+2] = r, g, b
		s.Sizes[i] = preset.ParticleSize
	}
	if s.Targets != nil {
		for i, p := range def.Targets {
			models.SetVec3(s.Targets, i, p)
		}
	}
	return s
}

// AltTargets builds the alternate shape for morph presets.
func AltTargets(n int, preset config.Preset, rng *rand.Rand) []mgl32.Vec3 {
	switch preset.AltShape {
	case config.AltSphere:
		return shape.Sphere(n, preset.Morph.SphereRadius, rng)
	case config.AltDrone:
		return shape.Drone(n, preset.Morph.DroneScale, rng)
	}
	return nil
}

// Grid lays out a cols x rows lattice centred on the origin.
func Grid(cols, rows int, spacing float32) *shape.Definition {
	pts := make([]mgl32.Vec3, 0, cols*rows)
	ox := float32(cols-1) * spacing / 2
	oy := float32(rows-1) * spacing / 2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pts = append(pts, mgl32.Vec3{float32(x)*spacing - ox, oy - float32(y)*spacing, 0})
		}
	}
	return &shape.Definition{Points: pts, Amount: cols * rows}
}
