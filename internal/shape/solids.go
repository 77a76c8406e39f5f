package shape

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere returns n points uniformly distributed over a sphere surface.
func Sphere(n int, radius float32, rng *rand.Rand) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, n)
	for i := range pts {
		phi := math.Acos(-1 + 2*rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		pts[i] = mgl32.Vec3{
			radius * float32(math.Cos(theta)*math.Sin(phi)),
			radius * float32(math.Sin(theta)*math.Sin(phi)),
			radius * float32(math.Cos(phi)),
		}
	}
	return pts
}

func box(rng *rand.Rand, size, at mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		at[0] + (rng.Float32()-0.5)*size[0],
		at[1] + (rng.Float32()-0.5)*size[1],
		at[2] + (rng.Float32()-0.5)*size[2],
	}
}

// cylinder samples a solid cylinder with its axis along y.
func cylinder(rng *rand.Rand, radius, height float32, at mgl32.Vec3) mgl32.Vec3 {
	a := rng.Float64() * 2 * math.Pi
	r := radius * float32(math.Sqrt(rng.Float64()))
	return mgl32.Vec3{
		at[0] + r*float32(math.Cos(a)),
		at[1] + (rng.Float32()-0.5)*height,
		at[2] + r*float32(math.Sin(a)),
	}
}

func line(rng *rand.Rand, from, to mgl32.Vec3) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(rng.Float32()))
}

func rotateY(p mgl32.Vec3, angle float64) mgl32.Vec3 {
	c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
	return mgl32.Vec3{p[0]*c - p[2]*s, p[1], p[0]*s + p[2]*c}
}

type dronePart struct {
	fraction float64
	sample   func(rng *rand.Rand) mgl32.Vec3
}

// Four arms on the diagonals; k picks one at random per point.
func diagonal(rng *rand.Rand) float64 {
	return float64(rng.IntN(4))*math.Pi/2 + math.Pi/4
}

var droneParts = []dronePart{
	{0.12, func(r *rand.Rand) mgl32.Vec3 { return box(r, mgl32.Vec3{35, 2, 35}, mgl32.Vec3{0, 4, 0}) }},
	{0.12, func(r *rand.Rand) mgl32.Vec3 { return box(r, mgl32.Vec3{35, 2, 35}, mgl32.Vec3{0, -4, 0}) }},
	{0.01, func(r *rand.Rand) mgl32.Vec3 {
		return rotateY(cylinder(r, 1, 8, mgl32.Vec3{14, 0, 0}), diagonal(r))
	}},
	{0.07, func(r *rand.Rand) mgl32.Vec3 {
		return rotateY(box(r, mgl32.Vec3{40, 3, 7}, mgl32.Vec3{25, 0, 0}), diagonal(r))
	}},
	{0.02, func(r *rand.Rand) mgl32.Vec3 {
		return rotateY(box(r, mgl32.Vec3{8, 2, 6}, mgl32.Vec3{25, 2.5, 0}), diagonal(r))
	}},
	{0.02, func(r *rand.Rand) mgl32.Vec3 {
		return rotateY(cylinder(r, 6, 5, mgl32.Vec3{45, 2, 0}), diagonal(r))
	}},
	{0.03, func(r *rand.Rand) mgl32.Vec3 {
		return rotateY(cylinder(r, 12, 1, mgl32.Vec3{45, 5, 0}), diagonal(r))
	}},
	{0.04, func(r *rand.Rand) mgl32.Vec3 { return box(r, mgl32.Vec3{10, 10, 8}, mgl32.Vec3{0, 0, 20}) }},
	{0.01, func(r *rand.Rand) mgl32.Vec3 {
		p := cylinder(r, 3, 4, mgl32.Vec3{0, 0, 0})
		return mgl32.Vec3{p[0], p[2], 26 + p[1]}
	}},
	{0.01, func(r *rand.Rand) mgl32.Vec3 {
		a := diagonal(r)
		return line(r, rotateY(mgl32.Vec3{15, -5, 0}, a), rotateY(mgl32.Vec3{18, -15, 0}, a))
	}},
	{0.02, func(r *rand.Rand) mgl32.Vec3 { return cylinder(r, 4, 2, mgl32.Vec3{0, 6, -8}) }},
	{0.02, func(r *rand.Rand) mgl32.Vec3 {
		return line(r, mgl32.Vec3{0, 5, -16}, mgl32.Vec3{0, 18, -22})
	}},
}

func droneBody(r *rand.Rand) mgl32.Vec3 {
	return box(r, mgl32.Vec3{30, 6, 30}, mgl32.Vec3{0, 0, 0})
}

// Drone samples exactly n points over a quadcopter-like composite solid,
// shuffled so that any prefix covers every part.
func Drone(n int, scale float32, rng *rand.Rand) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, 0, n)
	for _, part := range droneParts {
		count := int(part.fraction * float64(n))
		for i := 0; i < count && len(pts) < n; i++ {
			pts = append(pts, part.sample(rng).Mul(scale))
		}
	}
	for len(pts) < n {
		pts = append(pts, droneBody(rng).Mul(scale))
	}
	rng.Shuffle(len(pts), func(i, j int) {
		pts[i], pts[j] = pts[j], pts[i]
	})
	return pts
}
