package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Definition is an immutable sampled shape; rebuild it to change anything.
type Definition struct {
	Text    string
	Size    float32
	Amount  int
	Points  []mgl32.Vec3
	Targets []mgl32.Vec3
}

type Sampler struct {
	Provider    OutlineProvider
	CenterRatio float32
}

func NewSampler(provider OutlineProvider, centerRatio float32) *Sampler {
	return &Sampler{Provider: provider, CenterRatio: centerRatio}
}

// PointCount is the number of rest points Sample yields for paths.
func PointCount(paths []SubPath, amount int) int {
	n := 0
	for _, p := range paths {
		n += pathCount(p, amount)
		for _, h := range p.Holes {
			n += holeCount(h, amount)
		}
	}
	return n
}

// holeCount is half the budget: holes are path-type sub-paths even though
// they close on themselves.
func holeCount(h SubPath, amount int) int {
	if len(h.Points) == 0 {
		return 0
	}
	return amount / 2
}

func pathCount(p SubPath, amount int) int {
	if len(p.Points) == 0 {
		return 0
	}
	if p.Closed {
		return amount
	}
	return amount / 2
}

func (s *Sampler) Sample(text string, size float32, amount int) (*Definition, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("sample %q: no outline provider", text)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("sample %q: amount must be positive, got %d", text, amount)
	}

	paths, err := s.Provider.Outlines(text, size)
	if err != nil {
		return nil, err
	}

	flat := make([]mgl32.Vec2, 0, PointCount(paths, amount))
	for _, p := range paths {
		flat = append(flat, resample(p.Points, pathCount(p, amount), p.Closed)...)
		for _, h := range p.Holes {
			flat = append(flat, resample(h.Points, holeCount(h, amount), h.Closed)...)
		}
	}
	center(flat, s.CenterRatio)

	points := make([]mgl32.Vec3, len(flat))
	for i, p := range flat {
		points[i] = p.Vec3(0)
	}
	return &Definition{Text: text, Size: size, Amount: amount, Points: points}, nil
}

// resample walks the path and emits n points evenly spaced by arc length.
// Closed paths include the closing edge and never repeat the start point.
func resample(points []mgl32.Vec2, n int, closed bool) []mgl32.Vec2 {
	if n <= 0 || len(points) == 0 {
		return nil
	}

	path := points
	if closed {
		path = make([]mgl32.Vec2, len(points), len(points)+1)
		copy(path, points)
		path = append(path, points[0])
	}

	total := pathLength(path)
	out := make([]mgl32.Vec2, 0, n)
	if total == 0 || (!closed && n == 1) {
		for len(out) < n {
			out = append(out, path[0])
		}
		return out
	}

	var interval float32
	if closed {
		interval = total / float32(n)
	} else {
		interval = total / float32(n-1)
	}

	out = append(out, path[0])
	D := float32(0)
	for i := 1; i < len(path) && len(out) < n; i++ {
		prev := path[i-1]
		d := prev.Sub(path[i]).Len()
		for D+d >= interval && len(out) < n {
			t := (interval - D) / d
			q := prev.Add(path[i].Sub(prev).Mul(t))
			out = append(out, q)
			d -= interval - D
			prev = q
			D = 0
		}
		D += d
	}
	for len(out) < n {
		out = append(out, path[len(path)-1])
	}
	return out
}

func pathLength(a []mgl32.Vec2) float32 {
	d := float32(0)
	for i := 1; i < len(a); i++ {
		d += a[i-1].Sub(a[i]).Len()
	}
	return d
}

// center moves the bounding box centre to the origin, then shifts down by
// h*(1/2 - 1/ratio). A ratio of 2 is true bbox centring.
func center(points []mgl32.Vec2, ratio float32) {
	if len(points) == 0 {
		return
	}
	if ratio <= 0 {
		ratio = 2
	}
	minX, minY := points[0].X(), points[0].Y()
	maxX, maxY := minX, minY
	for _, p := range points {
		minX = min(minX, p.X())
		minY = min(minY, p.Y())
		maxX = max(maxX, p.X())
		maxY = max(maxY, p.Y())
	}
	w, h := maxX-minX, maxY-minY
	tx := -(minX + w/2)
	ty := -(minY + h/2) - h*(0.5-1/ratio)
	for i := range points {
		points[i] = mgl32.Vec2{points[i].X() + tx, points[i].Y() + ty}
	}
}

// Bounds returns the min and max corners of pts.
func Bounds(pts []mgl32.Vec3) (lo, hi mgl32.Vec3) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}
