package shape

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeOutlines struct {
	paths []SubPath
	err   error
}

func (f fakeOutlines) Outlines(text string, size float32) ([]SubPath, error) {
	return f.paths, f.err
}

func square(x, y, side float32) []mgl32.Vec2 {
	return []mgl32.Vec2{{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}}
}

func TestResampleClosedIsEven(t *testing.T) {
	pts := resample(square(0, 0, 10), 40, true)
	if len(pts) != 40 {
		t.Fatalf("expected 40 points, got %d", len(pts))
	}
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		d := pts[i].Sub(next).Len()
		if math.Abs(float64(d-1)) > 1e-3 {
			t.Fatalf("expected spacing 1 between %d and next, got %.4f", i, d)
		}
	}
}

func TestResampleOpenKeepsEnds(t *testing.T) {
	path := []mgl32.Vec2{{0, 0}, {10, 0}}
	pts := resample(path, 11, false)
	if len(pts) != 11 {
		t.Fatalf("expected 11 points, got %d", len(pts))
	}
	if pts[0] != path[0] || pts[10].Sub(path[1]).Len() > 1e-4 {
		t.Fatalf("expected endpoints preserved, got %v and %v", pts[0], pts[10])
	}
}

func TestResampleDegenerate(t *testing.T) {
	pts := resample([]mgl32.Vec2{{3, 3}, {3, 3}}, 5, true)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	for _, p := range pts {
		if p != (mgl32.Vec2{3, 3}) {
			t.Fatalf("expected collapsed points, got %v", p)
		}
	}
}

func TestSampleCountFollowsSubPaths(t *testing.T) {
	paths := []SubPath{
		{Points: square(0, 0, 10), Closed: true, Holes: []SubPath{
			{Points: square(2, 2, 2), Closed: true},
		}},
		{Points: []mgl32.Vec2{{20, 0}, {30, 0}}, Closed: false},
	}
	s := NewSampler(fakeOutlines{paths: paths}, 2)

	def, err := s.Sample("x", 12, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := 100 + 50 + 50
	if len(def.Points) != want || PointCount(paths, 100) != want {
		t.Fatalf("expected %d points, got %d", want, len(def.Points))
	}
}

func TestHoleGetsHalfBudget(t *testing.T) {
	paths := []SubPath{{Points: square(0, 0, 10), Closed: true, Holes: []SubPath{
		{Points: square(2, 2, 6), Closed: true},
	}}}
	def, err := NewSampler(fakeOutlines{paths: paths}, 2).Sample("O", 12, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Points) != 150 {
		t.Fatalf("expected 150 points for an outline with one hole, got %d", len(def.Points))
	}
	// The hole's 50 points lie on the inner square.
	for _, p := range def.Points[100:] {
		if p.X() < -3.01 || p.X() > 3.01 || p.Y() < -3.01 || p.Y() > 3.01 {
			t.Fatalf("expected hole point on the inner square, got %v", p)
		}
	}
}

func TestSampleSingleContour(t *testing.T) {
	s := NewSampler(fakeOutlines{paths: []SubPath{{Points: square(0, 0, 20), Closed: true}}}, 2.85)
	def, err := s.Sample("OK", 12, 300)
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Points) != 300 {
		t.Fatalf("expected 300 rest points, got %d", len(def.Points))
	}
}

func TestSampleDeterministic(t *testing.T) {
	f, err := DefaultFontOutlines()
	if err != nil {
		t.Fatal(err)
	}
	s := NewSampler(f, 2.85)
	a, err := s.Sample("67", 12, 50)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Sample("67", 12, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Points) != len(b.Points) {
		t.Fatalf("expected equal counts, got %d and %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestCenterRatio(t *testing.T) {
	pts := square(5, 5, 10)
	center(pts, 2)
	lo, hi := Bounds([]mgl32.Vec3{pts[0].Vec3(0), pts[2].Vec3(0)})
	if lo != (mgl32.Vec3{-5, -5, 0}) || hi != (mgl32.Vec3{5, 5, 0}) {
		t.Fatalf("expected bbox centred, got %v %v", lo, hi)
	}

	shifted := square(5, 5, 10)
	center(shifted, 2.85)
	if shifted[0].Y() >= -5 {
		t.Fatalf("expected down shift for ratio 2.85, got min y %.3f", shifted[0].Y())
	}
	if shifted[0].X() != -5 {
		t.Fatalf("expected horizontal centring, got %.3f", shifted[0].X())
	}
}

func TestFontOutlinesHoles(t *testing.T) {
	f, err := DefaultFontOutlines()
	if err != nil {
		t.Fatal(err)
	}

	paths, err := f.Outlines("O", 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || len(paths[0].Holes) != 1 {
		t.Fatalf("expected one outer with one hole, got %d outers", len(paths))
	}

	paths, err = f.Outlines("OK", 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected two outers for OK, got %d", len(paths))
	}
}

func TestFontOutlinesLineBreak(t *testing.T) {
	f, err := DefaultFontOutlines()
	if err != nil {
		t.Fatal(err)
	}
	one, err := f.Outlines("I", 12)
	if err != nil {
		t.Fatal(err)
	}
	two, err := f.Outlines("I\nI", 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2*len(one) {
		t.Fatalf("expected twice the contours, got %d vs %d", len(two), len(one))
	}
	if two[1].Points[0].Y() >= two[0].Points[0].Y() {
		t.Fatalf("expected second line below the first")
	}
}

func TestBadFontIsAssetLoadError(t *testing.T) {
	_, err := NewFontOutlines("junk", []byte("not a font"))
	var ae *AssetLoadError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AssetLoadError, got %v", err)
	}

	_, err = LoadFontOutlines("/nonexistent/font.ttf")
	if !errors.As(err, &ae) {
		t.Fatalf("expected AssetLoadError for missing file, got %v", err)
	}
}

func TestSphereRadius(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, p := range Sphere(500, 30, rng) {
		if math.Abs(float64(p.Len()-30)) > 1e-3 {
			t.Fatalf("expected point on sphere, got |p|=%.4f", p.Len())
		}
	}
}

func TestDroneExactCount(t *testing.T) {
	for _, n := range []int{1, 7, 100, 1234} {
		pts := Drone(n, 0.35, rand.New(rand.NewPCG(3, 4)))
		if len(pts) != n {
			t.Fatalf("expected %d points, got %d", n, len(pts))
		}
	}
}

func TestDroneSeeded(t *testing.T) {
	a := Drone(200, 1, rand.New(rand.NewPCG(9, 9)))
	b := Drone(200, 1, rand.New(rand.NewPCG(9, 9)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected same seed to give same drone")
		}
	}
}
