package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestPointerToWorldCenter(t *testing.T) {
	c := New(65, 100)
	c.Resize(800, 600)

	p := c.PointerToWorld(0, 0, 0)
	if p != (mgl32.Vec3{0, 0, 0}) {
		t.Fatalf("expected origin, got %v", p)
	}

	p = c.PointerToWorld(0, 1, 0)
	if !near(p.Y(), c.VisibleHeightAt(0)/2, 1e-3) {
		t.Fatalf("expected top edge at %.3f, got %.3f", c.VisibleHeightAt(0)/2, p.Y())
	}
}

func TestPointerToWorldDepth(t *testing.T) {
	c := New(65, 100)
	c.Resize(1000, 1000)

	far := c.PointerToWorld(0.5, 0.5, -100)
	mid := c.PointerToWorld(0.5, 0.5, 0)
	if !near(far.X(), mid.X()*2, 1e-3) || far.Z() != -100 {
		t.Fatalf("expected ray to scale with depth, got %v and %v", mid, far)
	}
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := New(65, 100)
	c.Resize(1280, 720)

	for _, pt := range [][2]float64{{0, 0}, {640, 360}, {100, 700}, {1200, 20}} {
		ndcX := float32(pt[0]/1280*2 - 1)
		ndcY := float32(-(pt[1]/720)*2 + 1)
		w := c.PointerToWorld(ndcX, ndcY, 0)
		sx, sy, ok := c.WorldToScreen(w)
		if !ok {
			t.Fatalf("expected %v to be in front of the camera", w)
		}
		if math.Abs(sx-pt[0]) > 0.5 || math.Abs(sy-pt[1]) > 0.5 {
			t.Fatalf("expected screen %v, got (%.2f, %.2f)", pt, sx, sy)
		}
	}
}

func TestBehindCamera(t *testing.T) {
	c := New(65, 100)
	if _, _, ok := c.WorldToNDC(mgl32.Vec3{0, 0, 150}); ok {
		t.Fatalf("expected point behind camera to be rejected")
	}
}
