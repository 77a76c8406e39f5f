package spawn

import (
	"math/rand/v2"
	"testing"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/go-gl/mathgl/mgl32"
)

func testDef(n int) *shape.Definition {
	pts := make([]mgl32.Vec3, n)
	for i := range pts {
		pts[i] = mgl32.Vec3{float32(i), float32(-i), 0}
	}
	return &shape.Definition{Points: pts, Amount: n}
}

func TestStoreArraysShareCount(t *testing.T) {
	s := Store(testDef(17), config.Builtin()["repel"], rand.New(rand.NewPCG(1, 1)))
	if s.Count != 17 {
		t.Fatalf("expected 17 particles, got %d", s.Count)
	}
	for name, got := range map[string]int{
		"positions":  len(s.Positions),
		"velocities": len(s.Velocities),
		"rest":       len(s.Rest),
		"colors":     len(s.Colors),
	} {
		if got != 17*3 {
			t.Fatalf("expected %s length %d, got %d", name, 17*3, got)
		}
	}
	if len(s.Sizes) != 17 || len(s.Glows) != 17 {
		t.Fatalf("expected scalar arrays of 17, got %d and %d", len(s.Sizes), len(s.Glows))
	}
	if s.Targets != nil {
		t.Fatalf("expected no targets without an alternate shape")
	}
}

func TestStoreStartsAtRest(t *testing.T) {
	def := testDef(5)
	s := Store(def, config.Builtin()["repel"], rand.New(rand.NewPCG(1, 1)))
	for i, p := range def.Points {
		if models.Vec3At(s.Positions, i) != p || models.Vec3At(s.Rest, i) != p {
			t.Fatalf("expected particle %d at rest %v", i, p)
		}
	}
}

func TestDepthJitterSpreadsRest(t *testing.T) {
	def := testDef(40)
	preset := config.Builtin()["drift"]
	s := Store(def, preset, rand.New(rand.NewPCG(3, 3)))
	spread := false
	for i, p := range def.Points {
		rest := models.Vec3At(s.Rest, i)
		if rest.X() != p.X() || rest.Y() != p.Y() {
			t.Fatalf("expected jitter only in z, got %v for %v", rest, p)
		}
		if z := rest.Z(); z < -preset.DepthJitter/2 || z > preset.DepthJitter/2 {
			t.Fatalf("expected z within +-%.0f, got %.2f", preset.DepthJitter/2, z)
		}
		if rest.Z() != 0 {
			spread = true
		}
		if models.Vec3At(s.Positions, i) != rest {
			t.Fatalf("expected particle %d to start at its rest point", i)
		}
	}
	if !spread {
		t.Fatalf("expected some depth spread")
	}
}

func TestStoreScatterIsSeeded(t *testing.T) {
	preset := config.Builtin()["lock"]
	a := Store(testDef(50), preset, rand.New(rand.NewPCG(7, 7)))
	b := Store(testDef(50), preset, rand.New(rand.NewPCG(7, 7)))
	moved := false
	for i := 0; i < 50; i++ {
		pa, pb := models.Vec3At(a.Positions, i), models.Vec3At(b.Positions, i)
		if pa != pb {
			t.Fatalf("expected identical scatter for identical seeds")
		}
		if pa != models.Vec3At(a.Rest, i) {
			moved = true
		}
		if pa.X() < -200 || pa.X() > 200 || pa.Y() < -100 || pa.Y() > 100 {
			t.Fatalf("expected scatter inside the volume, got %v", pa)
		}
	}
	if !moved {
		t.Fatalf("expected scattered start positions")
	}
}

func TestStoreWithTargets(t *testing.T) {
	preset := config.Builtin()["sphere"]
	def := testDef(20)
	def.Targets = AltTargets(20, preset, rand.New(rand.NewPCG(2, 2)))
	s := Store(def, preset, rand.New(rand.NewPCG(1, 1)))
	if len(s.Targets) != 60 {
		t.Fatalf("expected targets for every particle, got %d", len(s.Targets))
	}
	if got := models.Vec3At(s.Targets, 3); got != def.Targets[3] {
		t.Fatalf("expected target copied, got %v", got)
	}
}

func TestGrid(t *testing.T) {
	def := Grid(4, 3, 6)
	if len(def.Points) != 12 {
		t.Fatalf("expected 12 grid points, got %d", len(def.Points))
	}
	if def.Points[0] != (mgl32.Vec3{-9, 6, 0}) || def.Points[11] != (mgl32.Vec3{9, -6, 0}) {
		t.Fatalf("expected centred grid, got %v and %v", def.Points[0], def.Points[11])
	}
}
