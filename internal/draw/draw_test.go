package draw

import (
	"testing"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
)

func TestFadeIn(t *testing.T) {
	start := time.Unix(100, 0)
	scene := &models.Scene{StartTime: start}
	if got := Fade(scene, start); got != 0 {
		t.Fatalf("expected transparent at start, got %.3f", got)
	}
	mid := Fade(scene, start.Add(500*time.Millisecond))
	if mid <= 0.5 || mid >= 1 {
		t.Fatalf("expected ease-out past half way at 500ms, got %.3f", mid)
	}
	if got := Fade(scene, start.Add(2*time.Second)); got != 1 {
		t.Fatalf("expected opaque after the fade, got %.3f", got)
	}
}

func TestExitFade(t *testing.T) {
	start := time.Unix(100, 0)
	exit := start.Add(5 * time.Second)
	scene := &models.Scene{StartTime: start, IsExiting: true, ExitStartTime: exit}

	if got := Fade(scene, exit); got != 1 {
		t.Fatalf("expected full opacity as the exit starts, got %.3f", got)
	}
	prev := float32(1)
	for ms := 100; ms < 800; ms += 100 {
		got := Fade(scene, exit.Add(time.Duration(ms)*time.Millisecond))
		if got >= prev {
			t.Fatalf("expected exit fade to fall at %dms, got %.3f after %.3f", ms, got, prev)
		}
		prev = got
	}
	if ExitDone(scene, exit.Add(799*time.Millisecond)) {
		t.Fatalf("expected exit still running")
	}
	if !ExitDone(scene, exit.Add(800*time.Millisecond)) || Fade(scene, exit.Add(time.Second)) != 0 {
		t.Fatalf("expected exit finished")
	}
}
