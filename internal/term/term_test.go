package term

import (
	"testing"

	"github.com/ThatOtherAndrew/Glyphdust/internal/camera"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeSink struct {
	cols, rows int
	cells      map[[2]int]rune
	styles     map[[2]int]tcell.Style
	shown      int
}

func newSink(cols, rows int) *fakeSink {
	return &fakeSink{cols: cols, rows: rows}
}

func (f *fakeSink) Size() (int, int) { return f.cols, f.rows }
func (f *fakeSink) Show() { f.shown++ }
func (f *fakeSink) Clear() {
	f.cells = map[[2]int]rune{}
	f.styles = map[[2]int]tcell.Style{}
}
func (f *fakeSink) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = primary
	f.styles[[2]int{x, y}] = style
}

type call struct {
	kind string
	x, y float64
}

type fakePointer struct {
	calls []call
}

func (f *fakePointer) PointerDown(x, y float64) { f.calls = append(f.calls, call{"down", x, y}) }
func (f *fakePointer) PointerMove(x, y float64) { f.calls = append(f.calls, call{"move", x, y}) }
func (f *fakePointer) PointerUp(x, y float64) models.Classification {
	f.calls = append(f.calls, call{"up", x, y})
	return models.ClassTap
}
func (f *fakePointer) PointerLeave() { f.calls = append(f.calls, call{"leave", 0, 0}) }

func output(cols, rows int, points []mgl32.Vec3, colors []mgl32.Vec3) models.Output {
	cam := camera.New(65, 100)
	cam.Resize(PixelSize(cols, rows))
	out := models.Output{
		Count:      len(points),
		Positions:  make([]float32, len(points)*3),
		Colors:     make([]float32, len(points)*3),
		Sizes:      make([]float32, len(points)),
		Glows:      make([]float32, len(points)),
		Model:      mgl32.Ident4(),
		View:       cam.View(),
		Projection: cam.Projection(),
		Dirty:      true,
	}
	for i := range points {
		models.SetVec3(out.Positions, i, points[i])
		models.SetVec3(out.Colors, i, colors[i])
		out.Sizes[i] = 1.5
	}
	return out
}

func TestRenderCentre(t *testing.T) {
	sink := newSink(20, 10)
	NewRenderer(sink).Render(output(20, 10, []mgl32.Vec3{{0, 0, 0}}, []mgl32.Vec3{{1, 0, 0}}))

	if sink.shown != 1 {
		t.Fatalf("expected one Show, got %d", sink.shown)
	}
	if got := sink.cells[[2]int{10, 5}]; got != '•' {
		t.Fatalf("expected a dot in the centre cell, got %q (%v)", got, sink.cells)
	}
	fg, _, _ := sink.styles[[2]int{10, 5}].Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("expected red foreground, got %v", fg)
	}
}

func TestRenderNearestWins(t *testing.T) {
	sink := newSink(20, 10)
	out := output(20, 10,
		[]mgl32.Vec3{{0, 0, 0}, {0, 0, 10}, {0, 0, -10}},
		[]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	)
	NewRenderer(sink).Render(out)
	fg, _, _ := sink.styles[[2]int{10, 5}].Decompose()
	if fg != tcell.NewRGBColor(0, 255, 0) {
		t.Fatalf("expected the nearest particle drawn, got %v", fg)
	}
}

func TestRenderSkipsBehindCamera(t *testing.T) {
	sink := newSink(20, 10)
	NewRenderer(sink).Render(output(20, 10, []mgl32.Vec3{{0, 0, 200}}, []mgl32.Vec3{{1, 1, 1}}))
	if len(sink.cells) != 0 {
		t.Fatalf("expected nothing drawn, got %v", sink.cells)
	}
}

func TestMouseSequence(t *testing.T) {
	var m Mouse
	p := &fakePointer{}
	m.Handle(tcell.NewEventMouse(2, 1, tcell.ButtonNone, 0), p)
	m.Handle(tcell.NewEventMouse(2, 1, tcell.Button1, 0), p)
	m.Handle(tcell.NewEventMouse(5, 1, tcell.Button1, 0), p)
	m.Handle(tcell.NewEventMouse(5, 1, tcell.ButtonNone, 0), p)

	want := []call{
		{"move", 20, 24},
		{"down", 20, 24},
		{"move", 44, 24},
		{"up", 44, 24},
	}
	if len(p.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), p.calls)
	}
	for i := range want {
		if p.calls[i] != want[i] {
			t.Fatalf("call %d: expected %+v, got %+v", i, want[i], p.calls[i])
		}
	}
}
