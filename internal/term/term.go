// Package term draws engine output into a terminal with tcell. Each cell
// stands for a CellWidth x CellHeight pixel block so the engine keeps its
// pixel-based tap and drag thresholds.
package term

import (
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

// Sink is the part of tcell.Screen the renderer writes to.
type Sink interface {
	Size() (int, int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Pointer receives pixel-space pointer events.
type Pointer interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64) models.Classification
	PointerLeave()
}

// CellCenter maps a cell to the pixel at its centre.
func CellCenter(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

// PixelSize is the pixel surface a cols x rows terminal stands for.
func PixelSize(cols, rows int) (int, int) {
	return cols * CellWidth, rows * CellHeight
}

// Mouse turns tcell mouse events, which only carry button state, into
// press, move and release calls.
type Mouse struct {
	pressed bool
}

func (m *Mouse) Handle(ev *tcell.EventMouse, p Pointer) {
	col, row := ev.Position()
	x, y := CellCenter(col, row)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !m.pressed:
		p.PointerDown(x, y)
	case !down && m.pressed:
		p.PointerUp(x, y)
	default:
		p.PointerMove(x, y)
	}
	m.pressed = down
}

type cell struct {
	depth float32
	color mgl32.Vec3
	glow  float32
	size  float32
}

type Renderer struct {
	sink  Sink
	cells []cell
	cols  int
	rows  int
}

func NewRenderer(sink Sink) *Renderer {
	return &Renderer{sink: sink}
}

func glyph(c cell) rune {
	switch {
	case c.glow > 0.5:
		return '*'
	case c.size >= 2.5:
		return '●'
	case c.size >= 1.2:
		return '•'
	}
	return '·'
}

func channel(v float32) int32 {
	return int32(max(0, min(1, v)) * 255)
}

// Render projects every particle and keeps the nearest one per cell.
func (r *Renderer) Render(out models.Output) {
	cols, rows := r.sink.Size()
	if cols != r.cols || rows != r.rows || r.cells == nil {
		r.cols, r.rows = cols, rows
		r.cells = make([]cell, cols*rows)
	}
	for i := range r.cells {
		r.cells[i] = cell{depth: -1}
	}

	mvp := out.Projection.Mul4(out.View).Mul4(out.Model)
	for i := 0; i < out.Count; i++ {
		p := models.Vec3At(out.Positions, i)
		clip := mvp.Mul4x1(p.Vec4(1))
		if clip.W() <= 0 {
			continue
		}
		nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
		col := int((nx + 1) / 2 * float32(cols))
		row := int((1 - ny) / 2 * float32(rows))
		if nx < -1 || ny < -1 || col < 0 || row < 0 || col >= cols || row >= rows {
			continue
		}
		c := &r.cells[row*cols+col]
		if c.depth >= 0 && c.depth <= clip.W() {
			continue
		}
		*c = cell{
			depth: clip.W(),
			color: models.Vec3At(out.Colors, i),
			glow:  out.Glows[i],
			size:  out.Sizes[i],
		}
	}

	r.sink.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := r.cells[row*cols+col]
			if c.depth < 0 || c.color == (mgl32.Vec3{}) {
				continue
			}
			fg := tcell.NewRGBColor(channel(c.color[0]), channel(c.color[1]), channel(c.color[2]))
			r.sink.SetContent(col, row, glyph(c), nil, tcell.StyleDefault.Foreground(fg))
		}
	}
	r.sink.Show()
}

// Engine is what the terminal loop drives.
type Engine interface {
	Pointer
	Resize(width, height int)
	Tick(dt time.Duration)
	Output() models.Output
}
