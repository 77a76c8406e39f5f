package shape

import (
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// AssetLoadError reports a font or media asset that could not be read or parsed.
type AssetLoadError struct {
	Asset string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Asset, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// SubPath is one outline contour in y-up world units.
type SubPath struct {
	Points []mgl32.Vec2
	Closed bool
	Holes  []SubPath
}

type OutlineProvider interface {
	Outlines(text string, size float32) ([]SubPath, error)
}

// FontOutlines lays out text with an sfnt font and returns its glyph contours.
type FontOutlines struct {
	mu    sync.Mutex
	name  string
	font  *sfnt.Font
	buf   sfnt.Buffer
	steps int
}

func NewFontOutlines(name string, data []byte) (*FontOutlines, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, &AssetLoadError{Asset: name, Err: err}
	}
	return &FontOutlines{name: name, font: f, steps: 8}, nil
}

func LoadFontOutlines(path string) (*FontOutlines, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetLoadError{Asset: path, Err: err}
	}
	return NewFontOutlines(path, data)
}

func DefaultFontOutlines() (*FontOutlines, error) {
	return NewFontOutlines("goregular", goregular.TTF)
}

func (f *FontOutlines) Name() string {
	return f.name
}

func fx(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func (f *FontOutlines) Outlines(text string, size float32) ([]SubPath, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	upm := int(f.font.UnitsPerEm())
	if upm <= 0 {
		return nil, &AssetLoadError{Asset: f.name, Err: fmt.Errorf("invalid units per em %d", upm)}
	}
	// Load at one pixel per font unit so outlines keep full precision.
	ppem := fixed.I(upm)
	scale := size / float32(upm)

	lineHeight := float32(upm) * 1.2
	if m, err := f.font.Metrics(&f.buf, ppem, font.HintingNone); err == nil && m.Height > 0 {
		lineHeight = fx(m.Height)
	}

	var contours [][]mgl32.Vec2
	var penX, penY float32
	var prev sfnt.GlyphIndex
	hasPrev := false

	for _, r := range text {
		if r == '\n' {
			penX = 0
			penY -= lineHeight
			hasPrev = false
			continue
		}

		gi, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			return nil, &AssetLoadError{Asset: f.name, Err: fmt.Errorf("glyph %q: %w", r, err)}
		}

		if hasPrev {
			if k, err := f.font.Kern(&f.buf, prev, gi, ppem, font.HintingNone); err == nil {
				penX += fx(k)
			}
		}

		segs, err := f.font.LoadGlyph(&f.buf, gi, ppem, nil)
		if err != nil {
			return nil, &AssetLoadError{Asset: f.name, Err: fmt.Errorf("glyph %q: %w", r, err)}
		}
		contours = append(contours, flatten(segs, penX, penY, f.steps)...)

		adv, err := f.font.GlyphAdvance(&f.buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, &AssetLoadError{Asset: f.name, Err: fmt.Errorf("glyph %q: %w", r, err)}
		}
		penX += fx(adv)
		prev = gi
		hasPrev = true
	}

	for _, c := range contours {
		for i := range c {
			c[i] = c[i].Mul(scale)
		}
	}

	return classify(contours), nil
}

// flatten converts sfnt segments (y down) into y-up polylines offset by the pen.
func flatten(segs sfnt.Segments, ox, oy float32, steps int) [][]mgl32.Vec2 {
	pt := func(p fixed.Point26_6) mgl32.Vec2 {
		return mgl32.Vec2{ox + fx(p.X), oy - fx(p.Y)}
	}

	var out [][]mgl32.Vec2
	var cur []mgl32.Vec2
	for _, s := range segs {
		if s.Op != sfnt.SegmentOpMoveTo && len(cur) == 0 {
			continue
		}
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = []mgl32.Vec2{pt(s.Args[0])}
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0, c, p1 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1])
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u).Add(c.Mul(2*u*t)).Add(p1.Mul(t*t)))
			}
		case sfnt.SegmentOpCubeTo:
			p0, c1, c2, p1 := cur[len(cur)-1], pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2])
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				u := 1 - t
				cur = append(cur, p0.Mul(u*u*u).
					Add(c1.Mul(3*u*u*t)).
					Add(c2.Mul(3*u*t*t)).
					Add(p1.Mul(t*t*t)))
			}
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

func signedArea(c []mgl32.Vec2) float32 {
	var a float32
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X()*c[j].Y() - c[j].X()*c[i].Y()
	}
	return a / 2
}

func contains(poly []mgl32.Vec2, p mgl32.Vec2) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y() > p.Y()) != (b.Y() > p.Y()) &&
			p.X() < (b.X()-a.X())*(p.Y()-a.Y())/(b.Y()-a.Y())+a.X() {
			in = !in
		}
	}
	return in
}

// classify splits contours into outers and holes by winding, taking the
// largest contour's winding as the outer direction.
func classify(contours [][]mgl32.Vec2) []SubPath {
	if len(contours) == 0 {
		return nil
	}

	areas := make([]float32, len(contours))
	largest := 0
	for i, c := range contours {
		areas[i] = signedArea(c)
		if abs(areas[i]) > abs(areas[largest]) {
			largest = i
		}
	}
	outerSign := areas[largest] >= 0

	var outers []int
	var holes []int
	for i := range contours {
		if (areas[i] >= 0) == outerSign {
			outers = append(outers, i)
		} else {
			holes = append(holes, i)
		}
	}

	// Smallest containing outer wins for nested shapes.
	sort.SliceStable(outers, func(a, b int) bool {
		return abs(areas[outers[a]]) < abs(areas[outers[b]])
	})

	paths := make(map[int]*SubPath, len(outers))
	for _, i := range outers {
		paths[i] = &SubPath{Points: contours[i], Closed: true}
	}
	for _, h := range holes {
		owner := -1
		for _, o := range outers {
			if contains(contours[o], contours[h][0]) {
				owner = o
				break
			}
		}
		hole := SubPath{Points: contours[h], Closed: true}
		if owner < 0 {
			paths[h] = &hole
			outers = append(outers, h)
			continue
		}
		paths[owner].Holes = append(paths[owner].Holes, hole)
	}

	// Emit in original contour order for deterministic layout.
	sort.Ints(outers)
	out := make([]SubPath, 0, len(outers))
	for _, i := range outers {
		out = append(out, *paths[i])
	}
	return out
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
