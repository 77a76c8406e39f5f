package video

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"sync"
	"time"

	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"golang.org/x/image/draw"
)

// ErrStaleFrame means the source has nothing newer than the last frame it
// handed out.
var ErrStaleFrame = errors.New("stale video frame")

type FrameSource interface {
	Playing() bool
	Ready() bool
	Frame(w, h int) (*image.RGBA, error)
}

const defaultDelay = 100 * time.Millisecond

// GIFSource plays a decoded animated GIF. Frames are composited once up
// front so seeking is just an index change.
type GIFSource struct {
	mu      sync.Mutex
	name    string
	frames  []*image.RGBA
	delays  []time.Duration
	index   int
	elapsed time.Duration
	playing bool

	served  int
	servedW int
	servedH int
	scaled  *image.RGBA
}

func NewGIFSource(name string, g *gif.GIF) (*GIFSource, error) {
	if g == nil || len(g.Image) == 0 {
		return nil, &shape.AssetLoadError{Asset: name, Err: fmt.Errorf("gif has no frames")}
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
	}

	src := &GIFSource{name: name, playing: true, served: -1}
	canvas := image.NewRGBA(bounds)
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = clone(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		src.frames = append(src.frames, clone(canvas))

		delay := defaultDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		src.delays = append(src.delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return src, nil
}

func LoadGIF(path string) (*GIFSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &shape.AssetLoadError{Asset: path, Err: err}
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, &shape.AssetLoadError{Asset: path, Err: fmt.Errorf("decode gif: %w", err)}
	}
	return NewGIFSource(path, g)
}

func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func (s *GIFSource) Name() string {
	return s.name
}

func (s *GIFSource) Len() int {
	return len(s.frames)
}

func (s *GIFSource) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
}

func (s *GIFSource) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

func (s *GIFSource) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *GIFSource) Ready() bool {
	return len(s.frames) > 0
}

// Index is the frame currently on screen.
func (s *GIFSource) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Advance moves the playhead by dt, looping at the end.
func (s *GIFSource) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing || dt <= 0 {
		return
	}
	s.elapsed += dt
	for s.elapsed >= s.delays[s.index] {
		s.elapsed -= s.delays[s.index]
		s.index = (s.index + 1) % len(s.frames)
	}
}

// Frame returns the current frame scaled to w x h. Asking twice for the
// same frame at the same size yields ErrStaleFrame.
func (s *GIFSource) Frame(w, h int) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("frame size %dx%d", w, h)
	}
	if s.index == s.served && w == s.servedW && h == s.servedH {
		return nil, ErrStaleFrame
	}

	if s.scaled == nil || s.scaled.Bounds().Dx() != w || s.scaled.Bounds().Dy() != h {
		s.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	src := s.frames[s.index]
	draw.BiLinear.Scale(s.scaled, s.scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	s.served, s.servedW, s.servedH = s.index, w, h
	return s.scaled, nil
}
