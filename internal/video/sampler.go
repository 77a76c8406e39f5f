// Package video maps the luminance of a playing frame source onto a grid
// of particles.
package video

import (
	"errors"
	"image"

	"github.com/ThatOtherAndrew/Glyphdust/internal/config"
	"github.com/ThatOtherAndrew/Glyphdust/internal/models"
	"github.com/ThatOtherAndrew/Glyphdust/internal/shape"
	"github.com/ThatOtherAndrew/Glyphdust/internal/spawn"
	"github.com/go-gl/mathgl/mgl32"
)

const lumaThreshold = 0.5

type Sampler struct {
	Cols, Rows int
	Spacing    float32
	Bright     mgl32.Vec3
	Dark       mgl32.Vec3
}

func NewSampler(p config.VideoParams) *Sampler {
	density := max(p.Density, 1)
	br, bg, bb := p.Bright.RGB()
	dr, dg, db := p.Dark.RGB()
	return &Sampler{
		Cols:    max(p.Width/density, 1),
		Rows:    max(p.Height/density, 1),
		Spacing: p.Spacing,
		Bright:  mgl32.Vec3{br, bg, bb},
		Dark:    mgl32.Vec3{dr, dg, db},
	}
}

// Grid is the rest layout matching the sampling order, row-major from the
// top-left cell.
func (s *Sampler) Grid() *shape.Definition {
	return spawn.Grid(s.Cols, s.Rows, s.Spacing)
}

// Luma is the Rec. 601 luminance of an RGBA pixel in [0, 1].
func Luma(r, g, b uint8) float32 {
	return (0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)) / 255
}

// Sample writes bright or dark base colours into store from the current
// frame. It reports false, leaving the store untouched, when there is no
// new frame to read.
func (s *Sampler) Sample(src FrameSource, store *models.ParticleStore) (bool, error) {
	if src == nil || store == nil || !src.Playing() || !src.Ready() {
		return false, nil
	}
	frame, err := src.Frame(s.Cols, s.Rows)
	if errors.Is(err, ErrStaleFrame) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.apply(frame, store)
	return true, nil
}

func (s *Sampler) apply(frame *image.RGBA, store *models.ParticleStore) {
	b := frame.Bounds()
	for row := 0; row < s.Rows && row < b.Dy(); row++ {
		for col := 0; col < s.Cols && col < b.Dx(); col++ {
			i := row*s.Cols + col
			if i >= store.Count {
				return
			}
			o := frame.PixOffset(b.Min.X+col, b.Min.Y+row)
			c := s.Dark
			if Luma(frame.Pix[o], frame.Pix[o+1], frame.Pix[o+2]) > lumaThreshold {
				c = s.Bright
			}
			models.SetVec3(store.Base, i, c)
		}
	}
}
