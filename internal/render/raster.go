package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// Rasterize returns a copy of the frame pixels with every label drawn in.
func (f *Frame) Rasterize() *image.RGBA {
	out := image.NewRGBA(f.Bounds())
	draw.Draw(out, out.Bounds(), f.RGBA, f.Bounds().Min, draw.Src)

	metrics := face.Metrics()
	ascent, height := metrics.Ascent.Ceil(), metrics.Height.Ceil()
	for _, l := range f.Labels {
		if l.Text == "" {
			continue
		}
		scale := l.Scale
		if scale < 1 {
			scale = 1
		}
		width := font.MeasureString(face, l.Text).Ceil()
		glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
		d := font.Drawer{
			Dst:  glyphs,
			Src:  image.NewUniform(l.Color),
			Face: face,
			Dot:  fixed.P(0, ascent),
		}
		d.DrawString(l.Text)

		x := l.At.X
		if l.Centered {
			x -= width * scale / 2
		}
		y := l.At.Y - ascent*scale
		dst := image.Rect(x, y, x+width*scale, y+height*scale)
		draw.NearestNeighbor.Scale(out, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
	}
	return out
}

// WritePNG stores the rasterized frame at path.
func WritePNG(path string, f *Frame) error {
	file, err := os.Create(path)
	if nil != err {
		return fmt.Errorf("unable to create snapshot: %w", err)
	}
	if err := png.Encode(file, f.Rasterize()); nil != err {
		file.Close()
		return fmt.Errorf("unable to encode snapshot: %w", err)
	}
	return file.Close()
}
