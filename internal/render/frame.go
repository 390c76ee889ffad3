package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Label is text placed on a frame. At is the baseline origin in frame pixels,
// or the baseline centre when Centered is set.
type Label struct {
	At       image.Point
	Scale    int
	Color    color.RGBA
	Text     string
	Centered bool
}

// Frame is the full resolution frame buffer composed each iteration. Shapes
// are drawn into the pixels, text is kept as labels so each presenter can
// choose how to show it.
type Frame struct {
	*image.RGBA
	Labels []Label
}

func NewFrame(width, height int) *Frame {
	return &Frame{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Fill paints the whole frame and drops all labels.
func (f *Frame) Fill(c color.Color) {
	draw.Draw(f.RGBA, f.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	f.Labels = f.Labels[:0]
}

// Copy paints src, aligned to its top left corner, over the whole frame and
// drops all labels.
func (f *Frame) Copy(src image.Image) {
	draw.Draw(f.RGBA, f.Bounds(), src, src.Bounds().Min, draw.Src)
	f.Labels = f.Labels[:0]
}

func (f *Frame) FillRect(r image.Rectangle, c color.Color) {
	r = r.Canon().Intersect(f.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(f.RGBA, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (f *Frame) FillCircle(center image.Point, radius int, c color.RGBA) {
	box := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(f.Bounds())
	rr := radius * radius
	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - center.Y
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - center.X
			if dx*dx+dy*dy <= rr {
				f.SetRGBA(x, y, c)
			}
		}
	}
}

func (f *Frame) Text(at image.Point, scale int, c color.RGBA, text string) {
	f.Labels = append(f.Labels, Label{At: at, Scale: scale, Color: c, Text: text})
}

func (f *Frame) CenteredText(y, scale int, c color.RGBA, text string) {
	f.Labels = append(f.Labels, Label{
		At:       image.Point{X: f.Bounds().Dx() / 2, Y: y},
		Scale:    scale,
		Color:    c,
		Text:     text,
		Centered: true,
	})
}
