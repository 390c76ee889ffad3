package render

import (
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/term"
)

const halfBlock = "▀"

// DefaultRenderer presents frames on the terminal. Every cell shows two frame
// rows with a half block glyph, the upper row as foreground and the lower row
// as background. Labels are written as plain terminal text.
type DefaultRenderer struct {
	Title string

	// Out and Size default to stdout and its terminal size.
	Out  io.Writer
	Size func() (columns, rows int, err error)

	buffer       strings.Builder
	restoreState *term.State
	scaled       *image.RGBA
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) size() (int, int, error) {
	if nil == r.Size {
		return term.GetSize(int(os.Stdout.Fd()))
	}
	return r.Size()
}

func (r *DefaultRenderer) Init() error {
	if nil == r.Out && term.IsTerminal(int(os.Stdout.Fd())) {
		state, err := term.MakeRaw(int(os.Stdout.Fd()))
		if nil != err {
			return err
		}
		r.restoreState = state
	}

	r.buffer.WriteString("\033[?1049h") // Enable alternate buffer
	r.buffer.WriteString("\033[?25l")   // Make the cursor invisible
	r.buffer.WriteString("\033[2J")     // Clear the screen
	if r.Title != "" {
		r.buffer.WriteString("\033]2;" + r.Title + "\007")
	}
	return r.flush()
}

func (r *DefaultRenderer) Deinit() error {
	r.buffer.WriteString("\033[0m")
	r.buffer.WriteString("\033[?1049l") // Disable alternate buffer
	r.buffer.WriteString("\033[?25h")   // Make the cursor visible
	err := r.flush()
	if nil != r.restoreState {
		if rerr := term.Restore(int(os.Stdout.Fd()), r.restoreState); nil != rerr {
			return rerr
		}
		r.restoreState = nil
	}
	return err
}

// viewport fits the frame into the terminal keeping its aspect ratio. It
// returns the scaled pixel size and the cell offset of the top left corner.
func viewport(frame image.Rectangle, columns, rows int) (w, h, col, row int) {
	fw, fh := frame.Dx(), frame.Dy()
	if fw <= 0 || fh <= 0 || columns <= 0 || rows <= 0 {
		return 0, 0, 0, 0
	}
	pw, ph := columns, rows*2
	if pw*fh <= ph*fw {
		w, h = pw, pw*fh/fw
	} else {
		w, h = ph*fw/fh, ph
	}
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	h -= h % 2
	return w, h, (columns - w) / 2, (rows - h/2) / 2
}

func (r *DefaultRenderer) Present(frame *Frame) error {
	columns, rows, err := r.size()
	if nil != err {
		return err
	}
	w, h, offCol, offRow := viewport(frame.Bounds(), columns, rows)
	if w == 0 {
		return nil
	}

	if nil == r.scaled || r.scaled.Bounds().Dx() != w || r.scaled.Bounds().Dy() != h {
		r.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
		r.buffer.WriteString("\033[0m\033[2J")
	}
	draw.ApproxBiLinear.Scale(r.scaled, r.scaled.Bounds(), frame.RGBA, frame.Bounds(), draw.Src, nil)

	for y := 0; y < h/2; y++ {
		r.moveTo(offRow+y, offCol)
		var fg, bg color.RGBA
		for x := 0; x < w; x++ {
			top, bottom := r.scaled.RGBAAt(x, 2*y), r.scaled.RGBAAt(x, 2*y+1)
			if x == 0 || top != fg {
				r.color(38, top)
				fg = top
			}
			if x == 0 || bottom != bg {
				r.color(48, bottom)
				bg = bottom
			}
			r.buffer.WriteString(halfBlock)
		}
	}

	r.labels(frame, w, h, offCol, offRow)
	r.buffer.WriteString("\033[0m")
	return r.flush()
}

// labels writes frame labels at the cell nearest to their position. A label
// that lands on a row already used by another label moves down a row, the
// terminal having far fewer rows than the frame has text lines.
func (r *DefaultRenderer) labels(frame *Frame, w, h, offCol, offRow int) {
	fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()
	used := map[int]bool{}
	for _, l := range frame.Labels {
		text := []rune(l.Text)
		if len(text) == 0 {
			continue
		}
		x := l.At.X * w / fw
		y := (l.At.Y * h / fh) / 2
		if l.Centered {
			x -= len(text) / 2
		}
		for used[y] && y < h/2-1 {
			y++
		}
		if y < 0 || y >= h/2 {
			continue
		}
		used[y] = true
		if x < 0 {
			text = text[min(-x, len(text)):]
			x = 0
		}
		if x+len(text) > w {
			text = text[:max(w-x, 0)]
		}
		if len(text) == 0 {
			continue
		}

		r.moveTo(offRow+y, offCol+x)
		r.color(38, l.Color)
		for i, c := range text {
			r.color(48, r.scaled.RGBAAt(x+i, 2*y))
			r.buffer.WriteRune(c)
		}
	}
}

func (r *DefaultRenderer) moveTo(row, column int) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row + 1))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column + 1))
	r.buffer.WriteString("H")
}

func (r *DefaultRenderer) color(layer int, c color.RGBA) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(layer))
	r.buffer.WriteString(";2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
}

func (r *DefaultRenderer) flush() error {
	_, err := io.WriteString(r.out(), r.buffer.String())
	r.buffer.Reset()
	return err
}
