package theme

import (
	"image/color"

	"golang.org/x/image/colornames"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) Backdrop() color.RGBA {
	return colornames.Lightpink
}

func (t *DefaultTheme) Paddle() (color.RGBA, color.RGBA) {
	return cakeBase, cakeTop
}

func (t *DefaultTheme) Candle() color.RGBA {
	return candle
}

func (t *DefaultTheme) Flame() color.RGBA {
	return colornames.Orange
}

func (t *DefaultTheme) Text() color.RGBA {
	return colornames.White
}

func (t *DefaultTheme) Score() color.RGBA {
	return colornames.Black
}

var (
	cakeBase = color.RGBA{102, 62, 34, 255} // sponge
	cakeTop  = color.RGBA{66, 21, 17, 255}  // chocolate
	candle   = color.RGBA{82, 113, 255, 255}
)
