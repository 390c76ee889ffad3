package theme

import "image/color"

type Theme interface {
	// Menu and instructions screen fill
	Backdrop() color.RGBA
	// Cake base and top tier
	Paddle() (base, top color.RGBA)
	Candle() color.RGBA
	Flame() color.RGBA
	Text() color.RGBA
	Score() color.RGBA
}
