package game

import (
	"fmt"
	"image"

	"git.lost.host/meutraa/catch/internal/config"
	"git.lost.host/meutraa/catch/internal/render"
	"git.lost.host/meutraa/catch/internal/theme"
)

// Cake and candle proportions in field pixels.
const (
	tierInset   = 20
	tierHeight  = 60
	candleWidth = 23
	candleTall  = 60
	wickOffset  = 10

	scoreScale = 5
	menuScale  = 1
)

var instructions = [...]string{
	"Game Instructions:",
	"Move the paddle using the left and right arrow keys.",
	"Catch the falling ball.",
	"Press 'P' to pause or resume the game.",
	"Press Esc to leave the game, 'Q' to quit from the menu.",
}

func drawMenu(f *render.Frame, cfg config.Config, th theme.Theme) {
	f.Fill(th.Backdrop())
	f.CenteredText(cfg.Height/3, menuScale, th.Text(), "Press 'S' to start the game")
	f.CenteredText(2*cfg.Height/3, menuScale, th.Text(), "Press 'Q' to exit the game")
	f.CenteredText(2*cfg.Height/3+50, menuScale, th.Text(), "Press 'I' for instructions")
}

func drawInstructions(f *render.Frame, th theme.Theme) {
	f.Fill(th.Backdrop())
	for i, line := range instructions {
		f.Text(image.Pt(20, 30*(i+1)), menuScale, th.Text(), line)
	}
}

func drawPlaying(f *render.Frame, background image.Image, cfg config.Config, s *State, th theme.Theme) {
	f.Copy(background)

	base, top := th.Paddle()
	f.FillRect(image.Rect(s.PaddleX, s.PaddleY, s.PaddleX+cfg.PaddleWidth, s.PaddleY+cfg.PaddleHeight), base)
	f.FillRect(image.Rect(s.PaddleX+tierInset, s.PaddleY-tierHeight, s.PaddleX+cfg.PaddleWidth-tierInset, s.PaddleY), top)

	f.FillRect(image.Rect(s.ObjectX, s.ObjectY, s.ObjectX+candleWidth, s.ObjectY+candleTall), th.Candle())
	f.FillCircle(image.Pt(s.ObjectX+wickOffset, s.ObjectY-cfg.Radius), cfg.Radius/3, th.Flame())

	f.Text(image.Pt(50, 150), scoreScale, th.Score(), fmt.Sprintf("Score: %v", s.Score))
	if s.Paused {
		f.CenteredText(cfg.Height/2, scoreScale, th.Score(), "Paused")
	}
}
