package game

import (
	"image"
	"log"

	"git.lost.host/meutraa/catch/internal/clock"
	"git.lost.host/meutraa/catch/internal/config"
	"git.lost.host/meutraa/catch/internal/input"
	"git.lost.host/meutraa/catch/internal/render"
	"git.lost.host/meutraa/catch/internal/theme"
)

// Loop drives the menu, instructions and playing screens until Exited.
type Loop struct {
	cfg        config.Config
	background image.Image
	renderer   render.Renderer
	input      input.Source
	clock      clock.Clock
	physics    *Physics
	theme      theme.Theme

	screen Screen
	state  State
	frame  *render.Frame
}

func NewLoop(
	cfg config.Config,
	background image.Image,
	r render.Renderer,
	in input.Source,
	c clock.Clock,
	physics *Physics,
	th theme.Theme,
) *Loop {
	return &Loop{
		cfg:        cfg,
		background: background,
		renderer:   r,
		input:      in,
		clock:      c,
		physics:    physics,
		theme:      th,
		screen:     Menu,
		state:      physics.NewState(),
		frame:      render.NewFrame(cfg.Width, cfg.Height),
	}
}

func (l *Loop) Screen() Screen { return l.screen }

func (l *Loop) State() State { return l.state }

// Frame is the most recently composed frame.
func (l *Loop) Frame() *render.Frame { return l.frame }

// Run blocks until the loop reaches Exited or presenting a frame fails.
func (l *Loop) Run() error {
	for l.screen != Exited {
		var err error
		switch l.screen {
		case Menu:
			drawMenu(l.frame, l.cfg, l.theme)
			err = l.still()
		case Instructions:
			drawInstructions(l.frame, l.theme)
			err = l.still()
		case Playing:
			err = l.play()
		}
		if nil != err {
			return err
		}
	}
	log.Println("exited with score", l.state.Score)
	return nil
}

// still presents a static screen and blocks for the next event.
func (l *Loop) still() error {
	if err := l.renderer.Present(l.frame); nil != err {
		return err
	}
	l.apply(l.input.Wait())
	return nil
}

func (l *Loop) apply(e input.Event) {
	next, action := Transition(l.screen, e)
	if action == TogglePause {
		l.state.TogglePause()
		log.Println("paused:", l.state.Paused)
	}
	if next != l.screen {
		log.Printf("%v -> %v", l.screen, next)
		if next == Playing {
			l.clock.Start()
		}
	}
	l.screen = next
}

// play runs frames until the screen leaves Playing.
func (l *Loop) play() error {
	for l.screen == Playing {
		if err := l.Step(); nil != err {
			return err
		}
	}
	return nil
}

// Step runs one Playing frame: input, update, render, then the frame wait.
func (l *Loop) Step() error {
	for _, e := range l.input.Poll() {
		l.apply(e)
		if l.screen != Playing {
			return nil
		}
	}

	if l.input.Held(input.KeyLeft) {
		l.physics.MovePaddle(&l.state, -1)
	}
	if l.input.Held(input.KeyRight) {
		l.physics.MovePaddle(&l.state, 1)
	}

	switch l.physics.Update(&l.state) {
	case Caught:
		log.Println("caught, score", l.state.Score)
	case Missed:
		log.Println("missed")
	}

	drawPlaying(l.frame, l.background, l.cfg, &l.state, l.theme)
	if err := l.renderer.Present(l.frame); nil != err {
		return err
	}
	l.clock.Wait()
	return nil
}
