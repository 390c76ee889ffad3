package game

import (
	"math/rand"

	"git.lost.host/meutraa/catch/internal/config"
)

// State is the world of one process run. It is owned by the Loop and only
// changed through Physics.
type State struct {
	PaddleX, PaddleY int
	ObjectX, ObjectY int
	Score            int
	Paused           bool
}

type Outcome int

const (
	Falling Outcome = iota
	Caught
	Missed
)

func (o Outcome) String() string {
	switch o {
	case Caught:
		return "caught"
	case Missed:
		return "missed"
	}
	return "falling"
}

// Physics holds the rules that advance a State.
type Physics struct {
	cfg config.Config
	rng *rand.Rand
}

func NewPhysics(cfg config.Config, rng *rand.Rand) *Physics {
	return &Physics{cfg: cfg, rng: rng}
}

// NewState returns the initial world: paddle centred, object at the top.
func (p *Physics) NewState() State {
	s := State{
		PaddleX: (p.cfg.Width - p.cfg.PaddleWidth) / 2,
		PaddleY: p.cfg.PaddleY(),
	}
	p.respawn(&s)
	return s
}

// respawn puts the object back at the top at a uniformly random column in
// [radius, width-radius).
func (p *Physics) respawn(s *State) {
	s.ObjectX = p.cfg.Radius + p.rng.Intn(p.cfg.Width-2*p.cfg.Radius)
	s.ObjectY = 0
}

// Update advances the object by one frame unless paused. The catch test uses
// the object's single point against the strict interior of the paddle.
func (p *Physics) Update(s *State) Outcome {
	if s.Paused {
		return Falling
	}

	s.ObjectY += p.cfg.FallSpeed

	outcome := Falling
	if s.PaddleX < s.ObjectX && s.ObjectX < s.PaddleX+p.cfg.PaddleWidth &&
		s.PaddleY < s.ObjectY && s.ObjectY < s.PaddleY+p.cfg.PaddleHeight {
		p.respawn(s)
		s.Score++
		outcome = Caught
	}

	if s.ObjectY > p.cfg.Height {
		p.respawn(s)
		outcome = Missed
	}
	return outcome
}

// MovePaddle steps the paddle dir steps to the right, wrapping around the
// playable range [0, width-paddle_width).
func (p *Physics) MovePaddle(s *State, dir int) {
	span := p.cfg.Width - p.cfg.PaddleWidth
	x := (s.PaddleX + dir*p.cfg.PaddleStep) % span
	if x < 0 {
		x += span
	}
	s.PaddleX = x
}

func (s *State) TogglePause() {
	s.Paused = !s.Paused
}
