package game

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"git.lost.host/meutraa/catch/internal/clock"
	"git.lost.host/meutraa/catch/internal/config"
	"git.lost.host/meutraa/catch/internal/input"
	"git.lost.host/meutraa/catch/internal/render"
	"git.lost.host/meutraa/catch/internal/theme"
)

type fakeRenderer struct {
	presented int
	labels    [][]string
	fail      error
}

func (r *fakeRenderer) Init() error { return nil }
func (r *fakeRenderer) Deinit() error { return nil }

func (r *fakeRenderer) Present(f *render.Frame) error {
	if nil != r.fail {
		return r.fail
	}
	r.presented++
	var texts []string
	for _, l := range f.Labels {
		texts = append(texts, l.Text)
	}
	r.labels = append(r.labels, texts)
	return nil
}

func (r *fakeRenderer) last() string {
	if len(r.labels) == 0 {
		return ""
	}
	return strings.Join(r.labels[len(r.labels)-1], "\n")
}

// fakeSource replays scripted events. Each Poll returns the next batch and
// Wait the next single event; both close once exhausted.
type fakeSource struct {
	waits []input.Event
	polls [][]input.Event
	held  map[input.Key]bool
}

func (s *fakeSource) Poll() []input.Event {
	if len(s.polls) == 0 {
		return []input.Event{closeEvent}
	}
	batch := s.polls[0]
	s.polls = s.polls[1:]
	return batch
}

func (s *fakeSource) Wait() input.Event {
	if len(s.waits) == 0 {
		return closeEvent
	}
	e := s.waits[0]
	s.waits = s.waits[1:]
	return e
}

func (s *fakeSource) Held(k input.Key) bool { return s.held[k] }

func newLoop(src *fakeSource) (*Loop, *fakeRenderer, *clock.ManualClock) {
	cfg := config.Defaults()
	r := &fakeRenderer{}
	c := &clock.ManualClock{}
	l := NewLoop(cfg, image.White, r, src, c, NewPhysics(cfg, rand.New(rand.NewSource(1))), &theme.DefaultTheme{})
	return l, r, c
}

func TestMenuQuit(t *testing.T) {
	l, r, c := newLoop(&fakeSource{waits: []input.Event{letter('q')}})
	if err := l.Run(); nil != err {
		t.Fatal(err)
	}
	if l.Screen() != Exited || r.presented != 1 || c.Started {
		t.Error("expected a single menu frame", l.Screen(), r.presented, c.Started)
	}
	if !strings.Contains(r.last(), "Press 'S' to start the game") {
		t.Error("menu not drawn", r.last())
	}
}

func TestInstructionsReturnToMenu(t *testing.T) {
	src := &fakeSource{waits: []input.Event{letter('i'), letter('z'), letter('q')}}
	l, r, _ := newLoop(src)
	if err := l.Run(); nil != err {
		t.Fatal(err)
	}
	if r.presented != 3 {
		t.Fatal("expected menu, instructions, menu; got", r.presented)
	}
	if !strings.Contains(strings.Join(r.labels[1], "\n"), "Game Instructions:") {
		t.Error("instructions not drawn", r.labels[1])
	}
	if !strings.Contains(r.last(), "Press 'I' for instructions") {
		t.Error("menu not drawn again", r.last())
	}
}

func TestPlayUntilEsc(t *testing.T) {
	src := &fakeSource{
		waits: []input.Event{letter('s')},
		polls: [][]input.Event{nil, nil, nil, {esc}},
	}
	l, r, c := newLoop(src)
	if err := l.Run(); nil != err {
		t.Fatal(err)
	}
	if l.Screen() != Exited {
		t.Error("expected Exited, got", l.Screen())
	}
	// one menu frame, three playing frames
	if r.presented != 4 || c.Ticks != 3 || !c.Started {
		t.Error("unexpected frame count", r.presented, c.Ticks, c.Started)
	}
	if s := l.State(); s.ObjectY != 30 {
		t.Error("object should have fallen three frames", s.ObjectY)
	}
	if !strings.Contains(r.last(), "Score: 0") {
		t.Error("score not drawn", r.last())
	}
}

func TestPauseStopsPhysics(t *testing.T) {
	src := &fakeSource{
		waits: []input.Event{letter('s')},
		polls: [][]input.Event{nil, {letter('p')}, nil, nil},
		held:  map[input.Key]bool{input.KeyRight: true},
	}
	l, r, _ := newLoop(src)
	l.apply(src.Wait())
	if l.Screen() != Playing {
		t.Fatal("expected Playing, got", l.Screen())
	}

	if err := l.Step(); nil != err {
		t.Fatal(err)
	}
	y, x := l.State().ObjectY, l.State().PaddleX
	if err := l.Step(); nil != err {
		t.Fatal(err)
	}
	if !l.State().Paused || l.Screen() != Playing {
		t.Fatal("P should pause without leaving Playing")
	}
	for i := 0; i < 2; i++ {
		if err := l.Step(); nil != err {
			t.Fatal(err)
		}
	}
	s := l.State()
	if s.ObjectY != y {
		t.Error("object moved while paused", y, s.ObjectY)
	}
	if s.PaddleX != x+3*20 {
		t.Error("paddle should still move while paused", x, s.PaddleX)
	}
	if !strings.Contains(r.last(), "Paused") {
		t.Error("paused indicator not drawn", r.last())
	}
}

func TestCloseWhilePlaying(t *testing.T) {
	src := &fakeSource{waits: []input.Event{letter('S')}, polls: [][]input.Event{{closeEvent}}}
	l, r, _ := newLoop(src)
	if err := l.Run(); nil != err {
		t.Fatal(err)
	}
	if l.Screen() != Exited || r.presented != 1 {
		t.Error("close should exit before drawing a frame", l.Screen(), r.presented)
	}
}

func TestPresentError(t *testing.T) {
	broken := errors.New("display gone")
	l, r, _ := newLoop(&fakeSource{})
	r.fail = broken
	if err := l.Run(); !errors.Is(err, broken) {
		t.Error("expected the present error, got", err)
	}
}

func TestDrawPlaying(t *testing.T) {
	cfg := config.Defaults()
	th := &theme.DefaultTheme{}
	f := render.NewFrame(cfg.Width, cfg.Height)
	s := State{PaddleX: 100, PaddleY: cfg.PaddleY(), ObjectX: 700, ObjectY: 500, Score: 12}
	drawPlaying(f, image.White, cfg, &s, th)

	base, top := th.Paddle()
	if f.RGBAAt(110, cfg.PaddleY()+1) != base {
		t.Error("cake base not drawn")
	}
	if f.RGBAAt(130, cfg.PaddleY()-1) != top || f.RGBAAt(110, cfg.PaddleY()-1) == top {
		t.Error("cake top tier not inset")
	}
	if f.RGBAAt(705, 520) != th.Candle() {
		t.Error("candle not drawn")
	}
	if f.RGBAAt(710, 500-cfg.Radius) != th.Flame() {
		t.Error("flame not drawn")
	}
	if f.RGBAAt(5, 5) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("background not copied", f.RGBAAt(5, 5))
	}
	if len(f.Labels) != 1 || f.Labels[0].Text != "Score: 12" {
		t.Error("unexpected labels", f.Labels)
	}
}
