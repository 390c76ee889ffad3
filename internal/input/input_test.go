package input

import (
	"testing"
	"time"

	"github.com/eiannone/keyboard"
)

type clockStub struct {
	t time.Time
}

func (c *clockStub) now() time.Time { return c.t }

func newSource(hold time.Duration) (*ChannelSource, chan Event, *clockStub) {
	events := make(chan Event, 16)
	c := &clockStub{t: time.Unix(0, 0)}
	s := NewChannelSource(events, hold)
	s.now = c.now
	return s, events, c
}

func TestEventIs(t *testing.T) {
	e := Event{Key: KeyRune, Rune: 'S'}
	if !e.Is('s') || !e.Is('S') || e.Is('q') {
		t.Error("case insensitive match failed")
	}
	if (Event{Key: KeyEsc}).Is(0) {
		t.Error("non rune key matched a rune")
	}
}

func TestPollDrainsWithoutBlocking(t *testing.T) {
	s, events, _ := newSource(time.Second)
	if got := s.Poll(); len(got) != 0 {
		t.Fatal("expected no events", got)
	}
	events <- Event{Key: KeyRune, Rune: 'p'}
	events <- Event{Key: KeyEsc}
	got := s.Poll()
	if len(got) != 2 || !got[0].Is('p') || got[1].Key != KeyEsc {
		t.Error("unexpected events", got)
	}
}

func TestHoldWindow(t *testing.T) {
	s, events, c := newSource(100 * time.Millisecond)
	if s.Held(KeyLeft) {
		t.Fatal("key held before any press")
	}
	events <- Event{Key: KeyLeft}
	s.Poll()
	c.t = c.t.Add(50 * time.Millisecond)
	if !s.Held(KeyLeft) || s.Held(KeyRight) {
		t.Error("held state wrong inside the window")
	}
	c.t = c.t.Add(50 * time.Millisecond)
	if s.Held(KeyLeft) {
		t.Error("key still held after the window")
	}
}

// A terminal sends the first repeat only after its repeat delay, then repeats
// every ~30ms. Held state follows the window it is given across that gap.
func TestHoldAcrossRepeatDelay(t *testing.T) {
	tests := map[time.Duration]bool{
		120 * time.Millisecond: false,
		600 * time.Millisecond: true,
	}
	for hold, expected := range tests {
		s, events, c := newSource(hold)
		events <- Event{Key: KeyRight}
		s.Poll()
		c.t = c.t.Add(500 * time.Millisecond)
		if s.Held(KeyRight) != expected {
			t.Errorf("hold %v: held before first repeat = %v, expected %v", hold, !expected, expected)
		}
		for i := 0; i < 5; i++ {
			events <- Event{Key: KeyRight}
			s.Poll()
			c.t = c.t.Add(30 * time.Millisecond)
			if !s.Held(KeyRight) {
				t.Errorf("hold %v: released between repeats", hold)
			}
		}
	}
}

func TestExactHeld(t *testing.T) {
	s, events, c := newSource(0)
	s.Exact = true
	events <- Event{Key: KeyRight}
	s.Poll()
	c.t = c.t.Add(time.Hour)
	if !s.Held(KeyRight) {
		t.Error("pressed key not held")
	}
	events <- Event{Key: KeyRight, Up: true}
	if got := s.Poll(); len(got) != 0 {
		t.Error("release events must not be delivered", got)
	}
	if s.Held(KeyRight) {
		t.Error("released key still held")
	}
}

func TestWaitSkipsReleases(t *testing.T) {
	s, events, _ := newSource(0)
	events <- Event{Key: KeyRune, Rune: 'i', Up: true}
	events <- Event{Key: KeyRune, Rune: 'q'}
	if e := s.Wait(); !e.Is('q') {
		t.Error("unexpected event", e)
	}
}

func TestClosedChannelCloses(t *testing.T) {
	s, events, _ := newSource(0)
	close(events)
	if e := s.Wait(); !e.Close {
		t.Error("expected a close event", e)
	}
	if got := s.Poll(); len(got) != 1 || !got[0].Close {
		t.Error("expected a close event", got)
	}
}

var keyboardTests = map[keyboard.KeyEvent]Event{
	{Key: keyboard.KeyEsc}:        {Key: KeyEsc},
	{Key: keyboard.KeyArrowLeft}:  {Key: KeyLeft},
	{Key: keyboard.KeyArrowRight}: {Key: KeyRight},
	{Key: keyboard.KeyCtrlC}:      {Close: true},
	{Key: keyboard.KeySpace}:      {Key: KeyRune, Rune: ' '},
	{Rune: 'S'}:                   {Key: KeyRune, Rune: 'S'},
	{Key: keyboard.KeyF1}:         {Key: KeyOther},
}

func TestFromKeyboard(t *testing.T) {
	for in, expected := range keyboardTests {
		out, ok := fromKeyboard(in)
		if !ok || out != expected {
			t.Log("in      ", in)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}

	if _, ok := fromKeyboard(keyboard.KeyEvent{}); ok {
		t.Error("empty key event should be dropped")
	}
}
