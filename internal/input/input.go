package input

import (
	"time"
	"unicode"
)

type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // a printable key, see Event.Rune
	KeyEsc
	KeyLeft
	KeyRight
	KeyOther
)

// Event is a discrete key press, or a request to close the display. Devices
// that report releases send them as Up events, which only update held state.
type Event struct {
	Key   Key
	Rune  rune
	Close bool
	Up    bool
}

// Is reports whether e is a press of the letter r, ignoring case.
func (e Event) Is(r rune) bool {
	return e.Key == KeyRune && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

type Source interface {
	// Poll returns the events that arrived since the last call without blocking
	Poll() []Event
	// Wait blocks until the next event
	Wait() Event
	// Held reports whether k is currently held down
	Held(k Key) bool
}

// ChannelSource reads events from a channel. When the sender reports
// releases (Exact), a key is held from its press to its release. Otherwise a
// key counts as held while its last press is younger than the hold window,
// which follows the key repeat of a terminal.
type ChannelSource struct {
	Exact bool

	events <-chan Event
	hold   time.Duration
	now    func() time.Time

	pressed map[Key]time.Time
	down    map[Key]bool
}

func NewChannelSource(events <-chan Event, hold time.Duration) *ChannelSource {
	return &ChannelSource{
		events:  events,
		hold:    hold,
		now:     time.Now,
		pressed: make(map[Key]time.Time),
		down:    make(map[Key]bool),
	}
}

func (s *ChannelSource) observe(e Event) {
	if e.Key == KeyNone {
		return
	}
	s.down[e.Key] = !e.Up
	if !e.Up {
		s.pressed[e.Key] = s.now()
	}
}

func (s *ChannelSource) Poll() []Event {
	var events []Event
	for {
		select {
		case e, ok := <-s.events:
			if !ok {
				return append(events, Event{Close: true})
			}
			s.observe(e)
			if !e.Up {
				events = append(events, e)
			}
		default:
			return events
		}
	}
}

func (s *ChannelSource) Wait() Event {
	for {
		e, ok := <-s.events
		if !ok {
			return Event{Close: true}
		}
		s.observe(e)
		if !e.Up {
			return e
		}
	}
}

func (s *ChannelSource) Held(k Key) bool {
	if s.Exact {
		return s.down[k]
	}
	t, ok := s.pressed[k]
	return ok && s.now().Sub(t) < s.hold
}
