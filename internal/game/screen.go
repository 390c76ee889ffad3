package game

import "git.lost.host/meutraa/catch/internal/input"

type Screen int

const (
	Menu Screen = iota
	Instructions
	Playing
	Exited
)

func (s Screen) String() string {
	switch s {
	case Menu:
		return "menu"
	case Instructions:
		return "instructions"
	case Playing:
		return "playing"
	case Exited:
		return "exited"
	}
	return "unknown"
}

type Action int

const (
	NoAction Action = iota
	TogglePause
)

// Transition returns the screen that follows s after e, and the action to
// apply to the world while staying in Playing.
func Transition(s Screen, e input.Event) (Screen, Action) {
	if e.Close {
		return Exited, NoAction
	}

	switch s {
	case Menu:
		switch {
		case e.Is('s'):
			return Playing, NoAction
		case e.Is('q'):
			return Exited, NoAction
		case e.Is('i'):
			return Instructions, NoAction
		}
	case Instructions:
		if e.Key != input.KeyNone {
			return Menu, NoAction
		}
	case Playing:
		switch {
		case e.Key == input.KeyEsc:
			return Exited, NoAction
		case e.Is('p'):
			return Playing, TogglePause
		}
	}
	return s, NoAction
}
