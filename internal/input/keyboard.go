package input

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
)

// KeyboardSource reads key presses from the terminal.
type KeyboardSource struct {
	*ChannelSource
	done chan struct{}
}

func fromKeyboard(key keyboard.KeyEvent) (Event, bool) {
	switch key.Key {
	case keyboard.KeyEsc:
		return Event{Key: KeyEsc}, true
	case keyboard.KeyArrowLeft:
		return Event{Key: KeyLeft}, true
	case keyboard.KeyArrowRight:
		return Event{Key: KeyRight}, true
	case keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return Event{Close: true}, true
	case keyboard.KeySpace:
		return Event{Key: KeyRune, Rune: ' '}, true
	}
	if key.Rune != 0 {
		return Event{Key: KeyRune, Rune: key.Rune}, true
	}
	if key.Key != 0 {
		return Event{Key: KeyOther}, true
	}
	return Event{}, false
}

// OpenKeyboard puts the terminal in raw mode and starts forwarding key
// presses and termination signals. Close must be called to restore the
// terminal.
func OpenKeyboard(hold time.Duration) (*KeyboardSource, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, err
	}

	events := make(chan Event, 128)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case key, ok := <-keys:
				if !ok {
					return
				}
				if nil != key.Err {
					log.Println("unable to read key", key.Err)
					continue
				}
				if e, ok := fromKeyboard(key); ok {
					send(events, done, e)
				}
			}
		}
	}()
	forwardSignals(events, done)

	return &KeyboardSource{ChannelSource: NewChannelSource(events, hold), done: done}, nil
}

func (s *KeyboardSource) Close() error {
	close(s.done)
	return keyboard.Close()
}

func send(events chan<- Event, done <-chan struct{}, e Event) {
	select {
	case events <- e:
	case <-done:
	}
}

// forwardSignals turns termination signals into Close events, the terminal
// counterpart of closing a window.
func forwardSignals(events chan<- Event, done <-chan struct{}) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		defer signal.Stop(sigs)
		for {
			select {
			case <-done:
				return
			case sig := <-sigs:
				log.Println("received", sig)
				send(events, done, Event{Close: true})
			}
		}
	}()
}
