//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyEsc       = 1
	keyQ         = 16
	keyP         = 25
	keyLeftCtrl  = 29
	keyS         = 31
	keyC         = 46
	keyI         = 23
	keySpace     = 57
	keyRightCtrl = 97
	keyLeft      = 105
	keyRight     = 106
)

var evdevRunes = map[uint16]rune{
	keyQ:     'q',
	keyP:     'p',
	keyS:     's',
	keyC:     'c',
	keyI:     'i',
	keySpace: ' ',
}

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// evdevDecoder turns raw key events into Events. Value is 1 on press, 0 on
// release and 2 on auto repeat.
type evdevDecoder struct {
	ctrl bool
}

func (d *evdevDecoder) decode(ev keyEvent) (Event, bool) {
	if ev.Type != evKey || ev.Value == 2 {
		return Event{}, false
	}
	up := ev.Value == 0

	switch ev.Code {
	case keyLeftCtrl, keyRightCtrl:
		d.ctrl = !up
		return Event{}, false
	case keyEsc:
		return Event{Key: KeyEsc, Up: up}, true
	case keyLeft:
		return Event{Key: KeyLeft, Up: up}, true
	case keyRight:
		return Event{Key: KeyRight, Up: up}, true
	}
	if ev.Code == keyC && d.ctrl && !up {
		return Event{Close: true}, true
	}
	if r, ok := evdevRunes[ev.Code]; ok {
		return Event{Key: KeyRune, Rune: r, Up: up}, true
	}
	return Event{Key: KeyOther, Up: up}, true
}

func readEvdev(r io.Reader, events chan<- Event, done <-chan struct{}) {
	var d evdevDecoder
	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				log.Println(err, "unable to read keyboard input")
			}
			send(events, done, Event{Close: true})
			return
		}
		if e, ok := d.decode(ev); ok {
			send(events, done, e)
		}
	}
}

// discardInput reads the terminal until it fails. Keys reach the game
// through the device, and unread terminal input would go to the shell on exit.
func discardInput(r io.Reader) {
	io.Copy(io.Discard, r)
}

// EvdevSource reads a Linux input device, which reports key releases and so
// gives an exact held state.
type EvdevSource struct {
	*ChannelSource
	file *os.File
	done chan struct{}
}

func OpenEvdev(device string) (*EvdevSource, error) {
	file, err := os.Open(device)
	if nil != err {
		return nil, fmt.Errorf("unable to open input device: %w", err)
	}

	events := make(chan Event, 128)
	done := make(chan struct{})
	go readEvdev(file, events, done)
	go discardInput(os.Stdin)
	forwardSignals(events, done)

	src := NewChannelSource(events, time.Duration(0))
	src.Exact = true
	return &EvdevSource{ChannelSource: src, file: file, done: done}, nil
}

func (s *EvdevSource) Close() error {
	close(s.done)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		// Drop whatever arrived after the last read
		if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH); nil != err {
			log.Println(err, "unable to flush terminal input")
		}
	}
	return s.file.Close()
}
