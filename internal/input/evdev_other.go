//go:build !linux

package input

import "errors"

var ErrNoEvdev = errors.New("evdev input is only available on linux")

type EvdevSource struct {
	*ChannelSource
}

func OpenEvdev(device string) (*EvdevSource, error) {
	return nil, ErrNoEvdev
}

func (s *EvdevSource) Close() error {
	return nil
}
