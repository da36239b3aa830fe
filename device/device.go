// Package device plays buffers on a sound card.
//
// Two backends are available: portaudio (the default, needs cgo) and the
// beep speaker.
package device

import (
	"fmt"
	"strconv"
	"strings"

	"morsetrainer/sink"
)

const (
	BackendPortAudio = "portaudio"
	BackendBeep      = "beep"

	defaultBufferMs = 100
)

type Config struct {
	Backend    string
	Name       string // device name prefix or 1-based index; empty for the default device
	SampleRate int
	Volume     float64 // 0 means 1
	BufferMs   int
}

// Output is a Sink bound to an open device.
type Output interface {
	sink.Sink
	Close() error
}

// Info describes an output device.
type Info struct {
	Index    int // 1-based, as accepted by Config.Name
	Name     string
	Channels int
	Default  bool
}

func (i Info) String() string {
	s := fmt.Sprintf("%d %s (out:%d)", i.Index, i.Name, i.Channels)
	if i.Default {
		s += " [default]"
	}
	return s
}

// Open opens the output described by cfg.
func Open(cfg Config) (Output, error) {
	if cfg.BufferMs <= 0 {
		cfg.BufferMs = defaultBufferMs
	}
	if cfg.Volume == 0 {
		cfg.Volume = 1
	}

	switch cfg.Backend {
	case "", BackendPortAudio:
		return openPortAudio(cfg)
	case BackendBeep:
		return openBeep(cfg)
	}

	return nil, fmt.Errorf("unknown audio backend %q", cfg.Backend)
}

// match picks a device by 1-based index or by name prefix.
func match(devices []Info, name string) (Info, error) {
	if i, err := strconv.Atoi(name); err == nil {
		for _, d := range devices {
			if d.Index == i {
				return d, nil
			}
		}
	}

	for _, d := range devices {
		if strings.HasPrefix(d.Name, name) {
			return d, nil
		}
	}

	return Info{}, fmt.Errorf("device not found: %s", name)
}

func applyVolume(dst []float32, volume float32) {
	if volume == 1.0 {
		return
	}
	for i := range dst {
		dst[i] *= volume
	}
}
