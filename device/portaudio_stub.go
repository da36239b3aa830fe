//go:build !cgo

package device

import "fmt"

func openPortAudio(Config) (Output, error) {
	return nil, fmt.Errorf("portaudio backend not available: rebuild with CGO_ENABLED=1")
}

// List returns the output devices portaudio can see.
func List() ([]Info, error) {
	return nil, fmt.Errorf("device listing not available: rebuild with CGO_ENABLED=1")
}
