//go:build !((linux && cgo) || windows || darwin)

package device

import "fmt"

func openBeep(Config) (Output, error) {
	return nil, fmt.Errorf("beep backend not available on this build")
}
