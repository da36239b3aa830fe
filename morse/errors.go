package morse

import "fmt"

// InvalidLetterError is returned when a letter render is given anything but
// exactly one character.
type InvalidLetterError struct {
	Letter string
}

func (e *InvalidLetterError) Error() string {
	return fmt.Sprintf("letter must be one character, got %q", e.Letter)
}

// UnsupportedCharacterError is returned by the built-in table for characters
// that have no Morse code.
type UnsupportedCharacterError struct {
	Char rune
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("no morse code for %q", e.Char)
}
