package morse

import (
	"strings"
	"unicode"
)

// Symbol is one Morse element.
type Symbol int

const (
	Dot Symbol = iota
	Dash
)

func (s Symbol) String() string {
	switch s {
	case Dot:
		return "."
	case Dash:
		return "-"
	}

	return "?"
}

// Dictionary maps a character to its symbols.
type Dictionary interface {
	Encode(r rune) ([]Symbol, error)
}

// Table is a Dictionary keyed by upper-case character, with codes written as
// dot/dash text.
type Table map[rune]string

// Encode looks r up case-insensitively.
func (t Table) Encode(r rune) ([]Symbol, error) {
	code, ok := t[unicode.ToUpper(r)]
	if !ok {
		return nil, &UnsupportedCharacterError{Char: r}
	}

	symbols := make([]Symbol, 0, len(code))
	for _, c := range code {
		switch c {
		case '.':
			symbols = append(symbols, Dot)
		case '-':
			symbols = append(symbols, Dash)
		}
	}

	return symbols, nil
}

// International is the ITU table: letters, digits and punctuation.
var International = Table{
	// letters
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..",
	'E': ".", 'F': "..-.", 'G': "--.", 'H': "....",
	'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.",
	'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",

	// digits
	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",

	// punctuations
	'"': ".-..-.", '$': "...-..-", '\'': ".----.", '(': "-.--.", ')': "-.--.-",
	'+': ".-.-.", ',': "--..--", '-': "-....-", '.': ".-.-.-",
	'/': "-..-.", ':': "---...", ';': "-.-.-.", '=': "-...-", '?': "..--..",
	'@': ".--.-.", '_': "..--.-", '!': "-.-.--", '&': ".-...",
}

// prosigns share codes with punctuation; the decoder prefers these spellings.
var prosigns = map[string]string{
	".-.-.":   "<AR>",
	".-...":   "<AS>",
	"-...-.-": "<BK>",
	"...-.-":  "<SK>",
	"-...-":   "<BT>",
	"-.--.":   "<KN>",
}

var reverse = func() map[string]string {
	m := make(map[string]string, len(International)+len(prosigns))
	for r, code := range International {
		m[code] = string(r)
	}
	for code, s := range prosigns {
		m[code] = s
	}
	return m
}()

// Lookup returns the text for a dot/dash code.
func Lookup(code string) (string, bool) {
	s, ok := reverse[code]
	return s, ok
}

// Code returns phrase as dot/dash text, letters separated by a space and
// words by " / ".
func Code(dict Dictionary, phrase string) (string, error) {
	words := strings.Split(phrase, " ")
	out := make([]string, 0, len(words))

	for _, word := range words {
		letters := make([]string, 0, len(word))
		for _, r := range word {
			symbols, err := dict.Encode(r)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			for _, s := range symbols {
				sb.WriteString(s.String())
			}
			letters = append(letters, sb.String())
		}
		out = append(out, strings.Join(letters, " "))
	}

	return strings.Join(out, " / "), nil
}
