package morse

// Unit returns the duration of one Morse unit in seconds. A word is taken to
// be 50 units long, so unit = 60 / (50 * wpm).
func Unit(wpm int) float64 {
	return 60 / (50 * float64(wpm))
}

// Timing holds every interval derived from a speed, in seconds.
type Timing struct {
	Unit      float64
	Dot       float64
	Dash      float64
	SymbolGap float64 // between the symbols of one letter
	LetterGap float64 // between the letters of one word
	WordGap   float64 // between the words of one phrase
}

// NewTiming derives the intervals for wpm. The word gap is 5 units, not the
// 7 units most operators are taught.
func NewTiming(wpm int) Timing {
	u := Unit(wpm)

	return Timing{
		Unit:      u,
		Dot:       u,
		Dash:      u * 3,
		SymbolGap: u,
		LetterGap: u * 3,
		WordGap:   u * 5,
	}
}
