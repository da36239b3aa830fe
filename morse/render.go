package morse

import (
	"strings"
	"unicode/utf8"

	"github.com/go-audio/audio"
)

// Context is the user-facing tone configuration. It is read, never kept.
type Context struct {
	WPM        int
	Frequency  int // Hz
	Fade       int // ramp length in milliseconds
	SampleRate int // 0 means DefaultSampleRate
}

// Rate returns the sample rate renders made with ctx use.
func (ctx Context) Rate() int {
	if ctx.SampleRate <= 0 {
		return DefaultSampleRate
	}

	return ctx.SampleRate
}

func (ctx Context) tone(duration float64) *audio.Float32Buffer {
	return Synthesize(ctx.Frequency, duration, ctx.Fade, ctx.Rate())
}

func (ctx Context) silence(duration float64) *audio.Float32Buffer {
	return Silence(duration, ctx.Rate())
}

// Renderer builds symbol, letter, word and phrase buffers. The zero value is
// not usable; use NewRenderer.
type Renderer struct {
	dict Dictionary
}

// NewRenderer returns a Renderer backed by dict, or by International when
// dict is nil.
func NewRenderer(dict Dictionary) *Renderer {
	if dict == nil {
		dict = International
	}

	return &Renderer{dict: dict}
}

// Symbol renders a single dot or dash.
func (r *Renderer) Symbol(s Symbol, ctx Context) *audio.Float32Buffer {
	t := NewTiming(ctx.WPM)

	if s == Dash {
		return ctx.tone(t.Dash)
	}

	return ctx.tone(t.Dot)
}

// Letter renders one character: every symbol followed by a symbol gap,
// including the last. Dictionary errors are returned as they are.
func (r *Renderer) Letter(letter string, ctx Context) (*audio.Float32Buffer, error) {
	if utf8.RuneCountInString(letter) != 1 {
		return nil, &InvalidLetterError{Letter: letter}
	}

	c, _ := utf8.DecodeRuneInString(letter)
	symbols, err := r.dict.Encode(c)
	if err != nil {
		return nil, err
	}

	t := NewTiming(ctx.WPM)

	parts := make([]*audio.Float32Buffer, 0, 2*len(symbols))
	for _, s := range symbols {
		parts = append(parts, r.Symbol(s, ctx), ctx.silence(t.SymbolGap))
	}

	return Concat(ctx.Rate(), parts...), nil
}

// Word renders every letter of word, each followed by a letter gap.
func (r *Renderer) Word(word string, ctx Context) (*audio.Float32Buffer, error) {
	t := NewTiming(ctx.WPM)

	var parts []*audio.Float32Buffer
	for _, c := range word {
		l, err := r.Letter(string(c), ctx)
		if err != nil {
			return nil, err
		}
		parts = append(parts, l, ctx.silence(t.LetterGap))
	}

	return Concat(ctx.Rate(), parts...), nil
}

// Segments renders phrase one word at a time. The phrase is split on single
// spaces, so repeated spaces give empty words that render as their gap alone.
// Each segment is a word followed by a word gap.
func (r *Renderer) Segments(phrase string, ctx Context) ([]*audio.Float32Buffer, error) {
	t := NewTiming(ctx.WPM)

	words := strings.Split(phrase, " ")
	segments := make([]*audio.Float32Buffer, 0, len(words))
	for _, word := range words {
		w, err := r.Word(word, ctx)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Concat(ctx.Rate(), w, ctx.silence(t.WordGap)))
	}

	return segments, nil
}

// Phrase renders phrase into a single playable buffer.
func (r *Renderer) Phrase(phrase string, ctx Context) (*audio.Float32Buffer, error) {
	segments, err := r.Segments(phrase, ctx)
	if err != nil {
		return nil, err
	}

	return Concat(ctx.Rate(), segments...), nil
}
