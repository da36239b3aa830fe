package decode

import (
	"math"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"

	"morsetrainer/morse"
)

// Decoder classifies tone segments into dits, dahs and spaces. It keeps the
// pending letter between calls so a stream can be decoded in chunks.
type Decoder struct {
	wpm  int
	dt   float64
	fade float64 // ms added to tones and taken from silences

	code string

	// running averages, in milliseconds
	DitTime   int
	DahTime   int
	MarkSpace int // between dits/dahs
	CharSpace int
	WordSpace int
}

// NewDecoder returns a decoder for wpm. A tone counts as a dit once it
// reaches dt of a nominal dit. fade is the tone ramp in milliseconds: the
// part of each ramp below the detection threshold is credited back to the
// tone.
func NewDecoder(wpm int, dt float64, fade int) *Decoder {
	unit := unitMs(wpm)

	return &Decoder{
		wpm:       wpm,
		dt:        dt,
		fade:      math.Min(float64(fade), unit/2) / 2,
		DitTime:   int(unit),
		DahTime:   int(unit * 3),
		MarkSpace: int(unit),
		CharSpace: int(unit * 3),
		WordSpace: int(unit * 5),
	}
}

func unitMs(wpm int) float64 {
	if wpm <= 0 {
		wpm = 20
	}
	return 1200 / float64(wpm)
}

// Decode consumes segments and returns the text completed by them.
//
// Boundaries sit between the rendered lengths: a dah (3 units) is anything
// over 2 units, a letter gap (4 units with the trailing symbol gap) anything
// over 2.5 and a word gap (9 units) anything over 6.
func (d *Decoder) Decode(segments []Segment) string {
	var text strings.Builder

	unit := unitMs(d.wpm)

	for _, seg := range segments {
		durMs := seg.Duration * 1000

		switch seg.Type {
		case Silence:
			durMs -= d.fade

			if durMs > 6*unit {
				d.WordSpace = (d.WordSpace + int(durMs)) / 2
				text.WriteString(d.Flush())
				text.WriteString(" ")
			} else if durMs > 2.5*unit {
				d.CharSpace = (d.CharSpace + int(durMs)) / 2
				text.WriteString(d.Flush())
			} else if durMs > unit/2 {
				d.MarkSpace = (d.MarkSpace + int(durMs)) / 2
			}

		case Sound:
			durMs += d.fade

			if durMs > 2*unit {
				d.DahTime = (d.DahTime + int(durMs)) / 2
				d.code += "-"
			} else if durMs > unit*d.dt {
				d.DitTime = (d.DitTime + int(durMs)) / 2
				d.code += "."
			}
		}
	}

	return text.String()
}

// Flush returns the pending letter, if any.
func (d *Decoder) Flush() string {
	if d.code == "" {
		return ""
	}

	code := d.code
	d.code = ""

	if s, ok := morse.Lookup(code); ok {
		return s
	}
	return "(" + code + ")"
}

// bandpass centers searched when none is given
const (
	minCenter = 100
	maxCenter = 2000
)

// Text decodes a whole recording. Multi-channel input is downmixed, filtered
// when opts.Filter is set and normalized before detection.
func Text(buf *audio.FloatBuffer, opts Options) string {
	if buf.Format.NumChannels > 1 {
		transforms.MonoDownmix(buf)
	}
	if opts.Filter {
		center := opts.Center
		if center <= 0 {
			center = DominantFrequency(buf, minCenter, maxCenter)
		}
		if center > 0 {
			Bandpass(buf, center, opts.Bandwidth)
		}
	}
	transforms.NormalizeMax(buf)

	d := NewDecoder(opts.WPM, opts.DitRatio, opts.Fade)
	text := d.Decode(DetectTones(buf, opts)) + d.Flush()

	return strings.Join(strings.Fields(text), " ")
}
