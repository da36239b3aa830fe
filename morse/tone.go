// Package morse renders text as Morse code audio.
//
// Every render is a pure function of its inputs: the caller passes a Context
// on each call and gets back a new mono float32 buffer.
package morse

import (
	"math"

	"github.com/go-audio/audio"
)

const (
	// DefaultSampleRate is used when a Context or Tone leaves SampleRate at 0.
	DefaultSampleRate = 48000

	// toneGain keeps the summed output well away from clipping.
	toneGain = 0.25
)

// Tone describes one tone or silence segment. Frequency 0 is silence.
type Tone struct {
	Frequency  int
	Duration   float64 // seconds
	Fade       int     // ramp length in milliseconds
	SampleRate int
}

// Frames returns the number of frames the tone renders to.
func (t Tone) Frames() int {
	return Frames(t.Duration, t.rate())
}

// FadeFrames returns the ramp length in frames, clamped to half the buffer.
func (t Tone) FadeFrames() int {
	fade := t.Fade * t.rate() / 1000
	if half := t.Frames() / 2; fade > half {
		fade = half
	}
	if fade < 0 {
		fade = 0
	}

	return fade
}

// Render synthesizes the tone.
func (t Tone) Render() *audio.Float32Buffer {
	return Synthesize(t.Frequency, t.Duration, t.Fade, t.rate())
}

func (t Tone) rate() int {
	if t.SampleRate <= 0 {
		return DefaultSampleRate
	}

	return t.SampleRate
}

// Synthesize generates a sine at frequency for duration seconds with a
// linear fade-in and fade-out of fade milliseconds. The first and last frames
// are always 0. A frequency of 0 gives silence with identical framing.
func Synthesize(frequency int, duration float64, fade int, sampleRate int) *audio.Float32Buffer {
	t := Tone{Frequency: frequency, Duration: duration, Fade: fade, SampleRate: sampleRate}

	n := t.Frames()
	buf := newBuffer(t.rate(), n)

	factor := float64(frequency) * 2 * math.Pi / float64(t.rate())
	for i := range buf.Data {
		buf.Data[i] = float32(math.Sin(float64(i)*factor) * toneGain)
	}

	// envelope
	ramp := t.FadeFrames()
	for k := 0; k < ramp; k++ {
		g := float32(k) / float32(ramp)
		buf.Data[k] *= g
		buf.Data[n-1-k] *= g
	}

	return buf
}

// Silence returns duration seconds of zero amplitude at sampleRate.
func Silence(duration float64, sampleRate int) *audio.Float32Buffer {
	return Tone{Frequency: 0, Duration: duration, Fade: 1, SampleRate: sampleRate}.Render()
}
