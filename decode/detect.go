// Package decode turns Morse audio back into text.
package decode

import (
	"fmt"

	"github.com/go-audio/audio"

	"morsetrainer/morse"
)

type ToneType int

const (
	Silence ToneType = iota
	Sound
)

// Segment is a run of tone or silence.
type Segment struct {
	Type     ToneType
	StartIdx int     // first sample
	EndIdx   int     // one past the last sample
	Duration float64 // seconds
}

func (s Segment) String() string {
	tt := map[ToneType]string{Silence: "S", Sound: "T"}[s.Type]
	return fmt.Sprintf("<%v %v>", tt, int(s.Duration*1000))
}

// Options tune tone detection.
type Options struct {
	WPM           int     // expected speed, sets the analysis windows
	Threshold     float64 // 0-1 position of the on threshold between noise floor and signal
	NoiseGate     float64 // buffers whose signal level stays below this are ignored
	NoiseFloorPct float64 // percentile used as noise floor
	DitRatio      float64 // fraction of a nominal dit a tone must reach to count
	Filter        bool    // bandpass before detection
	Center        float64 // bandpass center in Hz; 0 picks the dominant frequency
	Bandwidth     float64 // bandpass width in Hz
	Fade          int     // tone ramp in ms, see NewDecoder
}

// DefaultOptions returns the detection settings used by the CLI.
func DefaultOptions(wpm int) Options {
	return Options{
		WPM:           wpm,
		Threshold:     0.5,
		NoiseGate:     0.2,
		NoiseFloorPct: 20,
		DitRatio:      0.25,
		Bandwidth:     300,
	}
}

// DetectTones finds the beginning and end of each tone in buf.
func DetectTones(buf *audio.FloatBuffer, opts Options) []Segment {
	sampleRate := buf.Format.SampleRate

	// RMS window ~ dit/4, smoothing ~ dit/8
	dit := morse.Unit(opts.WPM)
	windowSize := clamp(int(float64(sampleRate)*dit/4), 10, sampleRate/5)
	smoothSize := clamp(int(float64(sampleRate)*dit/8), 5, sampleRate/10)

	env := smooth(envelope(buf.Data, windowSize), smoothSize)
	if len(env) == 0 {
		return nil
	}

	floorPct := opts.NoiseFloorPct
	if floorPct <= 0 {
		floorPct = 20
	}
	if floorPct > 80 {
		floorPct = 80
	}

	noiseFloor := percentile(env, floorPct)
	signalRef := percentile(env, 99)

	if signalRef < opts.NoiseGate {
		return nil
	}
	if signalRef < noiseFloor {
		signalRef = noiseFloor
	}

	// hysteresis: start at the threshold, end closer to the noise floor
	startThreshold := noiseFloor + (signalRef-noiseFloor)*opts.Threshold
	endThreshold := noiseFloor + (startThreshold-noiseFloor)*0.6
	minDuration := dit / 5

	var segments []Segment

	add := func(start, end int, t ToneType, minDur float64) bool {
		if start < 0 || end <= start {
			return false
		}

		d := float64(end-start) / float64(sampleRate)
		if d <= minDur {
			return false
		}

		segments = append(segments, Segment{Type: t, StartIdx: start, EndIdx: end, Duration: d})
		return true
	}

	inTone := false
	startIdx, endIdx := 0, 0

	for i, v := range env {
		switch {
		case !inTone && v > startThreshold:
			if i == 0 || add(endIdx, i, Silence, minDuration) {
				inTone = true
				startIdx = i
				endIdx = -1
				continue
			}

			// the silence was a dip inside a tone; resume the previous tone
			if n := len(segments); n > 0 && segments[n-1].Type == Sound {
				startIdx = segments[n-1].StartIdx
				segments = segments[:n-1]
				inTone = true
				endIdx = -1
			}

		case inTone && v < endThreshold:
			if add(startIdx, i, Sound, minDuration) {
				inTone = false
				endIdx = i
				startIdx = -1
				continue
			}

			// the tone was a spike inside a silence; resume the previous silence
			if n := len(segments); n > 0 && segments[n-1].Type == Silence {
				endIdx = segments[n-1].StartIdx
				segments = segments[:n-1]
				inTone = false
				startIdx = -1
			}
		}
	}

	last := len(env)
	switch {
	case inTone && startIdx >= 0:
		add(startIdx, last, Sound, 0)
	case !inTone && endIdx >= 0 && endIdx < last:
		if !add(endIdx, last, Silence, minDuration) && len(segments) > 0 {
			// too short to stand alone; fold it into the final segment
			s := &segments[len(segments)-1]
			s.EndIdx = last
			s.Duration = float64(s.EndIdx-s.StartIdx) / float64(sampleRate)
		}
	}

	return segments
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
