package morse_test

import (
	"math"
	"testing"

	"morsetrainer/morse"
)

func TestSynthesize_FrameCount(t *testing.T) {
	tests := []struct {
		duration   float64
		sampleRate int
	}{
		{0.06, 48000},
		{0.18, 48000},
		{0.3, 44100},
		{1.0 / 3.0, 8000},
		{0.0123, 22050},
	}

	for _, tt := range tests {
		buf := morse.Synthesize(600, tt.duration, 2, tt.sampleRate)
		want := int(math.Round(tt.duration * float64(tt.sampleRate)))
		if len(buf.Data) != want {
			t.Errorf("Synthesize(%v s @ %d): got %d frames, want %d", tt.duration, tt.sampleRate, len(buf.Data), want)
		}
		if buf.Format.SampleRate != tt.sampleRate || buf.Format.NumChannels != 1 {
			t.Errorf("format: got %+v", *buf.Format)
		}
	}
}

func TestSynthesize_EdgesAreSilent(t *testing.T) {
	for fade := 1; fade <= 10; fade++ {
		buf := morse.Synthesize(450, 0.1, fade, 48000)
		first, last := buf.Data[0], buf.Data[len(buf.Data)-1]
		if math.Abs(float64(first)) > 1e-9 || math.Abs(float64(last)) > 1e-9 {
			t.Errorf("fade %d: edges = %v, %v, want 0", fade, first, last)
		}
	}
}

func TestSynthesize_InteriorUnmodified(t *testing.T) {
	const (
		freq = 440
		rate = 48000
	)
	buf := morse.Synthesize(freq, 0.1, 2, rate)

	ramp := morse.Tone{Frequency: freq, Duration: 0.1, Fade: 2, SampleRate: rate}.FadeFrames()
	if ramp != 96 {
		t.Fatalf("fade frames: got %d, want 96", ramp)
	}

	for i := ramp; i < len(buf.Data)-ramp; i++ {
		want := float32(0.25 * math.Sin(2*math.Pi*freq*float64(i)/rate))
		if math.Abs(float64(buf.Data[i]-want)) > 1e-6 {
			t.Fatalf("sample %d: got %v, want %v", i, buf.Data[i], want)
		}
	}
}

func TestSynthesize_RampIsLinear(t *testing.T) {
	buf := morse.Synthesize(1000, 0.05, 1, 48000)
	// 48 ramp frames; the unfaded wave is 0.25*sin(...)
	for k := 1; k < 48; k++ {
		raw := 0.25 * math.Sin(2*math.Pi*1000*float64(k)/48000)
		want := raw * float64(k) / 48
		if math.Abs(float64(buf.Data[k])-want) > 1e-6 {
			t.Errorf("fade-in frame %d: got %v, want %v", k, buf.Data[k], want)
		}
	}
}

func TestSynthesize_AmplitudeBounded(t *testing.T) {
	buf := morse.Synthesize(700, 0.2, 3, 48000)
	for i, v := range buf.Data {
		if v > 0.25 || v < -0.25 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestSynthesize_ZeroFrequencyIsSilence(t *testing.T) {
	buf := morse.Synthesize(0, 0.05, 4, 48000)
	if len(buf.Data) != 2400 {
		t.Fatalf("frames: got %d, want 2400", len(buf.Data))
	}
	for i, v := range buf.Data {
		if v != 0 {
			t.Fatalf("sample %d: got %v, want 0", i, v)
		}
	}
}

func TestSilence(t *testing.T) {
	buf := morse.Silence(0.18, 48000)
	if len(buf.Data) != 8640 {
		t.Errorf("frames: got %d, want 8640", len(buf.Data))
	}
	for _, v := range buf.Data {
		if v != 0 {
			t.Fatalf("silence has non-zero sample %v", v)
		}
	}
}

func TestTone_FadeClampedToHalfBuffer(t *testing.T) {
	tone := morse.Tone{Frequency: 600, Duration: 0.001, Fade: 10, SampleRate: 48000}
	if got := tone.FadeFrames(); got != 24 {
		t.Errorf("FadeFrames: got %d, want 24", got)
	}

	buf := tone.Render()
	for i, v := range buf.Data {
		if v > 0.25 || v < -0.25 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestTone_DefaultSampleRate(t *testing.T) {
	buf := morse.Tone{Frequency: 600, Duration: 0.5, Fade: 2}.Render()
	if buf.Format.SampleRate != morse.DefaultSampleRate {
		t.Errorf("sample rate: got %d, want %d", buf.Format.SampleRate, morse.DefaultSampleRate)
	}
	if len(buf.Data) != 24000 {
		t.Errorf("frames: got %d, want 24000", len(buf.Data))
	}
}
