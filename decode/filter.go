package decode

import (
	"math"

	"github.com/go-audio/audio"
)

// biquad is a second order IIR section.
type biquad struct {
	a, b [3]float64
	x, y [2]float64
}

func newBandpass(sampleRate, center, bandwidth float64) *biquad {
	q := center / bandwidth
	omega := 2 * math.Pi * center / sampleRate
	alpha := math.Sin(omega) / (2 * q)
	a0 := 1 + alpha

	return &biquad{
		b: [3]float64{alpha / a0, 0, -alpha / a0},
		a: [3]float64{1, -2 * math.Cos(omega) / a0, (1 - alpha) / a0},
	}
}

func (f *biquad) filter(x float64) float64 {
	y := f.b[0]*x + f.b[1]*f.x[0] + f.b[2]*f.x[1] - f.a[1]*f.y[0] - f.a[2]*f.y[1]
	f.x[1], f.x[0] = f.x[0], x
	f.y[1], f.y[0] = f.y[0], y
	return y
}

// Bandpass filters buf in place with a 4th order bandpass (two biquads)
// centered on center. bandwidth is a lower bound on each stage's width.
func Bandpass(buf *audio.FloatBuffer, center, bandwidth float64) {
	sr := float64(buf.Format.SampleRate)

	// Butterworth Q pair for a 4th order response
	var stages []*biquad
	for _, q := range []float64{0.5412, 1.3065} {
		bw := math.Max(center/q, bandwidth)
		stages = append(stages, newBandpass(sr, center, bw))
	}

	for i, s := range buf.Data {
		for _, f := range stages {
			s = f.filter(s)
		}
		buf.Data[i] = s
	}
}
