package decode

import (
	"math"
	"math/cmplx"

	"github.com/go-audio/audio"
)

const spectrumSize = 8192

// fft is a recursive radix-2 Cooley-Tukey transform. len(x) must be a power of 2.
func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return x
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	even = fft(even)
	odd = fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		t := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n))) * odd[k]
		result[k] = even[k] + t
		result[k+n/2] = even[k] - t
	}

	return result
}

// spectrum returns the Hamming-windowed magnitude spectrum of data, zero
// padded to a power of 2, and that size.
func spectrum(data []float64) ([]float64, int) {
	size := spectrumSize
	for size > len(data) && size > 2 {
		size >>= 1
	}
	if len(data) > size {
		data = data[:size]
	}

	in := make([]complex128, size)
	hammingSum := 0.0
	for i, v := range data {
		w := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(len(data)-1))
		hammingSum += w
		in[i] = complex(v*w, 0)
	}

	out := fft(in)

	magnitudes := make([]float64, size/2)
	for i := range magnitudes {
		magnitudes[i] = 2.0 / hammingSum * cmplx.Abs(out[i])
	}

	return magnitudes, size
}

// DominantFrequency estimates the tone frequency of a mono buffer between
// minFreq and maxFreq. It analyses the stretch starting at the loudest
// sample, so leading silence does not matter. It returns 0 when the buffer is
// too short.
func DominantFrequency(buf *audio.FloatBuffer, minFreq, maxFreq float64) float64 {
	data := buf.Data
	if len(data) < 4 {
		return 0
	}

	peak := 0
	for i, v := range data {
		if math.Abs(v) > math.Abs(data[peak]) {
			peak = i
		}
	}

	start := peak
	if start+spectrumSize > len(data) {
		start = max(len(data)-spectrumSize, 0)
	}

	magnitudes, size := spectrum(data[start:])
	resolution := float64(buf.Format.SampleRate) / float64(size)

	minBin := max(int(minFreq/resolution), 1)
	maxBin := min(int(maxFreq/resolution), len(magnitudes)-2)
	if maxBin < minBin {
		return 0
	}

	peakBin := minBin
	for i := minBin; i <= maxBin; i++ {
		if magnitudes[i] > magnitudes[peakBin] {
			peakBin = i
		}
	}

	// parabolic interpolation between neighbouring bins
	alpha, beta, gamma := magnitudes[peakBin-1], magnitudes[peakBin], magnitudes[peakBin+1]
	p := 0.0
	if d := alpha - 2*beta + gamma; d != 0 {
		p = 0.5 * (alpha - gamma) / d
	}

	return (float64(peakBin) + p) * resolution
}
