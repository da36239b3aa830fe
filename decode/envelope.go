package decode

import (
	"math"
	"sort"
)

// envelope calculates the RMS amplitude envelope of the signal over a
// sliding window centered on each sample.
func envelope(data []float64, windowSize int) []float64 {
	env := make([]float64, len(data))

	// prefix sums of squares keep this linear in len(data)
	sums := make([]float64, len(data)+1)
	for i, v := range data {
		sums[i+1] = sums[i] + v*v
	}

	for i := range data {
		start, end := window(i, windowSize, len(data))
		if end > start {
			env[i] = math.Sqrt(math.Max(sums[end]-sums[start], 0) / float64(end-start))
		}
	}

	return env
}

// smooth applies a simple moving average filter
func smooth(data []float64, windowSize int) []float64 {
	out := make([]float64, len(data))

	sums := make([]float64, len(data)+1)
	for i, v := range data {
		sums[i+1] = sums[i] + v
	}

	for i := range data {
		start, end := window(i, windowSize, len(data))
		if end > start {
			out[i] = (sums[end] - sums[start]) / float64(end-start)
		}
	}

	return out
}

func window(i, size, n int) (start, end int) {
	start = i - size/2
	end = i + size/2

	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}

	return start, end
}

// percentile interpolates the p-th percentile (0-100) of data.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	if p <= 0 {
		p = 0
	}
	if p >= 100 {
		p = 100
	}

	cp := make([]float64, len(data))
	copy(cp, data)
	sort.Float64s(cp)
	if len(cp) == 1 {
		return cp[0]
	}

	pos := (p / 100.0) * float64(len(cp)-1)
	i := int(pos)
	if i >= len(cp)-1 {
		return cp[len(cp)-1]
	}

	frac := pos - float64(i)
	return cp[i]*(1-frac) + cp[i+1]*frac
}
