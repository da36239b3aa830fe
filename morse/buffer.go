package morse

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// Frames converts seconds to a frame count, rounding to the nearest frame.
func Frames(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// Seconds returns the playing time of buf.
func Seconds(buf *audio.Float32Buffer) float64 {
	if buf == nil || buf.Format == nil || buf.Format.SampleRate == 0 {
		return 0
	}

	return float64(len(buf.Data)) / float64(buf.Format.SampleRate)
}

// Concat copies bufs, in order, into a new mono buffer at sampleRate.
func Concat(sampleRate int, bufs ...*audio.Float32Buffer) *audio.Float32Buffer {
	n := 0
	for _, b := range bufs {
		n += len(b.Data)
	}

	out := newBuffer(sampleRate, 0)
	out.Data = make([]float32, 0, n)
	for _, b := range bufs {
		out.Data = append(out.Data, b.Data...)
	}

	return out
}

// Bytes serializes buf as little-endian IEEE-754 float32 samples.
func Bytes(buf *audio.Float32Buffer) []byte {
	b := make([]byte, len(buf.Data)*4)
	for i, v := range buf.Data {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}

	return b
}

func newBuffer(sampleRate, frames int) *audio.Float32Buffer {
	return &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]float32, frames),
	}
}
