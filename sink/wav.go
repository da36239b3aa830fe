package sink

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
)

// WavSink encodes buffers into a 16-bit mono PCM WAV stream. Close must be
// called to finish the header.
type WavSink struct {
	enc        *wav.Encoder
	sampleRate int
}

func NewWavSink(w io.WriteSeeker, sampleRate int) *WavSink {
	return &WavSink{
		enc:        wav.NewEncoder(w, sampleRate, wavBitDepth, 1, wavPCM),
		sampleRate: sampleRate,
	}
}

func (s *WavSink) Write(buf *audio.Float32Buffer) error {
	if buf.Format != nil && buf.Format.SampleRate != s.sampleRate {
		return fmt.Errorf("buffer sample rate %d does not match wav rate %d", buf.Format.SampleRate, s.sampleRate)
	}

	fb := buf.AsFloatBuffer()
	fb.Format = &audio.Format{NumChannels: 1, SampleRate: s.sampleRate}
	if err := transforms.PCMScale(fb, wavBitDepth); err != nil {
		return fmt.Errorf("scaling samples: %w", err)
	}

	ib := &audio.IntBuffer{
		Format:         fb.Format,
		Data:           make([]int, len(fb.Data)),
		SourceBitDepth: wavBitDepth,
	}
	for i, v := range fb.Data {
		ib.Data[i] = int(math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(v))))
	}

	if err := s.enc.Write(ib); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}

	return nil
}

func (s *WavSink) Close() error {
	return s.enc.Close()
}
