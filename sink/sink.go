// Package sink delivers rendered buffers to their destination.
package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"

	"morsetrainer/morse"
)

// Sink accepts mono float32 buffers. Write blocks until the buffer has been
// consumed.
type Sink interface {
	Write(buf *audio.Float32Buffer) error
}

// SinkWriteError wraps a failure reported by a Sink.
type SinkWriteError struct {
	Err error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink write: %v", e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// Play writes segments to s in order and checks ctx before every write, so a
// cancelled playback stops at the next segment boundary.
func Play(ctx context.Context, s Sink, segments []*audio.Float32Buffer) error {
	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Write(seg); err != nil {
			return &SinkWriteError{Err: err}
		}
	}

	return nil
}

// RawSink writes little-endian float32 samples to an io.Writer.
type RawSink struct {
	w io.Writer
}

func NewRawSink(w io.Writer) *RawSink {
	return &RawSink{w: w}
}

func (r *RawSink) Write(buf *audio.Float32Buffer) error {
	_, err := r.w.Write(morse.Bytes(buf))
	return err
}

// Normalize returns a copy of buf scaled so its peak reaches full scale.
func Normalize(buf *audio.Float32Buffer) *audio.Float32Buffer {
	fb := buf.AsFloatBuffer()
	transforms.NormalizeMax(fb)

	return fb.AsFloat32Buffer()
}
