//go:build (linux && cgo) || windows || darwin

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog/log"
)

var (
	speakerOnce sync.Once
	speakerRate int
	speakerErr  error
)

// BeepWriter plays buffers through the process-wide beep speaker. All
// writes go through one queue, so consecutive buffers play back to back.
type BeepWriter struct {
	q *queue
}

func openBeep(cfg Config) (Output, error) {
	speakerOnce.Do(func() {
		sr := beep.SampleRate(cfg.SampleRate)
		speakerErr = speaker.Init(sr, sr.N(time.Duration(cfg.BufferMs)*time.Millisecond))
		speakerRate = cfg.SampleRate
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("initializing speaker: %w", speakerErr)
	}

	// the speaker can only be initialised once per process
	if speakerRate != cfg.SampleRate {
		return nil, fmt.Errorf("speaker already running at %d Hz", speakerRate)
	}

	q := newQueue(float32(cfg.Volume))
	speaker.Play(q)

	log.Debug().Int("sample_rate", cfg.SampleRate).Msg("speaker ready")

	return &BeepWriter{q: q}, nil
}

// Write queues buf and returns once everything queued before it has played,
// leaving buf itself to play while the caller prepares the next one.
func (w *BeepWriter) Write(buf *audio.Float32Buffer) error {
	w.q.push(buf.Data)
	w.q.waitBelow(len(buf.Data))
	return nil
}

// Close waits for the queue to drain.
func (w *BeepWriter) Close() error {
	w.q.waitBelow(0)
	speaker.Clear()
	return nil
}
