package device

import (
	"testing"
	"time"
)

func ramp(n int, start float32) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = start + float32(i)
	}
	return data
}

func TestChunker_CarriesPartialBuffers(t *testing.T) {
	var emitted []float32
	c := &chunker{buf: make([]float32, 4800), volume: 1}
	c.emit = func() error {
		emitted = append(emitted, c.buf...)
		return nil
	}

	// at 20 wpm and 48 kHz the word T is 12 units: 7.2 buffers of 100 ms
	first := ramp(34560, 1)
	second := ramp(10000, 100000)

	if err := c.write(first); err != nil {
		t.Fatal(err)
	}
	if err := c.write(second); err != nil {
		t.Fatal(err)
	}

	if len(emitted) != 9*4800 {
		t.Fatalf("emitted before flush: got %d frames, want %d", len(emitted), 9*4800)
	}

	if err := c.flush(); err != nil {
		t.Fatal(err)
	}
	if len(emitted) != 10*4800 {
		t.Fatalf("emitted after flush: got %d frames, want %d", len(emitted), 10*4800)
	}

	want := append(append([]float32{}, first...), second...)
	for i, v := range want {
		if emitted[i] != v {
			t.Fatalf("frame %d: got %v, want %v", i, emitted[i], v)
		}
	}
	for i := len(want); i < len(emitted); i++ {
		if emitted[i] != 0 {
			t.Fatalf("padding frame %d: got %v, want 0", i, emitted[i])
		}
	}

	// nothing pending, nothing to flush
	if err := c.flush(); err != nil || len(emitted) != 10*4800 {
		t.Errorf("second flush emitted again")
	}
}

func TestChunker_Volume(t *testing.T) {
	var emitted []float32
	c := &chunker{buf: make([]float32, 3), volume: 0.5}
	c.emit = func() error {
		emitted = append(emitted, c.buf...)
		return nil
	}

	c.write([]float32{1, 2})
	c.write([]float32{4})

	if len(emitted) != 3 || emitted[0] != 0.5 || emitted[1] != 1 || emitted[2] != 2 {
		t.Errorf("got %v", emitted)
	}
}

func TestQueue_PlaysBackToBack(t *testing.T) {
	q := newQueue(1)
	q.push(ramp(1000, 1))
	q.push(ramp(500, 2000))

	var out []float64
	samples := make([][2]float64, 512)
	for i := 0; i < 4; i++ {
		n, ok := q.Stream(samples)
		if !ok || n != len(samples) {
			t.Fatalf("Stream: got %d, %v", n, ok)
		}
		for _, s := range samples {
			if s[0] != s[1] {
				t.Fatalf("channels differ: %v", s)
			}
			out = append(out, s[0])
		}
	}

	want := append(ramp(1000, 1), ramp(500, 2000)...)
	for i, v := range want {
		if out[i] != float64(v) {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], v)
		}
	}
	for i := len(want); i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("sample %d: got %v, want silence", i, out[i])
		}
	}
}

func TestQueue_WaitBelow(t *testing.T) {
	q := newQueue(1)
	q.push(make([]float32, 1000))

	done := make(chan struct{})
	go func() {
		q.waitBelow(0)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("waitBelow returned with samples queued")
	case <-time.After(20 * time.Millisecond):
	}

	q.Stream(make([][2]float64, 1024))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waitBelow did not return once the queue drained")
	}
}
