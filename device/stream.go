package device

import "sync"

// chunker packs consecutive writes into fixed size device buffers. A partial
// buffer is carried into the next write, so segment boundaries add no
// silence; only flush pads.
type chunker struct {
	buf    []float32
	fill   int
	volume float32
	emit   func() error // hands a full buf to the device
}

func (c *chunker) write(data []float32) error {
	for len(data) > 0 {
		n := copy(c.buf[c.fill:], data)
		applyVolume(c.buf[c.fill:c.fill+n], c.volume)
		c.fill += n
		data = data[n:]

		if c.fill == len(c.buf) {
			c.fill = 0
			if err := c.emit(); err != nil {
				return err
			}
		}
	}

	return nil
}

// flush pads the pending partial buffer with silence and emits it.
func (c *chunker) flush() error {
	if c.fill == 0 {
		return nil
	}

	clear(c.buf[c.fill:])
	c.fill = 0

	return c.emit()
}

// queue is a never-ending stereo stream fed by push. It plays silence while
// empty, and pushed buffers follow each other without a gap.
type queue struct {
	mu      sync.Mutex
	drained *sync.Cond
	pending []float32
	volume  float32
}

func newQueue(volume float32) *queue {
	q := &queue{volume: volume}
	q.drained = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(data []float32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	start := len(q.pending)
	q.pending = append(q.pending, data...)
	applyVolume(q.pending[start:], q.volume)
}

// waitBelow blocks until at most n samples are still queued.
func (q *queue) waitBelow(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) > n {
		q.drained.Wait()
	}
}

func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range samples {
		v := 0.0
		if i < len(q.pending) {
			v = float64(q.pending[i])
		}
		samples[i][0] = v
		samples[i][1] = v
	}

	q.pending = q.pending[min(len(samples), len(q.pending)):]
	q.drained.Broadcast()

	return len(samples), true
}

func (q *queue) Err() error {
	return nil
}
