package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// tap wraps a beep.Streamer and keeps the most recent samples in a ring
// buffer so the sound-wave bars can follow the music.
type tap struct {
	source beep.Streamer
	buffer [][2]float64
	next   int
	filled bool
	mu     sync.RWMutex
}

func newTap(src beep.Streamer, size int) *tap {
	return &tap{
		source: src,
		buffer: make([][2]float64, max(size, 1)),
	}
}

// Stream implements beep.Streamer.
func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.next] = samples[i]
			t.next++
			if t.next >= len(t.buffer) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

// Err implements beep.Streamer.
func (t *tap) Err() error { return t.source.Err() }

// snapshot returns the recorded samples in chronological order.
func (t *tap) snapshot() [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.filled {
		return append([][2]float64(nil), t.buffer[:t.next]...)
	}
	out := make([][2]float64, 0, len(t.buffer))
	out = append(out, t.buffer[t.next:]...)
	return append(out, t.buffer[:t.next]...)
}

// levels splits the recent samples into n bands and returns each band's RMS
// loudness, compressed into [0,1].
func (t *tap) levels(n int) []float64 {
	samples := t.snapshot()
	if n <= 0 || len(samples) == 0 {
		return nil
	}

	out := make([]float64, n)
	size := max(len(samples)/n, 1)
	for i := range out {
		start := i * size
		if start >= len(samples) {
			break
		}
		end := min(start+size, len(samples))

		var sum float64
		for _, s := range samples[start:end] {
			mono := (s[0] + s[1]) * 0.5
			sum += mono * mono
		}
		rms := math.Sqrt(sum / float64(end-start))
		out[i] = math.Min(math.Pow(rms, 0.3), 1)
	}
	return out
}
