package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/anima-soft/engine/containers"
)

// FrameSampleCount is how many frame times the rolling average spans.
const FrameSampleCount = 15

// FrameCounter keeps a rolling average of the last FrameSampleCount frame
// times and counts frames per second. Safe for concurrent use.
type FrameCounter struct {
	mu sync.Mutex

	samples *containers.RingQueue[time.Duration]
	sum     time.Duration

	frames      int
	accumulated time.Duration
	fps         float64
	total       uint64
}

func NewFrameCounter() *FrameCounter {
	return &FrameCounter{
		samples: containers.NewRingQueue[time.Duration](FrameSampleCount),
	}
}

// Update records the duration of one frame.
func (fc *FrameCounter) Update(frameTime time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.samples.IsFull() {
		oldest, _ := fc.samples.Dequeue()
		fc.sum -= oldest
	}
	// cannot fail, a slot was just freed
	_ = fc.samples.Enqueue(frameTime)
	fc.sum += frameTime

	fc.frames++
	fc.total++
	fc.accumulated += frameTime
	if fc.accumulated >= time.Second {
		fc.fps = float64(fc.frames) / fc.accumulated.Seconds()
		fc.accumulated = 0
		fc.frames = 0
	}
}

// Average returns the mean frame time over the recorded samples.
func (fc *FrameCounter) Average() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	n := fc.samples.Len()
	if n == 0 {
		return 0
	}
	return fc.sum / time.Duration(n)
}

// FPS returns the frame rate measured over the last full second.
func (fc *FrameCounter) FPS() float64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.fps
}

func (fc *FrameCounter) Frames() uint64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.total
}

func (fc *FrameCounter) Reset() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.samples.Reset()
	fc.sum = 0
	fc.frames = 0
	fc.accumulated = 0
	fc.fps = 0
	fc.total = 0
}
