package audio

import (
	"runtime"
	"sync/atomic"
)

// voiceQueue is a lock-free spsc queue used to transfer voice ownership
// between the control and render contexts. The consumer side never blocks.
type voiceQueue struct {
	voices      []*Voice
	read, write atomic.Uint32
}

func newVoiceQueue(size int) *voiceQueue {
	if size <= 0 || size&(size-1) != 0 {
		panic("voice queue size must be a power of 2")
	}
	return &voiceQueue{voices: make([]*Voice, size)}
}

func (q *voiceQueue) push(v *Voice) {
	for q.write.Load()-q.read.Load() == uint32(len(q.voices)) {
		runtime.Gosched()
	}
	write := q.write.Load()
	q.voices[write%uint32(len(q.voices))] = v
	q.write.Store(write + 1)
}

// tryPush enqueues v unless the queue is full, in which case v is dropped.
// The render context uses this: it may not spin.
func (q *voiceQueue) tryPush(v *Voice) bool {
	write := q.write.Load()
	if write-q.read.Load() == uint32(len(q.voices)) {
		return false
	}
	q.voices[write%uint32(len(q.voices))] = v
	q.write.Store(write + 1)
	return true
}

// pop returns the next voice or nil if the queue is empty. It never waits.
func (q *voiceQueue) pop() *Voice {
	read := q.read.Load()
	if read == q.write.Load() {
		return nil
	}
	v := q.voices[read%uint32(len(q.voices))]
	q.read.Store(read + 1)
	return v
}
