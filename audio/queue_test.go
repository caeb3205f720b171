package audio

import (
	"context"
	"testing"
)

func TestVoiceQueueOrder(t *testing.T) {
	q := newVoiceQueue(8)
	a := &Voice{seq: 1}
	b := &Voice{seq: 2}
	q.push(a)
	q.push(b)

	if got := q.pop(); got != a {
		t.Errorf("wrong first voice: want %v, got %v", a, got)
	}
	if got := q.pop(); got != b {
		t.Errorf("wrong second voice: want %v, got %v", b, got)
	}
	if got := q.pop(); got != nil {
		t.Errorf("empty queue should pop nil, got %v", got)
	}
}

func TestVoiceQueueTryPushFull(t *testing.T) {
	q := newVoiceQueue(2)
	if !q.tryPush(&Voice{}) || !q.tryPush(&Voice{}) {
		t.Fatal("pushes into empty queue should succeed")
	}
	if q.tryPush(&Voice{}) {
		t.Error("tryPush into a full queue should fail")
	}
}

func TestVoiceQueueConcurrent(t *testing.T) {
	q := newVoiceQueue(64)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	var voices []*Voice
	go func() {
		for {
			select {
			case <-ctx.Done():
				for v := q.pop(); v != nil; v = q.pop() {
					voices = append(voices, v)
				}
				done <- struct{}{}
				return
			default:
				if v := q.pop(); v != nil {
					voices = append(voices, v)
				}
			}
		}
	}()

	const numVoices = 1_000_000
	for n := 0; n < numVoices; n++ {
		q.push(&Voice{seq: uint64(n)})
	}

	cancel()
	<-done

	if len(voices) != numVoices {
		t.Fatalf("wrong number of voices: want %v, got %v", numVoices, len(voices))
	}
	for i, v := range voices {
		if want, got := uint64(i), v.seq; want != got {
			t.Fatalf("voices out of order at %d: want %v, got %v", i, want, got)
		}
	}
}
