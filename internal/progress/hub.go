// Package progress fans pipeline progress events out to registered observers.
package progress

import (
	"sync"
	"time"
)

// Stage names a step of the upload pipeline.
type Stage string

const (
	StageReceived         Stage = "received"
	StageRateChecked      Stage = "rate_checked"
	StageTextExtracted    Stage = "text_extracted"
	StageLanguageDetected Stage = "language_detected"
	StageSegmented        Stage = "segmented"
	StagePromptBuilt      Stage = "prompt_built"
	StageModelCalled      Stage = "model_called"
	StageSanitized        Stage = "sanitized"
	StageValidated        Stage = "validated"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

type Event struct {
	RequestID string    `json:"requestId"`
	Stage     Stage     `json:"stage"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

const defaultBuffer = 32

type subscriber struct {
	requestID string
	ch        chan Event
}

// Hub delivers events to subscribers without blocking the publisher. A
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[uint64]*subscriber), buffer: buffer}
}

// Subscribe registers an observer for requestID, or for every request when
// requestID is empty. The release func closes the channel and may be called
// more than once.
func (h *Hub) Subscribe(requestID string) (<-chan Event, func()) {
	sub := &subscriber{requestID: requestID, ch: make(chan Event, h.buffer)}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, release
}

// Publish is fire-and-forget.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.requestID != "" && sub.requestID != e.RequestID {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
