package watcher

import (
	"sync"
	"time"
)

const DefaultQuiescenceDuration = 60 * time.Second

// QuiescenceTracker manages per-file debounce timers. When a file
// stops being written to for the quiescence duration, the callback
// fires. Documents being exported or synced arrive in several writes;
// uploading before the last one would ship a truncated file.
type QuiescenceTracker struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	duration time.Duration
	callback func(filePath string)
}

func NewQuiescenceTracker(duration time.Duration, callback func(filePath string)) *QuiescenceTracker {
	return &QuiescenceTracker{
		timers:   make(map[string]*time.Timer),
		duration: duration,
		callback: callback,
	}
}

// Touch resets the quiescence timer for a file.
func (q *QuiescenceTracker) Touch(filePath string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[filePath]; ok {
		timer.Stop()
	}

	q.timers[filePath] = time.AfterFunc(q.duration, func() {
		q.mu.Lock()
		delete(q.timers, filePath)
		q.mu.Unlock()

		q.callback(filePath)
	})
}

// Stop cancels all pending timers.
func (q *QuiescenceTracker) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, timer := range q.timers {
		timer.Stop()
	}
	q.timers = make(map[string]*time.Timer)
}
