package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity bounds the activity feed.
const DefaultCapacity = 500

// Activity is one entry of the store activity feed.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Feed keeps the most recent activities, dropping the oldest past capacity.
type Feed struct {
	entries  []Activity
	capacity int
	mu       sync.RWMutex
}

// NewFeed creates an empty feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		entries:  make([]Activity, 0, capacity),
		capacity: capacity,
	}
}

// Record appends an activity with a fresh id.
func (f *Feed) Record(activityType, subject, message string, at time.Time) Activity {
	entry := Activity{
		ID:        uuid.New().String(),
		Type:      activityType,
		Subject:   subject,
		Message:   message,
		Timestamp: at,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == f.capacity {
		copy(f.entries, f.entries[1:])
		f.entries = f.entries[:len(f.entries)-1]
	}
	f.entries = append(f.entries, entry)
	return entry
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (f *Feed) Recent(limit int) []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Activity, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

// Len returns the number of stored entries.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}
