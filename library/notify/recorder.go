package notify

import (
	"context"
	"sync"
)

// Recorder keeps published notifications in memory.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
	err           error
}

// NewRecorder creates a Recorder. A non-nil err is returned from every Publish, the
// notification is still recorded.
func NewRecorder(err error) *Recorder {
	return &Recorder{err: err}
}

func (r *Recorder) Publish(_ context.Context, notification Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, notification)

	return r.err
}

// Notifications returns the recorded notifications with topic, all if topic is empty.
func (r *Recorder) Notifications(topic string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		if topic == "" || n.Topic == topic {
			out = append(out, n)
		}
	}

	return out
}
