package messaging

import (
	"fmt"
	"strings"
	"sync"
)

// Recorder is a Sink that captures traffic for test assertions.
type Recorder struct {
	mu        sync.Mutex
	announces []string
	privates  map[string][]string
	topics    []string
}

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{privates: make(map[string][]string)}
}

// Ensure Recorder implements Sink
var _ Sink = (*Recorder)(nil)

// Announce records a channel message
func (r *Recorder) Announce(channel, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announces = append(r.announces, fmt.Sprintf(format, args...))
}

// Private records a private message
func (r *Recorder) Private(nick, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.privates[nick] = append(r.privates[nick], fmt.Sprintf(format, args...))
}

// SetTopic records a topic change
func (r *Recorder) SetTopic(channel, topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
}

// Announcements returns all recorded channel messages
func (r *Recorder) Announcements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.announces))
	copy(out, r.announces)
	return out
}

// PrivatesTo returns all private messages sent to the given nick
func (r *Recorder) PrivatesTo(nick string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.privates[nick]))
	copy(out, r.privates[nick])
	return out
}

// Topics returns all recorded topic changes
func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.topics))
	copy(out, r.topics)
	return out
}

// AnnouncedContaining reports whether any channel message contains the
// given substring.
func (r *Recorder) AnnouncedContaining(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.announces {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Reset clears all recorded traffic
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announces = nil
	r.privates = make(map[string][]string)
	r.topics = nil
}
