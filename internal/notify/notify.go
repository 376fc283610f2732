// Package notify carries transient user-facing messages: cart changes,
// checkout outcomes, auth events.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Notification struct {
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(message string, severity Severity)
}

const recentLimit = 50

// Hub fans notifications out to the log and keeps a bounded recent
// window for the presentation layer. Messages auto-dismiss by falling
// out of that window.
type Hub struct {
	mu     sync.Mutex
	recent []Notification
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{logger: logger}
}

func (h *Hub) Notify(message string, severity Severity) {
	n := Notification{Message: message, Severity: severity, CreatedAt: time.Now()}

	h.mu.Lock()
	h.recent = append(h.recent, n)
	if len(h.recent) > recentLimit {
		h.recent = h.recent[len(h.recent)-recentLimit:]
	}
	h.mu.Unlock()

	event := h.logger.Info()
	if severity == SeverityError {
		event = h.logger.Warn()
	}
	event.Str("severity", string(severity)).Msg(message)
}

// Recent returns the retained notifications, oldest first.
func (h *Hub) Recent() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Notification, len(h.recent))
	copy(out, h.recent)
	return out
}
