// Package notify delivers user-visible notices to the UI and the log.
//
// Every sink is fire-and-forget: Notify never blocks and never fails, so
// session code can report outcomes without caring who listens.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// ChannelSink adapts domain.NotificationSink to a channel for Bubble Tea.
type ChannelSink struct {
	ch chan<- domain.Notice
}

// NewChannelSink creates a new channel-based sink.
func NewChannelSink(ch chan<- domain.Notice) *ChannelSink {
	return &ChannelSink{ch: ch}
}

// Notify sends the notice to the channel (non-blocking if full).
func (s *ChannelSink) Notify(n domain.Notice) {
	select {
	case s.ch <- n:
	default: // Non-blocking if channel full
	}
}

// LogSink writes notices to a structured logger
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs every notice
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n domain.Notice) {
	level := slog.LevelInfo
	switch n.Severity {
	case domain.SeverityWarn:
		level = slog.LevelWarn
	case domain.SeverityError:
		level = slog.LevelError
	}
	s.logger.Log(context.Background(), level, "notice", "severity", n.Severity.String(), "summary", n.Summary, "detail", n.Detail)
}

// History keeps the most recent notices, oldest first
type History struct {
	mu      sync.Mutex
	limit   int
	notices []domain.Notice
}

// NewHistory creates a history holding at most limit notices (0 = unbounded)
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

func (h *History) Notify(n domain.Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, n)
	if h.limit > 0 && len(h.notices) > h.limit {
		h.notices = h.notices[len(h.notices)-h.limit:]
	}
}

// Notices returns a copy of the retained notices
func (h *History) Notices() []domain.Notice {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.Notice, len(h.notices))
	copy(out, h.notices)
	return out
}

// Last returns the most recent notice
func (h *History) Last() (domain.Notice, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.notices) == 0 {
		return domain.Notice{}, false
	}
	return h.notices[len(h.notices)-1], true
}

// Fanout delivers every notice to all sinks in order
type Fanout []domain.NotificationSink

func (f Fanout) Notify(n domain.Notice) {
	for _, s := range f {
		if s != nil {
			s.Notify(n)
		}
	}
}
