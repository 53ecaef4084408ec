package domain

// Severity classifies a user-visible notice
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

// String returns a human-readable representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a fire-and-forget message for the user
type Notice struct {
	Severity Severity
	Summary  string
	Detail   string
}

// NotificationSink accepts notices. Implementations must not block the caller.
type NotificationSink interface {
	Notify(n Notice)
}

// DiscardSink drops every notice (for testing/batch operations).
type DiscardSink struct{}

func (DiscardSink) Notify(Notice) {}
