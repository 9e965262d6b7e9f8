package core

import (
	"context"
	"sync"
	"time"
)

// NoticeLevel is the tone of a user notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// NoticeTTL is how long a notice stays visible in a NoticeLog.
const NoticeTTL = 4500 * time.Millisecond

// Notice is a transient message for the user.
type Notice struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Level       NoticeLevel `json:"type"`
	At          time.Time   `json:"at"`
}

// Notifier shows transient messages to the user of the current session.
// Implementations must be safe for concurrent use and must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Notifiers fans a notice out to every notifier in the slice.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notice) {
	for _, x := range ns {
		if x != nil {
			x.Notify(ctx, n)
		}
	}
}

// NoticeLog keeps the notices of one session until they expire.
type NoticeLog struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	notices []Notice
}

// NewNoticeLog returns an empty log whose entries expire after NoticeTTL.
func NewNoticeLog() *NoticeLog {
	return &NoticeLog{ttl: NoticeTTL, now: time.Now}
}

func (l *NoticeLog) Notify(_ context.Context, n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n.At.IsZero() {
		n.At = l.now()
	}
	l.prune()
	l.notices = append(l.notices, n)
}

// Active returns the notices that have not expired, oldest first.
func (l *NoticeLog) Active() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune()
	out := make([]Notice, len(l.notices))
	copy(out, l.notices)
	return out
}

// prune drops expired notices. Callers hold l.mu.
func (l *NoticeLog) prune() {
	cutoff := l.now().Add(-l.ttl)
	keep := l.notices[:0]
	for _, n := range l.notices {
		if n.At.After(cutoff) {
			keep = append(keep, n)
		}
	}
	l.notices = keep
}
