package service

import "sync"

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single transient message slot shown to the operator.
type Notification struct {
	Message  string
	Severity Severity
	Visible  bool
}

// NotificationCenter holds at most one active notification. A new one
// silently supersedes whatever was showing; notifications are advisory, so
// no queueing. Hide keeps the last message so a closing transition can still
// render its text.
//
// The zero-adjacent initial state is hidden; nothing shows before the first
// ShowSuccess/ShowError. Safe for concurrent use: the reconcilers raise
// notifications from request goroutines while the view reads the slot.
type NotificationCenter struct {
	mu      sync.Mutex
	current Notification
	seq     uint64
}

// NewNotificationCenter returns a center with no visible notification.
func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{}
}

// ShowSuccess replaces the current notification with a visible success.
func (n *NotificationCenter) ShowSuccess(message string) {
	n.show(message, SeveritySuccess)
}

// ShowError replaces the current notification with a visible error.
func (n *NotificationCenter) ShowError(message string) {
	n.show(message, SeverityError)
}

func (n *NotificationCenter) show(message string, sev Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = Notification{Message: message, Severity: sev, Visible: true}
	n.seq++
}

// Hide dismisses the current notification without clearing its message.
func (n *NotificationCenter) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current.Visible = false
}

// HideIfSeq dismisses the notification only when no newer one has replaced
// the one identified by seq. Timed auto-dismiss uses this so an old timer
// cannot swallow a fresh message.
func (n *NotificationCenter) HideIfSeq(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq == seq {
		n.current.Visible = false
	}
}

// Current returns a copy of the active notification slot.
func (n *NotificationCenter) Current() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Seq identifies the latest Show call; it changes on every replacement.
func (n *NotificationCenter) Seq() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.seq
}
