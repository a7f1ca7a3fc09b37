package ports

// Notifier raises transient, advisory messages for the operator. It is an
// injected dependency rather than a process-wide singleton so each view owns
// its own notification state and tests can capture what was raised.
type Notifier interface {
	ShowSuccess(message string)
	ShowError(message string)
}
