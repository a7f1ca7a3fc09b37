package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a notification stays up before auto-dismissal.
const toastDuration = 4 * time.Second

// Every async result message carries the generation of the view that issued
// it. The app increments the generation whenever a page is (re)entered, so a
// result resolving after navigation is recognised as stale and dropped
// without touching the current view's state.

// usersLoadedMsg signals that a users Load finished (err nil on success).
type usersLoadedMsg struct {
	gen int
	err error
}

// postsLoadedMsg signals that a posts Load finished.
type postsLoadedMsg struct {
	gen int
	err error
}

// mutationDoneMsg signals that a create/update/patch/delete finished. The
// reconciler has already applied the outcome and raised the notification;
// the view only needs to leave its pending state and, on success, close
// whatever overlay initiated the mutation.
type mutationDoneMsg struct {
	gen int
	err error
}

// toastExpiredMsg fires when a notification's display time is up. seq ties
// it to the notification it was scheduled for.
type toastExpiredMsg struct {
	seq uint64
}

func scheduleToastExpiry(seq uint64) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
