// Package tui is the terminal front end of the admin console: a bubbletea
// program with a users page and a posts page, modal create/edit forms wired
// to the validation engine, and transient toast notifications.
//
// All state mutation happens on the bubbletea event loop; network calls run
// as tea.Cmd goroutines against the reconcilers, which are safe for that.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/service"
)

type page int

const (
	pageHome page = iota
	pageUsers
	pagePosts
)

// App is the root model. It owns the two reconcilers, the notification
// center, and the per-page view state.
type App struct {
	users *service.Reconciler[domain.User]
	posts *service.Reconciler[domain.Post]
	notes *service.NotificationCenter
	log   zerolog.Logger

	page page
	// gen is the current view generation. It bumps on every page change;
	// async results stamped with an older generation are stale and must
	// not touch the current view's state.
	gen int

	usersPage usersPage
	postsPage postsPage

	spinner spinner.Model
	width   int
	height  int

	// deepLink is a username to open posts for once users are loaded
	// (the --user flag). Cleared after one resolution attempt.
	deepLink string

	quitting bool
}

// New assembles the app. deepLinkUser may be empty.
func New(
	users *service.Reconciler[domain.User],
	posts *service.Reconciler[domain.Post],
	notes *service.NotificationCenter,
	log zerolog.Logger,
	deepLinkUser string,
) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return App{
		users:     users,
		posts:     posts,
		notes:     notes,
		log:       log,
		spinner:   sp,
		deepLink:  deepLinkUser,
		usersPage: usersPage{loading: true},
		postsPage: postsPage{loading: true},
	}
}

// Init fetches both collections up front: the posts page needs user names
// for owner labels no matter where the operator goes first.
func (m App) Init() tea.Cmd {
	return tea.Batch(m.loadUsersCmd(m.gen), m.loadPostsCmd(m.gen), m.spinner.Tick)
}

// --- Commands ---

func (m App) loadUsersCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		err := m.users.Load(context.Background())
		return usersLoadedMsg{gen: gen, err: err}
	}
}

func (m App) loadPostsCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		err := m.posts.Load(context.Background())
		return postsLoadedMsg{gen: gen, err: err}
	}
}

// toastCmd schedules auto-dismissal for whatever notification is currently
// showing. Safe to call when nothing is visible.
func (m App) toastCmd() tea.Cmd {
	if !m.notes.Current().Visible {
		return nil
	}
	return scheduleToastExpiry(m.notes.Seq())
}

// --- Update ---

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		m.notes.HideIfSeq(msg.seq)
		return m, nil

	case usersLoadedMsg:
		if msg.gen == m.gen {
			m.usersPage.loading = false
			m.usersPage.clampCursor(len(m.users.Snapshot()))
		}
		var cmd tea.Cmd
		if m.deepLink != "" && msg.err == nil {
			m, cmd = m.resolveDeepLink()
		}
		return m, tea.Batch(cmd, m.toastCmd())

	case postsLoadedMsg:
		if msg.gen == m.gen {
			m.postsPage.loading = false
			m.postsPage.clampCursor(len(m.visiblePosts()))
		}
		return m, m.toastCmd()

	case mutationDoneMsg:
		if msg.gen == m.gen {
			m = m.settleMutation(msg.err)
		}
		return m, m.toastCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.page {
		case pageUsers:
			return m.updateUsersPage(msg)
		case pagePosts:
			return m.updatePostsPage(msg)
		default:
			return m.updateHomePage(msg)
		}
	}

	return m, nil
}

// settleMutation clears the pending state of whichever overlay issued the
// finished mutation: on success the overlay closes, on failure it stays open
// for another attempt. The reconciler has already applied the data outcome
// and raised the notification.
func (m App) settleMutation(err error) App {
	switch m.page {
	case pageUsers:
		if f := m.usersPage.form; f != nil && f.submitting {
			if err == nil {
				m.usersPage.form = nil
			} else {
				f.submitting = false
			}
		}
		m.usersPage.clampCursor(len(m.users.Snapshot()))
	case pagePosts:
		if f := m.postsPage.form; f != nil && f.submitting {
			if err == nil {
				m.postsPage.form = nil
			} else {
				f.submitting = false
			}
		}
		if q := m.postsPage.quickEdit; q != nil && q.submitting {
			if err == nil {
				m.postsPage.quickEdit = nil
			} else {
				q.submitting = false
			}
		}
		m.postsPage.clampCursor(len(m.visiblePosts()))
	}
	return m
}

// --- Navigation ---

// gotoPage switches pages and bumps the view generation so in-flight results
// for the old view are recognised as stale.
func (m App) gotoPage(p page) App {
	m.page = p
	m.gen++
	return m
}

// resolveDeepLink maps the --user username onto a loaded user and opens the
// posts page scoped to them. Unknown usernames land on the unfiltered posts
// page with an error toast.
func (m App) resolveDeepLink() (App, tea.Cmd) {
	username := m.deepLink
	m.deepLink = ""

	matches := m.users.FilterBy(func(u domain.User) bool { return u.Username == username })
	m = m.gotoPage(pagePosts)
	if len(matches) == 0 {
		m.notes.ShowError(fmt.Sprintf("no user with username %q", username))
		return m, m.toastCmd()
	}
	m.postsPage.filterUserID = matches[0].ID
	m.postsPage.cursor = 0
	return m, nil
}

func (m App) updateHomePage(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "u":
		return m.gotoPage(pageUsers), nil
	case "2", "p":
		return m.gotoPage(pagePosts), nil
	}
	return m, nil
}

// --- Users page ---

func (m App) updateUsersPage(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Form overlay takes every key first.
	if m.usersPage.form != nil {
		return m.updateUserForm(key)
	}

	// Delete confirmation gate.
	if id := m.usersPage.confirmID; id != 0 {
		switch key.String() {
		case "y":
			m.usersPage.confirmID = 0
			gen := m.gen
			return m, func() tea.Msg {
				return mutationDoneMsg{gen: gen, err: m.users.Remove(context.Background(), id)}
			}
		case "n", "esc":
			m.usersPage.confirmID = 0
		}
		return m, nil
	}

	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m.gotoPage(pageHome), nil
	case "2", "p":
		return m.gotoPage(pagePosts), nil
	case "up", "k":
		m.usersPage.cursor--
		m.usersPage.clampCursor(len(m.users.Snapshot()))
	case "down", "j":
		m.usersPage.cursor++
		m.usersPage.clampCursor(len(m.users.Snapshot()))
	case "r":
		m.usersPage.loading = true
		return m, m.loadUsersCmd(m.gen)
	case "n":
		f := newUserForm(nil)
		m.usersPage.form = &f
	case "e":
		if u, ok := m.selectedUser(); ok {
			f := newUserForm(&u)
			m.usersPage.form = &f
		}
	case "d":
		if u, ok := m.selectedUser(); ok {
			m.usersPage.confirmID = u.ID
		}
	case "enter", "v":
		if u, ok := m.selectedUser(); ok {
			m = m.gotoPage(pagePosts)
			m.postsPage.filterUserID = u.ID
			m.postsPage.cursor = 0
		}
	}
	return m, nil
}

func (m App) updateUserForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.usersPage.form
	switch key.String() {
	case "esc":
		if !f.submitting {
			m.usersPage.form = nil
		}
		return m, nil

	case "enter":
		if f.submitting {
			return m, nil
		}
		if !f.validate() {
			m.notes.ShowError("please fix the highlighted fields")
			return m, m.toastCmd()
		}
		f.submitting = true
		gen := m.gen
		draft := f.userDraft()
		if f.mode == formCreate {
			return m, func() tea.Msg {
				_, err := m.users.Create(context.Background(), draft)
				return mutationDoneMsg{gen: gen, err: err}
			}
		}
		return m, func() tea.Msg {
			_, err := m.users.Update(context.Background(), f.entityID, draft)
			return mutationDoneMsg{gen: gen, err: err}
		}

	default:
		next, cmd := f.Update(key)
		m.usersPage.form = &next
		return m, cmd
	}
}

// --- Posts page ---

func (m App) updatePostsPage(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.postsPage.form != nil {
		return m.updatePostForm(key)
	}
	if m.postsPage.quickEdit != nil {
		return m.updateQuickEdit(key)
	}

	if id := m.postsPage.confirmID; id != 0 {
		switch key.String() {
		case "y":
			m.postsPage.confirmID = 0
			gen := m.gen
			return m, func() tea.Msg {
				return mutationDoneMsg{gen: gen, err: m.posts.Remove(context.Background(), id)}
			}
		case "n", "esc":
			m.postsPage.confirmID = 0
		}
		return m, nil
	}

	switch key.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m.gotoPage(pageHome), nil
	case "1", "u":
		return m.gotoPage(pageUsers), nil
	case "up", "k":
		m.postsPage.cursor--
		m.postsPage.clampCursor(len(m.visiblePosts()))
	case "down", "j":
		m.postsPage.cursor++
		m.postsPage.clampCursor(len(m.visiblePosts()))
	case "r":
		m.postsPage.loading = true
		return m, m.loadPostsCmd(m.gen)
	case "c":
		// One action back to the unfiltered view.
		m.postsPage.filterUserID = domain.NoOwner
		m.postsPage.cursor = 0
	case "n":
		f := newPostForm(nil, m.users.Snapshot(), m.postsPage.filterUserID)
		m.postsPage.form = &f
	case "e":
		if p, ok := m.selectedPost(); ok {
			f := newPostForm(&p, m.users.Snapshot(), domain.NoOwner)
			m.postsPage.form = &f
		}
	case "t":
		if p, ok := m.selectedPost(); ok {
			q := newQuickEdit(p)
			m.postsPage.quickEdit = &q
		}
	case "d":
		if p, ok := m.selectedPost(); ok {
			m.postsPage.confirmID = p.ID
		}
	}
	return m, nil
}

func (m App) updatePostForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.postsPage.form
	switch key.String() {
	case "esc":
		if !f.submitting {
			m.postsPage.form = nil
		}
		return m, nil

	case "enter":
		if f.submitting {
			return m, nil
		}
		if !f.validate() {
			m.notes.ShowError("please fix the highlighted fields")
			return m, m.toastCmd()
		}
		f.submitting = true
		gen := m.gen
		draft := f.postDraft()
		if f.mode == formCreate {
			return m, func() tea.Msg {
				_, err := m.posts.Create(context.Background(), draft)
				return mutationDoneMsg{gen: gen, err: err}
			}
		}
		return m, func() tea.Msg {
			_, err := m.posts.Update(context.Background(), f.entityID, draft)
			return mutationDoneMsg{gen: gen, err: err}
		}

	default:
		next, cmd := f.Update(key)
		m.postsPage.form = &next
		return m, cmd
	}
}

func (m App) updateQuickEdit(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.postsPage.quickEdit
	switch key.String() {
	case "esc":
		if !q.submitting {
			m.postsPage.quickEdit = nil
		}
		return m, nil

	case "enter":
		if !q.canSubmit() {
			return m, nil
		}
		q.submitting = true
		gen := m.gen
		id, title := q.postID, q.title()
		return m, func() tea.Msg {
			_, err := m.posts.Patch(context.Background(), id, map[string]any{"title": title})
			return mutationDoneMsg{gen: gen, err: err}
		}

	default:
		next, cmd := q.Update(key)
		m.postsPage.quickEdit = &next
		return m, cmd
	}
}

// --- View ---

func (m App) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.page {
	case pageUsers:
		body = m.viewUsers()
	case pagePosts:
		body = m.viewPosts()
	default:
		body = m.viewHome()
	}

	var b strings.Builder
	b.WriteString(body)

	if note := m.notes.Current(); note.Visible {
		b.WriteString("\n")
		switch note.Severity {
		case service.SeverityError:
			b.WriteString(toastErrorStyle.Render(note.Message))
		default:
			b.WriteString(toastSuccessStyle.Render(note.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m App) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Record Admin"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("manage users and posts on the remote service"))
	b.WriteString("\n\n")
	b.WriteString("  1  Users\n")
	b.WriteString("  2  Posts\n\n")
	b.WriteString(m.footer("1/2 open a section · q quit"))
	return b.String()
}

func (m App) footer(help string) string {
	return helpStyle.Render(help) + "\n"
}
