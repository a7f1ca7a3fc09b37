package tui

import (
	"fmt"
	"strings"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// usersPage holds the view state for the users list: cursor position,
// loading flag, and the overlays (form, delete confirmation) that can sit on
// top of it. Collection data itself lives in the reconciler.
type usersPage struct {
	cursor    int
	loading   bool
	confirmID int        // entity pending delete confirmation, 0 = none
	form      *formModel // open create/edit form, nil = closed
}

func (p *usersPage) clampCursor(n int) {
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (m App) viewUsers() string {
	p := m.usersPage

	if p.form != nil {
		return p.form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Users"))
	b.WriteString("\n\n")

	if err := m.users.LoadError(); err != nil {
		b.WriteString(bannerStyle.Render("failed to load users, press r to retry"))
		b.WriteString("\n\n")
		if !m.users.Loaded() {
			// First load failed: nothing to preserve, nothing to list.
			b.WriteString(m.footer("r retry · esc home · q quit"))
			return b.String()
		}
	}

	if p.loading && !m.users.Loaded() {
		b.WriteString(m.spinner.View() + " loading users...\n")
		return b.String()
	}

	users := m.users.Snapshot()
	if len(users) == 0 {
		b.WriteString(dimStyle.Render("no users yet, press n to add one"))
		b.WriteString("\n")
	}
	for i, u := range users {
		line := fmt.Sprintf("#%-3d %-24s @%-16s %s", u.ID, u.Name, u.Username, u.Email)
		if i == p.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if p.confirmID != 0 {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(fmt.Sprintf("delete user #%d? y/n", p.confirmID)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer("↑/↓ move · enter posts · n new · e edit · d delete · r reload · esc home · q quit"))
	return b.String()
}

// selectedUser returns the user under the cursor.
func (m App) selectedUser() (domain.User, bool) {
	users := m.users.Snapshot()
	if len(users) == 0 || m.usersPage.cursor >= len(users) {
		return domain.User{}, false
	}
	return users[m.usersPage.cursor], true
}
