package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recordops/recordadmin/internal/core/domain"
)

// quickEditModel is the title-only fast path for posts: one field, one PATCH.
// It shares no state with the full edit form; both funnel through the
// reconciler, and the server response is authoritative either way.
type quickEditModel struct {
	postID     int
	input      textinput.Model
	submitting bool
}

func newQuickEdit(post domain.Post) quickEditModel {
	in := textinput.New()
	in.CharLimit = 120
	in.Prompt = ""
	in.SetValue(post.Title)
	in.Focus()
	return quickEditModel{postID: post.ID, input: in}
}

// title returns the staged value, trimmed the way it will be submitted.
func (m quickEditModel) title() string {
	return strings.TrimSpace(m.input.Value())
}

// canSubmit gates the patch: a blank title is silently not submittable, and a
// request already in flight blocks a second one.
func (m quickEditModel) canSubmit() bool {
	return !m.submitting && m.title() != ""
}

func (m quickEditModel) Update(msg tea.Msg) (quickEditModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m quickEditModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Quick edit post #%d", m.postID)))
	b.WriteString("\n\n  ")
	b.WriteString(labelStyle.Render("Title: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(dimStyle.Render("saving..."))
	} else {
		b.WriteString(helpStyle.Render("enter save · esc cancel"))
	}
	b.WriteString("\n")
	return b.String()
}
