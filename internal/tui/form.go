package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recordops/recordadmin/internal/core/domain"
	"github.com/recordops/recordadmin/internal/core/validation"
)

// formMode distinguishes creating a new entity from editing an existing one.
type formMode int

const (
	formCreate formMode = iota
	formEdit
)

type fieldKind int

const (
	kindText fieldKind = iota
	// kindChooser cycles through a fixed option list with left/right.
	kindChooser
)

type chooserOption struct {
	value string
	label string
}

type formField struct {
	name  string // key in the validation rule set
	label string
	kind  fieldKind

	input textinput.Model // kindText

	options   []chooserOption // kindChooser
	optionIdx int
}

func (f *formField) value() string {
	if f.kind == kindChooser {
		return f.options[f.optionIdx].value
	}
	return f.input.Value()
}

// formModel is the shared state machine behind the user and post forms: a
// field list bound to a validation engine, with Create and Edit modes. Every
// keystroke re-validates the edited field; errors render only once a field
// is touched. Submission itself lives in the app, which owns the
// reconcilers; the form only stages values and reports them.
type formModel struct {
	title    string
	mode     formMode
	entityID int // bound entity in formEdit

	fields []formField
	engine *validation.Engine
	focus  int

	// submitting disables input while this form's own request is in
	// flight, so an entity can never be submitted twice concurrently.
	submitting bool
}

// newUserForm builds the user form. A nil user means Create; otherwise Edit,
// staged from the given entity. The engine starts clean either way, so state
// from a previous editing session never leaks.
func newUserForm(user *domain.User) formModel {
	m := formModel{
		title:  "New user",
		mode:   formCreate,
		engine: validation.NewEngine(validation.UserFormRules()),
		fields: []formField{
			newTextField("name", "Name", 50),
			newTextField("username", "Username", 20),
			newTextField("email", "Email", 80),
		},
	}
	if user != nil {
		m.title = fmt.Sprintf("Edit user #%d", user.ID)
		m.mode = formEdit
		m.entityID = user.ID
		m.fields[0].input.SetValue(user.Name)
		m.fields[1].input.SetValue(user.Username)
		m.fields[2].input.SetValue(user.Email)
	}
	m.fields[0].input.Focus()
	return m
}

// newPostForm builds the post form. users feeds the owner chooser.
// defaultOwner pre-fills the owner in Create mode only: arriving on a
// filtered posts view pre-selects that user, but an explicit choice is never
// overridden, and in Edit mode the entity's own owner wins.
func newPostForm(post *domain.Post, users []domain.User, defaultOwner int) formModel {
	options := make([]chooserOption, 0, len(users)+1)
	options = append(options, chooserOption{value: "0", label: "select a user"})
	for _, u := range users {
		options = append(options, chooserOption{
			value: strconv.Itoa(u.ID),
			label: fmt.Sprintf("%s (%s)", u.Name, u.Username),
		})
	}

	m := formModel{
		title:  "New post",
		mode:   formCreate,
		engine: validation.NewEngine(validation.PostFormRules()),
		fields: []formField{
			{name: "userId", label: "User", kind: kindChooser, options: options},
			newTextField("title", "Title", 120),
		},
	}

	owner := domain.NoOwner
	if post != nil {
		m.title = fmt.Sprintf("Edit post #%d", post.ID)
		m.mode = formEdit
		m.entityID = post.ID
		m.fields[1].input.SetValue(post.Title)
		owner = post.UserID
	} else if defaultOwner != domain.NoOwner {
		owner = defaultOwner
	}
	if owner != domain.NoOwner {
		for i, opt := range m.options(0) {
			if opt.value == strconv.Itoa(owner) {
				m.fields[0].optionIdx = i
				break
			}
		}
	}
	return m
}

func newTextField(name, label string, limit int) formField {
	in := textinput.New()
	in.CharLimit = limit
	in.Prompt = ""
	return formField{name: name, label: label, kind: kindText, input: in}
}

func (m formModel) options(i int) []chooserOption { return m.fields[i].options }

// values snapshots the staged field values for validation and submission.
func (m formModel) values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for i := range m.fields {
		out[m.fields[i].name] = m.fields[i].value()
	}
	return out
}

// userDraft converts staged values into a User. Only meaningful on the user
// form after a passing ValidateForm; the draft carries the values exactly as
// validated, so what the rules accepted is what the server receives.
func (m formModel) userDraft() domain.User {
	v := m.values()
	return domain.User{
		ID:       m.entityID,
		Name:     v["name"],
		Username: v["username"],
		Email:    v["email"],
	}
}

// postDraft converts staged values into a Post.
func (m formModel) postDraft() domain.Post {
	v := m.values()
	owner, _ := strconv.Atoi(v["userId"])
	return domain.Post{
		ID:     m.entityID,
		UserID: owner,
		Title:  v["title"],
	}
}

// Update handles field navigation and editing. Submission (enter) and
// cancellation (esc) are handled by the app, which owns the reconcilers.
func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.fields))
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))
		return m, nil
	}

	f := &m.fields[m.focus]
	switch f.kind {
	case kindChooser:
		switch key.String() {
		case "left":
			f.optionIdx = (f.optionIdx - 1 + len(f.options)) % len(f.options)
			m.engine.ValidateSingleField(f.name, f.value())
		case "right":
			f.optionIdx = (f.optionIdx + 1) % len(f.options)
			m.engine.ValidateSingleField(f.name, f.value())
		}
		return m, nil

	default:
		var cmd tea.Cmd
		before := f.input.Value()
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			m.engine.ValidateSingleField(f.name, f.input.Value())
		}
		return m, cmd
	}
}

func (m *formModel) setFocus(idx int) {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	m.focus = idx
	if m.fields[idx].kind == kindText {
		m.fields[idx].input.Focus()
	}
}

// validate runs the whole-form gate. It must pass before any submission
// reaches the network.
func (m formModel) validate() bool {
	return m.engine.ValidateForm(m.values())
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i := range m.fields {
		f := &m.fields[i]

		marker := "  "
		if i == m.focus {
			marker = selectedStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(f.label + ": "))

		switch f.kind {
		case kindChooser:
			label := f.options[f.optionIdx].label
			if i == m.focus {
				b.WriteString(selectedStyle.Render("< " + label + " >"))
			} else {
				b.WriteString(label)
			}
		default:
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")

		// Inline error, gated on touched so nothing is red before the
		// first interaction.
		if msg := m.engine.FieldError(f.name); msg != "" && m.engine.Touched(f.name) {
			b.WriteString("    " + fieldErrorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(dimStyle.Render("saving..."))
	} else {
		b.WriteString(helpStyle.Render("enter save · esc cancel · tab next field"))
	}
	b.WriteString("\n")
	return b.String()
}
