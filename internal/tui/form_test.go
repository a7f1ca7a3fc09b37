package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recordops/recordadmin/internal/core/domain"
)

func typeRunes(t *testing.T, m formModel, s string) formModel {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyPress(t *testing.T, m formModel, key string) formModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		t.Fatalf("unknown key %q", key)
	}
	m, _ = m.Update(msg)
	return m
}

var formUsers = []domain.User{
	{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "leanne@example.com"},
	{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "ervin@example.com"},
}

// ---
// User form
// ---

func TestUserForm_CreateStartsClean(t *testing.T) {
	m := newUserForm(nil)

	if m.mode != formCreate {
		t.Fatal("nil user must produce a Create form")
	}
	for name, v := range m.values() {
		if v != "" {
			t.Errorf("field %q pre-filled with %q on create", name, v)
		}
	}
	if m.engine.HasErrors() {
		t.Error("a fresh form must not carry errors")
	}
}

func TestUserForm_EditStagesEntity(t *testing.T) {
	u := formUsers[0]
	m := newUserForm(&u)

	if m.mode != formEdit || m.entityID != 1 {
		t.Fatalf("expected Edit form bound to #1, got mode=%d id=%d", m.mode, m.entityID)
	}
	v := m.values()
	if v["name"] != u.Name || v["username"] != u.Username || v["email"] != u.Email {
		t.Errorf("staged values %v do not match the entity", v)
	}
}

func TestUserForm_ShortUsernameShowsInlineError(t *testing.T) {
	m := newUserForm(nil)
	m = keyPress(t, m, "tab") // name -> username
	m = typeRunes(t, m, "ab")

	if msg := m.engine.FieldError("username"); msg != "must be at least 3 characters" {
		t.Fatalf("unexpected error %q", msg)
	}
	if !m.engine.Touched("username") {
		t.Fatal("typing must mark the field touched")
	}
	if !strings.Contains(m.View(), "must be at least 3 characters") {
		t.Error("inline error missing from the rendered form")
	}

	m = typeRunes(t, m, "c")
	if msg := m.engine.FieldError("username"); msg != "" {
		t.Errorf("error must clear once the value recovers, still have %q", msg)
	}
}

func TestUserForm_UntouchedFieldsStayQuiet(t *testing.T) {
	m := newUserForm(nil)
	m = typeRunes(t, m, "J") // touch name only

	view := m.View()
	if strings.Count(view, "this field is required") > 1 {
		t.Error("only the touched field may render an error before submit")
	}
	if m.engine.Touched("email") {
		t.Error("email was never edited")
	}
}

func TestUserForm_FailedSubmitSurfacesEveryError(t *testing.T) {
	m := newUserForm(nil)

	if m.validate() {
		t.Fatal("empty user form must not validate")
	}
	for _, name := range []string{"name", "username", "email"} {
		if m.engine.FieldError(name) == "" {
			t.Errorf("field %q has no error after failed submit", name)
		}
		if !m.engine.Touched(name) {
			t.Errorf("field %q not marked touched after failed submit", name)
		}
	}
}

func TestUserForm_DraftCarriesValuesExactlyAsValidated(t *testing.T) {
	m := newUserForm(nil)
	m.fields[0].input.SetValue("  Leanne Graham  ")
	m.fields[1].input.SetValue("Bret")
	m.fields[2].input.SetValue("leanne@example.com")

	if !m.validate() {
		t.Fatalf("expected a valid form, errors: %v", m.values())
	}
	// The submitted draft must be the value the rules accepted, byte for
	// byte; trimming after validation could submit a value the rules would
	// have rejected.
	if got := m.userDraft().Name; got != "  Leanne Graham  " {
		t.Errorf("draft name %q differs from the validated value", got)
	}
}

func TestUserForm_SubmittingBlocksInput(t *testing.T) {
	m := newUserForm(nil)
	m.submitting = true
	m = typeRunes(t, m, "x")

	if v := m.values()["name"]; v != "" {
		t.Errorf("input leaked through while submitting: %q", v)
	}
	if !strings.Contains(m.View(), "saving...") {
		t.Error("submitting form must render the saving indicator")
	}
}

// ---
// Post form
// ---

func TestPostForm_SentinelOwnerFailsValidation(t *testing.T) {
	m := newPostForm(nil, formUsers, domain.NoOwner)
	m.fields[1].input.SetValue("a perfectly good title")

	if m.validate() {
		t.Fatal("the placeholder owner must not pass validation")
	}
	if msg := m.engine.FieldError("userId"); msg != "select a user" {
		t.Errorf("unexpected owner error %q", msg)
	}
}

func TestPostForm_ChooserCyclesAndValidates(t *testing.T) {
	m := newPostForm(nil, formUsers, domain.NoOwner)

	m = keyPress(t, m, "right") // placeholder -> Leanne
	if got := m.values()["userId"]; got != "1" {
		t.Fatalf("expected owner 1 after one step, got %q", got)
	}
	if msg := m.engine.FieldError("userId"); msg != "" {
		t.Errorf("a real owner must clear the error, got %q", msg)
	}

	m = keyPress(t, m, "left") // back to the placeholder
	if msg := m.engine.FieldError("userId"); msg != "select a user" {
		t.Errorf("stepping back to the placeholder must re-raise the error, got %q", msg)
	}
}

func TestPostForm_DefaultOwnerPreFilledOnCreate(t *testing.T) {
	m := newPostForm(nil, formUsers, 2)
	if got := m.values()["userId"]; got != "2" {
		t.Errorf("expected the filter owner pre-selected, got %q", got)
	}
}

func TestPostForm_EditUsesEntityOwner(t *testing.T) {
	p := domain.Post{ID: 7, UserID: 1, Title: "hello world"}
	m := newPostForm(&p, formUsers, 2)

	v := m.values()
	if v["userId"] != "1" {
		t.Errorf("edit must stage the entity owner, got %q", v["userId"])
	}
	if v["title"] != "hello world" {
		t.Errorf("edit must stage the entity title, got %q", v["title"])
	}
}

func TestPostForm_ValidDraft(t *testing.T) {
	m := newPostForm(nil, formUsers, domain.NoOwner)
	m = keyPress(t, m, "right")
	m.fields[1].input.SetValue("release notes")

	if !m.validate() {
		t.Fatal("expected a valid post form")
	}
	draft := m.postDraft()
	if draft.UserID != 1 || draft.Title != "release notes" {
		t.Errorf("unexpected draft %+v", draft)
	}
}

// ---
// Quick edit
// ---

func TestQuickEdit_BlankTitleCannotSubmit(t *testing.T) {
	q := newQuickEdit(domain.Post{ID: 3, UserID: 1, Title: "old title"})

	q.input.SetValue("   ")
	if q.canSubmit() {
		t.Fatal("a blank title must not be submittable")
	}

	q.input.SetValue("  new title  ")
	if !q.canSubmit() {
		t.Fatal("a non-blank title must be submittable")
	}
	if got := q.title(); got != "new title" {
		t.Errorf("title %q not trimmed", got)
	}
}

func TestQuickEdit_StagesCurrentTitle(t *testing.T) {
	q := newQuickEdit(domain.Post{ID: 3, UserID: 1, Title: "old title"})
	if got := q.title(); got != "old title" {
		t.Errorf("expected the current title staged, got %q", got)
	}
}
