package validation

import (
	"strings"
	"unicode/utf8"
)

// Engine evaluates a RuleSet against raw field values. It owns two maps
// (field name to error message, field name to touched flag) but never the
// field values themselves, so one engine instance can serve any widget bound
// to the same rule set.
//
// An error is meant to be user-visible only when the field is also touched;
// that gate belongs to the renderer, the engine just records both facts.
type Engine struct {
	rules   RuleSet
	errors  map[string]string
	touched map[string]bool
}

// NewEngine returns an Engine with empty error and touched state.
func NewEngine(rules RuleSet) *Engine {
	return &Engine{
		rules:   rules,
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
}

// ValidateField evaluates the rules for one field in fixed order (required,
// min length, max length, pattern, custom) and returns the first failing
// rule's message, or "" when the value passes. It does not record anything.
//
// An empty or whitespace-only value counts as absent: it fails a required
// rule and passes everything else, so empty optional fields are always valid.
func (e *Engine) ValidateField(name, value string) string {
	rule, ok := e.rules[name]
	if !ok {
		return ""
	}

	if strings.TrimSpace(value) == "" {
		if rule.Required {
			return MsgRequired
		}
		return ""
	}

	// Length limits are in characters, as the messages promise, so count
	// runes rather than bytes.
	length := utf8.RuneCountInString(value)
	if rule.MinLength > 0 && length < rule.MinLength {
		return msgMinLength(rule.MinLength)
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return msgMaxLength(rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return MsgInvalidFormat
	}
	if rule.Custom != nil {
		return rule.Custom(value)
	}
	return ""
}

// ValidateForm evaluates every field declared in the rule set, not just the
// keys present in values; missing keys are treated as empty strings. It
// replaces the whole error map with the result and marks every declared field
// touched, so a failed submit surfaces errors on fields the user never
// visited. Returns true iff no field failed. This is the single gate a submit
// must pass before touching the network.
func (e *Engine) ValidateForm(values map[string]string) bool {
	next := make(map[string]string, len(e.rules))
	valid := true
	for name := range e.rules {
		e.touched[name] = true
		if msg := e.ValidateField(name, values[name]); msg != "" {
			next[name] = msg
			valid = false
		}
	}
	e.errors = next
	return valid
}

// ValidateSingleField re-validates one field for live feedback, updating only
// that field's error entry and marking it touched. Other fields' error and
// touched state are left alone. Returns true when the field is valid.
func (e *Engine) ValidateSingleField(name, value string) bool {
	msg := e.ValidateField(name, value)
	if msg == "" {
		delete(e.errors, name)
	} else {
		e.errors[name] = msg
	}
	e.touched[name] = true
	return msg == ""
}

// FieldError returns the current error message for a field, "" when valid.
func (e *Engine) FieldError(name string) string { return e.errors[name] }

// Touched reports whether the user has interacted with the field.
func (e *Engine) Touched(name string) bool { return e.touched[name] }

// HasErrors reports whether any field currently has an error recorded.
func (e *Engine) HasErrors() bool { return len(e.errors) > 0 }

// ClearErrors resets both the error and touched maps. Call it whenever the
// form is re-bound to a different entity so stale state from a previous
// editing session never leaks into the next one. Idempotent.
func (e *Engine) ClearErrors() {
	e.errors = make(map[string]string)
	e.touched = make(map[string]bool)
}
