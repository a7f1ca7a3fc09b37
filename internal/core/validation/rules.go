// Package validation implements the declarative field-validation engine shared
// by every form in the console. Constraints are data: each form declares a
// RuleSet mapping field names to rules, and a single Engine evaluates them,
// tracking per-field errors and touched state.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Rule is the set of constraints for one field. All constraints are optional;
// the zero Rule accepts anything. Custom returns an error message, or "" when
// the value is acceptable, and always runs last.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Custom    func(value string) string
}

// RuleSet maps field names to their rules. Fields without an entry always
// validate successfully.
type RuleSet map[string]Rule

// Messages rendered by the engine. Exported so tests and renderers can match
// on them without duplicating the wording.
const (
	MsgRequired      = "this field is required"
	MsgInvalidFormat = "invalid format"
)

func msgMinLength(n int) string { return fmt.Sprintf("must be at least %d characters", n) }
func msgMaxLength(n int) string { return fmt.Sprintf("must be at most %d characters", n) }

// formats is shared by the Custom helpers below. validator.Validate is safe
// for concurrent use and caches its tag parsing, so one instance is enough.
var formats = validator.New()

// Email returns a Custom rule func that accepts RFC-shaped email addresses,
// delegating the format check to go-playground/validator.
func Email() func(string) string {
	return func(value string) string {
		if err := formats.Var(value, "email"); err != nil {
			return "must be a valid email address"
		}
		return ""
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// UserFormRules is the canonical rule set for the user create/edit form.
func UserFormRules() RuleSet {
	return RuleSet{
		"name": {
			Required:  true,
			MinLength: 2,
			MaxLength: 50,
		},
		"username": {
			Required:  true,
			MinLength: 3,
			MaxLength: 20,
			Pattern:   usernamePattern,
		},
		"email": {
			Required: true,
			Custom:   Email(),
		},
	}
}

// PostFormRules is the canonical rule set for the post create/edit form.
// The userId field carries the selected owner's id as a string; "0" is the
// "no selection" sentinel and must be rejected before submit.
func PostFormRules() RuleSet {
	return RuleSet{
		"title": {
			Required:  true,
			MinLength: 3,
			MaxLength: 120,
		},
		"userId": {
			Custom: func(value string) string {
				if value == "" || value == "0" {
					return "select a user"
				}
				return ""
			},
		},
	}
}
