package accounts

import (
	"strings"
	"unicode/utf8"
)

const specialChars = "!@#$%^&*"

type rule[T any] struct {
	name Rule
	kind error
	msg  string
	ok   func(T) bool
}

// check returns the first failing rule as a *ValidationError, or nil.
func check[T any](in T, rules []rule[T]) error {
	for _, r := range rules {
		if !r.ok(in) {
			return &ValidationError{Rule: r.name, Message: r.msg, kind: r.kind}
		}
	}
	return nil
}

func hasAny(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

var signupRules = []rule[SignupInput]{
	{RuleRequired, ErrMissingFields, "Please fill in all required fields", func(in SignupInput) bool {
		return in.Name != "" && in.Email != "" && in.Password != ""
	}},
	{RuleEmailFormat, ErrInvalidEmail, "Please enter a valid email address", func(in SignupInput) bool {
		return strings.Contains(in.Email, "@")
	}},
	{RuleNameLength, ErrNameTooShort, "Name must be at least 2 characters long", func(in SignupInput) bool {
		return utf8.RuneCountInString(strings.TrimSpace(in.Name)) >= 2
	}},
	{RulePasswordLength, ErrWeakPassword, "Password must be at least 6 characters long", func(in SignupInput) bool {
		return utf8.RuneCountInString(in.Password) >= 6
	}},
	{RulePasswordUpper, ErrWeakPassword, "Password must contain at least one uppercase letter", func(in SignupInput) bool {
		return hasAny(in.Password, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	}},
	{RulePasswordLower, ErrWeakPassword, "Password must contain at least one lowercase letter", func(in SignupInput) bool {
		return hasAny(in.Password, func(r rune) bool { return r >= 'a' && r <= 'z' })
	}},
	{RulePasswordDigit, ErrWeakPassword, "Password must contain at least one number", func(in SignupInput) bool {
		return hasAny(in.Password, func(r rune) bool { return r >= '0' && r <= '9' })
	}},
	{RulePasswordSpecial, ErrWeakPassword, "Password must contain at least one special character (!@#$%^&*)", func(in SignupInput) bool {
		return strings.ContainsAny(in.Password, specialChars)
	}},
	{RulePasswordMatch, ErrPasswordMismatch, "Passwords do not match", func(in SignupInput) bool {
		return in.Password == in.ConfirmPassword
	}},
}

var loginRules = []rule[LoginInput]{
	{RuleRequired, ErrMissingFields, "Please fill in all required fields", func(in LoginInput) bool {
		return in.Email != "" && in.Password != ""
	}},
	{RuleEmailFormat, ErrInvalidEmail, "Please enter a valid email address", func(in LoginInput) bool {
		return strings.Contains(in.Email, "@")
	}},
}

var (
	errEmailTaken = &ValidationError{
		Rule:    RuleEmailUnique,
		Message: "This email is already registered. Please use a different email or try logging in",
		kind:    ErrEmailTaken,
	}
	errNotRegistered = &ValidationError{
		Rule:    RuleEmailRegistered,
		Message: "Email not registered. Please sign up first",
		kind:    ErrEmailNotRegistered,
	}
)
