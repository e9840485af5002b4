package accounts

import "errors"

// Sentinels matched with errors.Is against a *ValidationError.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrNameTooShort       = errors.New("name too short")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotRegistered = errors.New("email not registered")
)

// Rule names a single validation step.
type Rule string

const (
	RuleRequired        Rule = "required"
	RuleEmailFormat     Rule = "email_format"
	RuleNameLength      Rule = "name_length"
	RulePasswordLength  Rule = "password_length"
	RulePasswordUpper   Rule = "password_upper"
	RulePasswordLower   Rule = "password_lower"
	RulePasswordDigit   Rule = "password_digit"
	RulePasswordSpecial Rule = "password_special"
	RulePasswordMatch   Rule = "password_match"
	RuleEmailUnique     Rule = "email_unique"
	RuleEmailRegistered Rule = "email_registered"
)

// ValidationError is the first rule an input failed. Message is shown to the
// user as is.
type ValidationError struct {
	Rule    Rule
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == e.kind
}

// IsValidation reports whether err is a user-facing validation failure and
// returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
