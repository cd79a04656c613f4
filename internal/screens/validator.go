package screens

import (
	"regexp"
	"unicode/utf8"
)

const (
	minFieldLen = 6
	maxFieldLen = 15
)

var emailPattern = regexp.MustCompile(`^.+@.+$`)

// Result is the outcome of one validation pass. Message holds the text of the
// first rule that failed and is empty when OK.
type Result struct {
	OK      bool
	Message string
}

func pass() Result { return Result{OK: true} }

// Validator checks form state in a fixed rule order and localizes the message.
type Validator struct {
	msgs *Messages
}

func NewValidator(msgs *Messages) *Validator {
	return &Validator{msgs: msgs}
}

func lengthOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minFieldLen && n <= maxFieldLen
}

func (v *Validator) Register(f RegisterForm) Result {
	switch {
	case !lengthOK(f.Name):
		return Result{Message: v.msgs.get(msgNameLength)}
	case !emailPattern.MatchString(f.Email):
		return Result{Message: v.msgs.get(msgEmailFormat)}
	case !lengthOK(f.Password):
		return Result{Message: v.msgs.get(msgPasswordLength)}
	case f.Password != f.Repassword:
		return Result{Message: v.msgs.get(msgPasswordMismatch)}
	}
	return pass()
}

func (v *Validator) Reset(f ResetForm) Result {
	switch {
	case !emailPattern.MatchString(f.Email):
		return Result{Message: v.msgs.get(msgEmailFormat)}
	case !lengthOK(f.Password):
		return Result{Message: v.msgs.get(msgResetPasswordLength)}
	case f.Password != f.Repassword:
		return Result{Message: v.msgs.get(msgPasswordMismatch)}
	}
	return pass()
}

var defaultValidator = NewValidator(nil)

// ValidateRegister validates with English messages.
func ValidateRegister(f RegisterForm) Result { return defaultValidator.Register(f) }

// ValidateReset validates with English messages.
func ValidateReset(f ResetForm) Result { return defaultValidator.Reset(f) }
