package screens

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown form field")

// RegisterForm is the state of the registration screen.
type RegisterForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Repassword string `json:"repassword"`
}

func (f *RegisterForm) Set(field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "password":
		f.Password = value
	case "repassword":
		f.Repassword = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ResetForm is the state of the password reset screen. Sign comes from the
// emailed link and is not user editable in the UI, but Set accepts it.
type ResetForm struct {
	Email      string `json:"email"`
	Sign       string `json:"sign"`
	Password   string `json:"password"`
	Repassword string `json:"repassword"`
}

func (f *ResetForm) Set(field, value string) error {
	switch field {
	case "email":
		f.Email = value
	case "sign":
		f.Sign = value
	case "password":
		f.Password = value
	case "repassword":
		f.Repassword = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}
