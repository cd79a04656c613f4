package utils

import "errors"

var (
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNameAlreadyExists  = errors.New("username already exists")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSign        = errors.New("link is invalid or expired")
	ErrSignEmailMismatch  = errors.New("link does not match email")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMailDelivery       = errors.New("mail delivery failed")
)
