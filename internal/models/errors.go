package models

import "errors"

// Sentinel errors shared by the service and state layers. Callers should
// match them with errors.Is.
var (
	// ErrInvalidCredentials is returned by login when no account matches
	// the given email and password. It deliberately does not reveal which
	// of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned by account creation when the email is
	// already registered.
	ErrEmailTaken = errors.New("email already taken")

	// ErrUnknownAuthor is returned when a post references an account id
	// that does not resolve in the directory.
	ErrUnknownAuthor = errors.New("unknown author")

	// ErrNotAuthenticated is returned by operations that require a
	// current session when none is set.
	ErrNotAuthenticated = errors.New("not authenticated")
)
