package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP behavior: ErrNotAuthenticated redirects to login, ErrForbidden
// renders a 403 page, ErrNotFound a 404, ErrEmailTaken re-renders the
// registration form, and ErrInvalidInput is usually swallowed by a
// redirect without mutation.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrInvalidInput     = errors.New("invalid input")
	ErrBadCredentials   = errors.New("invalid email or password")
)
