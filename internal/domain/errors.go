package domain

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Validation errors
var (
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrInvalidCategory = errors.New("invalid book category")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Resource errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
	ErrForbidden    = errors.New("only the book's author can perform this action")
)
