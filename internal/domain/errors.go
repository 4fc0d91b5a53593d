package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique key collision.
	ErrAlreadyExists = errors.New("already exists")
	// ErrVersionConflict is returned when a session was modified concurrently.
	ErrVersionConflict = errors.New("version conflict")
	// ErrEmptyCart indicates an operation that needs at least one line item.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthenticated indicates the session carries no customer access token.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
