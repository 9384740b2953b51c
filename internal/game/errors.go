package game

import "errors"

var (
	// ErrNotFound is returned for resource names outside the closed
	// enumeration and for card IDs missing from a catalog.
	ErrNotFound = errors.New("not found")

	// ErrNoCards is returned when the deck has nothing to show.
	ErrNoCards = errors.New("no cards available")

	// ErrInvalidState wraps every rejected engine intent.
	ErrInvalidState = errors.New("invalid state transition")
)
