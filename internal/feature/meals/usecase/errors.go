package usecase

import "errors"

var (
	// ErrMealNotFound is returned when no meal exists for the given ID.
	ErrMealNotFound = errors.New("meal not found")
	// ErrMealAccessDenied is returned when a meal belongs to another user.
	ErrMealAccessDenied = errors.New("meal access denied")
)
