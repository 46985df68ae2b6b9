// Package services holds the business logic behind the HTTP layer. This
// file defines the sentinel errors shared across services so controllers
// can map each failure kind to a distinct HTTP response with errors.Is
// instead of matching on message text.
package services

import "errors"

// ErrValidation covers malformed, missing or out-of-range input. Wrapped
// with a caller-facing detail message, e.g.
// fmt.Errorf("%w: check-out must be after check-in", ErrValidation).
// Handlers translate it into HTTP 400.
var ErrValidation = errors.New("validation failed")

// ErrInvalidRoom is returned when a room identifier resolves to nothing.
// Handlers translate it into HTTP 400.
var ErrInvalidRoom = errors.New("invalid room type")

// ErrRoomUnavailable signals a date-range conflict with an existing
// booking. Recoverable by picking different dates. HTTP 409.
var ErrRoomUnavailable = errors.New("room not available for the selected dates")

// ErrInvalidTransition is returned when a booking status change violates
// the state machine, such as cancelling a checked-in booking. HTTP 409.
var ErrInvalidTransition = errors.New("invalid booking transition")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they are not authorized for. HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a booking, room or user id does not exist.
// HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent records, such as deleting a room that still has active
// bookings. HTTP 409.
var ErrConflict = errors.New("conflict")
