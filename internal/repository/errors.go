// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values let handlers
// distinguish failure scenarios: a missing row becomes a 404, while
// ErrConflict signals state that blocks the operation (for example a
// booking that overlaps an existing one on the same venue and slot).
package repository

import "errors"

// ErrEventNotFound is returned when an event id or slug matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrPostNotFound is returned when a blog post id or slug matches no row.
var ErrPostNotFound = errors.New("post not found")

// ErrAuthorNotFound is returned when an author id matches no row.
var ErrAuthorNotFound = errors.New("author not found")

// ErrBookingNotFound is returned when a booking reference matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrConflict is returned when an insert or update cannot proceed
// because of conflicting state, such as a duplicate slug or an
// overlapping reservation slot.  Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")
