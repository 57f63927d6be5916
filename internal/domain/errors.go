package domain

import "errors"

// ErrNotFound is returned by store operations when no activity (or todo)
// with the requested ID exists in the sequence.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. duplicate activity ID, reorder index out of range, unknown kind).
var ErrValidation = errors.New("validation error")

// ErrNotReady is returned by store mutations attempted before the initial
// load has seeded the store. The load-gate prevents a transient default trip
// from overwriting real persisted data.
var ErrNotReady = errors.New("itinerary not loaded yet")
