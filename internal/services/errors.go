package services

import "errors"

var (
	// ErrNoInputs is returned when a batch has nothing to analyse
	ErrNoInputs = errors.New("no sales files found")

	// ErrNoFormats is returned when no output format was requested
	ErrNoFormats = errors.New("no report formats requested")
)
