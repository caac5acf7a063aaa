package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientCredits aborts a download commit whose debit would
	// take the balance below zero.
	ErrInsufficientCredits = errors.New("insufficient credits")
)
