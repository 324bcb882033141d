package model

import "errors"

// Common errors used across the application
var (
	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfile       = errors.New("no profile loaded")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Level errors
	ErrInvalidLevel = errors.New("level must be at least 1")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
