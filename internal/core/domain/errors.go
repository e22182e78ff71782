package domain

import "errors"

// Failure taxonomy shared by both credential verification policies and
// the feature services. Handlers map these onto HTTP statuses; nothing
// here is fatal to the process.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials or role mismatch")
	ErrDuplicateEmail      = errors.New("an account with this email already exists")
	ErrUpstreamUnavailable = errors.New("authentication service unavailable")
	ErrSessionNotFound     = errors.New("session not found")
	ErrNotFound            = errors.New("record not found")
)
