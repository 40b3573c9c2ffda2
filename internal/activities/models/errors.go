package models

import dErrors "mergington/pkg/domain-errors"

// Client-facing failures of the signup flow. The messages are part of the
// public API and must not change.
var (
	ErrActivityNotFound  = dErrors.New(dErrors.CodeNotFound, "Activity not found")
	ErrAlreadyRegistered = dErrors.New(dErrors.CodeAlreadyRegistered, "Student already registered for this activity")
	ErrFull              = dErrors.New(dErrors.CodeFull, "Activity is full")
)
