package models

import (
	"fmt"

	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/email"
)

// Activity is an extracurricular offering and its roster.
//
// Invariants:
//   - Name is non-empty and unique within a registry
//   - MaxParticipants is positive
//   - Participants holds no two entries equal after trim + lowercase
//   - len(Participants) never exceeds MaxParticipants
//
// Participants keeps signup order. Entries are only ever appended.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// NewActivity validates invariants and returns an activity with a copy of the
// initial roster.
func NewActivity(name, description, schedule string, maxParticipants int, participants []string) (*Activity, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "activity name cannot be empty")
	}
	if maxParticipants <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "max_participants must be positive")
	}
	if len(participants) > maxParticipants {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("activity %q has %d participants but room for %d", name, len(participants), maxParticipants))
	}

	a := &Activity{
		Name:            name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    make([]string, 0, len(participants)),
	}
	for _, p := range participants {
		if a.HasParticipant(p) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("activity %q lists %q twice", name, p))
		}
		a.Participants = append(a.Participants, p)
	}
	return a, nil
}

// HasParticipant compares case-insensitively against trimmed roster entries.
func (a *Activity) HasParticipant(addr string) bool {
	for _, p := range a.Participants {
		if email.Equal(p, addr) {
			return true
		}
	}
	return false
}

func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft is never negative.
func (a *Activity) SpotsLeft() int {
	if a.IsFull() {
		return 0
	}
	return a.MaxParticipants - len(a.Participants)
}

// CanEnroll checks the duplicate rule before the capacity rule.
// Use with ApplyEnrollment inside a store Execute callback.
func (a *Activity) CanEnroll(normalizedEmail string) error {
	if a.HasParticipant(normalizedEmail) {
		return ErrAlreadyRegistered
	}
	if a.IsFull() {
		return ErrFull
	}
	return nil
}

// ApplyEnrollment appends to the roster. Call CanEnroll first.
func (a *Activity) ApplyEnrollment(normalizedEmail string) {
	a.Participants = append(a.Participants, normalizedEmail)
}

// Enroll validates and applies an enrollment in one call.
func (a *Activity) Enroll(normalizedEmail string) error {
	if err := a.CanEnroll(normalizedEmail); err != nil {
		return err
	}
	a.ApplyEnrollment(normalizedEmail)
	return nil
}

// Clone returns a deep copy so readers never share the live roster.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = append(make([]string, 0, len(a.Participants)), a.Participants...)
	return &c
}
