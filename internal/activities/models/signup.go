package models

import "fmt"

// SignupResult confirms a successful registration.
type SignupResult struct {
	Email    string
	Activity string
}

func (r *SignupResult) Message() string {
	return fmt.Sprintf("Signed up %s for %s", r.Email, r.Activity)
}

// Catalog is the registry snapshot keyed by activity name, shaped like the
// GET /activities response.
type Catalog map[string]*Activity
