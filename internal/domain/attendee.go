package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for attendee operations.
var (
	ErrAlreadyRegistered = errors.New("attendee already registered")
	ErrAttendeeNotFound  = errors.New("attendee not found")
)

// Attendee represents a conference attendee profile, keyed by the
// authenticated username. SessionIDs holds the attendee's personal agenda.
// swagger:model Attendee
type Attendee struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	SessionIDs []string  `json:"session_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAttendee returns a new Attendee with the given fields. ID is typically set by the repository on create.
func NewAttendee(username, firstName, lastName, email string, createdAt, updatedAt time.Time) *Attendee {
	return &Attendee{
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		SessionIDs: []string{},
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// AttendeeRepository defines the interface for attendee and agenda storage.
type AttendeeRepository interface {
	// Create persists the attendee. Returns ErrAlreadyRegistered if the
	// username is already taken; there is no window in which two creates
	// for the same username can both succeed.
	Create(ctx context.Context, attendee *Attendee) error
	// GetByUsername returns the attendee with SessionIDs populated, or
	// ErrNotFound when no profile exists for the username.
	GetByUsername(ctx context.Context, username string) (*Attendee, error)
	// AddSession records the session on the attendee's agenda. Adding a
	// session that is already present is a no-op.
	AddSession(ctx context.Context, username, sessionID string) error
	// RemoveSession drops the session from the attendee's agenda. Removing
	// a session that is not present is a no-op.
	RemoveSession(ctx context.Context, username, sessionID string) error
}

// DirectoryService defines the business logic for attendee lookup and registration.
type DirectoryService interface {
	// Lookup returns (attendee, true, nil) when a profile exists for the
	// username, (nil, false, nil) when none does, and a non-nil error only
	// when the store could not be consulted.
	Lookup(ctx context.Context, username string) (*Attendee, bool, error)
	// Register creates the attendee profile. Returns ErrAlreadyRegistered
	// when a profile already exists for the username.
	Register(ctx context.Context, attendee *Attendee) (*Attendee, error)
}

// AgendaService defines the business logic for an attendee's personal agenda.
type AgendaService interface {
	// AddSession puts the session on the attendee's agenda. Returns
	// ErrAttendeeNotFound when the username has no profile.
	AddSession(ctx context.Context, username, sessionID string) error
	// RemoveSession takes the session off the attendee's agenda.
	RemoveSession(ctx context.Context, username, sessionID string) error
	// ListSessionsForAttendee resolves the attendee's agenda against the
	// session catalog, preserving catalog order. An unknown username yields
	// an empty slice, not an error.
	ListSessionsForAttendee(ctx context.Context, username string) ([]*Session, error)
}
