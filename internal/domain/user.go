package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents an identity account. The username doubles as the key for
// the attendee directory; it is case-sensitive and never rewritten.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:  username,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(username, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated username.
type TokenVerifier interface {
	Verify(token string) (username string, err error)
}

// UserRepository defines the interface for identity account storage.
type UserRepository interface {
	// Create persists the user. Returns ErrDuplicateUsername or
	// ErrDuplicateEmail when the corresponding unique constraint fires.
	Create(ctx context.Context, user *User) error
	// GetByUsername returns ErrUserNotFound when no account exists.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// AuthService defines the business logic for account creation and sign-in.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*User, error)
	// SignIn returns ErrInvalidCredentials for an unknown username or a
	// wrong password, without distinguishing the two.
	SignIn(ctx context.Context, username, password string) (token string, user *User, err error)
}
