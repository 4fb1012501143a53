package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferenceplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byUsername map[string]*domain.User
	createErr  error
	getErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	u.ID = "user-" + u.Username
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(username, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + username, nil
}

func newAuthServiceForTest(repo *fakeUserRepo) domain.AuthService {
	return NewAuthService(repo, &fakePasswordHasher{}, &fakeTokenIssuer{}, time.Hour)
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	user, err := svc.SignUp(ctx, "alice", "Alice@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email, "email should be normalized")
	assert.Equal(t, "hash-longenough", user.PasswordHash)
	assert.Equal(t, "salt", user.Salt)
	assert.NotEmpty(t, user.ID)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthServiceForTest(newFakeUserRepo())

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "username too short", username: "ab", email: "a@example.com", password: "longenough"},
		{name: "username with spaces", username: "a lice", email: "a@example.com", password: "longenough"},
		{name: "username with slash", username: "ali/ce", email: "a@example.com", password: "longenough"},
		{name: "bad email", username: "alice", email: "not-an-email", password: "longenough"},
		{name: "short password", username: "alice", email: "a@example.com", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.username, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "longenough")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "alice", "second@example.com", "longenough")
	require.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "longenough")
	require.NoError(t, err)

	token, user, err := svc.SignIn(ctx, "alice", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "token-alice", token)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_SignIn_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "longenough")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown username", username: "ghost", password: "longenough"},
		{name: "wrong password", username: "alice", password: "wrongpassword"},
		{name: "username case matters", username: "Alice", password: "longenough"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignIn(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}
