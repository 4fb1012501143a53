package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/delivery/http/middleware"
	"conferenceplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpUser  *domain.User
	signUpErr   error
	signInToken string
	signInUser  *domain.User
	signInErr   error
}

func (f *fakeAuthService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpUser, nil
}

func (f *fakeAuthService) SignIn(ctx context.Context, username, password string) (string, *domain.User, error) {
	if f.signInErr != nil {
		return "", nil, f.signInErr
	}
	return f.signInToken, f.signInUser, nil
}

func TestAuthController_SignUp(t *testing.T) {
	authLogger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	now := time.Now()

	tests := []struct {
		name           string
		body           string
		fakeUser       *domain.User
		fakeErr        error
		wantStatus     int
		wantBodyCode   string
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"username":"alice","email":"alice@example.com","password":"secret-pw"}`,
			fakeUser:   &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: now, UpdatedAt: now},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "invalid json",
			body:         `{invalid`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:           "missing username",
			body:           `{"email":"alice@example.com","password":"secret-pw"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "username",
		},
		{
			name:           "short password",
			body:           `{"username":"alice","email":"alice@example.com","password":"short"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "password",
		},
		{
			name:         "duplicate username",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret-pw"}`,
			fakeErr:      domain.ErrDuplicateUsername,
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "duplicate email",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret-pw"}`,
			fakeErr:      domain.ErrDuplicateEmail,
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "service rejects username format",
			body:         `{"username":"a/b","email":"alice@example.com","password":"secret-pw"}`,
			fakeErr:      errors.New("invalid username format"),
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			body:         `{"username":"alice","email":"alice@example.com","password":"secret-pw"}`,
			fakeErr:      errors.New("db down"),
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{signUpUser: tt.fakeUser, signUpErr: tt.fakeErr}
			ctrl := NewAuthController(authLogger, fake, time.Hour)

			req := httptest.NewRequest(http.MethodPost, "http://test/auth/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var u domain.User
				require.NoError(t, json.Unmarshal(dataBytes, &u))
				assert.Equal(t, "alice", u.Username)
				assert.Equal(t, "alice@example.com", u.Email)
				return
			}
			require.NotNil(t, envelope.Error)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestAuthController_SignIn(t *testing.T) {
	authLogger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	now := time.Now()

	tests := []struct {
		name         string
		body         string
		fakeToken    string
		fakeUser     *domain.User
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"username":"alice","password":"secret-pw"}`,
			fakeToken:  "token-xyz",
			fakeUser:   &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: now, UpdatedAt: now},
			wantStatus: http.StatusOK,
		},
		{
			name:         "invalid credentials",
			body:         `{"username":"alice","password":"wrong"}`,
			fakeErr:      domain.ErrInvalidCredentials,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "missing password",
			body:         `{"username":"alice"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			body:         `{"username":"alice","password":"secret-pw"}`,
			fakeErr:      errors.New("db down"),
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{signInToken: tt.fakeToken, signInUser: tt.fakeUser, signInErr: tt.fakeErr}
			ctrl := NewAuthController(authLogger, fake, time.Hour)

			req := httptest.NewRequest(http.MethodPost, "http://test/auth/signin", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SignIn(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp SignInResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, tt.fakeToken, resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				require.NotNil(t, resp.User)
				assert.Equal(t, "alice", resp.User.Username)

				var authCookie *http.Cookie
				for _, c := range rr.Result().Cookies() {
					if c.Name == middleware.AuthCookieName {
						authCookie = c
					}
				}
				require.NotNil(t, authCookie, "sign-in should set the auth cookie")
				assert.Equal(t, tt.fakeToken, authCookie.Value)
				assert.True(t, authCookie.HttpOnly)
				assert.Equal(t, int(time.Hour.Seconds()), authCookie.MaxAge)
				return
			}
			require.NotNil(t, envelope.Error)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestAuthController_SignOut(t *testing.T) {
	authLogger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	ctrl := NewAuthController(authLogger, &fakeAuthService{}, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "http://test/auth/signout", nil)
	rr := httptest.NewRecorder()

	ctrl.SignOut(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "sign-out should expire the auth cookie")
}
