package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/delivery/http/middleware"
	"conferenceplanner/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Username) == "" {
		errs = append(errs, "username is required")
	}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// SignInRequest is the request body for POST /auth/signin
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (s SignInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Username) == "" {
		errs = append(errs, "username is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignInResponse is the response body for POST /auth/signin
type SignInResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SignInSuccessResponse is the success response envelope for POST /auth/signin (200).
type SignInSuccessResponse struct {
	Data  SignInResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AuthController handles sign-up, sign-in, and sign-out.
type AuthController struct {
	Logger   *slog.Logger
	Service  domain.AuthService
	TokenTTL time.Duration
}

// NewAuthController creates an AuthController with the given logger and service.
// tokenTTL bounds the lifetime of the auth cookie set on sign-in.
func NewAuthController(logger *slog.Logger, svc domain.AuthService, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		Logger:   logger,
		Service:  svc,
		TokenTTL: tokenTTL,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a new account with username, email, and password. The username is the permanent, case-sensitive key the attendee directory and agenda are indexed by.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (username or email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "username already taken")
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "email already registered")
			return
		}
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "password must be") {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticate with username and password. Returns a JWT and sets an HttpOnly cookie for browser clients. API clients send the token as a Bearer header instead.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} controllers.SignInSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signin [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	middleware.SetAuthCookie(w, token, int(c.TokenTTL.Seconds()))
	helpers.WriteJSONSuccess(w, http.StatusOK, SignInResponse{Token: token, TokenType: "Bearer", User: user})
}

// SignOut godoc
// @Summary Sign out
// @Description Clears the auth cookie. Bearer tokens are not revoked; clients discard them.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Router /auth/signout [post]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	middleware.ClearAuthCookie(w)
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "signed out"})
}
