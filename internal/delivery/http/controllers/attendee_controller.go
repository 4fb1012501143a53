package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/delivery/http/middleware"
	"conferenceplanner/internal/domain"
	"conferenceplanner/internal/metrics"
)

// AttendeeController handles attendee registration and agenda mutations.
type AttendeeController struct {
	Logger    *slog.Logger
	Directory domain.DirectoryService
	Agenda    domain.AgendaService
	Metrics   *metrics.Metrics
}

// NewAttendeeController creates an AttendeeController. Metrics may be nil.
func NewAttendeeController(logger *slog.Logger, directory domain.DirectoryService, agenda domain.AgendaService, m *metrics.Metrics) *AttendeeController {
	return &AttendeeController{
		Logger:    logger,
		Directory: directory,
		Agenda:    agenda,
		Metrics:   m,
	}
}

// WelcomePrefill is the response body for GET /welcome.
type WelcomePrefill struct {
	Username   string `json:"username"`
	Registered bool   `json:"registered"`
}

// WelcomeSuccessResponse is the success response envelope for GET /welcome (200).
type WelcomeSuccessResponse struct {
	Data  WelcomePrefill    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Welcome godoc
// @Summary Get registration prefill for the current user
// @Description Returns the authenticated username and whether an attendee profile already exists. The registration page uses this to prefill the form or skip it.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.WelcomeSuccessResponse "data contains username and registered flag"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /welcome [get]
func (c *AttendeeController) Welcome(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	_, found, err := c.Directory.Lookup(r.Context(), username)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WelcomePrefill{Username: username, Registered: found})
}

// RegisterAttendeeRequest is the request body for POST /welcome.
type RegisterAttendeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Validate implements Validator.
func (req RegisterAttendeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// RegisterAttendeeSuccessResponse is the success response envelope for POST /welcome (201).
type RegisterAttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Register godoc
// @Summary Register the current user as an attendee
// @Description Creates the attendee profile for the authenticated username. Registration is permanent and keyed by username; a second attempt returns 409.
// @Tags attendee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterAttendeeRequest true "Attendee profile"
// @Success 201 {object} controllers.RegisterAttendeeSuccessResponse "data contains the created attendee"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /welcome [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	now := time.Now()
	attendee := domain.NewAttendee(
		username,
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		strings.TrimSpace(strings.ToLower(req.Email)),
		now, now,
	)
	created, err := c.Directory.Register(r.Context(), attendee)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already registered")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.Metrics.IncrementAttendeesRegistered()
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetMeSuccessResponse is the success response envelope for GET /attendees/me (200).
type GetMeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetMe godoc
// @Summary Get the current attendee profile
// @Description Returns the authenticated user's attendee profile, including the IDs of sessions on their agenda.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse "data contains the attendee"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/me [get]
func (c *AttendeeController) GetMe(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendee, found, err := c.Directory.Lookup(r.Context(), username)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !found {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// AddToAgenda godoc
// @Summary Add a session to the current attendee's agenda
// @Description Puts the session on the authenticated attendee's personal agenda. Adding a session already on the agenda is a no-op and still returns 200.
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda/sessions/{sessionID} [post]
func (c *AttendeeController) AddToAgenda(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}

	if err := c.Agenda.AddSession(r.Context(), username, sessionID); err != nil {
		if errors.Is(err, domain.ErrAttendeeNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.Metrics.IncrementAgendaSessionsAdded()
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromAgenda godoc
// @Summary Remove a session from the current attendee's agenda
// @Description Takes the session off the authenticated attendee's personal agenda. Removing a session that is not on the agenda is a no-op and still returns 200.
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains a status message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda/sessions/{sessionID} [delete]
func (c *AttendeeController) RemoveFromAgenda(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}

	if err := c.Agenda.RemoveSession(r.Context(), username, sessionID); err != nil {
		if errors.Is(err, domain.ErrAttendeeNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.Metrics.IncrementAgendaSessionsRemoved()
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "removed"})
}
