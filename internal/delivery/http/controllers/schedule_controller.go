package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/delivery/http/middleware"
	"conferenceplanner/internal/domain"
	"conferenceplanner/internal/schedule"
)

// ScheduleController serves the session catalog, per-attendee agenda views,
// and catalog search.
type ScheduleController struct {
	Logger  *slog.Logger
	Catalog domain.SessionCatalog
	Agenda  domain.AgendaService
}

// NewScheduleController creates a ScheduleController with the given logger,
// catalog, and agenda service.
func NewScheduleController(logger *slog.Logger, catalog domain.SessionCatalog, agenda domain.AgendaService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Catalog: catalog,
		Agenda:  agenda,
	}
}

// ScheduleSuccessResponse is the success response envelope for GET /sessions and GET /agenda (200).
type ScheduleSuccessResponse struct {
	Data  schedule.View     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSessions godoc
// @Summary Get the conference schedule
// @Description Returns the full session catalog grouped into time slots. The optional day parameter narrows the view to one conference day (0-based offset from the first day); an unknown day falls back to all days.
// @Tags schedule
// @Produce json
// @Param day query int false "Conference day offset (0-based)"
// @Success 200 {object} controllers.ScheduleSuccessResponse "data contains days, selected day, and slots"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions [get]
func (c *ScheduleController) ListSessions(w http.ResponseWriter, r *http.Request) {
	c.renderSchedule(w, r, func(ctx context.Context) ([]*domain.Session, error) {
		return c.Catalog.ListSessions(ctx)
	})
}

// MyAgenda godoc
// @Summary Get the current attendee's agenda
// @Description Returns only the sessions on the authenticated attendee's agenda, grouped into time slots like the full schedule. An attendee with an empty agenda gets an empty view, not an error.
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param day query int false "Conference day offset (0-based)"
// @Success 200 {object} controllers.ScheduleSuccessResponse "data contains days, selected day, and slots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /agenda [get]
func (c *ScheduleController) MyAgenda(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	c.renderSchedule(w, r, func(ctx context.Context) ([]*domain.Session, error) {
		return c.Agenda.ListSessionsForAttendee(ctx, username)
	})
}

// renderSchedule fetches sessions from source and writes them as a grouped
// schedule view. The day query parameter selects one conference day; absent
// or unparseable values mean all days.
func (c *ScheduleController) renderSchedule(w http.ResponseWriter, r *http.Request, source func(context.Context) ([]*domain.Session, error)) {
	sessions, err := source(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	var requestedDay *int
	if raw := r.URL.Query().Get("day"); raw != "" {
		if day, err := strconv.Atoi(raw); err == nil {
			requestedDay = &day
		}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, schedule.BuildView(sessions, requestedDay))
}

// GetSessionSuccessResponse is the success response envelope for GET /sessions/{sessionID} (200).
type GetSessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetSession godoc
// @Summary Get one session
// @Description Returns a single session from the catalog by ID.
// @Tags schedule
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} controllers.GetSessionSuccessResponse "data contains the session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/{sessionID} [get]
func (c *ScheduleController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	session, err := c.Catalog.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// SearchSuccessResponse is the success response envelope for GET /search (200).
type SearchSuccessResponse struct {
	Data  *domain.SearchResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Search godoc
// @Summary Search sessions and speakers
// @Description Searches the catalog for sessions and speakers matching the query term.
// @Tags schedule
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} controllers.SearchSuccessResponse "data contains matching sessions and speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search [get]
func (c *ScheduleController) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing search term")
		return
	}
	result, err := c.Catalog.Search(r.Context(), term)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
