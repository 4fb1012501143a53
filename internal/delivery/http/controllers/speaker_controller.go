package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/domain"
)

// SpeakerController serves the speaker catalog.
type SpeakerController struct {
	Logger  *slog.Logger
	Catalog domain.SessionCatalog
}

// NewSpeakerController creates a SpeakerController with the given logger and catalog.
func NewSpeakerController(logger *slog.Logger, catalog domain.SessionCatalog) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Catalog: catalog,
	}
}

// ListSpeakersSuccessResponse is the success response envelope for GET /speakers (200).
type ListSpeakersSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSpeakers godoc
// @Summary List all speakers
// @Description Returns all speakers from the catalog.
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.ListSpeakersSuccessResponse "data is an array of speakers"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Catalog.ListSpeakers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// GetSpeakerSuccessResponse is the success response envelope for GET /speakers/{speakerID} (200).
type GetSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetSpeaker godoc
// @Summary Get one speaker
// @Description Returns a single speaker from the catalog by ID, including their sessions.
// @Tags speakers
// @Produce json
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} controllers.GetSpeakerSuccessResponse "data contains the speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID := r.PathValue("speakerID")
	if speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speakerID")
		return
	}
	speaker, err := c.Catalog.GetSpeaker(r.Context(), speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "speaker not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
