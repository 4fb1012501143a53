package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/domain"
)

func TestSpeakerController_ListSpeakers(t *testing.T) {
	catalog := &fakeCatalog{speakers: []*domain.Speaker{
		{ID: "sp1", Name: "Ada"},
		{ID: "sp2", Name: "Rob"},
	}}
	ctrl := NewSpeakerController(discardLogger(), catalog)

	req := httptest.NewRequest(http.MethodGet, "http://test/speakers", nil)
	w := httptest.NewRecorder()

	ctrl.ListSpeakers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	dataBytes, _ := json.Marshal(resp.Data)
	var speakers []*domain.Speaker
	if err := json.Unmarshal(dataBytes, &speakers); err != nil {
		t.Fatalf("failed to unmarshal speakers: %v", err)
	}
	if len(speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(speakers))
	}
}

func TestSpeakerController_ListSpeakers_Empty(t *testing.T) {
	ctrl := NewSpeakerController(discardLogger(), &fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "http://test/speakers", nil)
	w := httptest.NewRecorder()

	ctrl.ListSpeakers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	// A nil catalog result must still render as a JSON array.
	var resp struct {
		Data []*domain.Speaker `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected empty array, got null")
	}
}

func TestSpeakerController_GetSpeaker(t *testing.T) {
	tests := []struct {
		name       string
		catalog    *fakeCatalog
		wantStatus int
	}{
		{"success", &fakeCatalog{speaker: &domain.Speaker{ID: "sp1", Name: "Ada"}}, http.StatusOK},
		{"not found", &fakeCatalog{}, http.StatusNotFound},
		{"catalog error", &fakeCatalog{err: errors.New("catalog down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewSpeakerController(discardLogger(), tt.catalog)

			req := httptest.NewRequest(http.MethodGet, "http://test/speakers/sp1", nil)
			req.SetPathValue("speakerID", "sp1")
			w := httptest.NewRecorder()

			ctrl.GetSpeaker(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
