package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(_ context.Context) error { return f.err }

func TestHealthController_Healthz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"healthy", nil, http.StatusOK},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewHealthController(discardLogger(), &fakePinger{err: tt.pingErr})

			req := httptest.NewRequest(http.MethodGet, "http://test/healthz", nil)
			w := httptest.NewRecorder()

			ctrl.Healthz(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
