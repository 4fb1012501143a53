// Package catalog talks to the conference catalog service, the system of
// record for sessions and speakers. This service only ever reads from it.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"conferenceplanner/internal/domain"
)

type httpCatalog struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCatalog returns a SessionCatalog that calls the catalog REST API at baseURL.
func NewHTTPCatalog(baseURL string, client *http.Client) domain.SessionCatalog {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpCatalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *httpCatalog) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	var sessions []*domain.Session
	if err := c.getJSON(ctx, "/api/sessions", &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

func (c *httpCatalog) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	session := &domain.Session{}
	if err := c.getJSON(ctx, "/api/sessions/"+url.PathEscape(id), session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *httpCatalog) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	var speakers []*domain.Speaker
	if err := c.getJSON(ctx, "/api/speakers", &speakers); err != nil {
		return nil, err
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (c *httpCatalog) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	speaker := &domain.Speaker{}
	if err := c.getJSON(ctx, "/api/speakers/"+url.PathEscape(id), speaker); err != nil {
		return nil, err
	}
	return speaker, nil
}

func (c *httpCatalog) Search(ctx context.Context, term string) (*domain.SearchResult, error) {
	body, err := json.Marshal(map[string]string{"term": term})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search term: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api returned status: %d", resp.StatusCode)
	}

	result := &domain.SearchResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if result.Sessions == nil {
		result.Sessions = []*domain.Session{}
	}
	if result.Speakers == nil {
		result.Speakers = []*domain.Speaker{}
	}
	return result, nil
}

func (c *httpCatalog) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog api returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
