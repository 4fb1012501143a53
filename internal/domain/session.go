package domain

import (
	"context"
	"time"
)

// Track represents the track a session is scheduled in.
type Track struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpeakerRef is the short speaker reference embedded in a session.
type SpeakerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session represents a conference session or talk as published by the
// session catalog. Sessions are owned by the catalog; this service never
// creates or mutates them.
// swagger:model Session
type Session struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Abstract  string       `json:"abstract"`
	Track     Track        `json:"track"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Speakers  []SpeakerRef `json:"speakers"`
}

// SearchResult bundles the sessions and speakers matching a search term.
// swagger:model SearchResult
type SearchResult struct {
	Sessions []*Session `json:"sessions"`
	Speakers []*Speaker `json:"speakers"`
}

// SessionCatalog defines read access to the conference catalog. ListSessions
// returns the full schedule in the catalog's canonical order; Get methods
// return ErrNotFound for unknown IDs.
type SessionCatalog interface {
	ListSessions(ctx context.Context) ([]*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	GetSpeaker(ctx context.Context, id string) (*Speaker, error)
	Search(ctx context.Context, term string) (*SearchResult, error)
}
