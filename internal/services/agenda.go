package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"conferenceplanner/internal/domain"
)

type agendaService struct {
	attendeeRepo   domain.AttendeeRepository
	catalog        domain.SessionCatalog
	contextTimeout time.Duration
}

// NewAgendaService creates an AgendaService joining the attendee store with
// the session catalog.
func NewAgendaService(
	attendeeRepo domain.AttendeeRepository,
	catalog domain.SessionCatalog,
	timeout time.Duration,
) domain.AgendaService {
	return &agendaService{
		attendeeRepo:   attendeeRepo,
		catalog:        catalog,
		contextTimeout: timeout,
	}
}

func (s *agendaService) AddSession(ctx context.Context, username, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.attendeeRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAttendeeNotFound
		}
		return fmt.Errorf("get attendee: %w", err)
	}
	if err := s.attendeeRepo.AddSession(ctx, username, sessionID); err != nil {
		return fmt.Errorf("add session to agenda: %w", err)
	}
	return nil
}

func (s *agendaService) RemoveSession(ctx context.Context, username, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The store treats removing an absent session as a no-op, so there is
	// no existence check to race against.
	if err := s.attendeeRepo.RemoveSession(ctx, username, sessionID); err != nil {
		return fmt.Errorf("remove session from agenda: %w", err)
	}
	return nil
}

func (s *agendaService) ListSessionsForAttendee(ctx context.Context, username string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The attendee record and the full catalog are fetched concurrently and
	// joined here. A catalog query scoped to one attendee's IDs would move
	// less data; until the catalog grows one, this stays the obvious join.
	g, gctx := errgroup.WithContext(ctx)

	var attendee *domain.Attendee
	g.Go(func() error {
		a, err := s.attendeeRepo.GetByUsername(gctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Unknown attendee means an empty agenda, not a failure.
				return nil
			}
			return fmt.Errorf("get attendee: %w", err)
		}
		attendee = a
		return nil
	})

	var catalogSessions []*domain.Session
	g.Go(func() error {
		sessions, err := s.catalog.ListSessions(gctx)
		if err != nil {
			return fmt.Errorf("list catalog sessions: %w", err)
		}
		catalogSessions = sessions
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if attendee == nil || len(attendee.SessionIDs) == 0 {
		return []*domain.Session{}, nil
	}

	selected := make(map[string]struct{}, len(attendee.SessionIDs))
	for _, id := range attendee.SessionIDs {
		selected[id] = struct{}{}
	}

	// Walk the catalog, not the agenda, so results keep catalog order.
	agenda := make([]*domain.Session, 0, len(selected))
	for _, session := range catalogSessions {
		if _, ok := selected[session.ID]; ok {
			agenda = append(agenda, session)
		}
	}
	return agenda, nil
}
