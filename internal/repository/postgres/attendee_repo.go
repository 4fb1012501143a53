package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferenceplanner/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{DB: db}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (username, first_name, last_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Username, a.FirstName, a.LastName, a.Email, a.CreatedAt, a.UpdatedAt).
		Scan(&a.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Attendee, error) {
	query := `
		SELECT id, username, first_name, last_name, email, created_at, updated_at
		FROM attendees
		WHERE username = $1
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	sessionIDs, err := r.listSessionIDs(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.SessionIDs = sessionIDs
	return a, nil
}

func (r *attendeeRepository) listSessionIDs(ctx context.Context, attendeeID string) ([]string, error) {
	query := `
		SELECT session_id
		FROM agenda_sessions
		WHERE attendee_id = $1
		ORDER BY added_at, session_id
	`
	rows, err := r.DB.QueryContext(ctx, query, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *attendeeRepository) AddSession(ctx context.Context, username, sessionID string) error {
	// ON CONFLICT makes re-adding a session a no-op rather than an error.
	query := `
		INSERT INTO agenda_sessions (attendee_id, session_id)
		SELECT a.id, $2 FROM attendees a WHERE a.username = $1
		ON CONFLICT (attendee_id, session_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, username, sessionID)
	return err
}

func (r *attendeeRepository) RemoveSession(ctx context.Context, username, sessionID string) error {
	query := `
		DELETE FROM agenda_sessions
		USING attendees
		WHERE agenda_sessions.attendee_id = attendees.id
		  AND attendees.username = $1
		  AND agenda_sessions.session_id = $2
	`
	_, err := r.DB.ExecContext(ctx, query, username, sessionID)
	return err
}
