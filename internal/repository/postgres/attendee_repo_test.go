package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"conferenceplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestAttendeeRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		attendee *domain.Attendee
		mock     func(mock sqlmock.Sqlmock)
		wantErr  bool
		errIs    error
	}{
		{
			name:     "success",
			attendee: domain.NewAttendee("alice", "Alice", "Anderson", "alice@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees`).
					WithArgs("alice", "Alice", "Anderson", "alice@example.com", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-uuid-1"))
			},
		},
		{
			name:     "duplicate username returns ErrAlreadyRegistered",
			attendee: domain.NewAttendee("alice", "Alice", "Anderson", "alice@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "attendees_username_key"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRegistered,
		},
		{
			name:     "db error",
			attendee: domain.NewAttendee("alice", "Alice", "Anderson", "alice@example.com", now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			err = repo.Create(ctx, tt.attendee)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "att-uuid-1", tt.attendee.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	attendeeCols := []string{"id", "username", "first_name", "last_name", "email", "created_at", "updated_at"}

	tests := []struct {
		name           string
		username       string
		mock           func(mock sqlmock.Sqlmock)
		wantSessionIDs []string
		errIs          error
	}{
		{
			name:     "found with agenda",
			username: "alice",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, first_name, last_name, email`).
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows(attendeeCols).
						AddRow("att-uuid-1", "alice", "Alice", "Anderson", "alice@example.com", now, now))
				mock.ExpectQuery(`SELECT session_id`).
					WithArgs("att-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"session_id"}).AddRow("s1").AddRow("s3"))
			},
			wantSessionIDs: []string{"s1", "s3"},
		},
		{
			name:     "found with empty agenda",
			username: "bob",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, first_name, last_name, email`).
					WithArgs("bob").
					WillReturnRows(sqlmock.NewRows(attendeeCols).
						AddRow("att-uuid-2", "bob", "Bob", "Brown", "bob@example.com", now, now))
				mock.ExpectQuery(`SELECT session_id`).
					WithArgs("att-uuid-2").
					WillReturnRows(sqlmock.NewRows([]string{"session_id"}))
			},
			wantSessionIDs: []string{},
		},
		{
			name:     "missing returns ErrNotFound",
			username: "nobody",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, first_name, last_name, email`).
					WithArgs("nobody").
					WillReturnError(sql.ErrNoRows)
			},
			errIs: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			got, err := repo.GetByUsername(ctx, tt.username)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.username, got.Username)
				require.Equal(t, tt.wantSessionIDs, got.SessionIDs)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_AddSession(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "inserts association",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO agenda_sessions`).
					WithArgs("alice", "s1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already present is a no-op",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO agenda_sessions`).
					WithArgs("alice", "s1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO agenda_sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			err = repo.AddSession(ctx, "alice", "s1")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_RemoveSession(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "deletes association",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM agenda_sessions`).
					WithArgs("alice", "s1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "absent association is a no-op",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM agenda_sessions`).
					WithArgs("alice", "s1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			require.NoError(t, repo.RemoveSession(ctx, "alice", "s1"))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
