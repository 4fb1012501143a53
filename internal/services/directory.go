package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferenceplanner/internal/domain"
)

type directoryService struct {
	attendeeRepo domain.AttendeeRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewDirectoryService creates a DirectoryService backed by the attendee store.
// emailService may be nil to disable the registration confirmation email.
func NewDirectoryService(
	attendeeRepo domain.AttendeeRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.DirectoryService {
	return &directoryService{
		attendeeRepo: attendeeRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *directoryService) Lookup(ctx context.Context, username string) (*domain.Attendee, bool, error) {
	attendee, err := s.attendeeRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get attendee: %w", err)
	}
	return attendee, true, nil
}

func (s *directoryService) Register(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error) {
	now := time.Now()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now
	if attendee.SessionIDs == nil {
		attendee.SessionIDs = []string{}
	}

	// No lookup-then-insert here: the store's unique constraint is the only
	// arbiter, so two racing registrations for one username cannot both win.
	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create attendee: %w", err)
	}

	// Confirmation email is best effort; registration already succeeded.
	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			Email:     attendee.Email,
			FirstName: attendee.FirstName,
			Username:  attendee.Username,
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "registration confirmation email failed",
				"username", attendee.Username,
				"err", err,
			)
		}
	}

	return attendee, nil
}
