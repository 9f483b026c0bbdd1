// Package impl contains the use case implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/domain/repository"
	"dispatch/internal/domain/service"
	"dispatch/internal/errors"
	"dispatch/internal/usecase"
)

type registrationService struct {
	repo      repository.RegistrationRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(repo repository.RegistrationRepository, publisher service.EventPublisher, logger *slog.Logger) usecase.RegistrationUsecase {
	return &registrationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Register upserts the registration for the caller's authId.
func (s *registrationService) Register(ctx context.Context, authID string, input *usecase.RegistrationInput) (*entity.Registration, bool, error) {
	reg := &entity.Registration{
		Token:    input.Token,
		AuthID:   authID,
		Endpoint: input.Endpoint,
	}
	if input.Device != nil {
		reg.Device = &entity.Device{
			OS:         entity.ParseDeviceOS(input.Device.OS),
			OSVersion:  input.Device.OSVersion,
			AppVersion: input.Device.AppVersion,
			Model:      input.Device.Model,
		}
	}

	saved, created, err := s.repo.Save(ctx, reg)
	if err != nil {
		if errors.Is(err, repository.ErrEndpointNotAllowed) {
			return nil, false, domainerrors.ErrEndpointNotAllowed
		}

		return nil, false, errors.Wrap(err, "failed to save registration")
	}

	s.publish(ctx, &service.RegistrationEvent{
		Type:       service.EventRegistered,
		Token:      saved.Token,
		AuthID:     saved.AuthID,
		OccurredAt: time.Now().UTC(),
	})

	return saved, created, nil
}

// ListRegistrations returns the caller's registrations, most recently
// updated first.
func (s *registrationService) ListRegistrations(ctx context.Context, authID string) ([]*entity.Registration, error) {
	regs, err := s.repo.FindByAuthID(ctx, authID, repository.ConsistencyEventual)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list registrations")
	}

	return regs, nil
}

// Unregister removes at most one registration for the token.
func (s *registrationService) Unregister(ctx context.Context, token string) (bool, error) {
	removed, err := s.repo.RemoveToken(ctx, token)
	if err != nil {
		return false, errors.Wrap(err, "failed to unregister token")
	}

	if removed {
		s.publish(ctx, &service.RegistrationEvent{
			Type:       service.EventUnregistered,
			Token:      token,
			OccurredAt: time.Now().UTC(),
		})
	}

	return removed, nil
}

// publish emits an audit event; failures are logged and never surfaced to
// the caller.
func (s *registrationService) publish(ctx context.Context, event *service.RegistrationEvent) {
	if err := s.publisher.PublishRegistrationEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish registration event",
			slog.String("type", event.Type),
			slog.String("token", event.Token),
			slog.Any("error", err),
		)
	}
}
