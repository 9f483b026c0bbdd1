package impl

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/domain/repository"
	"dispatch/internal/domain/service"
	"dispatch/internal/errors"
	"dispatch/internal/usecase"
)

type resolutionService struct {
	repo      repository.RegistrationRepository
	resolver  service.EndpointResolver
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewResolutionService creates a new resolution service instance
func NewResolutionService(repo repository.RegistrationRepository, resolver service.EndpointResolver, publisher service.EventPublisher, logger *slog.Logger) usecase.ResolutionUsecase {
	return &resolutionService{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
	}
}

// ResolveIncomplete claims the current incomplete batch and assigns a real
// endpoint to each claimed registration. One registration's failure does
// not abort the batch; it stays claimed and the loop moves on.
func (s *resolutionService) ResolveIncomplete(ctx context.Context) (*usecase.ResolutionReport, error) {
	claimed, err := s.repo.FindIncomplete(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim incomplete registrations")
	}

	report := &usecase.ResolutionReport{Claimed: len(claimed)}

	for _, reg := range claimed {
		endpoint, err := s.resolver.Resolve(ctx, reg)
		if err != nil {
			report.Failed++
			s.logger.Warn("Failed to resolve endpoint",
				slog.String("token", reg.Token),
				slog.Any("error", err),
			)

			continue
		}

		assigned, err := s.repo.SaveEndpoint(ctx, reg.Token, endpoint)
		if err != nil {
			report.Failed++
			s.logger.Warn("Failed to save resolved endpoint",
				slog.String("token", reg.Token),
				slog.Any("error", err),
			)

			continue
		}

		// The registration was unregistered between claim and assignment;
		// silently tolerated.
		if !assigned {
			report.Lost++

			continue
		}

		report.Resolved++

		if err := s.publisher.PublishRegistrationEvent(ctx, &service.RegistrationEvent{
			Type:       service.EventEndpointAssigned,
			Token:      reg.Token,
			AuthID:     reg.AuthID,
			Endpoint:   endpoint,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("Failed to publish endpoint event",
				slog.String("token", reg.Token),
				slog.Any("error", err),
			)
		}
	}

	return report, nil
}
