package service

import (
	"context"

	"dispatch/internal/domain/entity"
)

// EndpointResolver obtains a real push-platform delivery endpoint for a
// claimed registration. Implementations talk to the platform gateway that
// provisions endpoints per token.
type EndpointResolver interface {
	// Resolve returns the delivery endpoint for the registration's token
	// and device metadata.
	Resolve(ctx context.Context, reg *entity.Registration) (string, error)
}
