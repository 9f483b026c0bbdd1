// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"dispatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for registration persistence.
var (
	// ErrEndpointNotAllowed is returned when Save is called with a
	// registration whose endpoint is already set. Endpoints are assigned
	// exclusively through SaveEndpoint.
	ErrEndpointNotAllowed = errors.New("endpoint cannot be set through save")
)

// ReadConsistency selects how fresh a list read has to be.
type ReadConsistency int

const (
	// ConsistencyStrong reads from the primary.
	ConsistencyStrong ReadConsistency = iota

	// ConsistencyEventual may read from a secondary replica; results can
	// lag behind a caller's own writes. This is the documented staleness
	// allowance for list operations, not a bug.
	ConsistencyEventual
)

// RegistrationRepository defines the interface for registration-store
// operations. All coordination is delegated to the backing store's atomic
// single-document and multi-document update primitives; implementations
// hold no in-process mutable shared state.
type RegistrationRepository interface {
	// Save atomically upserts the registration keyed by (token, authId).
	// First insert sets created/updated; a later save for the same pair
	// merges into the existing document, refreshes updated, and replaces
	// the device metadata wholesale when the registration carries any.
	// The returned flag reports whether the call inserted a new document.
	// Fails with ErrEndpointNotAllowed when the endpoint is pre-set.
	Save(ctx context.Context, reg *entity.Registration) (*entity.Registration, bool, error)

	// SaveEndpoint atomically assigns the delivery endpoint to the document
	// matching token, leaving created/updated/authId/device untouched.
	// Returns false without error when no document matches.
	SaveEndpoint(ctx context.Context, token, endpoint string) (bool, error)

	// FindByAuthID returns all registrations for authId ordered by updated
	// descending. An empty slice, not an error, when none match.
	FindByAuthID(ctx context.Context, authID string, consistency ReadConsistency) ([]*entity.Registration, error)

	// FindIncomplete atomically claims every registration that has device
	// metadata but no endpoint, then returns the claimed batch ordered by
	// updated descending. Two overlapping calls partition the incomplete
	// set; no registration is handed to both.
	FindIncomplete(ctx context.Context) ([]*entity.Registration, error)

	// RemoveToken deletes at most one registration matching token and
	// reports whether a deletion occurred. When several authIds share the
	// token, an arbitrary match is removed.
	RemoveToken(ctx context.Context, token string) (bool, error)

	// EnsureIndexes declares the collection's secondary indexes. None of
	// them enforce (token, authId) uniqueness; that invariant rests on the
	// Save upsert filter alone.
	EnsureIndexes(ctx context.Context) error
}
