package usecase

import "context"

// ResolutionReport summarizes one resolution batch.
type ResolutionReport struct {
	// Claimed is how many registrations the batch claimed.
	Claimed int `json:"claimed"`

	// Resolved is how many received a real endpoint.
	Resolved int `json:"resolved"`

	// Failed is how many could not be resolved; they stay claimed and are
	// only retried when lease reclaim is enabled.
	Failed int `json:"failed"`

	// Lost is how many were unregistered between claim and assignment.
	Lost int `json:"lost"`
}

// ResolutionUsecase drives the claim-and-resolve loop for registrations
// that lack a delivery endpoint.
type ResolutionUsecase interface {
	// ResolveIncomplete claims the current incomplete batch, obtains a
	// real endpoint for each claimed registration, and assigns it.
	ResolveIncomplete(ctx context.Context) (*ResolutionReport, error)
}
