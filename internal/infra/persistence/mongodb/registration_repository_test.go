package mongodb

import (
	"context"
	"testing"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The endpoint guard runs before any collection access, so a zero-value
// repository exercises it without a live database.
func TestSave_RejectsPresetEndpoint(t *testing.T) {
	repo := &registrationRepository{}

	reg := &entity.Registration{
		Token:    "T1",
		AuthID:   "A1",
		Endpoint: "https://push.example.com/abc",
	}

	saved, created, err := repo.Save(context.Background(), reg)
	require.ErrorIs(t, err, repository.ErrEndpointNotAllowed)
	assert.Nil(t, saved)
	assert.False(t, created)
}

func TestSave_RejectsClaimMarkerEndpoint(t *testing.T) {
	repo := &registrationRepository{}

	reg := &entity.Registration{
		Token:    "T1",
		AuthID:   "A1",
		Endpoint: entity.NewClaimMarker(),
	}

	_, _, err := repo.Save(context.Background(), reg)
	require.ErrorIs(t, err, repository.ErrEndpointNotAllowed)
}
