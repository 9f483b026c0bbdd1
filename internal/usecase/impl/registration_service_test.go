package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/domain/repository"
	domainservice "dispatch/internal/domain/service"
	mockRepo "dispatch/internal/mocks/repository"
	mockSvc "dispatch/internal/mocks/service"
	"dispatch/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// registrationServiceFixtures holds all test dependencies for registration service tests.
type registrationServiceFixtures struct {
	service   usecase.RegistrationUsecase
	repo      *mockRepo.MockRegistrationRepository
	publisher *mockSvc.MockEventPublisher
}

func createTestRegistrationService(t *testing.T) registrationServiceFixtures {
	repo := mockRepo.NewMockRegistrationRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	service := NewRegistrationService(repo, publisher, slog.New(slog.DiscardHandler))

	return registrationServiceFixtures{
		service:   service,
		repo:      repo,
		publisher: publisher,
	}
}

func TestRegistrationService_Register_New(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()
	now := time.Now().UTC()
	saved := &entity.Registration{
		ID:      "65f0c0ffee",
		Token:   "T1",
		AuthID:  "A1",
		Created: now,
		Updated: now,
	}

	fx.repo.On("Save", ctx, mock.MatchedBy(func(reg *entity.Registration) bool {
		return reg.Token == "T1" && reg.AuthID == "A1" && reg.Device == nil && reg.Endpoint == ""
	})).Return(saved, true, nil)

	fx.publisher.On("PublishRegistrationEvent", ctx, mock.MatchedBy(func(event *domainservice.RegistrationEvent) bool {
		return event.Type == domainservice.EventRegistered && event.Token == "T1"
	})).Return(nil)

	reg, created, err := fx.service.Register(ctx, "A1", &usecase.RegistrationInput{Token: "T1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, saved, reg)
}

func TestRegistrationService_Register_WithDevice(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()
	saved := &entity.Registration{
		Token:  "T1",
		AuthID: "A1",
		Device: &entity.Device{OS: entity.OSIOS, OSVersion: "17.4", AppVersion: "2.0", Model: "iPhone 15"},
	}

	fx.repo.On("Save", ctx, mock.MatchedBy(func(reg *entity.Registration) bool {
		return reg.Device != nil && reg.Device.OS == entity.OSIOS && reg.Device.Model == "iPhone 15"
	})).Return(saved, false, nil)

	fx.publisher.On("PublishRegistrationEvent", ctx, mock.Anything).Return(nil)

	reg, created, err := fx.service.Register(ctx, "A1", &usecase.RegistrationInput{
		Token: "T1",
		Device: &usecase.DeviceInfo{
			OS:         "iOS",
			OSVersion:  "17.4",
			AppVersion: "2.0",
			Model:      "iPhone 15",
		},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, entity.OSIOS, reg.Device.OS)
}

func TestRegistrationService_Register_EndpointRejected(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()

	fx.repo.On("Save", ctx, mock.Anything).Return(nil, false, repository.ErrEndpointNotAllowed)

	_, _, err := fx.service.Register(ctx, "A1", &usecase.RegistrationInput{
		Token:    "T1",
		Endpoint: "https://push/abc",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEndpointNotAllowed)
}

func TestRegistrationService_Register_PublishFailureIsSwallowed(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()
	saved := &entity.Registration{Token: "T1", AuthID: "A1"}

	fx.repo.On("Save", ctx, mock.Anything).Return(saved, true, nil)
	fx.publisher.On("PublishRegistrationEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	_, created, err := fx.service.Register(ctx, "A1", &usecase.RegistrationInput{Token: "T1"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRegistrationService_ListRegistrations_UsesEventualConsistency(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()
	regs := []*entity.Registration{{Token: "T2"}, {Token: "T1"}}

	fx.repo.On("FindByAuthID", ctx, "A1", repository.ConsistencyEventual).Return(regs, nil)

	got, err := fx.service.ListRegistrations(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, regs, got)
}

func TestRegistrationService_ListRegistrations_Empty(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()

	fx.repo.On("FindByAuthID", ctx, "A1", repository.ConsistencyEventual).
		Return([]*entity.Registration{}, nil)

	got, err := fx.service.ListRegistrations(ctx, "A1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistrationService_Unregister_Removed(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()

	fx.repo.On("RemoveToken", ctx, "T1").Return(true, nil)
	fx.publisher.On("PublishRegistrationEvent", ctx, mock.MatchedBy(func(event *domainservice.RegistrationEvent) bool {
		return event.Type == domainservice.EventUnregistered && event.Token == "T1"
	})).Return(nil)

	removed, err := fx.service.Unregister(ctx, "T1")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestRegistrationService_Unregister_NotFoundIsFalseNotError(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()

	fx.repo.On("RemoveToken", ctx, "T1").Return(false, nil)

	removed, err := fx.service.Unregister(ctx, "T1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRegistrationService_Unregister_StorageFailurePropagates(t *testing.T) {
	fx := createTestRegistrationService(t)

	ctx := context.Background()

	fx.repo.On("RemoveToken", ctx, "T1").Return(false, errors.New("connection reset"))

	_, err := fx.service.Unregister(ctx, "T1")
	assert.Error(t, err)
}
