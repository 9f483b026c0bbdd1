// Package usecase contains hand-written test doubles for the use case
// interfaces.
package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
	domainusecase "dispatch/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRegistrationUsecase is a testify mock of RegistrationUsecase.
type MockRegistrationUsecase struct {
	mock.Mock
}

func NewMockRegistrationUsecase(t mockConstructorTestingT) *MockRegistrationUsecase {
	m := &MockRegistrationUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ domainusecase.RegistrationUsecase = (*MockRegistrationUsecase)(nil)

func (m *MockRegistrationUsecase) Register(ctx context.Context, authID string, input *domainusecase.RegistrationInput) (*entity.Registration, bool, error) {
	args := m.Called(ctx, authID, input)

	var reg *entity.Registration
	if args.Get(0) != nil {
		reg = args.Get(0).(*entity.Registration)
	}

	return reg, args.Bool(1), args.Error(2)
}

func (m *MockRegistrationUsecase) ListRegistrations(ctx context.Context, authID string) ([]*entity.Registration, error) {
	args := m.Called(ctx, authID)

	var regs []*entity.Registration
	if args.Get(0) != nil {
		regs = args.Get(0).([]*entity.Registration)
	}

	return regs, args.Error(1)
}

func (m *MockRegistrationUsecase) Unregister(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

// MockResolutionUsecase is a testify mock of ResolutionUsecase.
type MockResolutionUsecase struct {
	mock.Mock
}

func NewMockResolutionUsecase(t mockConstructorTestingT) *MockResolutionUsecase {
	m := &MockResolutionUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ domainusecase.ResolutionUsecase = (*MockResolutionUsecase)(nil)

func (m *MockResolutionUsecase) ResolveIncomplete(ctx context.Context) (*domainusecase.ResolutionReport, error) {
	args := m.Called(ctx)

	var report *domainusecase.ResolutionReport
	if args.Get(0) != nil {
		report = args.Get(0).(*domainusecase.ResolutionReport)
	}

	return report, args.Error(1)
}
