// Package repository contains hand-written test doubles for the
// persistence interfaces.
package repository

import (
	"context"

	"dispatch/internal/domain/entity"
	domainrepo "dispatch/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRegistrationRepository is a testify mock of RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewMockRegistrationRepository creates the mock and registers expectation
// checks with the test's cleanup.
func NewMockRegistrationRepository(t mockConstructorTestingT) *MockRegistrationRepository {
	m := &MockRegistrationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ domainrepo.RegistrationRepository = (*MockRegistrationRepository)(nil)

func (m *MockRegistrationRepository) Save(ctx context.Context, reg *entity.Registration) (*entity.Registration, bool, error) {
	args := m.Called(ctx, reg)

	var saved *entity.Registration
	if args.Get(0) != nil {
		saved = args.Get(0).(*entity.Registration)
	}

	return saved, args.Bool(1), args.Error(2)
}

func (m *MockRegistrationRepository) SaveEndpoint(ctx context.Context, token, endpoint string) (bool, error) {
	args := m.Called(ctx, token, endpoint)

	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationRepository) FindByAuthID(ctx context.Context, authID string, consistency domainrepo.ReadConsistency) ([]*entity.Registration, error) {
	args := m.Called(ctx, authID, consistency)

	var regs []*entity.Registration
	if args.Get(0) != nil {
		regs = args.Get(0).([]*entity.Registration)
	}

	return regs, args.Error(1)
}

func (m *MockRegistrationRepository) FindIncomplete(ctx context.Context) ([]*entity.Registration, error) {
	args := m.Called(ctx)

	var regs []*entity.Registration
	if args.Get(0) != nil {
		regs = args.Get(0).([]*entity.Registration)
	}

	return regs, args.Error(1)
}

func (m *MockRegistrationRepository) RemoveToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
