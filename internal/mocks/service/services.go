// Package service contains hand-written test doubles for the domain
// service interfaces.
package service

import (
	"context"

	"dispatch/internal/domain/entity"
	domainservice "dispatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEndpointResolver is a testify mock of EndpointResolver.
type MockEndpointResolver struct {
	mock.Mock
}

func NewMockEndpointResolver(t mockConstructorTestingT) *MockEndpointResolver {
	m := &MockEndpointResolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ domainservice.EndpointResolver = (*MockEndpointResolver)(nil)

func (m *MockEndpointResolver) Resolve(ctx context.Context, reg *entity.Registration) (string, error) {
	args := m.Called(ctx, reg)

	return args.String(0), args.Error(1)
}

// MockEventPublisher is a testify mock of EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t mockConstructorTestingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ domainservice.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishRegistrationEvent(ctx context.Context, event *domainservice.RegistrationEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
