// Package usecase defines the application use case interfaces.
package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
)

// DeviceInfo carries the device metadata a client reports at registration.
type DeviceInfo struct {
	OS         string `json:"os"`
	OSVersion  string `json:"os_version"`
	AppVersion string `json:"app_version"`
	Model      string `json:"model"`
}

// RegistrationInput is the payload for registering a push token. Endpoint
// is carried only so the store can reject it explicitly; callers never
// assign endpoints through registration.
type RegistrationInput struct {
	Token    string      `json:"token"`
	Device   *DeviceInfo `json:"device,omitempty"`
	Endpoint string      `json:"endpoint,omitempty"`
}

// RegistrationUsecase defines the registration management use cases.
type RegistrationUsecase interface {
	// Register upserts the registration for the caller's authId and
	// reports whether a new registration was created.
	Register(ctx context.Context, authID string, input *RegistrationInput) (*entity.Registration, bool, error)

	// ListRegistrations returns the caller's registrations, most recently
	// updated first. The read is eventually consistent and may lag the
	// caller's own writes.
	ListRegistrations(ctx context.Context, authID string) ([]*entity.Registration, error)

	// Unregister removes at most one registration for the token and
	// reports whether anything was removed.
	Unregister(ctx context.Context, token string) (bool, error)
}
