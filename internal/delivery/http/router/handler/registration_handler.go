// Package handler contains the HTTP handlers for the registration API.
package handler

import (
	"log/slog"
	"net/http"

	"dispatch/internal/delivery/http/response"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RegistrationHandlerParams holds dependencies for RegistrationHandler, injected by Fx.
type RegistrationHandlerParams struct {
	fx.In

	RegistrationUC usecase.RegistrationUsecase
	Logger         *slog.Logger
}

// RegistrationHandler holds dependencies for registration-related handlers
type RegistrationHandler struct {
	registrationUC usecase.RegistrationUsecase
	logger         *slog.Logger
}

// NewRegistrationHandler is the constructor for RegistrationHandler
func NewRegistrationHandler(params RegistrationHandlerParams) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUC: params.RegistrationUC,
		logger:         params.Logger,
	}
}

// DeviceRequest is the device metadata part of a registration request
type DeviceRequest struct {
	OS         string `json:"os" validate:"required"`
	OSVersion  string `json:"os_version"`
	AppVersion string `json:"app_version"`
	Model      string `json:"model"`
}

// RegisterRequest represents the request body for registering a push token.
// Endpoint is accepted in the payload only so its misuse can be rejected
// explicitly; endpoints are assigned by the resolution job.
type RegisterRequest struct {
	Token    string         `json:"token" validate:"required"`
	Device   *DeviceRequest `json:"device,omitempty"`
	Endpoint string         `json:"endpoint,omitempty"`
}

// Register handles push token registration
func (h *RegistrationHandler) Register(c echo.Context) error {
	authID, err := h.getAuthID(c)
	if err != nil {
		return err
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.RegistrationInput{
		Token:    req.Token,
		Endpoint: req.Endpoint,
	}
	if req.Device != nil {
		input.Device = &usecase.DeviceInfo{
			OS:         req.Device.OS,
			OSVersion:  req.Device.OSVersion,
			AppVersion: req.Device.AppVersion,
			Model:      req.Device.Model,
		}
	}

	reg, created, err := h.registrationUC.Register(c.Request().Context(), authID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if created {
		return response.Success(c, http.StatusCreated, reg, "Registration created")
	}

	return response.Success(c, http.StatusOK, reg, "Registration updated")
}

// ListRegistrations handles retrieving the caller's registrations
func (h *RegistrationHandler) ListRegistrations(c echo.Context) error {
	authID, err := h.getAuthID(c)
	if err != nil {
		return err
	}

	regs, err := h.registrationUC.ListRegistrations(c.Request().Context(), authID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, regs, "Registrations retrieved")
}

// Unregister handles push token removal
func (h *RegistrationHandler) Unregister(c echo.Context) error {
	if _, err := h.getAuthID(c); err != nil {
		return err
	}

	token := c.Param("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_TOKEN", "Token is required")
	}

	removed, err := h.registrationUC.Unregister(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !removed {
		return response.HandleAppError(c, domainerrors.ErrRegistrationNotFound)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"removed": true}, "Registration removed")
}

// getAuthID extracts the caller identity from the context. It returns an
// error the HTTP error handler renders as 401; callers must return that
// error unmodified so the request short-circuits before reaching the
// usecase.
func (h *RegistrationHandler) getAuthID(c echo.Context) (string, error) {
	authID, ok := c.Get("authID").(string)
	if !ok || authID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid caller identity in token")
	}

	return authID, nil
}
