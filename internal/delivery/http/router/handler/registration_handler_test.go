package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/delivery/http/validator"
	"dispatch/internal/domain/entity"
	mockusecase "dispatch/internal/mocks/usecase"
	"dispatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(uc usecase.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUC: uc,
		logger:         slog.New(slog.DiscardHandler),
	}
}

func TestRegistrationHandler_Register_Created(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	saved := &entity.Registration{
		ID:      "65f0c2a4e8b9a1d2c3f40001",
		Token:   "token-1",
		AuthID:  "auth-1",
		Created: time.Now().UTC(),
		Updated: time.Now().UTC(),
	}
	mockUC.On("Register", mock.Anything, "auth-1", mock.MatchedBy(func(input *usecase.RegistrationInput) bool {
		return input.Token == "token-1" && input.Device == nil
	})).Return(saved, true, nil).Once()

	c, rec := newTestContext(t, http.MethodPost, "/registrations", `{"token":"token-1"}`)
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-1")
}

func TestRegistrationHandler_Register_MergedReturns200(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	saved := &entity.Registration{
		Token:  "token-1",
		AuthID: "auth-1",
		Device: &entity.Device{OS: entity.OSAndroid, AppVersion: "2.4.0"},
	}
	mockUC.On("Register", mock.Anything, "auth-1", mock.MatchedBy(func(input *usecase.RegistrationInput) bool {
		return input.Device != nil && input.Device.OS == "android"
	})).Return(saved, false, nil).Once()

	body := `{"token":"token-1","device":{"os":"android","app_version":"2.4.0"}}`
	c, rec := newTestContext(t, http.MethodPost, "/registrations", body)
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegistrationHandler_Register_MissingToken(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	c, rec := newTestContext(t, http.MethodPost, "/registrations", `{}`)
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "Register")
}

func TestRegistrationHandler_Register_MissingIdentity(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	c, _ := newTestContext(t, http.MethodPost, "/registrations", `{"token":"token-1"}`)

	handler := newTestHandler(mockUC)
	err := handler.Register(c)

	// The handler must short-circuit with a 401 error before touching the
	// usecase; the error handler renders it on the wired server.
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	mockUC.AssertNotCalled(t, "Register")
}

func TestRegistrationHandler_Unregister_MissingIdentity(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	c, _ := newTestContext(t, http.MethodDelete, "/registrations/token-1", "")
	c.SetParamNames("token")
	c.SetParamValues("token-1")

	handler := newTestHandler(mockUC)
	err := handler.Unregister(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	mockUC.AssertNotCalled(t, "Unregister")
}

func TestRegistrationHandler_ListRegistrations(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)

	regs := []*entity.Registration{
		{Token: "token-2", AuthID: "auth-1"},
		{Token: "token-1", AuthID: "auth-1"},
	}
	mockUC.On("ListRegistrations", mock.Anything, "auth-1").Return(regs, nil).Once()

	c, rec := newTestContext(t, http.MethodGet, "/registrations", "")
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.ListRegistrations(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-2")
}

func TestRegistrationHandler_Unregister_Removed(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)
	mockUC.On("Unregister", mock.Anything, "token-1").Return(true, nil).Once()

	c, rec := newTestContext(t, http.MethodDelete, "/registrations/token-1", "")
	c.SetParamNames("token")
	c.SetParamValues("token-1")
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.Unregister(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegistrationHandler_Unregister_NotFound(t *testing.T) {
	mockUC := mockusecase.NewMockRegistrationUsecase(t)
	mockUC.On("Unregister", mock.Anything, "missing").Return(false, nil).Once()

	c, rec := newTestContext(t, http.MethodDelete, "/registrations/missing", "")
	c.SetParamNames("token")
	c.SetParamValues("missing")
	c.Set("authID", "auth-1")

	handler := newTestHandler(mockUC)
	err := handler.Unregister(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "REGISTRATION_NOT_FOUND")
}
