// Package resolver provides the EndpointResolver implementation that talks
// to the push-platform gateway.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultRequestTimeout = 10 * time.Second

// httpResolver asks the platform gateway to provision a delivery endpoint
// for a token. The gateway answers with the endpoint the push platform
// assigned.
type httpResolver struct {
	gatewayURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// provisionRequest is the payload sent to the platform gateway.
type provisionRequest struct {
	Token      string `json:"token"`
	OS         string `json:"os,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
	Model      string `json:"model,omitempty"`
}

// provisionResponse is the gateway's answer.
type provisionResponse struct {
	Endpoint string `json:"endpoint"`
}

// NewHTTPResolver creates an EndpointResolver backed by the configured
// platform gateway.
func NewHTTPResolver(cfg *config.Config, logger *slog.Logger) (service.EndpointResolver, error) {
	if cfg.Resolver == nil || cfg.Resolver.GatewayURL == "" {
		return nil, errors.New("resolver gateway URL is required")
	}

	timeout := cfg.Resolver.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &httpResolver{
		gatewayURL: cfg.Resolver.GatewayURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Resolve obtains the delivery endpoint for the registration's token.
func (r *httpResolver) Resolve(ctx context.Context, reg *entity.Registration) (string, error) {
	payload := provisionRequest{Token: reg.Token}
	if reg.Device != nil {
		payload.OS = string(reg.Device.OS)
		payload.AppVersion = reg.Device.AppVersion
		payload.Model = reg.Device.Model
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to call platform gateway")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("platform gateway returned status %d", resp.StatusCode)
	}

	var provisioned provisionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&provisioned); err != nil {
		return "", errors.Wrap(err, "failed to decode gateway response")
	}

	if provisioned.Endpoint == "" {
		return "", errors.New("platform gateway returned an empty endpoint")
	}

	return provisioned.Endpoint, nil
}
