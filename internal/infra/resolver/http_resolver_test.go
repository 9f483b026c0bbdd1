package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/config"
	"dispatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(gatewayURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Resolver = &config.ResolverConfig{
		GatewayURL:     gatewayURL,
		RequestTimeout: 2 * time.Second,
	}

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewHTTPResolver_RequiresGatewayURL(t *testing.T) {
	_, err := NewHTTPResolver(&config.Config{}, discardLogger())
	assert.Error(t, err)
}

func TestResolve_Success(t *testing.T) {
	var got provisionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(provisionResponse{Endpoint: "https://push.example.com/endpoints/abc"})
	}))
	defer srv.Close()

	res, err := NewHTTPResolver(newTestConfig(srv.URL), discardLogger())
	require.NoError(t, err)

	reg := &entity.Registration{
		Token: "T1",
		Device: &entity.Device{
			OS:         entity.OSAndroid,
			AppVersion: "1.2.3",
			Model:      "Pixel 9",
		},
	}

	endpoint, err := res.Resolve(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.com/endpoints/abc", endpoint)

	assert.Equal(t, "T1", got.Token)
	assert.Equal(t, "android", got.OS)
	assert.Equal(t, "1.2.3", got.AppVersion)
	assert.Equal(t, "Pixel 9", got.Model)
}

func TestResolve_GatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res, err := NewHTTPResolver(newTestConfig(srv.URL), discardLogger())
	require.NoError(t, err)

	_, err = res.Resolve(context.Background(), &entity.Registration{Token: "T1"})
	assert.Error(t, err)
}

func TestResolve_EmptyEndpointRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(provisionResponse{})
	}))
	defer srv.Close()

	res, err := NewHTTPResolver(newTestConfig(srv.URL), discardLogger())
	require.NoError(t, err)

	_, err = res.Resolve(context.Background(), &entity.Registration{Token: "T1"})
	assert.Error(t, err)
}
