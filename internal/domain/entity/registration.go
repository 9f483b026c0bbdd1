// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeviceOS identifies the operating system a device reported at registration.
type DeviceOS string

const (
	OSAndroid DeviceOS = "android"
	OSIOS     DeviceOS = "ios"
	OSWindows DeviceOS = "windows"
	OSUnknown DeviceOS = "unknown"
)

// ParseDeviceOS maps a reported OS string onto the known platforms,
// falling back to OSUnknown.
func ParseDeviceOS(s string) DeviceOS {
	switch DeviceOS(strings.ToLower(s)) {
	case OSAndroid:
		return OSAndroid
	case OSIOS:
		return OSIOS
	case OSWindows:
		return OSWindows
	default:
		return OSUnknown
	}
}

// Device holds the metadata a client reports about the hardware behind a
// push token. It is replaced wholesale on save, never merged field by field.
type Device struct {
	OS         DeviceOS `json:"os"`
	OSVersion  string   `json:"os_version"`
	AppVersion string   `json:"app_version"`
	Model      string   `json:"model"`
}

// Registration links an authenticated identity, a push token, optional
// device metadata, and an optional push-platform delivery endpoint.
// A registration is uniquely identified by the (Token, AuthID) pair.
type Registration struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	AuthID string `json:"auth_id"`

	// Device is nil until the client reports device metadata.
	Device *Device `json:"device,omitempty"`

	// Endpoint is the push-platform delivery endpoint. Empty means the
	// registration is still awaiting resolution; a claim-marker value means
	// a resolution batch has claimed it.
	Endpoint string `json:"endpoint,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`

	// ClaimedAt is set when a resolution batch claims the registration.
	ClaimedAt time.Time `json:"claimed_at,omitempty"`
}

// Incomplete reports whether the registration has device metadata but no
// delivery endpoint yet, making it eligible for endpoint resolution.
func (r *Registration) Incomplete() bool {
	return r.Device != nil && r.Endpoint == ""
}

// NeedsEndpoint reports whether the registration's endpoint field should be
// treated as unset for resolution purposes. A claim marker counts as unset:
// it only records that a batch is working on the registration.
func (r *Registration) NeedsEndpoint() bool {
	return r.Endpoint == "" || IsClaimMarker(r.Endpoint)
}

// ClaimMarkerPrefix is reserved for claim markers. Real endpoints are
// platform URLs or ARNs and never start with it.
const ClaimMarkerPrefix = "claim:"

// NewClaimMarker returns a fresh unique claim marker for a resolution batch.
func NewClaimMarker() string {
	return ClaimMarkerPrefix + uuid.New().String()
}

// IsClaimMarker reports whether a value stored in the endpoint field is a
// claim marker rather than a real delivery endpoint.
func IsClaimMarker(endpoint string) bool {
	return strings.HasPrefix(endpoint, ClaimMarkerPrefix)
}
