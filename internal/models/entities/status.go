package entities

import (
	"fmt"

	"skyfleet/registry/internal/apperr"
)

// AssetStatus describes whether an asset may be dispatched.
type AssetStatus string

const (
	// StatusAvailable means the asset is available for use.
	StatusAvailable AssetStatus = "AVAILABLE"
	// StatusUnavailable means the asset is not available for use.
	StatusUnavailable AssetStatus = "UNAVAILABLE"
	// StatusEmergency means the asset is reserved for emergencies. An
	// Emergency asset is excluded from normal dispatch regardless of
	// delegation or whitelist state.
	StatusEmergency AssetStatus = "EMERGENCY"
)

// ParseAssetStatus validates a status value arriving on a payload.
func ParseAssetStatus(s string) (AssetStatus, error) {
	switch AssetStatus(s) {
	case StatusAvailable, StatusUnavailable, StatusEmergency:
		return AssetStatus(s), nil
	default:
		return "", fmt.Errorf("%w: asset status %q", apperr.ErrInvalidFormat, s)
	}
}
