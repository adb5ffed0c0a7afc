package entities

import "github.com/google/uuid"

// Aircraft is a registered vehicle in the fleet.
type Aircraft struct {
	Basics

	// ModelID references the vehicle model record that carries shared
	// airframe data.
	ModelID      uuid.UUID `json:"model_id" db:"model_id"`
	Manufacturer string    `json:"manufacturer" db:"manufacturer"`

	// SerialNumber is the factory serial; unique across the fleet,
	// enforced by storage.
	SerialNumber string `json:"serial_number" db:"serial_number"`

	// RegistrationNumber is the national registration (the N number in
	// the US); unique across the fleet, enforced by storage.
	RegistrationNumber string `json:"registration_number" db:"registration_number"`

	Description     *string    `json:"description,omitempty" db:"description"`
	MaxPayloadKg    float64    `json:"max_payload_kg" db:"max_payload_kg"`
	MaxRangeKm      float64    `json:"max_range_km" db:"max_range_km"`
	LastMaintenance *string    `json:"last_maintenance,omitempty" db:"last_maintenance"`
	NextMaintenance *string    `json:"next_maintenance,omitempty" db:"next_maintenance"`
	LastVertiportID *uuid.UUID `json:"last_vertiport_id,omitempty" db:"last_vertiport_id"`
}
