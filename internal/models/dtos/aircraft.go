package dtos

import (
	"reflect"

	"skyfleet/registry/internal/models/entities"
)

// RegisterAircraftPayload is the request body for aircraft registration.
// All identifiers arrive as strings and are validated by the service before
// any storage call.
type RegisterAircraftPayload struct {
	Name               *string  `json:"name,omitempty"`
	GroupID            string   `json:"group_id,omitempty"`
	Owner              string   `json:"owner"`
	Whitelist          []string `json:"whitelist"`
	Status             string   `json:"status"`
	Schedule           *string  `json:"schedule,omitempty"`
	ModelID            string   `json:"model_id"`
	Manufacturer       string   `json:"manufacturer"`
	SerialNumber       string   `json:"serial_number"`
	RegistrationNumber string   `json:"registration_number"`
	Description        *string  `json:"description,omitempty"`
	MaxPayloadKg       float64  `json:"max_payload_kg"`
	MaxRangeKm         float64  `json:"max_range_km"`
	LastMaintenance    *string  `json:"last_maintenance,omitempty"`
	NextMaintenance    *string  `json:"next_maintenance,omitempty"`
	LastVertiportID    string   `json:"last_vertiport_id,omitempty"`
}

// UpdateAircraftPayload is a masked partial update. Fields named in Mask
// are applied; fields present in the body but absent from Mask are ignored.
type UpdateAircraftPayload struct {
	ModelID            Opt[string] `json:"model_id"`
	LastVertiportID    Opt[string] `json:"last_vertiport_id"`
	SerialNumber       Opt[string] `json:"serial_number"`
	RegistrationNumber Opt[string] `json:"registration_number"`
	Description        Opt[string] `json:"description"`
	GroupID            Opt[string] `json:"group_id"`
	Schedule           Opt[string] `json:"schedule"`
	LastMaintenance    Opt[string] `json:"last_maintenance"`
	NextMaintenance    Opt[string] `json:"next_maintenance"`
	Mask               []string    `json:"mask"`
}

// aircraftSetters is the total mapping from mask tag to setter. A tag not
// present here fails mask validation.
var aircraftSetters = map[string]func(*entities.Aircraft, *UpdateAircraftPayload) error{
	"model_id": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		return setUUID(p.ModelID, &a.ModelID)
	},
	"last_vertiport_id": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		return setNullableUUID(p.LastVertiportID, &a.LastVertiportID)
	},
	"serial_number": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setString(p.SerialNumber, &a.SerialNumber)
		return nil
	},
	"registration_number": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setString(p.RegistrationNumber, &a.RegistrationNumber)
		return nil
	},
	"description": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setNullableString(p.Description, &a.Description)
		return nil
	},
	"group_id": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		return setNullableUUID(p.GroupID, &a.GroupID)
	},
	"schedule": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setNullableString(p.Schedule, &a.Schedule)
		return nil
	},
	"last_maintenance": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setNullableString(p.LastMaintenance, &a.LastMaintenance)
		return nil
	},
	"next_maintenance": func(a *entities.Aircraft, p *UpdateAircraftPayload) error {
		setNullableString(p.NextMaintenance, &a.NextMaintenance)
		return nil
	},
}

// Apply merges the masked fields into a. Reports whether any value
// actually changed, so a same-values update stays a no-op success and the
// merge is idempotent.
func (p *UpdateAircraftPayload) Apply(a *entities.Aircraft) (bool, error) {
	if err := validateMask(p.Mask, aircraftSetters); err != nil {
		return false, err
	}
	before := *a
	for _, f := range p.Mask {
		if err := aircraftSetters[f](a, p); err != nil {
			return false, err
		}
	}
	return !reflect.DeepEqual(before, *a), nil
}
