package dtos

import (
	"reflect"

	"skyfleet/registry/internal/models/entities"
)

// RegisterVertipadPayload is the request body for vertipad registration.
// The parent vertiport must exist; registration appends the new pad to the
// vertiport's pad list.
type RegisterVertipadPayload struct {
	Name        *string           `json:"name,omitempty"`
	VertiportID string            `json:"vertiport_id"`
	Location    entities.GeoPoint `json:"geo_location"`
	Enabled     bool              `json:"enabled"`
	Occupied    bool              `json:"occupied"`
	Schedule    *string           `json:"schedule,omitempty"`
}

// UpdateVertipadPayload is a masked partial update for a vertipad. Masking
// vertiport_id re-parents the pad; the registry moves the back-reference on
// both vertiports.
type UpdateVertipadPayload struct {
	VertiportID Opt[string]            `json:"vertiport_id"`
	Name        Opt[string]            `json:"name"`
	Location    Opt[entities.GeoPoint] `json:"geo_location"`
	Enabled     Opt[bool]              `json:"enabled"`
	Occupied    Opt[bool]              `json:"occupied"`
	Schedule    Opt[string]            `json:"schedule"`
	Mask        []string               `json:"mask"`
}

var vertipadSetters = map[string]func(*entities.Vertipad, *UpdateVertipadPayload) error{
	"vertiport_id": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		// Re-parenting only; a pad cannot be detached through update.
		if p.VertiportID.Null {
			return nil
		}
		return setNullableUUID(p.VertiportID, &v.VertiportID)
	},
	"name": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		setNullableString(p.Name, &v.Name)
		return nil
	},
	"geo_location": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		setPoint(p.Location, &v.Location)
		return nil
	},
	"enabled": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		setBool(p.Enabled, &v.Enabled)
		return nil
	},
	"occupied": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		setBool(p.Occupied, &v.Occupied)
		return nil
	},
	"schedule": func(v *entities.Vertipad, p *UpdateVertipadPayload) error {
		setNullableString(p.Schedule, &v.Schedule)
		return nil
	},
}

// Apply merges the masked fields into v; see UpdateAircraftPayload.Apply.
func (p *UpdateVertipadPayload) Apply(v *entities.Vertipad) (bool, error) {
	if err := validateMask(p.Mask, vertipadSetters); err != nil {
		return false, err
	}
	before := *v
	for _, f := range p.Mask {
		if err := vertipadSetters[f](v, p); err != nil {
			return false, err
		}
	}
	return !reflect.DeepEqual(before, *v), nil
}
