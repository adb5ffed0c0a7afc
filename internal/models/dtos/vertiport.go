package dtos

import (
	"reflect"

	"skyfleet/registry/internal/models/entities"
)

// RegisterVertiportPayload is the request body for vertiport registration.
// Pads are not part of registration; they attach through vertipad
// registration so the pad/port linkage stays a single code path.
type RegisterVertiportPayload struct {
	Name        *string             `json:"name,omitempty"`
	GroupID     string              `json:"group_id,omitempty"`
	Owner       string              `json:"owner"`
	Whitelist   []string            `json:"whitelist"`
	Status      string              `json:"status"`
	Schedule    *string             `json:"schedule,omitempty"`
	Description *string             `json:"description,omitempty"`
	Location    entities.GeoPolygon `json:"geo_location"`
}

// UpdateVertiportPayload is a masked partial update for a vertiport.
type UpdateVertiportPayload struct {
	Name        Opt[string]              `json:"name"`
	Description Opt[string]              `json:"description"`
	Location    Opt[entities.GeoPolygon] `json:"geo_location"`
	Schedule    Opt[string]              `json:"schedule"`
	Status      Opt[string]              `json:"status"`
	Mask        []string                 `json:"mask"`
}

var vertiportSetters = map[string]func(*entities.Vertiport, *UpdateVertiportPayload) error{
	"name": func(v *entities.Vertiport, p *UpdateVertiportPayload) error {
		setNullableString(p.Name, &v.Name)
		return nil
	},
	"description": func(v *entities.Vertiport, p *UpdateVertiportPayload) error {
		setNullableString(p.Description, &v.Description)
		return nil
	},
	"geo_location": func(v *entities.Vertiport, p *UpdateVertiportPayload) error {
		setPolygon(p.Location, &v.Location)
		return nil
	},
	"schedule": func(v *entities.Vertiport, p *UpdateVertiportPayload) error {
		setNullableString(p.Schedule, &v.Schedule)
		return nil
	},
	"status": func(v *entities.Vertiport, p *UpdateVertiportPayload) error {
		if !p.Status.Set || p.Status.Null {
			return nil
		}
		st, err := entities.ParseAssetStatus(p.Status.Value)
		if err != nil {
			return err
		}
		v.Status = st
		return nil
	},
}

// Apply merges the masked fields into v; see UpdateAircraftPayload.Apply.
func (p *UpdateVertiportPayload) Apply(v *entities.Vertiport) (bool, error) {
	if err := validateMask(p.Mask, vertiportSetters); err != nil {
		return false, err
	}
	before := *v
	for _, f := range p.Mask {
		if err := vertiportSetters[f](v, p); err != nil {
			return false, err
		}
	}
	return !reflect.DeepEqual(before, *v), nil
}
