package dtos

import (
	"encoding/json"

	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
)

// Opt is a tri-state update field distinguishing {omitted, set-to-null,
// set-to-value}. A field absent from the request body decodes with Set
// false; an explicit JSON null decodes with Set and Null true.
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// The set* helpers apply a tri-state field to its destination. For
// non-nullable destinations a null value is treated the same as omitted:
// the prior value stands.

func setString(o Opt[string], dst *string) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

func setNullableString(o Opt[string], dst **string) {
	switch {
	case !o.Set:
	case o.Null:
		*dst = nil
	default:
		v := o.Value
		*dst = &v
	}
}

func setBool(o Opt[bool], dst *bool) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

func setUUID(o Opt[string], dst *uuid.UUID) error {
	if !o.Set || o.Null {
		return nil
	}
	id, err := ident.Parse(o.Value)
	if err != nil {
		return err
	}
	*dst = id
	return nil
}

func setNullableUUID(o Opt[string], dst **uuid.UUID) error {
	switch {
	case !o.Set:
	case o.Null:
		*dst = nil
	default:
		id, err := ident.Parse(o.Value)
		if err != nil {
			return err
		}
		*dst = &id
	}
	return nil
}

func setPoint(o Opt[entities.GeoPoint], dst *entities.GeoPoint) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}

func setPolygon(o Opt[entities.GeoPolygon], dst *entities.GeoPolygon) {
	if o.Set && !o.Null {
		*dst = o.Value
	}
}
