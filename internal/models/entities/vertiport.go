package entities

import "github.com/google/uuid"

// Vertiport is a landing site hosting zero or more vertipads.
type Vertiport struct {
	Basics

	Description *string    `json:"description,omitempty" db:"description"`
	Location    GeoPolygon `json:"geo_location" db:"-"`

	// Vertipads lists the pads hosted at this site, in creation order.
	// Kept consistent with Vertipad.VertiportID by the registry.
	Vertipads []uuid.UUID `json:"vertipads" db:"-"`
}
