package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vertipad is a single landing pad. Its lifecycle is owned by the parent
// vertiport: registering a pad appends it to the vertiport's pad list and
// removal detaches it there. VertiportID is nil only after a detach-policy
// vertiport removal left the pad orphaned on purpose.
type Vertipad struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        *string    `json:"name,omitempty" db:"name"`
	VertiportID *uuid.UUID `json:"vertiport_id,omitempty" db:"vertiport_id"`
	Location    GeoPoint   `json:"geo_location" db:"-"`
	Enabled     bool       `json:"enabled" db:"enabled"`
	Occupied    bool       `json:"occupied" db:"occupied"`
	Schedule    *string    `json:"schedule,omitempty" db:"schedule"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
