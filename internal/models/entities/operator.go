package entities

import (
	"time"

	"github.com/google/uuid"
)

// Operator is an organization that may own or be delegated assets.
// Operator records are managed by the platform's identity services; the
// registry only reads them.
type Operator struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Country   string    `json:"country" db:"country"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
