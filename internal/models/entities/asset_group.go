package entities

import (
	"time"

	"github.com/google/uuid"
)

// AssetGroup is a logical bundle of aircraft and vertiports whose control
// can be delegated as a unit. Delegation is exclusive: at most one
// delegatee at any time.
type AssetGroup struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      *string    `json:"name,omitempty" db:"name"`
	Owner     uuid.UUID  `json:"owner" db:"owner"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Delegatee is the operator currently borrowing full control of the
	// group's assets, or nil when no delegation is active.
	Delegatee *uuid.UUID `json:"delegatee,omitempty" db:"delegatee"`

	// Assets is the authoritative, ordered member set. Members reference
	// aircraft or vertiports, never individual vertipads.
	Assets []uuid.UUID `json:"assets" db:"-"`
}

// Contains reports whether id is already a member.
func (g *AssetGroup) Contains(id uuid.UUID) bool {
	for _, a := range g.Assets {
		if a == id {
			return true
		}
	}
	return false
}

// AddAsset appends id to the member set. Duplicate insertion is a no-op,
// not an error. Reports whether the set changed.
func (g *AssetGroup) AddAsset(id uuid.UUID) bool {
	if g.Contains(id) {
		return false
	}
	g.Assets = append(g.Assets, id)
	return true
}

// RemoveAsset drops id from the member set, preserving order. Reports
// whether the set changed.
func (g *AssetGroup) RemoveAsset(id uuid.UUID) bool {
	for i, a := range g.Assets {
		if a == id {
			g.Assets = append(g.Assets[:i], g.Assets[i+1:]...)
			return true
		}
	}
	return false
}
