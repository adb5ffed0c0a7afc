package entities

import (
	"time"

	"github.com/google/uuid"
)

// Basics carries the ownership, status and grouping data shared by every
// physical asset. GroupID is a back-reference only; the authoritative
// member list lives on the AssetGroup record.
type Basics struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      *string     `json:"name,omitempty" db:"name"`
	GroupID   *uuid.UUID  `json:"group_id,omitempty" db:"group_id"`
	Owner     uuid.UUID   `json:"owner" db:"owner"`
	Whitelist []uuid.UUID `json:"whitelist" db:"-"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty" db:"updated_at"`
	Status    AssetStatus `json:"status" db:"status"`
	Schedule  *string     `json:"schedule,omitempty" db:"schedule"`
}

// EffectiveController resolves who controls the asset right now. Ownership
// transfers to the group's delegatee while a delegation is active; the
// whitelist never transfers control. group is the asset's containing group,
// or nil when the asset is ungrouped.
func (b *Basics) EffectiveController(group *AssetGroup) uuid.UUID {
	if group != nil && b.GroupID != nil && *b.GroupID == group.ID && group.Delegatee != nil {
		return *group.Delegatee
	}
	return b.Owner
}

// PermitsUsage reports whether the operator may use the asset: the owner
// always may, whitelisted operators get usage permission without control.
func (b *Basics) PermitsUsage(operator uuid.UUID) bool {
	if b.Owner == operator {
		return true
	}
	for _, w := range b.Whitelist {
		if w == operator {
			return true
		}
	}
	return false
}

// Dispatchable reports whether the asset may be considered for normal
// dispatch. Emergency status overrides delegation and whitelist checks.
func (b *Basics) Dispatchable() bool {
	return b.Status == StatusAvailable
}
