package entities

import "github.com/google/uuid"

// AssetKind discriminates the asset types a reference may point at.
type AssetKind string

const (
	KindAircraft  AssetKind = "AIRCRAFT"
	KindVertiport AssetKind = "VERTIPORT"
)

// DelegationRelation tags how an operator relates to an asset in a resolve
// result. The relations are mutually exclusive for a given operator and
// asset.
type DelegationRelation string

const (
	// RelationOwned: the operator owns the asset and no delegation is
	// active on its group (or it has no group).
	RelationOwned DelegationRelation = "OWNED"
	// RelationDelegatedTo: the asset sits in a group owned by a different
	// operator whose delegatee is this operator.
	RelationDelegatedTo DelegationRelation = "DELEGATED_TO"
	// RelationDelegatedFrom: the operator owns the asset but its group is
	// currently delegated to some other operator.
	RelationDelegatedFrom DelegationRelation = "DELEGATED_FROM"
)

// AssetRef is one entry of a resolve result. Status rides along so
// dispatch-side callers can apply the Emergency exclusion without another
// lookup.
type AssetRef struct {
	ID       uuid.UUID          `json:"id"`
	Kind     AssetKind          `json:"kind"`
	Relation DelegationRelation `json:"relation"`
	Status   AssetStatus        `json:"status"`
}
