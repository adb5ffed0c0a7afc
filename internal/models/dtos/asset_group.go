package dtos

import (
	"reflect"

	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/models/entities"
)

// RegisterAssetGroupPayload is the request body for asset group creation.
type RegisterAssetGroupPayload struct {
	Name   *string  `json:"name,omitempty"`
	Owner  string   `json:"owner"`
	Assets []string `json:"assets"`
}

// UpdateAssetGroupPayload is a masked partial update for an asset group.
// The delegatee is never part of the mask; delegation changes go through
// the dedicated delegatee operation so exclusivity stays a single code
// path.
type UpdateAssetGroupPayload struct {
	Name   Opt[string]   `json:"name"`
	Assets Opt[[]string] `json:"assets"`
	Mask   []string      `json:"mask"`
}

var assetGroupSetters = map[string]func(*entities.AssetGroup, *UpdateAssetGroupPayload) error{
	"name": func(g *entities.AssetGroup, p *UpdateAssetGroupPayload) error {
		setNullableString(p.Name, &g.Name)
		return nil
	},
	"assets": func(g *entities.AssetGroup, p *UpdateAssetGroupPayload) error {
		if !p.Assets.Set || p.Assets.Null {
			return nil
		}
		ids, err := ident.ParseAll(p.Assets.Value)
		if err != nil {
			return err
		}
		g.Assets = g.Assets[:0:0]
		for _, id := range ids {
			g.AddAsset(id)
		}
		return nil
	},
}

// Apply merges the masked fields into g; see UpdateAircraftPayload.Apply.
func (p *UpdateAssetGroupPayload) Apply(g *entities.AssetGroup) (bool, error) {
	if err := validateMask(p.Mask, assetGroupSetters); err != nil {
		return false, err
	}
	before := *g
	for _, f := range p.Mask {
		if err := assetGroupSetters[f](g, p); err != nil {
			return false, err
		}
	}
	return !reflect.DeepEqual(before, *g), nil
}

// SetDelegateePayload carries a delegation change. A null delegatee clears
// the active delegation.
type SetDelegateePayload struct {
	Delegatee *string `json:"delegatee"`
}
