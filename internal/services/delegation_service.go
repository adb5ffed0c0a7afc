package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

// ResolveMode selects which delegation partition a resolve query returns.
type ResolveMode string

const (
	ModeOwned         ResolveMode = "OWNED"
	ModeDelegatedTo   ResolveMode = "DELEGATED_TO"
	ModeDelegatedFrom ResolveMode = "DELEGATED_FROM"
	ModeAll           ResolveMode = "ALL"
)

// ParseResolveMode validates a mode arriving on a query string. Empty
// selects All.
func ParseResolveMode(s string) (ResolveMode, error) {
	switch ResolveMode(s) {
	case ModeOwned, ModeDelegatedTo, ModeDelegatedFrom, ModeAll:
		return ResolveMode(s), nil
	case "":
		return ModeAll, nil
	default:
		return "", fmt.Errorf("%w: resolve mode %q", apperr.ErrInvalidFormat, s)
	}
}

// DelegationService computes effective control over assets. It is a pure
// read-side component: nothing here writes, and results are read-committed
// with respect to concurrent delegation changes.
type DelegationService struct {
	store storage.Store
}

func NewDelegationService(store storage.Store) *DelegationService {
	return &DelegationService{store: store}
}

// ResolveOperatorAssets partitions the fleet for one operator:
//
//	DelegatedTo:    the asset sits in a group owned by someone else whose
//	                delegatee is this operator, whoever owns the asset.
//	DelegatedFrom:  the operator owns the asset but its group is delegated
//	                to a different operator.
//	Owned:          the operator owns the asset and neither of the above
//	                applies.
//
// All returns the union with each ref tagged; the partitions are disjoint
// by construction. Operator existence is checked against storage on every
// call, never from a cache.
func (s *DelegationService) ResolveOperatorAssets(ctx context.Context, operatorID uuid.UUID, mode ResolveMode) ([]entities.AssetRef, error) {
	if _, err := s.store.GetOperator(ctx, operatorID); err != nil {
		return nil, err
	}

	var (
		aircraft   []entities.Aircraft
		vertiports []entities.Vertiport
		groups     []entities.AssetGroup
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		aircraft, err = s.store.ListAircraft(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		vertiports, err = s.store.ListVertiports(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		groups, err = s.store.ListGroups(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	groupByID := make(map[uuid.UUID]*entities.AssetGroup, len(groups))
	for i := range groups {
		groupByID[groups[i].ID] = &groups[i]
	}

	refs := make([]entities.AssetRef, 0, len(aircraft)+len(vertiports))
	for i := range aircraft {
		b := &aircraft[i].Basics
		if rel, ok := relationFor(operatorID, b, groupByID); ok && modeMatches(mode, rel) {
			refs = append(refs, entities.AssetRef{
				ID:       b.ID,
				Kind:     entities.KindAircraft,
				Relation: rel,
				Status:   b.Status,
			})
		}
	}
	for i := range vertiports {
		b := &vertiports[i].Basics
		if rel, ok := relationFor(operatorID, b, groupByID); ok && modeMatches(mode, rel) {
			refs = append(refs, entities.AssetRef{
				ID:       b.ID,
				Kind:     entities.KindVertiport,
				Relation: rel,
				Status:   b.Status,
			})
		}
	}
	return refs, nil
}

// relationFor classifies one asset against one operator. The relations
// are mutually exclusive: an asset resolves to at most one of them.
func relationFor(operator uuid.UUID, b *entities.Basics, groups map[uuid.UUID]*entities.AssetGroup) (entities.DelegationRelation, bool) {
	var group *entities.AssetGroup
	if b.GroupID != nil {
		group = groups[*b.GroupID]
	}

	delegated := group != nil && group.Delegatee != nil

	// A foreign group's delegation outranks plain ownership: even when the
	// operator owns the asset, control flows through the delegating group.
	if delegated && *group.Delegatee == operator && group.Owner != operator {
		return entities.RelationDelegatedTo, true
	}

	if b.Owner == operator {
		if delegated && *group.Delegatee != operator {
			return entities.RelationDelegatedFrom, true
		}
		return entities.RelationOwned, true
	}
	return "", false
}

func modeMatches(mode ResolveMode, rel entities.DelegationRelation) bool {
	switch mode {
	case ModeAll:
		return true
	case ModeOwned:
		return rel == entities.RelationOwned
	case ModeDelegatedTo:
		return rel == entities.RelationDelegatedTo
	case ModeDelegatedFrom:
		return rel == entities.RelationDelegatedFrom
	default:
		return false
	}
}
