package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/common"
	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

type GroupService struct {
	store   storage.Store
	cache   common.CacheInterface
	metrics *metrics.Registry
}

func NewGroupService(store storage.Store, cache common.CacheInterface, reg *metrics.Registry) *GroupService {
	return &GroupService{store: store, cache: cache, metrics: reg}
}

func groupCacheKey(id uuid.UUID) string {
	return "group:" + id.String()
}

// Register creates an asset group and stamps the group back-reference on
// every member. The group record is the membership authority; a member
// whose back-reference write fails is recoverable from the group record.
func (s *GroupService) Register(ctx context.Context, p *dtos.RegisterAssetGroupPayload) (uuid.UUID, error) {
	owner, err := payloadID("owner", p.Owner)
	if err != nil {
		return uuid.Nil, err
	}
	memberIDs, err := payloadIDs("assets", p.Assets)
	if err != nil {
		return uuid.Nil, err
	}

	g := &entities.AssetGroup{
		ID:        uuid.New(),
		Name:      p.Name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	for _, id := range memberIDs {
		g.AddAsset(id)
	}

	// Every member must exist before the group is written.
	for _, id := range g.Assets {
		if _, _, err := s.memberBasics(ctx, id); err != nil {
			return uuid.Nil, err
		}
	}

	if err := s.store.InsertGroup(ctx, g); err != nil {
		return uuid.Nil, err
	}

	for _, id := range g.Assets {
		if err := s.setMemberGroup(ctx, id, &g.ID); err != nil {
			return uuid.Nil, err
		}
	}

	logging.Info("asset group registered", "group_id", g.ID.String(), "owner", owner.String(), "members", len(g.Assets))
	return g.ID, nil
}

// Update applies a masked merge. When the member set changes, back-
// references on removed and added members are reconciled after the group
// record is written.
func (s *GroupService) Update(ctx context.Context, idStr string, p *dtos.UpdateAssetGroupPayload) (*entities.AssetGroup, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	g, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	prevMembers := append([]uuid.UUID(nil), g.Assets...)
	changed, err := p.Apply(g)
	if err != nil {
		return nil, err
	}
	if !changed {
		return g, nil
	}

	added, removed := diffMembers(prevMembers, g.Assets)
	for _, m := range added {
		if _, _, err := s.memberBasics(ctx, m); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	g.UpdatedAt = &now
	if err := s.store.UpdateGroup(ctx, g); err != nil {
		return nil, err
	}

	for _, m := range removed {
		if err := s.setMemberGroup(ctx, m, nil); err != nil {
			return nil, err
		}
	}
	for _, m := range added {
		if err := s.setMemberGroup(ctx, m, &g.ID); err != nil {
			return nil, err
		}
	}

	s.cache.Delete(groupCacheKey(id))
	return g, nil
}

// Remove clears the group reference on all members and then deletes the
// group record.
func (s *GroupService) Remove(ctx context.Context, idStr string) error {
	id, err := ident.Parse(idStr)
	if err != nil {
		return err
	}

	g, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return err
	}

	for _, m := range g.Assets {
		if err := s.setMemberGroup(ctx, m, nil); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
	}

	if err := s.store.DeleteGroup(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(groupCacheKey(id))
	logging.Info("asset group removed", "group_id", id.String())
	return nil
}

func (s *GroupService) GetByID(ctx context.Context, idStr string) (*entities.AssetGroup, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	var cached entities.AssetGroup
	if s.cache.Get(groupCacheKey(id), &cached) {
		return &cached, nil
	}

	g, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(groupCacheKey(id), g, cacheTTL)
	return g, nil
}

// ExpandGroup returns the group's member list verbatim. Membership is
// authoritative in the group record, never derived by scanning assets.
func (s *GroupService) ExpandGroup(ctx context.Context, idStr string) ([]uuid.UUID, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}
	g, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Assets, nil
}

// SetDelegatee sets or clears the group's delegatee. Only the owning
// operator may delegate; delegating to the owner itself is a no-op
// success. The change is a single-record write so concurrent delegation
// changes on the same group serialize in the backend.
func (s *GroupService) SetDelegatee(ctx context.Context, idStr string, p *dtos.SetDelegateePayload, requester uuid.UUID) (*entities.AssetGroup, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	var delegatee *uuid.UUID
	if p.Delegatee != nil {
		d, err := ident.Parse(*p.Delegatee)
		if err != nil {
			return nil, err
		}
		delegatee = &d
	}

	g, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if g.Owner != requester {
		return nil, fmt.Errorf("%w: only the group owner may change delegation", apperr.ErrForbidden)
	}

	// Delegating to yourself is not a delegation.
	if delegatee != nil && *delegatee == g.Owner {
		return g, nil
	}
	if uuidPtrEqual(g.Delegatee, delegatee) {
		return g, nil
	}

	now := time.Now().UTC()
	if err := s.store.UpdateGroupDelegatee(ctx, id, delegatee, now); err != nil {
		return nil, err
	}

	g.Delegatee = delegatee
	g.UpdatedAt = &now
	s.cache.Delete(groupCacheKey(id))
	s.metrics.DelegationChangesTotal.Inc()

	target := "none"
	if delegatee != nil {
		target = delegatee.String()
	}
	logging.Info("delegation changed", "group_id", id.String(), "delegatee", target)
	return g, nil
}

// memberBasics resolves a member id to its asset kind. Group members
// reference aircraft or vertiports, never individual vertipads.
func (s *GroupService) memberBasics(ctx context.Context, id uuid.UUID) (*entities.Basics, entities.AssetKind, error) {
	a, err := s.store.GetAircraft(ctx, id)
	if err == nil {
		return &a.Basics, entities.KindAircraft, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", err
	}

	v, err := s.store.GetVertiport(ctx, id)
	if err == nil {
		return &v.Basics, entities.KindVertiport, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", err
	}
	return nil, "", fmt.Errorf("%w: group member %s is not a registered aircraft or vertiport", apperr.ErrNotFound, id)
}

func (s *GroupService) setMemberGroup(ctx context.Context, id uuid.UUID, groupID *uuid.UUID) error {
	now := time.Now().UTC()

	a, err := s.store.GetAircraft(ctx, id)
	if err == nil {
		if uuidPtrEqual(a.GroupID, groupID) {
			return nil
		}
		a.GroupID = groupID
		a.UpdatedAt = &now
		if err := s.store.UpdateAircraft(ctx, a); err != nil {
			return err
		}
		s.cache.Delete(aircraftCacheKey(id))
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	v, err := s.store.GetVertiport(ctx, id)
	if err == nil {
		if uuidPtrEqual(v.GroupID, groupID) {
			return nil
		}
		v.GroupID = groupID
		v.UpdatedAt = &now
		if err := s.store.UpdateVertiport(ctx, v); err != nil {
			return err
		}
		s.cache.Delete(vertiportCacheKey(id))
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: group member %s is not a registered aircraft or vertiport", apperr.ErrNotFound, id)
}

func diffMembers(before, after []uuid.UUID) (added, removed []uuid.UUID) {
	prev := make(map[uuid.UUID]bool, len(before))
	for _, id := range before {
		prev[id] = true
	}
	next := make(map[uuid.UUID]bool, len(after))
	for _, id := range after {
		next[id] = true
	}
	for _, id := range after {
		if !prev[id] {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if !next[id] {
			removed = append(removed, id)
		}
	}
	return added, removed
}
