package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/common"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

type VertiportService struct {
	store         storage.Store
	cache         common.CacheInterface
	metrics       *metrics.Registry
	removalPolicy config.VertiportRemovalPolicy
}

func NewVertiportService(store storage.Store, cache common.CacheInterface, reg *metrics.Registry, policy config.VertiportRemovalPolicy) *VertiportService {
	return &VertiportService{store: store, cache: cache, metrics: reg, removalPolicy: policy}
}

func vertiportCacheKey(id uuid.UUID) string {
	return "vertiport:" + id.String()
}

// Register persists a new vertiport. Pads are not accepted here; they
// attach through vertipad registration so the linkage stays one code path.
func (s *VertiportService) Register(ctx context.Context, p *dtos.RegisterVertiportPayload) (uuid.UUID, error) {
	owner, err := payloadID("owner", p.Owner)
	if err != nil {
		return uuid.Nil, err
	}
	groupID, err := payloadOptionalID("group_id", p.GroupID)
	if err != nil {
		return uuid.Nil, err
	}
	whitelist, err := payloadIDs("whitelist", p.Whitelist)
	if err != nil {
		return uuid.Nil, err
	}
	status, err := payloadStatus(p.Status)
	if err != nil {
		return uuid.Nil, err
	}
	if len(p.Location.Exterior) < 3 {
		return uuid.Nil, fmt.Errorf("%w: geo_location needs at least three vertices", apperr.ErrInvalidPayload)
	}

	var group *entities.AssetGroup
	if groupID != nil {
		group, err = s.store.GetGroup(ctx, *groupID)
		if err != nil {
			return uuid.Nil, err
		}
	}

	v := &entities.Vertiport{
		Basics: entities.Basics{
			ID:        uuid.New(),
			Name:      p.Name,
			GroupID:   groupID,
			Owner:     owner,
			Whitelist: whitelist,
			CreatedAt: time.Now().UTC(),
			Status:    status,
			Schedule:  p.Schedule,
		},
		Description: p.Description,
		Location:    p.Location,
	}

	if err := s.store.InsertVertiport(ctx, v); err != nil {
		return uuid.Nil, err
	}

	if group != nil {
		if group.AddAsset(v.ID) {
			now := time.Now().UTC()
			group.UpdatedAt = &now
			if err := s.store.UpdateGroup(ctx, group); err != nil {
				return uuid.Nil, err
			}
		}
	}

	s.metrics.AssetsRegisteredTotal.WithLabelValues(string(entities.KindVertiport)).Inc()
	logging.Info("vertiport registered", "vertiport_id", v.ID.String(), "owner", owner.String())
	return v.ID, nil
}

func (s *VertiportService) Update(ctx context.Context, idStr string, p *dtos.UpdateVertiportPayload) (*entities.Vertiport, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	v, err := s.store.GetVertiport(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := p.Apply(v)
	if err != nil {
		return nil, err
	}
	if !changed {
		return v, nil
	}

	now := time.Now().UTC()
	v.UpdatedAt = &now
	if err := s.store.UpdateVertiport(ctx, v); err != nil {
		return nil, err
	}

	s.cache.Delete(vertiportCacheKey(id))
	return v, nil
}

// Remove deletes a vertiport. Attached vertipads are handled per the
// configured policy: reject refuses with a conflict, detach orphans the
// pads deliberately by clearing their parent reference first.
func (s *VertiportService) Remove(ctx context.Context, idStr string) error {
	id, err := ident.Parse(idStr)
	if err != nil {
		return err
	}

	v, err := s.store.GetVertiport(ctx, id)
	if err != nil {
		return err
	}

	if len(v.Vertipads) > 0 {
		switch s.removalPolicy {
		case config.RemovalReject:
			return fmt.Errorf("%w: vertiport %s still hosts %d vertipads", apperr.ErrConflict, id, len(v.Vertipads))
		case config.RemovalDetach:
			for _, padID := range v.Vertipads {
				if err := s.detachPad(ctx, padID); err != nil {
					return err
				}
			}
		}
	}

	if v.GroupID != nil {
		if err := s.unlinkFromGroup(ctx, *v.GroupID, id); err != nil {
			return err
		}
	}

	if err := s.store.DeleteVertiport(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(vertiportCacheKey(id))
	s.metrics.AssetsRemovedTotal.WithLabelValues(string(entities.KindVertiport)).Inc()
	logging.Info("vertiport removed", "vertiport_id", id.String(), "policy", string(s.removalPolicy))
	return nil
}

func (s *VertiportService) GetByID(ctx context.Context, idStr string) (*entities.Vertiport, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	var cached entities.Vertiport
	if s.cache.Get(vertiportCacheKey(id), &cached) {
		return &cached, nil
	}

	v, err := s.store.GetVertiport(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(vertiportCacheKey(id), v, cacheTTL)
	return v, nil
}

func (s *VertiportService) detachPad(ctx context.Context, padID uuid.UUID) error {
	pad, err := s.store.GetVertipad(ctx, padID)
	if err != nil {
		return err
	}
	pad.VertiportID = nil
	now := time.Now().UTC()
	pad.UpdatedAt = &now
	return s.store.UpdateVertipad(ctx, pad)
}

func (s *VertiportService) unlinkFromGroup(ctx context.Context, groupID, assetID uuid.UUID) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.RemoveAsset(assetID) {
		return nil
	}
	now := time.Now().UTC()
	group.UpdatedAt = &now
	return s.store.UpdateGroup(ctx, group)
}
