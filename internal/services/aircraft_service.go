package services

import (
	"context"
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

type AircraftService struct {
	store   storage.Store
	cache   common.CacheInterface
	metrics *metrics.Registry
}

func NewAircraftService(store storage.Store, cache common.CacheInterface, reg *metrics.Registry) *AircraftService {
	return &AircraftService{store: store, cache: cache, metrics: reg}
}

func aircraftCacheKey(id uuid.UUID) string {
	return "aircraft:" + id.String()
}

// Register validates the payload, persists the aircraft, and links it
// into its group when one is named. The aircraft record is written before
// the group link so a partial failure leaves a reachable record rather
// than a dangling member reference.
func (s *AircraftService) Register(ctx context.Context, p *dtos.RegisterAircraftPayload) (uuid.UUID, error) {
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
	modelID, err := payloadID("model_id", p.ModelID)
	if err != nil {
		return uuid.Nil, err
	}
	lastVertiport, err := payloadOptionalID("last_vertiport_id", p.LastVertiportID)
	if err != nil {
		return uuid.Nil, err
	}
	if p.Manufacturer == "" || p.SerialNumber == "" || p.RegistrationNumber == "" {
		return uuid.Nil, fmt.Errorf("%w: manufacturer, serial_number and registration_number are required", apperr.ErrInvalidPayload)
	}

	var group *entities.AssetGroup
	if groupID != nil {
		group, err = s.store.GetGroup(ctx, *groupID)
		if err != nil {
			return uuid.Nil, err
		}
	}

	a := &entities.Aircraft{
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
		ModelID:            modelID,
		Manufacturer:       p.Manufacturer,
		SerialNumber:       p.SerialNumber,
		RegistrationNumber: p.RegistrationNumber,
		Description:        p.Description,
		MaxPayloadKg:       p.MaxPayloadKg,
		MaxRangeKm:         p.MaxRangeKm,
		LastMaintenance:    p.LastMaintenance,
		NextMaintenance:    p.NextMaintenance,
		LastVertiportID:    lastVertiport,
	}

	if err := s.store.InsertAircraft(ctx, a); err != nil {
		return uuid.Nil, err
	}

	if group != nil {
		if err := s.linkToGroup(ctx, group, a.ID); err != nil {
			return uuid.Nil, err
		}
	}

	s.metrics.AssetsRegisteredTotal.WithLabelValues(string(entities.KindAircraft)).Inc()
	logging.Info("aircraft registered", "aircraft_id", a.ID.String(), "owner", owner.String())
	return a.ID, nil
}

// Update applies a masked merge. An update that changes nothing is a
// no-op success and does not stamp updated_at.
func (s *AircraftService) Update(ctx context.Context, idStr string, p *dtos.UpdateAircraftPayload) (*entities.Aircraft, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	a, err := s.store.GetAircraft(ctx, id)
	if err != nil {
		return nil, err
	}

	prevGroup := a.GroupID
	changed, err := p.Apply(a)
	if err != nil {
		return nil, err
	}
	if !changed {
		return a, nil
	}

	var newGroup *entities.AssetGroup
	if !uuidPtrEqual(prevGroup, a.GroupID) && a.GroupID != nil {
		// Validate the target group before writing anything.
		newGroup, err = s.store.GetGroup(ctx, *a.GroupID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	a.UpdatedAt = &now
	if err := s.store.UpdateAircraft(ctx, a); err != nil {
		return nil, err
	}

	if !uuidPtrEqual(prevGroup, a.GroupID) {
		if err := s.moveGroupMembership(ctx, prevGroup, newGroup, a.ID); err != nil {
			return nil, err
		}
	}

	s.cache.Delete(aircraftCacheKey(id))
	return a, nil
}

// Remove deletes the aircraft, first dropping it from its group's member
// list so no group ever references a deleted asset.
func (s *AircraftService) Remove(ctx context.Context, idStr string) error {
	id, err := ident.Parse(idStr)
	if err != nil {
		return err
	}

	a, err := s.store.GetAircraft(ctx, id)
	if err != nil {
		return err
	}

	if a.GroupID != nil {
		if err := s.unlinkFromGroup(ctx, *a.GroupID, id); err != nil {
			return err
		}
	}

	if err := s.store.DeleteAircraft(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(aircraftCacheKey(id))
	s.metrics.AssetsRemovedTotal.WithLabelValues(string(entities.KindAircraft)).Inc()
	logging.Info("aircraft removed", "aircraft_id", id.String())
	return nil
}

// GetByID reads through the short-TTL cache. Staleness is bounded by
// cacheTTL and writes invalidate eagerly.
func (s *AircraftService) GetByID(ctx context.Context, idStr string) (*entities.Aircraft, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	var cached entities.Aircraft
	if s.cache.Get(aircraftCacheKey(id), &cached) {
		return &cached, nil
	}

	a, err := s.store.GetAircraft(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(aircraftCacheKey(id), a, cacheTTL)
	return a, nil
}

func (s *AircraftService) linkToGroup(ctx context.Context, group *entities.AssetGroup, assetID uuid.UUID) error {
	if !group.AddAsset(assetID) {
		return nil
	}
	now := time.Now().UTC()
	group.UpdatedAt = &now
	return s.store.UpdateGroup(ctx, group)
}

func (s *AircraftService) unlinkFromGroup(ctx context.Context, groupID, assetID uuid.UUID) error {
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

func (s *AircraftService) moveGroupMembership(ctx context.Context, prev *uuid.UUID, next *entities.AssetGroup, assetID uuid.UUID) error {
	if prev != nil {
		if err := s.unlinkFromGroup(ctx, *prev, assetID); err != nil {
			return err
		}
	}
	if next != nil {
		if err := s.linkToGroup(ctx, next, assetID); err != nil {
			return err
		}
	}
	return nil
}
