package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/common"
	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/logging"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

type VertipadService struct {
	store   storage.Store
	cache   common.CacheInterface
	metrics *metrics.Registry
}

func NewVertipadService(store storage.Store, cache common.CacheInterface, reg *metrics.Registry) *VertipadService {
	return &VertipadService{store: store, cache: cache, metrics: reg}
}

func vertipadCacheKey(id uuid.UUID) string {
	return "vertipad:" + id.String()
}

// Register creates the pad and appends it to the parent vertiport's pad
// list. The child record is written before the parent link; a pad that
// exists but is not yet linked is the acceptable partial-failure state.
func (s *VertipadService) Register(ctx context.Context, p *dtos.RegisterVertipadPayload) (uuid.UUID, error) {
	vertiportID, err := payloadID("vertiport_id", p.VertiportID)
	if err != nil {
		return uuid.Nil, err
	}

	vertiport, err := s.store.GetVertiport(ctx, vertiportID)
	if err != nil {
		return uuid.Nil, err
	}

	pad := &entities.Vertipad{
		ID:          uuid.New(),
		Name:        p.Name,
		VertiportID: &vertiportID,
		Location:    p.Location,
		Enabled:     p.Enabled,
		Occupied:    p.Occupied,
		Schedule:    p.Schedule,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.InsertVertipad(ctx, pad); err != nil {
		return uuid.Nil, err
	}

	vertiport.Vertipads = append(vertiport.Vertipads, pad.ID)
	now := time.Now().UTC()
	vertiport.UpdatedAt = &now
	if err := s.store.UpdateVertiport(ctx, vertiport); err != nil {
		return uuid.Nil, err
	}
	s.cache.Delete(vertiportCacheKey(vertiportID))

	logging.Info("vertipad registered", "vertipad_id", pad.ID.String(), "vertiport_id", vertiportID.String())
	return pad.ID, nil
}

// Update applies a masked merge. Masking vertiport_id re-parents the pad
// and moves the back-reference between both vertiports' pad lists.
func (s *VertipadService) Update(ctx context.Context, idStr string, p *dtos.UpdateVertipadPayload) (*entities.Vertipad, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	pad, err := s.store.GetVertipad(ctx, id)
	if err != nil {
		return nil, err
	}

	prevParent := pad.VertiportID
	changed, err := p.Apply(pad)
	if err != nil {
		return nil, err
	}
	if !changed {
		return pad, nil
	}

	var newParent *entities.Vertiport
	if !uuidPtrEqual(prevParent, pad.VertiportID) && pad.VertiportID != nil {
		newParent, err = s.store.GetVertiport(ctx, *pad.VertiportID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	pad.UpdatedAt = &now
	if err := s.store.UpdateVertipad(ctx, pad); err != nil {
		return nil, err
	}

	if !uuidPtrEqual(prevParent, pad.VertiportID) {
		if prevParent != nil {
			if err := s.unlinkFromVertiport(ctx, *prevParent, id); err != nil {
				return nil, err
			}
		}
		if newParent != nil {
			newParent.Vertipads = append(newParent.Vertipads, id)
			stamp := time.Now().UTC()
			newParent.UpdatedAt = &stamp
			if err := s.store.UpdateVertiport(ctx, newParent); err != nil {
				return nil, err
			}
			s.cache.Delete(vertiportCacheKey(newParent.ID))
		}
	}

	s.cache.Delete(vertipadCacheKey(id))
	return pad, nil
}

// Remove unlinks the pad from its parent's list first, then deletes the
// record, so the vertiport never references a missing pad.
func (s *VertipadService) Remove(ctx context.Context, idStr string) error {
	id, err := ident.Parse(idStr)
	if err != nil {
		return err
	}

	pad, err := s.store.GetVertipad(ctx, id)
	if err != nil {
		return err
	}

	if pad.VertiportID != nil {
		if err := s.unlinkFromVertiport(ctx, *pad.VertiportID, id); err != nil {
			return err
		}
	}

	if err := s.store.DeleteVertipad(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(vertipadCacheKey(id))
	logging.Info("vertipad removed", "vertipad_id", id.String())
	return nil
}

func (s *VertipadService) GetByID(ctx context.Context, idStr string) (*entities.Vertipad, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}

	var cached entities.Vertipad
	if s.cache.Get(vertipadCacheKey(id), &cached) {
		return &cached, nil
	}

	pad, err := s.store.GetVertipad(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(vertipadCacheKey(id), pad, cacheTTL)
	return pad, nil
}

func (s *VertipadService) unlinkFromVertiport(ctx context.Context, vertiportID, padID uuid.UUID) error {
	vertiport, err := s.store.GetVertiport(ctx, vertiportID)
	if err != nil {
		return err
	}

	removed := false
	for i, existing := range vertiport.Vertipads {
		if existing == padID {
			vertiport.Vertipads = append(vertiport.Vertipads[:i], vertiport.Vertipads[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return nil
	}

	now := time.Now().UTC()
	vertiport.UpdatedAt = &now
	if err := s.store.UpdateVertiport(ctx, vertiport); err != nil {
		return err
	}
	s.cache.Delete(vertiportCacheKey(vertiportID))
	return nil
}
