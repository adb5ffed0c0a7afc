package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/models/dtos"
)

// serializingCache stores values the way the Redis cache does: JSON on
// the way in, JSON on the way out. A hit must survive the round trip
// into the caller's concrete type.
type serializingCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newSerializingCache() *serializingCache {
	return &serializingCache{data: make(map[string][]byte)}
}

func (c *serializingCache) Set(key string, value any, _ time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.data[key] = data
	c.mu.Unlock()
}

func (c *serializingCache) Get(key string, dest any) bool {
	c.mu.Lock()
	data, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *serializingCache) Delete(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

func (c *serializingCache) Close() error { return nil }

func TestGetAircraft_HitsSerializedCache(t *testing.T) {
	store := setupTestStore(t)
	cache := newSerializingCache()
	svc := NewAircraftService(store, cache, testMetricsRegistry())
	owner := seedOperator(t, store, "Skyways")

	id, err := svc.Register(context.Background(), &dtos.RegisterAircraftPayload{
		Owner:              owner.String(),
		ModelID:            uuid.NewString(),
		Manufacturer:       "Arrow",
		SerialNumber:       "SN-CACHE",
		RegistrationNumber: "N-CACHE",
		MaxPayloadKg:       450,
		MaxRangeKm:         120,
	})
	if err != nil {
		t.Fatalf("Failed to register aircraft: %v", err)
	}

	first, err := svc.GetByID(context.Background(), id.String())
	if err != nil {
		t.Fatalf("first GetByID failed: %v", err)
	}

	// Drop the row behind the cache's back; a genuine hit never reaches
	// storage.
	if err := store.DeleteAircraft(context.Background(), id); err != nil {
		t.Fatalf("Failed to delete aircraft: %v", err)
	}

	second, err := svc.GetByID(context.Background(), id.String())
	if err != nil {
		t.Fatalf("GetByID after cache prime failed: %v", err)
	}
	if second.ID != first.ID || second.SerialNumber != first.SerialNumber {
		t.Errorf("cached read returned %+v, want %+v", second, first)
	}
}

func TestGetAircraft_SerializedCacheInvalidatedOnRemove(t *testing.T) {
	store := setupTestStore(t)
	cache := newSerializingCache()
	svc := NewAircraftService(store, cache, testMetricsRegistry())
	owner := seedOperator(t, store, "Skyways")

	id, err := svc.Register(context.Background(), &dtos.RegisterAircraftPayload{
		Owner:              owner.String(),
		ModelID:            uuid.NewString(),
		Manufacturer:       "Arrow",
		SerialNumber:       "SN-EVICT",
		RegistrationNumber: "N-EVICT",
	})
	if err != nil {
		t.Fatalf("Failed to register aircraft: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), id.String()); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if err := svc.Remove(context.Background(), id.String()); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), id.String()); err == nil {
		t.Error("removed aircraft must not be served from the cache")
	}
}
