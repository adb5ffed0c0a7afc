package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/common"
	"skyfleet/registry/internal/config"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

// Prometheus collectors register globally, so the whole test binary
// shares one metrics registry.
var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Registry
)

func testMetricsRegistry() *metrics.Registry {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewRegistry()
	})
	return testMetrics
}

// Setup test database
func setupTestStore(t *testing.T) storage.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection to a ":memory:" DSN gets its own empty
	// database, so concurrent queries must share a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := storage.NewGorm(db)
	if err := store.AutoMigrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

type testEnv struct {
	store      storage.Store
	aircraft   *AircraftService
	vertiports *VertiportService
	vertipads  *VertipadService
	groups     *GroupService
	delegation *DelegationService
}

func setupEnv(t *testing.T, policy config.VertiportRemovalPolicy) *testEnv {
	store := setupTestStore(t)
	cache := common.NewCacheService(60, 600)
	reg := testMetricsRegistry()
	return &testEnv{
		store:      store,
		aircraft:   NewAircraftService(store, cache, reg),
		vertiports: NewVertiportService(store, cache, reg, policy),
		vertipads:  NewVertipadService(store, cache, reg),
		groups:     NewGroupService(store, cache, reg),
		delegation: NewDelegationService(store),
	}
}

func seedOperator(t *testing.T, store storage.Store, name string) uuid.UUID {
	t.Helper()
	op := &entities.Operator{ID: uuid.New(), Name: name}
	if err := store.InsertOperator(context.Background(), op); err != nil {
		t.Fatalf("Failed to seed operator %s: %v", name, err)
	}
	return op.ID
}

func registerAircraft(t *testing.T, env *testEnv, owner uuid.UUID, serial string) uuid.UUID {
	t.Helper()
	id, err := env.aircraft.Register(context.Background(), &dtos.RegisterAircraftPayload{
		Owner:              owner.String(),
		ModelID:            uuid.NewString(),
		Manufacturer:       "Arrow",
		SerialNumber:       serial,
		RegistrationNumber: "N-" + serial,
		MaxPayloadKg:       450,
		MaxRangeKm:         120,
	})
	if err != nil {
		t.Fatalf("Failed to register aircraft: %v", err)
	}
	return id
}

func registerVertiport(t *testing.T, env *testEnv, owner uuid.UUID) uuid.UUID {
	t.Helper()
	id, err := env.vertiports.Register(context.Background(), &dtos.RegisterVertiportPayload{
		Owner: owner.String(),
		Location: entities.GeoPolygon{Exterior: []entities.GeoPoint{
			{Latitude: 37.77, Longitude: -122.41},
			{Latitude: 37.78, Longitude: -122.41},
			{Latitude: 37.78, Longitude: -122.40},
		}},
	})
	if err != nil {
		t.Fatalf("Failed to register vertiport: %v", err)
	}
	return id
}

func resolveIDs(t *testing.T, env *testEnv, operator uuid.UUID, mode ResolveMode) map[uuid.UUID]entities.DelegationRelation {
	t.Helper()
	refs, err := env.delegation.ResolveOperatorAssets(context.Background(), operator, mode)
	if err != nil {
		t.Fatalf("ResolveOperatorAssets(%s) failed: %v", mode, err)
	}
	out := make(map[uuid.UUID]entities.DelegationRelation, len(refs))
	for _, ref := range refs {
		out[ref.ID] = ref.Relation
	}
	return out
}

func TestResolveOperatorAssets_OwnedUngroupedAircraft(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Skyways")

	aircraftID := registerAircraft(t, env, o1, "SN-001")

	owned := resolveIDs(t, env, o1, ModeOwned)
	if _, ok := owned[aircraftID]; !ok {
		t.Errorf("Owned should include ungrouped aircraft %s", aircraftID)
	}

	delegatedFrom := resolveIDs(t, env, o1, ModeDelegatedFrom)
	if _, ok := delegatedFrom[aircraftID]; ok {
		t.Errorf("DelegatedFrom must exclude aircraft with no delegation")
	}
}

func TestResolveOperatorAssets_DelegationPartitions(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Lessor")
	o2 := seedOperator(t, env.store, "Lessee")

	a1 := registerAircraft(t, env, o1, "SN-100")
	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{
		Owner:  o1.String(),
		Assets: []string{a1.String()},
	})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	delegatee := o2.String()
	if _, err := env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: &delegatee}, o1); err != nil {
		t.Fatalf("SetDelegatee failed: %v", err)
	}

	if rel := resolveIDs(t, env, o2, ModeDelegatedTo); rel[a1] != entities.RelationDelegatedTo {
		t.Errorf("delegatee should see %s as DELEGATED_TO, got %q", a1, rel[a1])
	}
	if rel := resolveIDs(t, env, o1, ModeOwned); rel[a1] != "" {
		t.Errorf("owner must not see delegated aircraft as OWNED")
	}
	if rel := resolveIDs(t, env, o1, ModeDelegatedFrom); rel[a1] != entities.RelationDelegatedFrom {
		t.Errorf("owner should see %s as DELEGATED_FROM, got %q", a1, rel[a1])
	}

	// All carries the same tags and the partitions stay disjoint.
	all := resolveIDs(t, env, o1, ModeAll)
	if all[a1] != entities.RelationDelegatedFrom {
		t.Errorf("All should tag %s DELEGATED_FROM for the owner, got %q", a1, all[a1])
	}
}

func TestSetDelegatee_NonOwnerForbidden(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	o2 := seedOperator(t, env.store, "Interloper")
	o3 := seedOperator(t, env.store, "Target")

	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{Owner: o1.String()})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	target := o3.String()
	_, err = env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: &target}, o2)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	g, err := env.store.GetGroup(context.Background(), groupID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if g.Delegatee != nil {
		t.Errorf("group state must be unchanged after a forbidden delegation attempt")
	}
}

func TestSetDelegatee_OwnerIsNoOp(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")

	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{Owner: o1.String()})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	self := o1.String()
	g, err := env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: &self}, o1)
	if err != nil {
		t.Fatalf("delegating to the owner must be a no-op success, got %v", err)
	}
	if g.Delegatee != nil {
		t.Errorf("delegating to the owner must not record a delegation")
	}
}

func TestSetDelegatee_ClearRestoresOwnership(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	o2 := seedOperator(t, env.store, "Lessee")

	a1 := registerAircraft(t, env, o1, "SN-200")
	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{
		Owner:  o1.String(),
		Assets: []string{a1.String()},
	})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	delegatee := o2.String()
	if _, err := env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: &delegatee}, o1); err != nil {
		t.Fatalf("SetDelegatee failed: %v", err)
	}
	if _, err := env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: nil}, o1); err != nil {
		t.Fatalf("clearing delegation failed: %v", err)
	}

	if rel := resolveIDs(t, env, o1, ModeOwned); rel[a1] != entities.RelationOwned {
		t.Errorf("after clearing delegation the owner should see %s as OWNED", a1)
	}
	if rel := resolveIDs(t, env, o2, ModeDelegatedTo); rel[a1] != "" {
		t.Errorf("after clearing delegation the former delegatee must not see %s", a1)
	}
}

func TestResolveOperatorAssets_UnknownOperator(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	_, err := env.delegation.ResolveOperatorAssets(context.Background(), uuid.New(), ModeAll)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown operator, got %v", err)
	}
}

func TestUpdateAircraft_MaskDiscipline(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	id := registerAircraft(t, env, o1, "SN-300")

	desc := "refitted cabin"
	serial := "SN-999"
	payload := &dtos.UpdateAircraftPayload{
		Description:  dtos.Opt[string]{Set: true, Value: desc},
		SerialNumber: dtos.Opt[string]{Set: true, Value: serial},
		Mask:         []string{"description"},
	}

	updated, err := env.aircraft.Update(context.Background(), id.String(), payload)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("masked description should be applied")
	}
	if updated.SerialNumber != "SN-300" {
		t.Errorf("serial_number outside the mask must stay %q, got %q", "SN-300", updated.SerialNumber)
	}
	if updated.UpdatedAt == nil {
		t.Errorf("a changing update must stamp updated_at")
	}

	// Applying the identical update again is a no-op success.
	firstStamp := *updated.UpdatedAt
	again, err := env.aircraft.Update(context.Background(), id.String(), payload)
	if err != nil {
		t.Fatalf("repeat update failed: %v", err)
	}
	if again.UpdatedAt == nil || !again.UpdatedAt.Equal(firstStamp) {
		t.Errorf("an update that changes nothing must not re-stamp updated_at")
	}
}

func TestUpdateAircraft_UnknownMaskField(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	id := registerAircraft(t, env, o1, "SN-310")

	_, err := env.aircraft.Update(context.Background(), id.String(), &dtos.UpdateAircraftPayload{
		Mask: []string{"manufacturer"},
	})
	if !errors.Is(err, apperr.ErrInvalidMask) {
		t.Fatalf("expected ErrInvalidMask for an immutable field, got %v", err)
	}
}

func TestVertipadLifecycle_LinksParent(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	vertiportID := registerVertiport(t, env, o1)

	padID, err := env.vertipads.Register(context.Background(), &dtos.RegisterVertipadPayload{
		VertiportID: vertiportID.String(),
		Location:    entities.GeoPoint{Latitude: 37.775, Longitude: -122.405},
		Enabled:     true,
	})
	if err != nil {
		t.Fatalf("Failed to register vertipad: %v", err)
	}

	vp, err := env.store.GetVertiport(context.Background(), vertiportID)
	if err != nil {
		t.Fatalf("GetVertiport failed: %v", err)
	}
	if len(vp.Vertipads) != 1 || vp.Vertipads[0] != padID {
		t.Fatalf("registration must append the pad to the vertiport list, got %v", vp.Vertipads)
	}

	if err := env.vertipads.Remove(context.Background(), padID.String()); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	vp, err = env.store.GetVertiport(context.Background(), vertiportID)
	if err != nil {
		t.Fatalf("GetVertiport failed: %v", err)
	}
	if len(vp.Vertipads) != 0 {
		t.Errorf("removal must unlink the pad from the vertiport list")
	}
	if _, err := env.store.GetVertipad(context.Background(), padID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("pad record should be gone, got %v", err)
	}
}

func TestRegisterVertipad_UnknownParent(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	_, err := env.vertipads.Register(context.Background(), &dtos.RegisterVertipadPayload{
		VertiportID: uuid.NewString(),
		Location:    entities.GeoPoint{Latitude: 1, Longitude: 2},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing parent vertiport, got %v", err)
	}
}

func TestRemoveVertiport_RejectPolicy(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	vertiportID := registerVertiport(t, env, o1)

	if _, err := env.vertipads.Register(context.Background(), &dtos.RegisterVertipadPayload{
		VertiportID: vertiportID.String(),
		Location:    entities.GeoPoint{Latitude: 37.775, Longitude: -122.405},
	}); err != nil {
		t.Fatalf("Failed to register vertipad: %v", err)
	}

	err := env.vertiports.Remove(context.Background(), vertiportID.String())
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("reject policy must refuse removal with ErrConflict, got %v", err)
	}
	if _, err := env.store.GetVertiport(context.Background(), vertiportID); err != nil {
		t.Errorf("vertiport must survive a rejected removal: %v", err)
	}
}

func TestRemoveVertiport_DetachPolicy(t *testing.T) {
	env := setupEnv(t, config.RemovalDetach)
	o1 := seedOperator(t, env.store, "Owner")
	vertiportID := registerVertiport(t, env, o1)

	padID, err := env.vertipads.Register(context.Background(), &dtos.RegisterVertipadPayload{
		VertiportID: vertiportID.String(),
		Location:    entities.GeoPoint{Latitude: 37.775, Longitude: -122.405},
	})
	if err != nil {
		t.Fatalf("Failed to register vertipad: %v", err)
	}

	if err := env.vertiports.Remove(context.Background(), vertiportID.String()); err != nil {
		t.Fatalf("detach policy removal failed: %v", err)
	}

	if _, err := env.store.GetVertiport(context.Background(), vertiportID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("vertiport record should be gone, got %v", err)
	}
	pad, err := env.store.GetVertipad(context.Background(), padID)
	if err != nil {
		t.Fatalf("GetVertipad failed: %v", err)
	}
	if pad.VertiportID != nil {
		t.Errorf("detach policy must clear the pad's vertiport reference")
	}
}

func TestGroupRemove_ClearsMemberBackrefs(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")

	a1 := registerAircraft(t, env, o1, "SN-400")
	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{
		Owner:  o1.String(),
		Assets: []string{a1.String()},
	})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	a, err := env.store.GetAircraft(context.Background(), a1)
	if err != nil {
		t.Fatalf("GetAircraft failed: %v", err)
	}
	if a.GroupID == nil || *a.GroupID != groupID {
		t.Fatalf("group registration must stamp the member's group reference")
	}

	if err := env.groups.Remove(context.Background(), groupID.String()); err != nil {
		t.Fatalf("group removal failed: %v", err)
	}

	a, err = env.store.GetAircraft(context.Background(), a1)
	if err != nil {
		t.Fatalf("GetAircraft failed: %v", err)
	}
	if a.GroupID != nil {
		t.Errorf("group removal must clear the member's group reference")
	}
	if _, err := env.store.GetGroup(context.Background(), groupID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("group record should be gone, got %v", err)
	}
}

func TestGroupRegister_DuplicateMemberIsNoOp(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")

	a1 := registerAircraft(t, env, o1, "SN-500")
	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{
		Owner:  o1.String(),
		Assets: []string{a1.String(), a1.String()},
	})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}

	members, err := env.groups.ExpandGroup(context.Background(), groupID.String())
	if err != nil {
		t.Fatalf("ExpandGroup failed: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("duplicate member insertion must collapse to one entry, got %d", len(members))
	}
}

func TestRegisterAircraft_InvalidOwner(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	_, err := env.aircraft.Register(context.Background(), &dtos.RegisterAircraftPayload{
		Owner:              "not-an-identifier",
		ModelID:            uuid.NewString(),
		Manufacturer:       "Arrow",
		SerialNumber:       "SN-600",
		RegistrationNumber: "N-600",
	})
	if !errors.Is(err, apperr.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for a malformed owner, got %v", err)
	}
}

func TestRegisterAircraft_DuplicateSerialConflicts(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "Owner")
	registerAircraft(t, env, o1, "SN-700")

	_, err := env.aircraft.Register(context.Background(), &dtos.RegisterAircraftPayload{
		Owner:              o1.String(),
		ModelID:            uuid.NewString(),
		Manufacturer:       "Arrow",
		SerialNumber:       "SN-700",
		RegistrationNumber: "N-701",
	})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate serial number, got %v", err)
	}
}

func TestResolveOperatorAssets_OwnAssetInBorrowedGroup(t *testing.T) {
	env := setupEnv(t, config.RemovalReject)
	o1 := seedOperator(t, env.store, "AssetOwner")
	o2 := seedOperator(t, env.store, "GroupOwner")

	// o1's aircraft sits in a group owned by o2; o2 then delegates the
	// group back to o1. Control flows through the delegation, so o1 sees
	// the aircraft as DELEGATED_TO, not OWNED.
	a1 := registerAircraft(t, env, o1, "SN-800")
	groupID, err := env.groups.Register(context.Background(), &dtos.RegisterAssetGroupPayload{
		Owner:  o2.String(),
		Assets: []string{a1.String()},
	})
	if err != nil {
		t.Fatalf("Failed to register group: %v", err)
	}
	delegatee := o1.String()
	if _, err := env.groups.SetDelegatee(context.Background(), groupID.String(), &dtos.SetDelegateePayload{Delegatee: &delegatee}, o2); err != nil {
		t.Fatalf("SetDelegatee failed: %v", err)
	}

	if rel := resolveIDs(t, env, o1, ModeDelegatedTo); rel[a1] != entities.RelationDelegatedTo {
		t.Errorf("owner should see %s as DELEGATED_TO via the borrowed group, got %q", a1, rel[a1])
	}
	if rel := resolveIDs(t, env, o1, ModeOwned); rel[a1] != "" {
		t.Errorf("asset in a delegating group must not also resolve OWNED")
	}
	if rel := resolveIDs(t, env, o1, ModeDelegatedFrom); rel[a1] != "" {
		t.Errorf("asset delegated back to its owner must not resolve DELEGATED_FROM")
	}
}
