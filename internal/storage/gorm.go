package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm is a Store backed by GORM. It serves two roles: an alternate
// production adapter and, opened against an in-memory sqlite database, the
// backend for storage-level tests.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

// NewGorm wraps an open GORM handle. The handle should be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// AutoMigrate creates the schema. Used by tests and local development; the
// postgres deployment migrates through versioned SQL instead.
func (g *Gorm) AutoMigrate() error {
	return g.db.AutoMigrate(
		&gormOperator{},
		&gormAircraft{},
		&gormVertiport{},
		&gormVertipad{},
		&gormAssetGroup{},
	)
}

func gormWrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, apperr.ErrUnavailable)
	}
	return fmt.Errorf("%s: %v: %w", op, err, apperr.ErrUnavailable)
}

//
// Records
//

type gormOperator struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      string
	Country   string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (gormOperator) TableName() string { return "operators" }

type gormAircraft struct {
	ID                 uuid.UUID `gorm:"primaryKey"`
	Name               *string
	GroupID            *uuid.UUID
	Owner              uuid.UUID
	Whitelist          []uuid.UUID `gorm:"serializer:json"`
	CreatedAt          time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt          *time.Time `gorm:"autoUpdateTime:false"`
	Status             string
	Schedule           *string
	ModelID            uuid.UUID
	Manufacturer       string
	SerialNumber       string `gorm:"uniqueIndex"`
	RegistrationNumber string `gorm:"uniqueIndex"`
	Description        *string
	MaxPayloadKg       float64
	MaxRangeKm         float64
	LastMaintenance    *string
	NextMaintenance    *string
	LastVertiportID    *uuid.UUID
}

func (gormAircraft) TableName() string { return "aircraft" }

type gormVertiport struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Name        *string
	GroupID     *uuid.UUID
	Owner       uuid.UUID
	Whitelist   []uuid.UUID `gorm:"serializer:json"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
	Status      string
	Schedule    *string
	Description *string
	GeoLocation entities.GeoPolygon `gorm:"serializer:json"`
	Vertipads   []uuid.UUID         `gorm:"serializer:json"`
}

func (gormVertiport) TableName() string { return "vertiports" }

type gormVertipad struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	Name        *string
	VertiportID *uuid.UUID
	GeoLocation entities.GeoPoint `gorm:"serializer:json"`
	Enabled     bool
	Occupied    bool
	Schedule    *string
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (gormVertipad) TableName() string { return "vertipads" }

type gormAssetGroup struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Name      *string
	Owner     uuid.UUID
	CreatedAt time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
	Delegatee *uuid.UUID
	Assets    []uuid.UUID `gorm:"serializer:json"`
}

func (gormAssetGroup) TableName() string { return "asset_groups" }

func gormAircraftFrom(a *entities.Aircraft) gormAircraft {
	return gormAircraft{
		ID: a.ID, Name: a.Name, GroupID: a.GroupID, Owner: a.Owner,
		Whitelist: a.Whitelist, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
		Status: string(a.Status), Schedule: a.Schedule,
		ModelID: a.ModelID, Manufacturer: a.Manufacturer,
		SerialNumber: a.SerialNumber, RegistrationNumber: a.RegistrationNumber,
		Description: a.Description, MaxPayloadKg: a.MaxPayloadKg, MaxRangeKm: a.MaxRangeKm,
		LastMaintenance: a.LastMaintenance, NextMaintenance: a.NextMaintenance,
		LastVertiportID: a.LastVertiportID,
	}
}

func (r *gormAircraft) toEntity() *entities.Aircraft {
	return &entities.Aircraft{
		Basics: entities.Basics{
			ID: r.ID, Name: r.Name, GroupID: r.GroupID, Owner: r.Owner,
			Whitelist: r.Whitelist, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
			Status: entities.AssetStatus(r.Status), Schedule: r.Schedule,
		},
		ModelID: r.ModelID, Manufacturer: r.Manufacturer,
		SerialNumber: r.SerialNumber, RegistrationNumber: r.RegistrationNumber,
		Description: r.Description, MaxPayloadKg: r.MaxPayloadKg, MaxRangeKm: r.MaxRangeKm,
		LastMaintenance: r.LastMaintenance, NextMaintenance: r.NextMaintenance,
		LastVertiportID: r.LastVertiportID,
	}
}

func gormVertiportFrom(v *entities.Vertiport) gormVertiport {
	return gormVertiport{
		ID: v.ID, Name: v.Name, GroupID: v.GroupID, Owner: v.Owner,
		Whitelist: v.Whitelist, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
		Status: string(v.Status), Schedule: v.Schedule,
		Description: v.Description, GeoLocation: v.Location, Vertipads: v.Vertipads,
	}
}

func (r *gormVertiport) toEntity() *entities.Vertiport {
	return &entities.Vertiport{
		Basics: entities.Basics{
			ID: r.ID, Name: r.Name, GroupID: r.GroupID, Owner: r.Owner,
			Whitelist: r.Whitelist, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
			Status: entities.AssetStatus(r.Status), Schedule: r.Schedule,
		},
		Description: r.Description, Location: r.GeoLocation, Vertipads: r.Vertipads,
	}
}

func gormVertipadFrom(v *entities.Vertipad) gormVertipad {
	return gormVertipad{
		ID: v.ID, Name: v.Name, VertiportID: v.VertiportID, GeoLocation: v.Location,
		Enabled: v.Enabled, Occupied: v.Occupied, Schedule: v.Schedule,
		CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func (r *gormVertipad) toEntity() *entities.Vertipad {
	return &entities.Vertipad{
		ID: r.ID, Name: r.Name, VertiportID: r.VertiportID, Location: r.GeoLocation,
		Enabled: r.Enabled, Occupied: r.Occupied, Schedule: r.Schedule,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func gormGroupFrom(g *entities.AssetGroup) gormAssetGroup {
	return gormAssetGroup{
		ID: g.ID, Name: g.Name, Owner: g.Owner,
		CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt,
		Delegatee: g.Delegatee, Assets: g.Assets,
	}
}

func (r *gormAssetGroup) toEntity() *entities.AssetGroup {
	return &entities.AssetGroup{
		ID: r.ID, Name: r.Name, Owner: r.Owner,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		Delegatee: r.Delegatee, Assets: r.Assets,
	}
}

//
// Store implementation
//

func (g *Gorm) GetOperator(ctx context.Context, id uuid.UUID) (*entities.Operator, error) {
	var rec gormOperator
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, gormWrap("get operator", err)
	}
	return &entities.Operator{ID: rec.ID, Name: rec.Name, Country: rec.Country, CreatedAt: rec.CreatedAt}, nil
}

func (g *Gorm) InsertOperator(ctx context.Context, op *entities.Operator) error {
	rec := gormOperator{ID: op.ID, Name: op.Name, Country: op.Country, CreatedAt: op.CreatedAt}
	return gormWrap("insert operator", g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gorm) GetAircraft(ctx context.Context, id uuid.UUID) (*entities.Aircraft, error) {
	var rec gormAircraft
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, gormWrap("get aircraft", err)
	}
	return rec.toEntity(), nil
}

func (g *Gorm) ListAircraft(ctx context.Context) ([]entities.Aircraft, error) {
	var recs []gormAircraft
	if err := g.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, gormWrap("list aircraft", err)
	}
	out := make([]entities.Aircraft, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toEntity())
	}
	return out, nil
}

func (g *Gorm) InsertAircraft(ctx context.Context, a *entities.Aircraft) error {
	rec := gormAircraftFrom(a)
	return gormWrap("insert aircraft", g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gorm) UpdateAircraft(ctx context.Context, a *entities.Aircraft) error {
	rec := gormAircraftFrom(a)
	res := g.db.WithContext(ctx).Model(&gormAircraft{ID: a.ID}).Select("*").Omit("id", "created_at").Updates(&rec)
	if res.Error != nil {
		return gormWrap("update aircraft", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update aircraft: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) DeleteAircraft(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Delete(&gormAircraft{}, "id = ?", id)
	if res.Error != nil {
		return gormWrap("delete aircraft", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete aircraft: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) GetVertiport(ctx context.Context, id uuid.UUID) (*entities.Vertiport, error) {
	var rec gormVertiport
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, gormWrap("get vertiport", err)
	}
	return rec.toEntity(), nil
}

func (g *Gorm) ListVertiports(ctx context.Context) ([]entities.Vertiport, error) {
	var recs []gormVertiport
	if err := g.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, gormWrap("list vertiports", err)
	}
	out := make([]entities.Vertiport, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toEntity())
	}
	return out, nil
}

func (g *Gorm) InsertVertiport(ctx context.Context, v *entities.Vertiport) error {
	rec := gormVertiportFrom(v)
	return gormWrap("insert vertiport", g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gorm) UpdateVertiport(ctx context.Context, v *entities.Vertiport) error {
	rec := gormVertiportFrom(v)
	res := g.db.WithContext(ctx).Model(&gormVertiport{ID: v.ID}).Select("*").Omit("id", "created_at").Updates(&rec)
	if res.Error != nil {
		return gormWrap("update vertiport", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update vertiport: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) DeleteVertiport(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Delete(&gormVertiport{}, "id = ?", id)
	if res.Error != nil {
		return gormWrap("delete vertiport", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete vertiport: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) GetVertipad(ctx context.Context, id uuid.UUID) (*entities.Vertipad, error) {
	var rec gormVertipad
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, gormWrap("get vertipad", err)
	}
	return rec.toEntity(), nil
}

func (g *Gorm) InsertVertipad(ctx context.Context, v *entities.Vertipad) error {
	rec := gormVertipadFrom(v)
	return gormWrap("insert vertipad", g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gorm) UpdateVertipad(ctx context.Context, v *entities.Vertipad) error {
	rec := gormVertipadFrom(v)
	res := g.db.WithContext(ctx).Model(&gormVertipad{ID: v.ID}).Select("*").Omit("id", "created_at").Updates(&rec)
	if res.Error != nil {
		return gormWrap("update vertipad", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update vertipad: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) DeleteVertipad(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Delete(&gormVertipad{}, "id = ?", id)
	if res.Error != nil {
		return gormWrap("delete vertipad", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete vertipad: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) GetGroup(ctx context.Context, id uuid.UUID) (*entities.AssetGroup, error) {
	var rec gormAssetGroup
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, gormWrap("get asset group", err)
	}
	return rec.toEntity(), nil
}

func (g *Gorm) ListGroups(ctx context.Context) ([]entities.AssetGroup, error) {
	var recs []gormAssetGroup
	if err := g.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, gormWrap("list asset groups", err)
	}
	out := make([]entities.AssetGroup, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toEntity())
	}
	return out, nil
}

func (g *Gorm) InsertGroup(ctx context.Context, grp *entities.AssetGroup) error {
	rec := gormGroupFrom(grp)
	return gormWrap("insert asset group", g.db.WithContext(ctx).Create(&rec).Error)
}

func (g *Gorm) UpdateGroup(ctx context.Context, grp *entities.AssetGroup) error {
	rec := gormGroupFrom(grp)
	res := g.db.WithContext(ctx).Model(&gormAssetGroup{ID: grp.ID}).Select("*").Omit("id", "created_at").Updates(&rec)
	if res.Error != nil {
		return gormWrap("update asset group", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update asset group: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	res := g.db.WithContext(ctx).Delete(&gormAssetGroup{}, "id = ?", id)
	if res.Error != nil {
		return gormWrap("delete asset group", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete asset group: %w", apperr.ErrNotFound)
	}
	return nil
}

func (g *Gorm) UpdateGroupDelegatee(ctx context.Context, id uuid.UUID, delegatee *uuid.UUID, stamp time.Time) error {
	res := g.db.WithContext(ctx).Model(&gormAssetGroup{}).Where("id = ?", id).
		Updates(map[string]interface{}{"delegatee": delegatee, "updated_at": stamp})
	if res.Error != nil {
		return gormWrap("update delegatee", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update delegatee: %w", apperr.ErrNotFound)
	}
	return nil
}
