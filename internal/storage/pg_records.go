package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Row types mirror the postgres schema. UUID sets are stored as uuid[]
// columns (scanned through pq.StringArray), geo shapes as jsonb.

type aircraftRow struct {
	ID                 uuid.UUID      `db:"id"`
	Name               *string        `db:"name"`
	GroupID            *uuid.UUID     `db:"group_id"`
	Owner              uuid.UUID      `db:"owner"`
	Whitelist          pq.StringArray `db:"whitelist"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          *time.Time     `db:"updated_at"`
	Status             string         `db:"status"`
	Schedule           *string        `db:"schedule"`
	ModelID            uuid.UUID      `db:"model_id"`
	Manufacturer       string         `db:"manufacturer"`
	SerialNumber       string         `db:"serial_number"`
	RegistrationNumber string         `db:"registration_number"`
	Description        *string        `db:"description"`
	MaxPayloadKg       float64        `db:"max_payload_kg"`
	MaxRangeKm         float64        `db:"max_range_km"`
	LastMaintenance    *string        `db:"last_maintenance"`
	NextMaintenance    *string        `db:"next_maintenance"`
	LastVertiportID    *uuid.UUID     `db:"last_vertiport_id"`
}

type vertiportRow struct {
	ID          uuid.UUID      `db:"id"`
	Name        *string        `db:"name"`
	GroupID     *uuid.UUID     `db:"group_id"`
	Owner       uuid.UUID      `db:"owner"`
	Whitelist   pq.StringArray `db:"whitelist"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   *time.Time     `db:"updated_at"`
	Status      string         `db:"status"`
	Schedule    *string        `db:"schedule"`
	Description *string        `db:"description"`
	GeoLocation []byte         `db:"geo_location"`
	Vertipads   pq.StringArray `db:"vertipads"`
}

type vertipadRow struct {
	ID          uuid.UUID  `db:"id"`
	Name        *string    `db:"name"`
	VertiportID *uuid.UUID `db:"vertiport_id"`
	GeoLocation []byte     `db:"geo_location"`
	Enabled     bool       `db:"enabled"`
	Occupied    bool       `db:"occupied"`
	Schedule    *string    `db:"schedule"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

type assetGroupRow struct {
	ID        uuid.UUID      `db:"id"`
	Name      *string        `db:"name"`
	Owner     uuid.UUID      `db:"owner"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt *time.Time     `db:"updated_at"`
	Delegatee *uuid.UUID     `db:"delegatee"`
	Assets    pq.StringArray `db:"assets"`
}

func uuidsToArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func arrayToUUIDs(arr pq.StringArray) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("corrupt uuid array element %q: %w", s, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func aircraftToRow(a *entities.Aircraft) aircraftRow {
	return aircraftRow{
		ID:                 a.ID,
		Name:               a.Name,
		GroupID:            a.GroupID,
		Owner:              a.Owner,
		Whitelist:          uuidsToArray(a.Whitelist),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		Status:             string(a.Status),
		Schedule:           a.Schedule,
		ModelID:            a.ModelID,
		Manufacturer:       a.Manufacturer,
		SerialNumber:       a.SerialNumber,
		RegistrationNumber: a.RegistrationNumber,
		Description:        a.Description,
		MaxPayloadKg:       a.MaxPayloadKg,
		MaxRangeKm:         a.MaxRangeKm,
		LastMaintenance:    a.LastMaintenance,
		NextMaintenance:    a.NextMaintenance,
		LastVertiportID:    a.LastVertiportID,
	}
}

func (r *aircraftRow) toEntity() (*entities.Aircraft, error) {
	wl, err := arrayToUUIDs(r.Whitelist)
	if err != nil {
		return nil, err
	}
	return &entities.Aircraft{
		Basics: entities.Basics{
			ID:        r.ID,
			Name:      r.Name,
			GroupID:   r.GroupID,
			Owner:     r.Owner,
			Whitelist: wl,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Status:    entities.AssetStatus(r.Status),
			Schedule:  r.Schedule,
		},
		ModelID:            r.ModelID,
		Manufacturer:       r.Manufacturer,
		SerialNumber:       r.SerialNumber,
		RegistrationNumber: r.RegistrationNumber,
		Description:        r.Description,
		MaxPayloadKg:       r.MaxPayloadKg,
		MaxRangeKm:         r.MaxRangeKm,
		LastMaintenance:    r.LastMaintenance,
		NextMaintenance:    r.NextMaintenance,
		LastVertiportID:    r.LastVertiportID,
	}, nil
}

func vertiportToRow(v *entities.Vertiport) (vertiportRow, error) {
	geo, err := json.Marshal(v.Location)
	if err != nil {
		return vertiportRow{}, err
	}
	return vertiportRow{
		ID:          v.ID,
		Name:        v.Name,
		GroupID:     v.GroupID,
		Owner:       v.Owner,
		Whitelist:   uuidsToArray(v.Whitelist),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Status:      string(v.Status),
		Schedule:    v.Schedule,
		Description: v.Description,
		GeoLocation: geo,
		Vertipads:   uuidsToArray(v.Vertipads),
	}, nil
}

func (r *vertiportRow) toEntity() (*entities.Vertiport, error) {
	wl, err := arrayToUUIDs(r.Whitelist)
	if err != nil {
		return nil, err
	}
	pads, err := arrayToUUIDs(r.Vertipads)
	if err != nil {
		return nil, err
	}
	var geo entities.GeoPolygon
	if len(r.GeoLocation) > 0 {
		if err := json.Unmarshal(r.GeoLocation, &geo); err != nil {
			return nil, fmt.Errorf("corrupt geo_location: %w", err)
		}
	}
	return &entities.Vertiport{
		Basics: entities.Basics{
			ID:        r.ID,
			Name:      r.Name,
			GroupID:   r.GroupID,
			Owner:     r.Owner,
			Whitelist: wl,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Status:    entities.AssetStatus(r.Status),
			Schedule:  r.Schedule,
		},
		Description: r.Description,
		Location:    geo,
		Vertipads:   pads,
	}, nil
}

func vertipadToRow(v *entities.Vertipad) (vertipadRow, error) {
	geo, err := json.Marshal(v.Location)
	if err != nil {
		return vertipadRow{}, err
	}
	return vertipadRow{
		ID:          v.ID,
		Name:        v.Name,
		VertiportID: v.VertiportID,
		GeoLocation: geo,
		Enabled:     v.Enabled,
		Occupied:    v.Occupied,
		Schedule:    v.Schedule,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}, nil
}

func (r *vertipadRow) toEntity() (*entities.Vertipad, error) {
	var geo entities.GeoPoint
	if len(r.GeoLocation) > 0 {
		if err := json.Unmarshal(r.GeoLocation, &geo); err != nil {
			return nil, fmt.Errorf("corrupt geo_location: %w", err)
		}
	}
	return &entities.Vertipad{
		ID:          r.ID,
		Name:        r.Name,
		VertiportID: r.VertiportID,
		Location:    geo,
		Enabled:     r.Enabled,
		Occupied:    r.Occupied,
		Schedule:    r.Schedule,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func groupToRow(g *entities.AssetGroup) assetGroupRow {
	return assetGroupRow{
		ID:        g.ID,
		Name:      g.Name,
		Owner:     g.Owner,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
		Delegatee: g.Delegatee,
		Assets:    uuidsToArray(g.Assets),
	}
}

func (r *assetGroupRow) toEntity() (*entities.AssetGroup, error) {
	assets, err := arrayToUUIDs(r.Assets)
	if err != nil {
		return nil, err
	}
	return &entities.AssetGroup{
		ID:        r.ID,
		Name:      r.Name,
		Owner:     r.Owner,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Delegatee: r.Delegatee,
		Assets:    assets,
	}, nil
}
