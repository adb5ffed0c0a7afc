package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/metrics"
	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres is the production Store backed by sqlx.
type Postgres struct {
	db  *sqlx.DB
	reg *metrics.Registry
}

var _ Store = (*Postgres)(nil)

// NewPostgres wraps an open sqlx handle. reg may be nil to skip query
// metrics.
func NewPostgres(db *sqlx.DB, reg *metrics.Registry) *Postgres {
	return &Postgres{db: db, reg: reg}
}

// wrapErr translates driver failures into the shared error kinds. Anything
// that is not a definite data outcome is treated as transient.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, apperr.ErrUnavailable)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation", "foreign_key_violation":
			return fmt.Errorf("%s: %s: %w", op, pqErr.Constraint, apperr.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %v: %w", op, err, apperr.ErrUnavailable)
}

func (p *Postgres) observe(op string, start time.Time) {
	if p.reg == nil {
		return
	}
	p.reg.StorageQueriesTotal.WithLabelValues(op).Inc()
	p.reg.StorageQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

//
// Operators
//

func (p *Postgres) GetOperator(ctx context.Context, id uuid.UUID) (*entities.Operator, error) {
	defer p.observe("get_operator", time.Now())
	var op entities.Operator
	err := p.db.GetContext(ctx, &op, `SELECT id, name, country, created_at FROM operators WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get operator", err)
	}
	return &op, nil
}

func (p *Postgres) InsertOperator(ctx context.Context, op *entities.Operator) error {
	defer p.observe("insert_operator", time.Now())
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO operators (id, name, country, created_at) VALUES ($1, $2, $3, $4)`,
		op.ID, op.Name, op.Country, op.CreatedAt)
	return wrapErr("insert operator", err)
}

//
// Aircraft
//

const aircraftCols = `id, name, group_id, owner, whitelist, created_at, updated_at, status, schedule,
	model_id, manufacturer, serial_number, registration_number, description,
	max_payload_kg, max_range_km, last_maintenance, next_maintenance, last_vertiport_id`

func (p *Postgres) GetAircraft(ctx context.Context, id uuid.UUID) (*entities.Aircraft, error) {
	defer p.observe("get_aircraft", time.Now())
	var row aircraftRow
	err := p.db.GetContext(ctx, &row, `SELECT `+aircraftCols+` FROM aircraft WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get aircraft", err)
	}
	return row.toEntity()
}

func (p *Postgres) ListAircraft(ctx context.Context) ([]entities.Aircraft, error) {
	defer p.observe("list_aircraft", time.Now())
	var rows []aircraftRow
	err := p.db.SelectContext(ctx, &rows, `SELECT `+aircraftCols+` FROM aircraft ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapErr("list aircraft", err)
	}
	out := make([]entities.Aircraft, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func (p *Postgres) InsertAircraft(ctx context.Context, a *entities.Aircraft) error {
	defer p.observe("insert_aircraft", time.Now())
	row := aircraftToRow(a)
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO aircraft (`+aircraftCols+`)
		VALUES (:id, :name, :group_id, :owner, :whitelist, :created_at, :updated_at, :status, :schedule,
			:model_id, :manufacturer, :serial_number, :registration_number, :description,
			:max_payload_kg, :max_range_km, :last_maintenance, :next_maintenance, :last_vertiport_id)`,
		row)
	return wrapErr("insert aircraft", err)
}

func (p *Postgres) UpdateAircraft(ctx context.Context, a *entities.Aircraft) error {
	defer p.observe("update_aircraft", time.Now())
	row := aircraftToRow(a)
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE aircraft SET
			name = :name, group_id = :group_id, owner = :owner, whitelist = :whitelist,
			updated_at = :updated_at, status = :status, schedule = :schedule,
			model_id = :model_id, serial_number = :serial_number,
			registration_number = :registration_number, description = :description,
			last_maintenance = :last_maintenance, next_maintenance = :next_maintenance,
			last_vertiport_id = :last_vertiport_id
		WHERE id = :id`,
		row)
	if err != nil {
		return wrapErr("update aircraft", err)
	}
	return requireAffected("update aircraft", res)
}

func (p *Postgres) DeleteAircraft(ctx context.Context, id uuid.UUID) error {
	defer p.observe("delete_aircraft", time.Now())
	res, err := p.db.ExecContext(ctx, `DELETE FROM aircraft WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete aircraft", err)
	}
	return requireAffected("delete aircraft", res)
}

//
// Vertiports
//

const vertiportCols = `id, name, group_id, owner, whitelist, created_at, updated_at, status, schedule,
	description, geo_location, vertipads`

func (p *Postgres) GetVertiport(ctx context.Context, id uuid.UUID) (*entities.Vertiport, error) {
	defer p.observe("get_vertiport", time.Now())
	var row vertiportRow
	err := p.db.GetContext(ctx, &row, `SELECT `+vertiportCols+` FROM vertiports WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get vertiport", err)
	}
	return row.toEntity()
}

func (p *Postgres) ListVertiports(ctx context.Context) ([]entities.Vertiport, error) {
	defer p.observe("list_vertiports", time.Now())
	var rows []vertiportRow
	err := p.db.SelectContext(ctx, &rows, `SELECT `+vertiportCols+` FROM vertiports ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapErr("list vertiports", err)
	}
	out := make([]entities.Vertiport, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (p *Postgres) InsertVertiport(ctx context.Context, v *entities.Vertiport) error {
	defer p.observe("insert_vertiport", time.Now())
	row, err := vertiportToRow(v)
	if err != nil {
		return err
	}
	_, err = p.db.NamedExecContext(ctx, `
		INSERT INTO vertiports (`+vertiportCols+`)
		VALUES (:id, :name, :group_id, :owner, :whitelist, :created_at, :updated_at, :status, :schedule,
			:description, :geo_location, :vertipads)`,
		row)
	return wrapErr("insert vertiport", err)
}

func (p *Postgres) UpdateVertiport(ctx context.Context, v *entities.Vertiport) error {
	defer p.observe("update_vertiport", time.Now())
	row, err := vertiportToRow(v)
	if err != nil {
		return err
	}
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE vertiports SET
			name = :name, group_id = :group_id, owner = :owner, whitelist = :whitelist,
			updated_at = :updated_at, status = :status, schedule = :schedule,
			description = :description, geo_location = :geo_location, vertipads = :vertipads
		WHERE id = :id`,
		row)
	if err != nil {
		return wrapErr("update vertiport", err)
	}
	return requireAffected("update vertiport", res)
}

func (p *Postgres) DeleteVertiport(ctx context.Context, id uuid.UUID) error {
	defer p.observe("delete_vertiport", time.Now())
	res, err := p.db.ExecContext(ctx, `DELETE FROM vertiports WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete vertiport", err)
	}
	return requireAffected("delete vertiport", res)
}

//
// Vertipads
//

const vertipadCols = `id, name, vertiport_id, geo_location, enabled, occupied, schedule, created_at, updated_at`

func (p *Postgres) GetVertipad(ctx context.Context, id uuid.UUID) (*entities.Vertipad, error) {
	defer p.observe("get_vertipad", time.Now())
	var row vertipadRow
	err := p.db.GetContext(ctx, &row, `SELECT `+vertipadCols+` FROM vertipads WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get vertipad", err)
	}
	return row.toEntity()
}

func (p *Postgres) InsertVertipad(ctx context.Context, v *entities.Vertipad) error {
	defer p.observe("insert_vertipad", time.Now())
	row, err := vertipadToRow(v)
	if err != nil {
		return err
	}
	_, err = p.db.NamedExecContext(ctx, `
		INSERT INTO vertipads (`+vertipadCols+`)
		VALUES (:id, :name, :vertiport_id, :geo_location, :enabled, :occupied, :schedule, :created_at, :updated_at)`,
		row)
	return wrapErr("insert vertipad", err)
}

func (p *Postgres) UpdateVertipad(ctx context.Context, v *entities.Vertipad) error {
	defer p.observe("update_vertipad", time.Now())
	row, err := vertipadToRow(v)
	if err != nil {
		return err
	}
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE vertipads SET
			name = :name, vertiport_id = :vertiport_id, geo_location = :geo_location,
			enabled = :enabled, occupied = :occupied, schedule = :schedule, updated_at = :updated_at
		WHERE id = :id`,
		row)
	if err != nil {
		return wrapErr("update vertipad", err)
	}
	return requireAffected("update vertipad", res)
}

func (p *Postgres) DeleteVertipad(ctx context.Context, id uuid.UUID) error {
	defer p.observe("delete_vertipad", time.Now())
	res, err := p.db.ExecContext(ctx, `DELETE FROM vertipads WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete vertipad", err)
	}
	return requireAffected("delete vertipad", res)
}

//
// Asset groups
//

const groupCols = `id, name, owner, created_at, updated_at, delegatee, assets`

func (p *Postgres) GetGroup(ctx context.Context, id uuid.UUID) (*entities.AssetGroup, error) {
	defer p.observe("get_group", time.Now())
	var row assetGroupRow
	err := p.db.GetContext(ctx, &row, `SELECT `+groupCols+` FROM asset_groups WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get asset group", err)
	}
	return row.toEntity()
}

func (p *Postgres) ListGroups(ctx context.Context) ([]entities.AssetGroup, error) {
	defer p.observe("list_groups", time.Now())
	var rows []assetGroupRow
	err := p.db.SelectContext(ctx, &rows, `SELECT `+groupCols+` FROM asset_groups ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapErr("list asset groups", err)
	}
	out := make([]entities.AssetGroup, 0, len(rows))
	for i := range rows {
		g, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, nil
}

func (p *Postgres) InsertGroup(ctx context.Context, g *entities.AssetGroup) error {
	defer p.observe("insert_group", time.Now())
	row := groupToRow(g)
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO asset_groups (`+groupCols+`)
		VALUES (:id, :name, :owner, :created_at, :updated_at, :delegatee, :assets)`,
		row)
	return wrapErr("insert asset group", err)
}

func (p *Postgres) UpdateGroup(ctx context.Context, g *entities.AssetGroup) error {
	defer p.observe("update_group", time.Now())
	row := groupToRow(g)
	res, err := p.db.NamedExecContext(ctx, `
		UPDATE asset_groups SET
			name = :name, owner = :owner, updated_at = :updated_at,
			delegatee = :delegatee, assets = :assets
		WHERE id = :id`,
		row)
	if err != nil {
		return wrapErr("update asset group", err)
	}
	return requireAffected("update asset group", res)
}

func (p *Postgres) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	defer p.observe("delete_group", time.Now())
	res, err := p.db.ExecContext(ctx, `DELETE FROM asset_groups WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete asset group", err)
	}
	return requireAffected("delete asset group", res)
}

func (p *Postgres) UpdateGroupDelegatee(ctx context.Context, id uuid.UUID, delegatee *uuid.UUID, stamp time.Time) error {
	defer p.observe("update_group_delegatee", time.Now())
	res, err := p.db.ExecContext(ctx,
		`UPDATE asset_groups SET delegatee = $2, updated_at = $3 WHERE id = $1`,
		id, delegatee, stamp)
	if err != nil {
		return wrapErr("update delegatee", err)
	}
	return requireAffected("update delegatee", res)
}

func requireAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
