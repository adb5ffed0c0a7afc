// Package storage is the registry's persistence boundary. The core talks
// to it only through the Store interface; adapters translate backend
// failures into the apperr sentinels (ErrNotFound, ErrConflict,
// ErrUnavailable) so callers never see driver errors.
package storage

import (
	"context"
	"time"

	"skyfleet/registry/internal/models/entities"

	"github.com/google/uuid"
)

// Store is the full persistence surface the registry needs. Every call
// honors the caller's context deadline; an expired deadline or unreachable
// backend surfaces as ErrUnavailable rather than hanging.
//
// Single-record writes are atomic in every adapter. Cross-record
// consistency (vertipad/vertiport linkage, group membership back-refs) is
// the services' responsibility via ordered writes.
type Store interface {
	GetOperator(ctx context.Context, id uuid.UUID) (*entities.Operator, error)
	InsertOperator(ctx context.Context, op *entities.Operator) error

	GetAircraft(ctx context.Context, id uuid.UUID) (*entities.Aircraft, error)
	ListAircraft(ctx context.Context) ([]entities.Aircraft, error)
	InsertAircraft(ctx context.Context, a *entities.Aircraft) error
	UpdateAircraft(ctx context.Context, a *entities.Aircraft) error
	DeleteAircraft(ctx context.Context, id uuid.UUID) error

	GetVertiport(ctx context.Context, id uuid.UUID) (*entities.Vertiport, error)
	ListVertiports(ctx context.Context) ([]entities.Vertiport, error)
	InsertVertiport(ctx context.Context, v *entities.Vertiport) error
	UpdateVertiport(ctx context.Context, v *entities.Vertiport) error
	DeleteVertiport(ctx context.Context, id uuid.UUID) error

	GetVertipad(ctx context.Context, id uuid.UUID) (*entities.Vertipad, error)
	InsertVertipad(ctx context.Context, v *entities.Vertipad) error
	UpdateVertipad(ctx context.Context, v *entities.Vertipad) error
	DeleteVertipad(ctx context.Context, id uuid.UUID) error

	GetGroup(ctx context.Context, id uuid.UUID) (*entities.AssetGroup, error)
	ListGroups(ctx context.Context) ([]entities.AssetGroup, error)
	InsertGroup(ctx context.Context, g *entities.AssetGroup) error
	UpdateGroup(ctx context.Context, g *entities.AssetGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	// UpdateGroupDelegatee sets or clears the delegatee as a single
	// record write, so concurrent delegation changes on the same group
	// serialize in the backend and readers never observe a torn state.
	UpdateGroupDelegatee(ctx context.Context, id uuid.UUID, delegatee *uuid.UUID, stamp time.Time) error
}
