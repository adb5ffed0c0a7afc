package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/models/dtos"
	"skyfleet/registry/internal/models/entities"
	"skyfleet/registry/internal/storage"
)

// OperatorService reads operator records. Operators are managed by the
// platform's identity services; the registry only needs existence and
// display data, so this stays a thin wrapper.
type OperatorService struct {
	store storage.Store
}

func NewOperatorService(store storage.Store) *OperatorService {
	return &OperatorService{store: store}
}

func (s *OperatorService) GetByID(ctx context.Context, idStr string) (*entities.Operator, error) {
	id, err := ident.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return s.store.GetOperator(ctx, id)
}

// Register inserts an operator record. Exposed mainly for bootstrap and
// test environments where no upstream identity service seeds operators.
func (s *OperatorService) Register(ctx context.Context, p *dtos.RegisterOperatorPayload) (uuid.UUID, error) {
	if p.Name == "" {
		return uuid.Nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidPayload)
	}

	op := &entities.Operator{
		ID:        uuid.New(),
		Name:      p.Name,
		Country:   p.Country,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertOperator(ctx, op); err != nil {
		return uuid.Nil, err
	}
	return op.ID, nil
}
