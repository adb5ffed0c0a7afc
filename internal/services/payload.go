package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"skyfleet/registry/internal/apperr"
	"skyfleet/registry/internal/ident"
	"skyfleet/registry/internal/models/entities"
)

// cacheTTL bounds staleness on the get-by-id read cache. Resolve queries
// and operator existence checks never go through the cache.
const cacheTTL = 30 * time.Second

// payloadID parses a required identifier field of a register payload.
// Register contracts report malformed fields as ErrInvalidPayload rather
// than ErrInvalidFormat, which is reserved for path identifiers.
func payloadID(field, s string) (uuid.UUID, error) {
	id, err := ident.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid identifier", apperr.ErrInvalidPayload, field)
	}
	return id, nil
}

func payloadOptionalID(field, s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := payloadID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func payloadIDs(field string, ss []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := payloadID(field, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// payloadStatus parses the status field of a register payload. An absent
// status defaults to Available.
func payloadStatus(s string) (entities.AssetStatus, error) {
	if s == "" {
		return entities.StatusAvailable, nil
	}
	st, err := entities.ParseAssetStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: status %q", apperr.ErrInvalidPayload, s)
	}
	return st, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
