// Package ident validates asset and operator identifiers. Every identifier
// arriving on a path or body must pass through Parse before any storage
// lookup is issued.
package ident

import (
	"fmt"

	"skyfleet/registry/internal/apperr"

	"github.com/google/uuid"
)

const canonicalLen = 36

// Parse accepts only the canonical lowercase hyphenated UUID rendering
// (8-4-4-4-12). The check is purely syntactic; existence in storage is a
// separate concern.
func Parse(s string) (uuid.UUID, error) {
	if len(s) != canonicalLen {
		return uuid.Nil, fmt.Errorf("%w: identifier %q", apperr.ErrInvalidFormat, s)
	}
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			return uuid.Nil, fmt.Errorf("%w: identifier %q is not lowercase", apperr.ErrInvalidFormat, s)
		}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: identifier %q", apperr.ErrInvalidFormat, s)
	}
	return id, nil
}

// ParseOptional parses a nullable identifier field. An empty string maps to
// nil rather than an error.
func ParseOptional(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseAll parses a list of identifiers, failing on the first invalid entry.
func ParseAll(ss []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
