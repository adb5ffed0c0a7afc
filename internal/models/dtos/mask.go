package dtos

import (
	"fmt"

	"skyfleet/registry/internal/apperr"
)

// validateMask rejects an empty mask and any entry that is not a
// recognized, mutable field of the entity. Unknown tags are an error, not
// silently ignored.
func validateMask[S any](mask []string, setters map[string]S) error {
	if len(mask) == 0 {
		return fmt.Errorf("%w: mask must name at least one field", apperr.ErrInvalidMask)
	}
	for _, f := range mask {
		if _, ok := setters[f]; !ok {
			return fmt.Errorf("%w: unknown field %q", apperr.ErrInvalidMask, f)
		}
	}
	return nil
}
