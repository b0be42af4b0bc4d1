package persistence

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenpos/backend/internal/domain/shared"
)

// notFoundOr maps gorm's record-not-found to a domain NOT_FOUND naming
// the entity, and wraps any other failure.
func notFoundOr(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ReferenceNotFound("%s %s not found", entity, id)
	}
	return fmt.Errorf("load %s %s: %w", entity, id, err)
}
