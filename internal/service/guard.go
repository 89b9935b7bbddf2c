package service

import (
	"fmt"

	"edumate/internal/models"
)

// Authorize allows access only when identity owns the record referenced by ownerID.
// A nil identity is always denied.
func Authorize(identity *models.Identity, ownerID int64) error {
	if !identity.Owns(ownerID) {
		return fmt.Errorf("record owned by another user: %w", models.ErrForbidden)
	}
	return nil
}

func requireIdentity(identity *models.Identity) error {
	if identity == nil || identity.UserID == 0 {
		return fmt.Errorf("no active session: %w", models.ErrForbidden)
	}
	return nil
}
