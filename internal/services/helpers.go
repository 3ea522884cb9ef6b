package services

import (
	"fmt"

	"github.com/NCHRD-2025/training-service/internal/repositories"
)

// mapRepoError translates repository sentinels into service sentinels.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case repositories.IsNotFoundError(err):
		return ErrNotFound
	case repositories.IsDuplicateError(err):
		return ErrConflict
	default:
		return err
	}
}

func entityDetail(action, entity string, id uint) string {
	return fmt.Sprintf("%s %s #%d", action, entity, id)
}
