package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// mapError translates GORM errors to domain errors so callers never see the
// storage layer. The chain is walked because GORM wraps driver errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	cur := err
	for cur != nil {
		switch {
		case errors.Is(cur, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(cur, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		cur = errors.Unwrap(cur)
	}
	return err
}
