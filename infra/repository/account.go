package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := accountToModel(a)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *accountRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var ms []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Account, 0, len(ms))
	for i := range ms {
		out = append(out, accountToDomain(&ms[i]))
	}
	return out, nil
}

func (r *accountRepository) Update(ctx context.Context, a *domain.Account) error {
	m := accountToModel(a)
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND user_id = ?", a.ID, a.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(&m)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Account{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) ListActiveAll(ctx context.Context) ([]*domain.Account, error) {
	var ms []Account
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Account, 0, len(ms))
	for i := range ms {
		out = append(out, accountToDomain(&ms[i]))
	}
	return out, nil
}

func accountToModel(a *domain.Account) Account {
	return Account{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Type:        string(a.Type),
		Balance:     a.Balance,
		Color:       a.Color,
		Institution: a.Institution,
		IsActive:    a.IsActive,
		IsHidden:    a.IsHidden,
	}
}

func accountToDomain(m *Account) *domain.Account {
	return &domain.Account{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        domain.AccountType(m.Type),
		Balance:     m.Balance,
		Color:       m.Color,
		Institution: m.Institution,
		IsActive:    m.IsActive,
		IsHidden:    m.IsHidden,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
