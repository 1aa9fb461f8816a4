package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type budgetRepository struct {
	db *gorm.DB
}

func (r *budgetRepository) Create(ctx context.Context, b *domain.Budget) error {
	m := budgetToModel(b)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *budgetRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	var m Budget
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return budgetToDomain(&m), nil
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var ms []Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Budget, 0, len(ms))
	for i := range ms {
		out = append(out, budgetToDomain(&ms[i]))
	}
	return out, nil
}

func (r *budgetRepository) Update(ctx context.Context, b *domain.Budget) error {
	m := budgetToModel(b)
	res := r.db.WithContext(ctx).
		Model(&Budget{}).
		Where("id = ? AND user_id = ?", b.ID, b.UserID).
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

func (r *budgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Budget{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *budgetRepository) ListActiveAll(ctx context.Context) ([]*domain.Budget, error) {
	var ms []Budget
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Budget, 0, len(ms))
	for i := range ms {
		out = append(out, budgetToDomain(&ms[i]))
	}
	return out, nil
}

func budgetToModel(b *domain.Budget) Budget {
	return Budget{
		ID:         b.ID,
		UserID:     b.UserID,
		CategoryID: b.CategoryID,
		Name:       b.Name,
		Amount:     b.Amount,
		Period:     string(b.Period),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		IsActive:   b.IsActive,
	}
}

func budgetToDomain(m *Budget) *domain.Budget {
	return &domain.Budget{
		ID:         m.ID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Amount:     m.Amount,
		Period:     domain.BudgetPeriod(m.Period),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
