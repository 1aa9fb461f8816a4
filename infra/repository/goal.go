package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type goalRepository struct {
	db *gorm.DB
}

func (r *goalRepository) Create(ctx context.Context, g *domain.Goal) error {
	m := goalToModel(g)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *goalRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	var m Goal
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return goalToDomain(&m), nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	var ms []Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Goal, 0, len(ms))
	for i := range ms {
		out = append(out, goalToDomain(&ms[i]))
	}
	return out, nil
}

func (r *goalRepository) Update(ctx context.Context, g *domain.Goal) error {
	m := goalToModel(g)
	res := r.db.WithContext(ctx).
		Model(&Goal{}).
		Where("id = ? AND user_id = ?", g.ID, g.UserID).
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

func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Goal{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func goalToModel(g *domain.Goal) Goal {
	return Goal{
		ID:            g.ID,
		UserID:        g.UserID,
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		IsCompleted:   g.IsCompleted,
	}
}

func goalToDomain(m *Goal) *domain.Goal {
	return &domain.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		IsCompleted:   m.IsCompleted,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
