package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type categoryRepository struct {
	db *gorm.DB
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := categoryToModel(c)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *categoryRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	var m Category
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return categoryToDomain(&m), nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var ms []Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Category, 0, len(ms))
	for i := range ms {
		out = append(out, categoryToDomain(&ms[i]))
	}
	return out, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	m := categoryToModel(c)
	res := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
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

func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Category{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func categoryToModel(c *domain.Category) Category {
	return Category{
		ID:       c.ID,
		UserID:   c.UserID,
		Name:     c.Name,
		Color:    c.Color,
		Type:     string(c.Type),
		ParentID: c.ParentID,
	}
}

func categoryToDomain(m *Category) *domain.Category {
	return &domain.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		Type:      domain.CategoryType(m.Type),
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
