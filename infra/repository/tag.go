package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type tagRepository struct {
	db *gorm.DB
}

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	m := Tag{ID: t.ID, UserID: t.UserID, Name: t.Name, Color: t.Color}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *tagRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	var m Tag
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return tagToDomain(&m), nil
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	var ms []Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Tag, 0, len(ms))
	for i := range ms {
		out = append(out, tagToDomain(&ms[i]))
	}
	return out, nil
}

func (r *tagRepository) Update(ctx context.Context, t *domain.Tag) error {
	res := r.db.WithContext(ctx).
		Model(&Tag{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{"name": t.Name, "color": t.Color})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the tag and every transaction link that references it.
func (r *tagRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("tag_id = ?", id).
		Delete(&TransactionTag{}).Error; err != nil {
		return mapError(err)
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Tag{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func tagToDomain(m *Tag) *domain.Tag {
	return &domain.Tag{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
