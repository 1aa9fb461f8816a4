package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type scheduleRepository struct {
	db *gorm.DB
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	m := scheduleToModel(s)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *scheduleRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Schedule, error) {
	var m Schedule
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return scheduleToDomain(&m), nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Schedule, error) {
	var ms []Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_date").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Schedule, 0, len(ms))
	for i := range ms {
		out = append(out, scheduleToDomain(&ms[i]))
	}
	return out, nil
}

func (r *scheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	m := scheduleToModel(s)
	res := r.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("id = ? AND user_id = ?", s.ID, s.UserID).
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

func (r *scheduleRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Schedule{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, day time.Time) ([]*domain.Schedule, error) {
	var ms []Schedule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND next_date <= ?", true, day).
		Order("next_date").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Schedule, 0, len(ms))
	for i := range ms {
		out = append(out, scheduleToDomain(&ms[i]))
	}
	return out, nil
}

func scheduleToModel(s *domain.Schedule) Schedule {
	return Schedule{
		ID:            s.ID,
		UserID:        s.UserID,
		AccountID:     s.AccountID,
		CategoryID:    s.CategoryID,
		Name:          s.Name,
		Amount:        s.Amount,
		Type:          string(s.Type),
		Frequency:     string(s.Frequency),
		CustomDays:    s.CustomDays,
		NextDate:      s.NextDate,
		EndDate:       s.EndDate,
		IsActive:      s.IsActive,
		LastProcessed: s.LastProcessed,
	}
}

func scheduleToDomain(m *Schedule) *domain.Schedule {
	return &domain.Schedule{
		ID:            m.ID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Name:          m.Name,
		Amount:        m.Amount,
		Type:          domain.ScheduleType(m.Type),
		Frequency:     domain.Frequency(m.Frequency),
		CustomDays:    m.CustomDays,
		NextDate:      m.NextDate,
		EndDate:       m.EndDate,
		IsActive:      m.IsActive,
		LastProcessed: m.LastProcessed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
