package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type alertRepository struct {
	db *gorm.DB
}

func (r *alertRepository) Create(ctx context.Context, a *domain.Alert) error {
	m, err := alertToModel(a)
	if err != nil {
		return err
	}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *alertRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Alert, error) {
	var m Alert
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return alertToDomain(&m)
}

func (r *alertRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeDismissed bool) ([]*domain.Alert, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeDismissed {
		q = q.Where("is_dismissed = ?", false)
	}
	var ms []Alert
	if err := q.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.Alert, 0, len(ms))
	for i := range ms {
		a, err := alertToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *alertRepository) FindOpen(ctx context.Context, userID uuid.UUID, typ domain.AlertType, severity domain.AlertSeverity, entityID uuid.UUID) (*domain.Alert, error) {
	var m Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND severity = ? AND entity_id = ? AND is_dismissed = ?",
			userID, string(typ), string(severity), entityID, false).
		First(&m).Error
	if err != nil {
		return nil, mapError(err)
	}
	return alertToDomain(&m)
}

func (r *alertRepository) Update(ctx context.Context, a *domain.Alert) error {
	m, err := alertToModel(a)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&Alert{}).
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

func (r *alertRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Alert{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *alertRepository) DeleteDismissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_dismissed = ? AND updated_at < ?", true, cutoff).
		Delete(&Alert{})
	if res.Error != nil {
		return 0, mapError(res.Error)
	}
	return res.RowsAffected, nil
}

func alertToModel(a *domain.Alert) (Alert, error) {
	var meta []byte
	if len(a.Metadata) > 0 {
		var err error
		meta, err = json.Marshal(a.Metadata)
		if err != nil {
			return Alert{}, fmt.Errorf("marshal alert metadata: %w", err)
		}
	}
	return Alert{
		ID:          a.ID,
		UserID:      a.UserID,
		EntityID:    a.EntityID,
		Type:        string(a.Type),
		Title:       a.Title,
		Message:     a.Message,
		Severity:    string(a.Severity),
		IsRead:      a.IsRead,
		IsDismissed: a.IsDismissed,
		Metadata:    meta,
	}, nil
}

func alertToDomain(m *Alert) (*domain.Alert, error) {
	a := &domain.Alert{
		ID:          m.ID,
		UserID:      m.UserID,
		EntityID:    m.EntityID,
		Type:        domain.AlertType(m.Type),
		Title:       m.Title,
		Message:     m.Message,
		Severity:    domain.AlertSeverity(m.Severity),
		IsRead:      m.IsRead,
		IsDismissed: m.IsDismissed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal alert metadata: %w", err)
		}
	}
	return a, nil
}
