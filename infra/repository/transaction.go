package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/repository"
)

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := transactionToModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapError(err)
	}
	return r.replaceTags(ctx, t.ID, t.TagIDs)
}

func (r *transactionRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	t := transactionToDomain(&m)
	tags, err := r.tagsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	t.TagIDs = tags[id]
	return t, nil
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, f repository.TransactionFilter) ([]*domain.Transaction, int64, error) {
	var total int64
	if err := r.filtered(ctx, userID, f).Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	order := "date"
	switch f.SortBy {
	case "amount", "description":
		order = f.SortBy
	}
	if f.SortOrder == "desc" {
		order += " DESC"
	}
	// id tie-break keeps OFFSET pages stable when the sort key repeats.
	order += ", id"

	var ms []Transaction
	err := r.filtered(ctx, userID, f).
		Order(order).Offset(f.Offset).Limit(f.Limit).
		Find(&ms).Error
	if err != nil {
		return nil, 0, mapError(err)
	}
	out, err := r.withTags(ctx, ms)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *transactionRepository) filtered(ctx context.Context, userID uuid.UUID, f repository.TransactionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Transaction{}).Where("transactions.user_id = ?", userID)
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("description ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.TagID != nil {
		q = q.Joins("JOIN transaction_tags tt ON tt.transaction_id = transactions.id").
			Where("tt.tag_id = ?", *f.TagID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.IsReviewed != nil {
		q = q.Where("is_reviewed = ?", *f.IsReviewed)
	}
	return q
}

func (r *transactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	m := transactionToModel(t)
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(&m)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return r.replaceTags(ctx, t.ID, t.TagIDs)
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", id).
		Delete(&TransactionTag{}).Error; err != nil {
		return mapError(err)
	}
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	// Only rows the user owns are linked or deleted; foreign ids fall through.
	var owned []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Pluck("id", &owned).Error
	if err != nil {
		return 0, mapError(err)
	}
	if len(owned) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", owned).
		Delete(&TransactionTag{}).Error; err != nil {
		return 0, mapError(err)
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, owned).
		Delete(&Transaction{})
	if res.Error != nil {
		return 0, mapError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *transactionRepository) CountByAccount(ctx context.Context, userID, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND account_id = ?", userID, accountID).
		Count(&n).Error
	return n, mapError(err)
}

func (r *transactionRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&n).Error
	return n, mapError(err)
}

func (r *transactionRepository) ReassignCategory(ctx context.Context, userID, fromCategory, toCategory uuid.UUID) error {
	return mapError(r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, fromCategory).
		Update("category_id", toCategory).Error)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	return r.withTags(ctx, ms)
}

// replaceTags rewrites the tag links of one transaction.
func (r *transactionRepository) replaceTags(ctx context.Context, transactionID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&TransactionTag{}).Error; err != nil {
		return mapError(err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]TransactionTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, TransactionTag{TransactionID: transactionID, TagID: tagID})
	}
	return mapError(r.db.WithContext(ctx).Create(&links).Error)
}

// tagsFor loads the tag ids of the given transactions in one query.
func (r *transactionRepository) tagsFor(ctx context.Context, transactionIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	if len(transactionIDs) == 0 {
		return map[uuid.UUID][]uuid.UUID{}, nil
	}
	var links []TransactionTag
	err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", transactionIDs).
		Find(&links).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make(map[uuid.UUID][]uuid.UUID, len(transactionIDs))
	for _, l := range links {
		out[l.TransactionID] = append(out[l.TransactionID], l.TagID)
	}
	return out, nil
}

func (r *transactionRepository) withTags(ctx context.Context, ms []Transaction) ([]*domain.Transaction, error) {
	ids := make([]uuid.UUID, 0, len(ms))
	for i := range ms {
		ids = append(ids, ms[i].ID)
	}
	tags, err := r.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Transaction, 0, len(ms))
	for i := range ms {
		t := transactionToDomain(&ms[i])
		t.TagIDs = tags[t.ID]
		out = append(out, t)
	}
	return out, nil
}

func transactionToModel(t *domain.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		ScheduleID:  t.ScheduleID,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Notes:       t.Notes,
		IsReviewed:  t.IsReviewed,
	}
}

func transactionToDomain(m *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		ScheduleID:  m.ScheduleID,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Notes:       m.Notes,
		IsReviewed:  m.IsReviewed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
