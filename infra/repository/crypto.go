package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tincan-finance/tincan/pkg/domain"
)

type walletRepository struct {
	db *gorm.DB
}

func (r *walletRepository) Create(ctx context.Context, w *domain.CryptoWallet) error {
	m := CryptoWallet{
		ID:      w.ID,
		UserID:  w.UserID,
		Name:    w.Name,
		Address: w.Address,
		Network: w.Network,
	}
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *walletRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoWallet, error) {
	var m CryptoWallet
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return walletToDomain(&m), nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoWallet, error) {
	var ms []CryptoWallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.CryptoWallet, 0, len(ms))
	for i := range ms {
		out = append(out, walletToDomain(&ms[i]))
	}
	return out, nil
}

func (r *walletRepository) Update(ctx context.Context, w *domain.CryptoWallet) error {
	res := r.db.WithContext(ctx).
		Model(&CryptoWallet{}).
		Where("id = ? AND user_id = ?", w.ID, w.UserID).
		Updates(map[string]any{"name": w.Name, "address": w.Address, "network": w.Network})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *walletRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&CryptoWallet{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func walletToDomain(m *CryptoWallet) *domain.CryptoWallet {
	return &domain.CryptoWallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Address:   m.Address,
		Network:   m.Network,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type assetRepository struct {
	db *gorm.DB
}

func (r *assetRepository) Create(ctx context.Context, a *domain.CryptoAsset) error {
	m := assetToModel(a)
	return mapError(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *assetRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoAsset, error) {
	var m CryptoAsset
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapError(err)
	}
	return assetToDomain(&m), nil
}

func (r *assetRepository) ListByWallet(ctx context.Context, userID, walletID uuid.UUID) ([]*domain.CryptoAsset, error) {
	var ms []CryptoAsset
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND wallet_id = ?", userID, walletID).
		Order("symbol").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	return assetsToDomain(ms), nil
}

func (r *assetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoAsset, error) {
	var ms []CryptoAsset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol").
		Find(&ms).Error
	if err != nil {
		return nil, mapError(err)
	}
	return assetsToDomain(ms), nil
}

func (r *assetRepository) Update(ctx context.Context, a *domain.CryptoAsset) error {
	m := assetToModel(a)
	res := r.db.WithContext(ctx).
		Model(&CryptoAsset{}).
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

func (r *assetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&CryptoAsset{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assetRepository) ListAll(ctx context.Context) ([]*domain.CryptoAsset, error) {
	var ms []CryptoAsset
	if err := r.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	return assetsToDomain(ms), nil
}

func assetsToDomain(ms []CryptoAsset) []*domain.CryptoAsset {
	out := make([]*domain.CryptoAsset, 0, len(ms))
	for i := range ms {
		out = append(out, assetToDomain(&ms[i]))
	}
	return out
}

func assetToModel(a *domain.CryptoAsset) CryptoAsset {
	return CryptoAsset{
		ID:          a.ID,
		UserID:      a.UserID,
		WalletID:    a.WalletID,
		Symbol:      a.Symbol,
		Name:        a.Name,
		MarketType:  string(a.MarketType),
		Amount:      a.Amount,
		PriceUSD:    a.PriceUSD,
		Network:     a.Network,
		Protocol:    a.Protocol,
		IsStaked:    a.IsStaked,
		StakingAPY:  a.StakingAPY,
		LastUpdated: a.LastUpdated,
	}
}

func assetToDomain(m *CryptoAsset) *domain.CryptoAsset {
	return &domain.CryptoAsset{
		ID:          m.ID,
		UserID:      m.UserID,
		WalletID:    m.WalletID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		MarketType:  domain.MarketType(m.MarketType),
		Amount:      m.Amount,
		PriceUSD:    m.PriceUSD,
		Network:     m.Network,
		Protocol:    m.Protocol,
		IsStaked:    m.IsStaked,
		StakingAPY:  m.StakingAPY,
		LastUpdated: m.LastUpdated,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
