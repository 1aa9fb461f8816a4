package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// WalletCreate is the payload for creating a crypto wallet.
type WalletCreate struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"omitempty,max=128"`
	Network string `json:"network" validate:"required,min=1,max=50"`
}

// WalletUpdate carries optional wallet field updates.
type WalletUpdate struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Address *string `json:"address" validate:"omitempty,max=128"`
	Network *string `json:"network" validate:"omitempty,min=1,max=50"`
}

// WalletRead is the response shape for wallets. Balance is derived from the
// wallet's assets on every read.
type WalletRead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Network   string    `json:"network"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// WalletToRead maps a wallet plus its live assets to the response shape.
func WalletToRead(w *domain.CryptoWallet, assets []*domain.CryptoAsset) *WalletRead {
	return &WalletRead{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Network:   w.Network,
		Balance:   domain.WalletBalance(assets),
		CreatedAt: w.CreatedAt,
	}
}

// AssetCreate is the payload for adding an asset to a wallet.
type AssetCreate struct {
	WalletID   uuid.UUID `json:"walletId" validate:"required"`
	Symbol     string    `json:"symbol" validate:"required,min=1,max=10"`
	Name       string    `json:"name" validate:"required,min=1,max=100"`
	MarketType string    `json:"marketType" validate:"required,oneof=cefi defi"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	PriceUSD   float64   `json:"priceUsd" validate:"omitempty,gte=0"`
	Network    string    `json:"network" validate:"required,min=1,max=50"`
	Protocol   string    `json:"protocol" validate:"omitempty,max=50"`
	IsStaked   bool      `json:"isStaked"`
	StakingAPY float64   `json:"stakingApy" validate:"omitempty,gte=0"`
}

// AssetUpdate carries optional asset field updates.
type AssetUpdate struct {
	Amount     *float64 `json:"amount" validate:"omitempty,gt=0"`
	PriceUSD   *float64 `json:"priceUsd" validate:"omitempty,gte=0"`
	Protocol   *string  `json:"protocol" validate:"omitempty,max=50"`
	IsStaked   *bool    `json:"isStaked"`
	StakingAPY *float64 `json:"stakingApy" validate:"omitempty,gte=0"`
}

// AssetRead is the response shape for crypto assets.
type AssetRead struct {
	ID          uuid.UUID `json:"id"`
	WalletID    uuid.UUID `json:"walletId"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	MarketType  string    `json:"marketType"`
	Amount      float64   `json:"amount"`
	PriceUSD    float64   `json:"priceUsd"`
	USDValue    float64   `json:"usdValue"`
	Network     string    `json:"network"`
	Protocol    string    `json:"protocol,omitempty"`
	IsStaked    bool      `json:"isStaked"`
	StakingAPY  float64   `json:"stakingApy,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// AssetToRead maps a domain asset to its response shape.
func AssetToRead(a *domain.CryptoAsset) *AssetRead {
	return &AssetRead{
		ID:          a.ID,
		WalletID:    a.WalletID,
		Symbol:      a.Symbol,
		Name:        a.Name,
		MarketType:  string(a.MarketType),
		Amount:      a.Amount,
		PriceUSD:    a.PriceUSD,
		USDValue:    a.USDValue(),
		Network:     a.Network,
		Protocol:    a.Protocol,
		IsStaked:    a.IsStaked,
		StakingAPY:  a.StakingAPY,
		LastUpdated: a.LastUpdated,
	}
}

// AssetsToRead maps a slice of domain assets.
func AssetsToRead(assets []*domain.CryptoAsset) []*AssetRead {
	out := make([]*AssetRead, 0, len(assets))
	for _, a := range assets {
		out = append(out, AssetToRead(a))
	}
	return out
}
