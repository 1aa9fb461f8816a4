package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarketType distinguishes exchange-held assets from on-chain positions.
type MarketType string

const (
	MarketCeFi MarketType = "cefi"
	MarketDeFi MarketType = "defi"
)

// CryptoWallet groups crypto assets. It carries no stored balance: the
// wallet's worth is always derived from its live assets.
type CryptoWallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Address   string
	Network   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CryptoAsset is a position inside a wallet. USD value is Amount × PriceUSD
// and is computed, never stored.
type CryptoAsset struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    uuid.UUID
	Symbol      string
	Name        string
	MarketType  MarketType
	Amount      float64
	PriceUSD    float64
	Network     string
	Protocol    string
	IsStaked    bool
	StakingAPY  float64
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// USDValue returns the current worth of the position.
func (a *CryptoAsset) USDValue() float64 {
	return a.Amount * a.PriceUSD
}

// WalletBalance sums the USD value of the given assets.
func WalletBalance(assets []*CryptoAsset) float64 {
	var total float64
	for _, a := range assets {
		total += a.USDValue()
	}
	return total
}
