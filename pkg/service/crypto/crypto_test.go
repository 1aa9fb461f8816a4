package crypto_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tincan-finance/tincan/infra/provider/prices"
	"github.com/tincan-finance/tincan/internal/fixtures"
	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
)

func newService(t *testing.T, quotes map[string]float64) (*crypto.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var provider crypto.PriceProvider
	if quotes != nil {
		provider = prices.NewStatic(quotes)
	}
	return crypto.New(uow, provider, logger), uow
}

func seedAsset(uow *fixtures.UoW, userID, walletID uuid.UUID, symbol string, market domain.MarketType, amount, price float64) *domain.CryptoAsset {
	a := &domain.CryptoAsset{
		ID: uuid.New(), UserID: userID, WalletID: walletID,
		Symbol: symbol, Name: symbol, MarketType: market, Amount: amount, PriceUSD: price,
	}
	uow.Seed().Assets = append(uow.Seed().Assets, a)
	return a
}

func TestGetWallet_ReturnsLiveAssets(t *testing.T) {
	svc, uow := newService(t, nil)
	userID := uuid.New()

	w, err := svc.CreateWallet(context.Background(), userID, dto.WalletCreate{Name: "Ledger", Network: "ethereum"})
	require.NoError(t, err)

	seedAsset(uow, userID, w.ID, "ETH", domain.MarketDeFi, 2, 3300)
	seedAsset(uow, userID, w.ID, "SOL", domain.MarketDeFi, 10, 145)
	seedAsset(uow, userID, uuid.New(), "BTC", domain.MarketCeFi, 1, 64000) // other wallet

	got, assets, err := svc.GetWallet(context.Background(), userID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
	require.Len(t, assets, 2)
	assert.Equal(t, 8050.0, domain.WalletBalance(assets), "balance is derived, never stored")
}

func TestDeleteWallet_RemovesAssets(t *testing.T) {
	svc, uow := newService(t, nil)
	userID := uuid.New()

	w, err := svc.CreateWallet(context.Background(), userID, dto.WalletCreate{Name: "Exchange", Network: "bitcoin"})
	require.NoError(t, err)
	seedAsset(uow, userID, w.ID, "BTC", domain.MarketCeFi, 0.5, 64000)
	keep := seedAsset(uow, userID, uuid.New(), "ETH", domain.MarketDeFi, 1, 3300)

	require.NoError(t, svc.DeleteWallet(context.Background(), userID, w.ID))
	assert.Empty(t, uow.Seed().Wallets)
	require.Len(t, uow.Seed().Assets, 1)
	assert.Equal(t, keep.ID, uow.Seed().Assets[0].ID)
}

func TestCreateAsset_QuotesMissingPrice(t *testing.T) {
	svc, _ := newService(t, map[string]float64{"BTC": 64000})
	userID := uuid.New()

	w, err := svc.CreateWallet(context.Background(), userID, dto.WalletCreate{Name: "Cold", Network: "bitcoin"})
	require.NoError(t, err)

	a, err := svc.CreateAsset(context.Background(), userID, dto.AssetCreate{
		WalletID: w.ID, Symbol: "btc", Name: "Bitcoin", MarketType: "cefi",
		Amount: 0.25, Network: "bitcoin",
	})
	require.NoError(t, err)
	assert.Equal(t, "BTC", a.Symbol, "symbols are upcased")
	assert.Equal(t, 64000.0, a.PriceUSD, "missing price comes from the provider")

	// An explicit price wins over the provider quote.
	b, err := svc.CreateAsset(context.Background(), userID, dto.AssetCreate{
		WalletID: w.ID, Symbol: "BTC", Name: "Bitcoin", MarketType: "cefi",
		Amount: 0.25, PriceUSD: 60000, Network: "bitcoin",
	})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, b.PriceUSD)
}

func TestPortfolio_SplitsByMarketType(t *testing.T) {
	svc, uow := newService(t, nil)
	userID := uuid.New()
	walletID := uuid.New()

	seedAsset(uow, userID, walletID, "BTC", domain.MarketCeFi, 1, 64000)
	seedAsset(uow, userID, walletID, "ETH", domain.MarketDeFi, 2, 3300)
	seedAsset(uow, uuid.New(), walletID, "SOL", domain.MarketDeFi, 100, 145) // other user

	total, cefi, defi, err := svc.Portfolio(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 70600.0, total)
	assert.Equal(t, 64000.0, cefi)
	assert.Equal(t, 6600.0, defi)
}

func TestRefreshPrices_UpdatesChangedQuotesOnly(t *testing.T) {
	svc, uow := newService(t, map[string]float64{"BTC": 65000, "ETH": 3300})
	walletID := uuid.New()

	seedAsset(uow, uuid.New(), walletID, "BTC", domain.MarketCeFi, 1, 64000)
	seedAsset(uow, uuid.New(), walletID, "ETH", domain.MarketDeFi, 1, 3300)  // quote unchanged
	seedAsset(uow, uuid.New(), walletID, "DOGE", domain.MarketCeFi, 1, 0.1) // no quote

	updated, err := svc.RefreshPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	for _, a := range uow.Seed().Assets {
		if a.Symbol == "BTC" {
			assert.Equal(t, 65000.0, a.PriceUSD)
			assert.False(t, a.LastUpdated.IsZero())
		}
		if a.Symbol == "DOGE" {
			assert.Equal(t, 0.1, a.PriceUSD, "unquoted symbols keep their price")
		}
	}
}

func TestRefreshPrices_NoProviderIsNoop(t *testing.T) {
	svc, uow := newService(t, nil)
	seedAsset(uow, uuid.New(), uuid.New(), "BTC", domain.MarketCeFi, 1, 64000)

	updated, err := svc.RefreshPrices(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
}
