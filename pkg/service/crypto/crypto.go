// Package crypto manages wallets and their asset positions. Wallet balances
// are never stored; every read derives them from the live assets.
package crypto

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tincan-finance/tincan/pkg/domain"
	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/repository"
)

// PriceProvider returns current USD prices for a set of symbols. Symbols with
// no known price are absent from the result, not errors.
type PriceProvider interface {
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// Service manages a user's crypto wallets and assets.
type Service struct {
	uow    repository.UnitOfWork
	prices PriceProvider
	logger *slog.Logger
}

// New creates a crypto service. prices may be nil; RefreshPrices then is a
// no-op.
func New(uow repository.UnitOfWork, prices PriceProvider, logger *slog.Logger) *Service {
	return &Service{uow: uow, prices: prices, logger: logger.With("service", "crypto")}
}

// CreateWallet adds a wallet.
func (s *Service) CreateWallet(ctx context.Context, userID uuid.UUID, req dto.WalletCreate) (*domain.CryptoWallet, error) {
	w := &domain.CryptoWallet{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    req.Name,
		Address: req.Address,
		Network: req.Network,
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		return wallets.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("wallet created", "userID", userID, "walletID", w.ID, "network", w.Network)
	return w, nil
}

// GetWallet returns one wallet with its live assets.
func (s *Service) GetWallet(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoWallet, []*domain.CryptoAsset, error) {
	var (
		w      *domain.CryptoWallet
		assets []*domain.CryptoAsset
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		assetRepo, err := uow.Assets()
		if err != nil {
			return err
		}
		w, err = wallets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		assets, err = assetRepo.ListByWallet(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return w, assets, nil
}

// ListWallets returns every wallet of the user plus a per-wallet asset map
// for balance derivation.
func (s *Service) ListWallets(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoWallet, map[uuid.UUID][]*domain.CryptoAsset, error) {
	var (
		ws     []*domain.CryptoWallet
		assets []*domain.CryptoAsset
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		assetRepo, err := uow.Assets()
		if err != nil {
			return err
		}
		ws, err = wallets.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		assets, err = assetRepo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	byWallet := make(map[uuid.UUID][]*domain.CryptoAsset)
	for _, a := range assets {
		byWallet[a.WalletID] = append(byWallet[a.WalletID], a)
	}
	return ws, byWallet, nil
}

// UpdateWallet applies the non-nil fields of req.
func (s *Service) UpdateWallet(ctx context.Context, userID, id uuid.UUID, req dto.WalletUpdate) (*domain.CryptoWallet, error) {
	var w *domain.CryptoWallet
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		w, err = wallets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			w.Name = *req.Name
		}
		if req.Address != nil {
			w.Address = *req.Address
		}
		if req.Network != nil {
			w.Network = *req.Network
		}
		return wallets.Update(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWallet removes a wallet and all of its assets.
func (s *Service) DeleteWallet(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		assetRepo, err := uow.Assets()
		if err != nil {
			return err
		}
		if _, err := wallets.Get(ctx, userID, id); err != nil {
			return err
		}
		assets, err := assetRepo.ListByWallet(ctx, userID, id)
		if err != nil {
			return err
		}
		for _, a := range assets {
			if err := assetRepo.Delete(ctx, userID, a.ID); err != nil {
				return err
			}
		}
		return wallets.Delete(ctx, userID, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("wallet deleted", "userID", userID, "walletID", id)
	return nil
}

// CreateAsset adds a position to one of the user's wallets. When no price is
// given the provider is asked for one.
func (s *Service) CreateAsset(ctx context.Context, userID uuid.UUID, req dto.AssetCreate) (*domain.CryptoAsset, error) {
	a := &domain.CryptoAsset{
		ID:          uuid.New(),
		UserID:      userID,
		WalletID:    req.WalletID,
		Symbol:      strings.ToUpper(req.Symbol),
		Name:        req.Name,
		MarketType:  domain.MarketType(req.MarketType),
		Amount:      req.Amount,
		PriceUSD:    req.PriceUSD,
		Network:     req.Network,
		Protocol:    req.Protocol,
		IsStaked:    req.IsStaked,
		StakingAPY:  req.StakingAPY,
		LastUpdated: time.Now(),
	}
	if a.PriceUSD == 0 && s.prices != nil {
		if quotes, err := s.prices.Prices(ctx, []string{a.Symbol}); err == nil {
			a.PriceUSD = quotes[a.Symbol]
		} else {
			s.logger.Warn("price lookup failed", "symbol", a.Symbol, "error", err)
		}
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		wallets, err := uow.Wallets()
		if err != nil {
			return err
		}
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		if _, err := wallets.Get(ctx, userID, req.WalletID); err != nil {
			return err
		}
		return assets.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("asset created", "userID", userID, "assetID", a.ID, "symbol", a.Symbol)
	return a, nil
}

// GetAsset returns one asset owned by the user.
func (s *Service) GetAsset(ctx context.Context, userID, id uuid.UUID) (*domain.CryptoAsset, error) {
	var a *domain.CryptoAsset
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		a, err = assets.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssets returns every asset of the user.
func (s *Service) ListAssets(ctx context.Context, userID uuid.UUID) ([]*domain.CryptoAsset, error) {
	var out []*domain.CryptoAsset
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		out, err = assets.ListByUser(ctx, userID)
		return err
	})
	return out, err
}

// UpdateAsset applies the non-nil fields of req.
func (s *Service) UpdateAsset(ctx context.Context, userID, id uuid.UUID, req dto.AssetUpdate) (*domain.CryptoAsset, error) {
	var a *domain.CryptoAsset
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		a, err = assets.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if req.Amount != nil {
			a.Amount = *req.Amount
		}
		if req.PriceUSD != nil {
			a.PriceUSD = *req.PriceUSD
			a.LastUpdated = time.Now()
		}
		if req.Protocol != nil {
			a.Protocol = *req.Protocol
		}
		if req.IsStaked != nil {
			a.IsStaked = *req.IsStaked
		}
		if req.StakingAPY != nil {
			a.StakingAPY = *req.StakingAPY
		}
		return assets.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAsset removes one asset.
func (s *Service) DeleteAsset(ctx context.Context, userID, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		if _, err := assets.Get(ctx, userID, id); err != nil {
			return err
		}
		return assets.Delete(ctx, userID, id)
	})
}

// Portfolio sums the user's asset values: total plus cefi/defi split.
func (s *Service) Portfolio(ctx context.Context, userID uuid.UUID) (total, cefi, defi float64, err error) {
	assets, err := s.ListAssets(ctx, userID)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, a := range assets {
		v := a.USDValue()
		total += v
		switch a.MarketType {
		case domain.MarketCeFi:
			cefi += v
		case domain.MarketDeFi:
			defi += v
		}
	}
	return total, cefi, defi, nil
}

// RefreshPrices re-quotes every asset across users. Run by the scheduler.
// Returns how many assets were updated.
func (s *Service) RefreshPrices(ctx context.Context) (int, error) {
	if s.prices == nil {
		return 0, nil
	}
	var all []*domain.CryptoAsset
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		all, err = assets.ListAll(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}

	seen := make(map[string]bool)
	symbols := make([]string, 0, len(all))
	for _, a := range all {
		if !seen[a.Symbol] {
			seen[a.Symbol] = true
			symbols = append(symbols, a.Symbol)
		}
	}
	quotes, err := s.prices.Prices(ctx, symbols)
	if err != nil {
		return 0, err
	}

	updated := 0
	now := time.Now()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		assets, err := uow.Assets()
		if err != nil {
			return err
		}
		for _, a := range all {
			price, ok := quotes[a.Symbol]
			if !ok || price == a.PriceUSD {
				continue
			}
			a.PriceUSD = price
			a.LastUpdated = now
			if err := assets.Update(ctx, a); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.logger.Info("asset prices refreshed", "symbols", len(symbols), "updated", updated)
	}
	return updated, nil
}
