package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
)

func cryptoRoutes(api fiber.Router, svc *crypto.Service, authSvc *auth.Service) {
	api.Get("/crypto/wallets", ListWallets(svc, authSvc))
	api.Post("/crypto/wallets", CreateWallet(svc, authSvc))
	api.Get("/crypto/wallets/:id", GetWallet(svc, authSvc))
	api.Put("/crypto/wallets/:id", UpdateWallet(svc, authSvc))
	api.Delete("/crypto/wallets/:id", DeleteWallet(svc, authSvc))
	api.Get("/crypto/assets", ListAssets(svc, authSvc))
	api.Post("/crypto/assets", CreateAsset(svc, authSvc))
	api.Get("/crypto/assets/:id", GetAsset(svc, authSvc))
	api.Put("/crypto/assets/:id", UpdateAsset(svc, authSvc))
	api.Delete("/crypto/assets/:id", DeleteAsset(svc, authSvc))
	api.Get("/crypto/portfolio", CryptoPortfolio(svc, authSvc))
	api.Post("/crypto/refresh-prices", RefreshPrices(svc, authSvc))
}

// ListWallets returns every wallet with its derived balance.
func ListWallets(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		wallets, assets, err := svc.ListWallets(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		out := make([]*dto.WalletRead, 0, len(wallets))
		for _, w := range wallets {
			out = append(out, dto.WalletToRead(w, assets[w.ID]))
		}
		return SuccessJSON(c, fiber.StatusOK, out, "")
	}
}

// CreateWallet adds a crypto wallet.
func CreateWallet(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.WalletCreate](c)
		if err != nil {
			return err
		}
		w, err := svc.CreateWallet(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.WalletToRead(w, nil), "wallet created")
	}
}

// GetWallet returns one wallet with its assets.
func GetWallet(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		w, assets, err := svc.GetWallet(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{
			"wallet": dto.WalletToRead(w, assets),
			"assets": dto.AssetsToRead(assets),
		}, "")
	}
}

// UpdateWallet applies a partial update.
func UpdateWallet(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.WalletUpdate](c)
		if err != nil {
			return err
		}
		w, err := svc.UpdateWallet(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.WalletToRead(w, nil), "wallet updated")
	}
}

// DeleteWallet removes a wallet and all of its assets.
func DeleteWallet(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteWallet(c.UserContext(), userID, id); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, nil, "wallet deleted")
	}
}

// ListAssets returns every crypto asset of the caller across wallets.
func ListAssets(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		assets, err := svc.ListAssets(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AssetsToRead(assets), "")
	}
}

// CreateAsset adds an asset to one of the caller's wallets.
func CreateAsset(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.AssetCreate](c)
		if err != nil {
			return err
		}
		a, err := svc.CreateAsset(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.AssetToRead(a), "asset created")
	}
}

// GetAsset returns one asset by id.
func GetAsset(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		a, err := svc.GetAsset(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AssetToRead(a), "")
	}
}

// UpdateAsset applies a partial update.
func UpdateAsset(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.AssetUpdate](c)
		if err != nil {
			return err
		}
		a, err := svc.UpdateAsset(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.AssetToRead(a), "asset updated")
	}
}

// DeleteAsset removes an asset.
func DeleteAsset(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.DeleteAsset(c.UserContext(), userID, id); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, nil, "asset deleted")
	}
}

// CryptoPortfolio returns the USD totals split by market type.
func CryptoPortfolio(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		total, cefi, defi, err := svc.Portfolio(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{
			"totalUsd": total,
			"cefiUsd":  cefi,
			"defiUsd":  defi,
		}, "")
	}
}

// RefreshPrices pulls fresh USD prices for every tracked symbol.
func RefreshPrices(svc *crypto.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := currentUser(c, authSvc); err != nil {
			return err
		}
		n, err := svc.RefreshPrices(c.UserContext())
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, fiber.Map{"updated": n}, "prices refreshed")
	}
}
