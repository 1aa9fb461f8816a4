package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/backup"
)

func backupRoutes(api fiber.Router, svc *backup.Service, authSvc *auth.Service) {
	api.Get("/backup/export", ExportBackup(svc, authSvc))
	api.Post("/backup/import", ImportBackup(svc, authSvc))
}

// ExportBackup returns a versioned snapshot of everything the caller owns.
func ExportBackup(svc *backup.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		snap, err := svc.Export(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="tincan-backup.json"`)
		return SuccessJSON(c, fiber.StatusOK, snap, "")
	}
}

// ImportBackup restores a snapshot. The whole payload is validated first; a
// single bad record rejects everything.
func ImportBackup(svc *backup.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		var snap dto.Snapshot
		if err := c.BodyParser(&snap); err != nil {
			return ErrorJSON(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err.Error())
		}
		counts, err := svc.Import(c.UserContext(), userID, &snap)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, counts, "backup imported")
	}
}
