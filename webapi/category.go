package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/category"
)

func categoryRoutes(api fiber.Router, svc *category.Service, authSvc *auth.Service) {
	api.Get("/categories", ListCategories(svc, authSvc))
	api.Post("/categories", CreateCategory(svc, authSvc))
	api.Post("/categories/seed", SeedCategories(svc, authSvc))
	api.Get("/categories/:id", GetCategory(svc, authSvc))
	api.Put("/categories/:id", UpdateCategory(svc, authSvc))
	api.Delete("/categories/:id", DeleteCategory(svc, authSvc))
	api.Post("/categories/:id/merge", MergeCategory(svc, authSvc))
}

// ListCategories returns the caller's full category tree, flat.
func ListCategories(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		categories, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.CategoriesToRead(categories), "")
	}
}

// CreateCategory adds a category, optionally under a parent.
func CreateCategory(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.CategoryCreate](c)
		if err != nil {
			return err
		}
		cat, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.CategoryToRead(cat), "category created")
	}
}

// SeedCategories provisions the default tree for a fresh user.
func SeedCategories(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		if err := svc.SeedDefaults(c.UserContext(), userID); err != nil {
			return DomainErrorJSON(c, err)
		}
		categories, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.CategoriesToRead(categories), "default categories created")
	}
}

// GetCategory returns one category by id.
func GetCategory(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		cat, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.CategoryToRead(cat), "")
	}
}

// UpdateCategory applies a partial update. Reparenting that would form a
// cycle is rejected with a validation error.
func UpdateCategory(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.CategoryUpdate](c)
		if err != nil {
			return err
		}
		cat, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.CategoryToRead(cat), "category updated")
	}
}

// DeleteCategory removes a category without children or transactions.
func DeleteCategory(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), userID, id); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, nil, "category deleted")
	}
}

// MergeCategory moves every transaction of :id to the target category, then
// deletes :id.
func MergeCategory(svc *category.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.CategoryMerge](c)
		if err != nil {
			return err
		}
		if err := svc.Merge(c.UserContext(), userID, id, req.TargetID); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, nil, "categories merged")
	}
}
