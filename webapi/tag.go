package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tincan-finance/tincan/pkg/dto"
	"github.com/tincan-finance/tincan/pkg/service/auth"
	"github.com/tincan-finance/tincan/pkg/service/tag"
)

func tagRoutes(api fiber.Router, svc *tag.Service, authSvc *auth.Service) {
	api.Get("/tags", ListTags(svc, authSvc))
	api.Post("/tags", CreateTag(svc, authSvc))
	api.Get("/tags/:id", GetTag(svc, authSvc))
	api.Put("/tags/:id", UpdateTag(svc, authSvc))
	api.Delete("/tags/:id", DeleteTag(svc, authSvc))
}

// ListTags returns every tag of the caller.
func ListTags(svc *tag.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		tags, err := svc.List(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TagsToRead(tags), "")
	}
}

// CreateTag adds a tag. Names are unique per user, case-insensitively.
func CreateTag(svc *tag.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.TagCreate](c)
		if err != nil {
			return err
		}
		t, err := svc.Create(c.UserContext(), userID, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, dto.TagToRead(t), "tag created")
	}
}

// GetTag returns one tag by id.
func GetTag(svc *tag.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		t, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TagToRead(t), "")
	}
}

// UpdateTag applies a partial update.
func UpdateTag(svc *tag.Service, authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c, authSvc)
		if err != nil {
			return err
		}
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		req, err := BindAndValidate[dto.TagUpdate](c)
		if err != nil {
			return err
		}
		t, err := svc.Update(c.UserContext(), userID, id, *req)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, dto.TagToRead(t), "tag updated")
	}
}

// DeleteTag removes a tag and detaches it from every transaction.
func DeleteTag(svc *tag.Service, authSvc *auth.Service) fiber.Handler {
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
		return SuccessJSON(c, fiber.StatusOK, nil, "tag deleted")
	}
}
