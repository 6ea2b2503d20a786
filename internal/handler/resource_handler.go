package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/service"
)

// ResourceResolver maps a resource name onto its facade.
type ResourceResolver interface {
	Lookup(resource string) (*service.Service, error)
	Resources() []string
}

type ResourceHandler struct {
	resolver ResourceResolver
}

func NewResourceHandler(resolver ResourceResolver) (*ResourceHandler, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resource resolver is required")
	}
	return &ResourceHandler{resolver: resolver}, nil
}

func RegisterResourceRoutes(router fiber.Router, resolver ResourceResolver) error {
	h, err := NewResourceHandler(resolver)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/resources", h.ListResources)
	v1.Get("/resources/:resource/stats", h.GetStats)
	v1.Get("/resources/:resource", h.ListRecords)
	v1.Get("/resources/:resource/:id", h.GetRecord)
	v1.Post("/resources/:resource", h.CreateRecord)
	v1.Put("/resources/:resource/:id", h.UpdateRecord)
	v1.Delete("/resources/:resource/:id", h.DeleteRecord)

	return nil
}

func (h *ResourceHandler) facade(c *fiber.Ctx) (*service.Service, error) {
	resource := strings.TrimSpace(c.Params("resource"))
	svc, err := h.resolver.Lookup(resource)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return svc, nil
}

func (h *ResourceHandler) ListResources(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"resources": h.resolver.Resources(),
	})
}

func (h *ResourceHandler) ListRecords(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	var records []domain.Record
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		records, err = svc.Search(c.Context(), query)
	} else {
		records, err = svc.GetAll(c.Context())
	}
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  records,
		"total": len(records),
	})
}

func (h *ResourceHandler) GetRecord(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	record, err := svc.GetByID(c.Context(), strings.TrimSpace(c.Params("id")))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

func (h *ResourceHandler) GetStats(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	stats, err := svc.GetStats(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ResourceHandler) CreateRecord(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	var data domain.Record
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := svc.Create(c.Context(), data)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ResourceHandler) UpdateRecord(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	var data domain.Record
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := svc.Update(c.Context(), strings.TrimSpace(c.Params("id")), data)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ResourceHandler) DeleteRecord(c *fiber.Ctx) error {
	svc, err := h.facade(c)
	if err != nil {
		return err
	}

	result, err := svc.Delete(c.Context(), strings.TrimSpace(c.Params("id")))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": result.Success,
		"id":      result.ID,
	})
}
