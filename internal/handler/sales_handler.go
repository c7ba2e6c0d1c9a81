package handler

import (
	"fmt"
	"log"

	"go-sales-api/internal/model"
	"go-sales-api/internal/service"
	"go-sales-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

// SearchSales handles POST /api/sales/search: filters, search, sorting
// and pagination in one request body.
func (h *SalesHandler) SearchSales(c *fiber.Ctx) error {
	var req model.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag),
		})
	}
	req.Normalize()

	result, err := h.service.SearchSales(&req)
	if err != nil {
		return h.serverError(c, "Failed to search sales", err)
	}
	return c.JSON(result)
}

// GetFilterOptions handles GET /api/sales/filter-options: distinct values
// for every filter dropdown.
func (h *SalesHandler) GetFilterOptions(c *fiber.Ctx) error {
	options, err := h.service.GetFilterOptions()
	if err != nil {
		return h.serverError(c, "Failed to fetch filter options", err)
	}
	return c.JSON(options)
}

// serverError logs the cause under a reference id and returns a generic
// message; the underlying error never reaches the caller.
func (h *SalesHandler) serverError(c *fiber.Ctx, msg string, err error) error {
	ref := uuid.New().String()
	log.Printf("ERROR [%s] %s: %v", ref, msg, err)
	return c.Status(500).JSON(fiber.Map{"error": msg, "ref": ref})
}
