package handlers

import (
	"errors"
	"log/slog"

	"github.com/errboardhq/errboard/internal/dto"
	"github.com/errboardhq/errboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TypesHandler struct {
	admin   *services.AdminService
	reports *services.ReportService
}

func NewTypesHandler(admin *services.AdminService, reports *services.ReportService) *TypesHandler {
	return &TypesHandler{admin: admin, reports: reports}
}

// List returns every error type with its category name resolved; orphaned
// types show the deleted-category label.
func (h *TypesHandler) List(c *fiber.Ctx) error {
	types, err := h.reports.ErrorTypes(c.Context())
	if err != nil {
		slog.Error("failed to list error types", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve error types",
		})
	}
	return c.JSON(fiber.Map{"error": false, "error_types": types})
}

func (h *TypesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	id, err := h.admin.AddType(c.Context(), req.Name, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Name is required",
			})
		case errors.Is(err, services.ErrCategoryNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Category does not exist",
			})
		}
		slog.Error("failed to create error type", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Delete cascades: the type and every log referencing it go in one atomic
// batch.
func (h *TypesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid error type ID",
		})
	}

	if err := h.admin.DeleteType(c.Context(), id); err != nil {
		slog.Error("error type cascade delete failed", "error", err, "type_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Error type deleted"})
}
