package handlers

import (
	"errors"
	"log/slog"

	"github.com/errboardhq/errboard/internal/dto"
	"github.com/errboardhq/errboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoriesHandler struct {
	admin *services.AdminService
}

func NewCategoriesHandler(admin *services.AdminService) *CategoriesHandler {
	return &CategoriesHandler{admin: admin}
}

func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.admin.ListCategories(c.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve categories",
		})
	}
	return c.JSON(fiber.Map{"error": false, "categories": categories})
}

func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	id, err := h.admin.AddCategory(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Name is required",
			})
		}
		slog.Error("failed to create category", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

func (h *CategoriesHandler) Rename(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid category ID",
		})
	}

	var req dto.RenameCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	if err := h.admin.RenameCategory(c.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Name is required",
			})
		case errors.Is(err, services.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Category not found",
			})
		}
		slog.Error("failed to rename category", "error", err, "category_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Category renamed"})
}

// Delete cascades category -> types -> logs in one atomic batch.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid category ID",
		})
	}

	if err := h.admin.DeleteCategory(c.Context(), id); err != nil {
		slog.Error("category cascade delete failed", "error", err, "category_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Category deleted"})
}
