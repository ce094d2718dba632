package handlers

import (
	"errors"
	"log/slog"

	"github.com/errboardhq/errboard/internal/dto"
	"github.com/errboardhq/errboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LogsHandler struct {
	admin *services.AdminService
}

func NewLogsHandler(admin *services.AdminService) *LogsHandler {
	return &LogsHandler{admin: admin}
}

func (h *LogsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	id, err := h.admin.AddLog(c.Context(), req.EmployeeID, req.TypeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Employee does not exist",
			})
		case errors.Is(err, services.ErrTypeNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Error type does not exist",
			})
		}
		slog.Error("failed to create error log", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

func (h *LogsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid log ID",
		})
	}

	if err := h.admin.DeleteLog(c.Context(), id); err != nil {
		slog.Error("failed to delete error log", "error", err, "log_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Log deleted"})
}
