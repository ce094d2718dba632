package handlers

import (
	"errors"
	"log/slog"

	"github.com/errboardhq/errboard/internal/dto"
	"github.com/errboardhq/errboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EmployeesHandler struct {
	admin *services.AdminService
}

func NewEmployeesHandler(admin *services.AdminService) *EmployeesHandler {
	return &EmployeesHandler{admin: admin}
}

func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.admin.ListEmployees(c.Context())
	if err != nil {
		slog.Error("failed to list employees", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve employees",
		})
	}
	return c.JSON(fiber.Map{"error": false, "employees": employees})
}

func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	id, err := h.admin.AddEmployee(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Name is required",
			})
		}
		slog.Error("failed to create employee", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id})
}

// Delete cascades: the employee and every log referencing them go in one
// atomic batch.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid employee ID",
		})
	}

	if err := h.admin.DeleteEmployee(c.Context(), id); err != nil {
		slog.Error("employee cascade delete failed", "error", err, "employee_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Operation failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Employee deleted"})
}
