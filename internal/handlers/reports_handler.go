package handlers

import (
	"log/slog"
	"time"

	"github.com/errboardhq/errboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportsHandler struct {
	reports *services.ReportService
}

func NewReportsHandler(reports *services.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Monthly serves GET /reports/monthly?month=&year=. Missing params default to
// the current month. Row order is unspecified; the UI sorts for display.
func (h *ReportsHandler) Monthly(c *fiber.Ctx) error {
	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	if month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Month must be between 1 and 12",
		})
	}

	report, err := h.reports.Monthly(c.Context(), month, year)
	if err != nil {
		slog.Error("monthly report failed", "error", err, "month", month, "year", year)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to build report",
		})
	}
	return c.JSON(fiber.Map{"error": false, "report": report})
}
