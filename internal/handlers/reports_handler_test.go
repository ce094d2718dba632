package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/errboardhq/errboard/internal/services"
	"github.com/errboardhq/errboard/internal/store/memory"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newReportsApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	m := memory.New()
	h := NewReportsHandler(services.NewReportService(m))
	app := fiber.New()
	app.Get("/api/reports/monthly", h.Monthly)
	return app, m
}

func TestMonthlyReportEndpoint(t *testing.T) {
	ctx := context.Background()
	app, m := newReportsApp(t)

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	m.Now = func() time.Time { return time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC) }
	_, err := m.InsertLog(ctx, empID, typID)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/reports/monthly?month=4&year=2025", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out struct {
		Error  bool                    `json:"error"`
		Report *services.MonthlyReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.False(t, out.Error)
	require.NotNil(t, out.Report)
	require.Len(t, out.Report.Rows, 1)
	require.Equal(t, "Ali", out.Report.Rows[0].EmployeeName)
	require.Equal(t, map[string]int{"Formatting": 1}, out.Report.ByCategory)
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	app, _ := newReportsApp(t)

	req := httptest.NewRequest("GET", "/api/reports/monthly?month=13&year=2025", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
