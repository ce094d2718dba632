package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/errboardhq/errboard/internal/store"
	"github.com/errboardhq/errboard/internal/store/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// seedLog inserts a log with a pinned created_at.
func seedLog(t *testing.T, m *memory.Store, empID, typID uuid.UUID, at time.Time) uuid.UUID {
	t.Helper()
	m.Now = func() time.Time { return at }
	id, err := m.InsertLog(context.Background(), empID, typID)
	require.NoError(t, err)
	return id
}

func TestFilteredErrorLogsPopulatesFullChain(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewReportService(m)

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)

	// last second of April is inside the window
	seedLog(t, m, empID, typID, time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC))
	// first instant of May is outside
	seedLog(t, m, empID, typID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	rows, err := svc.FilteredErrorLogs(ctx, 4, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, "Ali", row.EmployeeName)
	require.Equal(t, "Typo", row.ErrorTypeName)
	require.Equal(t, "Formatting", row.ErrorCategoryName)
	require.Equal(t, empID, row.EmployeeID)
	require.Equal(t, catID, row.ErrorCategoryID)
}

func TestFilteredErrorLogsDropsBrokenChains(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewReportService(m)

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	orphanTypeID, _ := m.InsertType(ctx, "Spacing", uuid.New()) // category never existed

	at := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	seedLog(t, m, empID, typID, at)                // full chain
	seedLog(t, m, uuid.New(), typID, at)           // dangling employee
	seedLog(t, m, empID, uuid.New(), at)           // dangling type
	seedLog(t, m, empID, orphanTypeID, at)         // dangling category

	rows, err := svc.FilteredErrorLogs(ctx, 4, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the fully resolvable log survives")
	require.Equal(t, "Typo", rows[0].ErrorTypeName)
}

func TestFilteredErrorLogsDecemberRollsYear(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewReportService(m)

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)

	seedLog(t, m, empID, typID, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	seedLog(t, m, empID, typID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	rows, err := svc.FilteredErrorLogs(ctx, 12, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestFilteredErrorLogsRejectsBadMonth(t *testing.T) {
	svc := NewReportService(memory.New())

	_, err := svc.FilteredErrorLogs(context.Background(), 0, 2025)
	require.Error(t, err)
	_, err = svc.FilteredErrorLogs(context.Background(), 13, 2025)
	require.Error(t, err)
}

func TestFilteredErrorLogsPropagatesStoreUnavailable(t *testing.T) {
	m := memory.New()
	m.ReadErr = errors.New("down")
	svc := NewReportService(m)

	_, err := svc.FilteredErrorLogs(context.Background(), 4, 2025)
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestErrorTypesLabelsDeletedCategory(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewReportService(m)

	catID, _ := m.InsertCategory(ctx, "Formatting")
	_, err := m.InsertType(ctx, "Typo", catID)
	require.NoError(t, err)
	_, err = m.InsertType(ctx, "Spacing", uuid.New())
	require.NoError(t, err)

	views, err := svc.ErrorTypes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2, "orphaned types are labeled, not dropped")

	labels := make(map[string]string, len(views))
	for _, v := range views {
		labels[v.Name] = v.CategoryName
	}
	require.Equal(t, "Formatting", labels["Typo"])
	require.Equal(t, DeletedCategoryLabel, labels["Spacing"])
}

func TestMonthlyAggregates(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewReportService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	bea, _ := m.InsertEmployee(ctx, "Bea")
	formatting, _ := m.InsertCategory(ctx, "Formatting")
	process, _ := m.InsertCategory(ctx, "Process")
	typo, _ := m.InsertType(ctx, "Typo", formatting)
	skipped, _ := m.InsertType(ctx, "Skipped Review", process)

	at := time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)
	seedLog(t, m, ali, typo, at)
	seedLog(t, m, ali, typo, at)
	seedLog(t, m, ali, skipped, at)
	seedLog(t, m, bea, typo, at)

	rep, err := svc.Monthly(ctx, 4, 2025)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 4)

	require.Equal(t, map[string]int{"Formatting": 3, "Process": 1}, rep.ByCategory)
	require.Equal(t, map[string]int{"Ali": 3, "Bea": 1}, rep.ByEmployee)
	require.Equal(t, 2, rep.ByEmployeeCategory["Ali"]["Formatting"])
	require.Equal(t, 1, rep.ByEmployeeCategory["Ali"]["Process"])
	require.Equal(t, 1, rep.ByEmployeeCategory["Bea"]["Formatting"])
}
