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

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	_, err := svc.AddEmployee(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.AddCategory(ctx, "")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.AddType(ctx, "Typo", uuid.New())
	require.ErrorIs(t, err, ErrCategoryNotFound, "type creation requires an existing category")

	catID, err := svc.AddCategory(ctx, "Formatting")
	require.NoError(t, err)
	typID, err := svc.AddType(ctx, "Typo", catID)
	require.NoError(t, err)

	_, err = svc.AddLog(ctx, uuid.New(), typID)
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	empID, err := svc.AddEmployee(ctx, "Ali")
	require.NoError(t, err)
	_, err = svc.AddLog(ctx, empID, uuid.New())
	require.ErrorIs(t, err, ErrTypeNotFound)

	_, err = svc.AddLog(ctx, empID, typID)
	require.NoError(t, err)
}

func TestRenameCategory(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	catID, err := svc.AddCategory(ctx, "Formatting")
	require.NoError(t, err)

	require.ErrorIs(t, svc.RenameCategory(ctx, catID, "  "), ErrEmptyName)
	require.ErrorIs(t, svc.RenameCategory(ctx, uuid.New(), "Layout"), ErrCategoryNotFound)

	require.NoError(t, svc.RenameCategory(ctx, catID, "Layout"))
	cat, err := m.ResolveCategory(ctx, catID)
	require.NoError(t, err)
	require.Equal(t, "Layout", cat.Name)
}

func TestDeleteEmployeeCascadesLogs(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)
	reports := NewReportService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	bea, _ := m.InsertEmployee(ctx, "Bea")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)

	at := time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)
	seedLog(t, m, ali, typID, at)
	seedLog(t, m, ali, typID, at)
	seedLog(t, m, bea, typID, at)

	require.NoError(t, svc.DeleteEmployee(ctx, ali))

	emp, err := m.ResolveEmployee(ctx, ali)
	require.NoError(t, err)
	require.Nil(t, emp)

	// no window may ever return a log referencing the deleted employee
	rows, err := reports.FilteredErrorLogs(ctx, 4, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Bea", rows[0].EmployeeName)
}

func TestDeleteTypeCascadesLogs(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typo, _ := m.InsertType(ctx, "Typo", catID)
	spacing, _ := m.InsertType(ctx, "Spacing", catID)

	at := time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)
	seedLog(t, m, ali, typo, at)
	seedLog(t, m, ali, spacing, at)

	require.NoError(t, svc.DeleteType(ctx, typo))

	typ, err := m.ResolveType(ctx, typo)
	require.NoError(t, err)
	require.Nil(t, typ)

	logs, err := m.LogsByType(ctx, typo)
	require.NoError(t, err)
	require.Empty(t, logs)

	remaining, err := m.LogsByType(ctx, spacing)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestDeleteCategoryFansOutToTypesAndLogs(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	formatting, _ := m.InsertCategory(ctx, "Formatting")
	process, _ := m.InsertCategory(ctx, "Process")
	typo, _ := m.InsertType(ctx, "Typo", formatting)
	spacing, _ := m.InsertType(ctx, "Spacing", formatting)
	skipped, _ := m.InsertType(ctx, "Skipped Review", process)

	at := time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		seedLog(t, m, ali, typo, at)
		seedLog(t, m, ali, spacing, at)
	}
	seedLog(t, m, ali, skipped, at)

	require.NoError(t, svc.DeleteCategory(ctx, formatting))

	cat, err := m.ResolveCategory(ctx, formatting)
	require.NoError(t, err)
	require.Nil(t, cat)

	types, err := m.TypesByCategory(ctx, formatting)
	require.NoError(t, err)
	require.Empty(t, types)

	for _, typID := range []uuid.UUID{typo, spacing} {
		logs, err := m.LogsByType(ctx, typID)
		require.NoError(t, err)
		require.Empty(t, logs)
	}

	// the other category and its logs are untouched
	other, err := m.ResolveCategory(ctx, process)
	require.NoError(t, err)
	require.NotNil(t, other)
	logs, err := m.LogsByType(ctx, skipped)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestCascadeDiscoveryFailureCommitsNothing(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	seedLog(t, m, ali, typID, time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC))

	m.ReadErr = errors.New("down")
	require.ErrorIs(t, svc.DeleteEmployee(ctx, ali), store.ErrStoreUnavailable)
	m.ReadErr = nil

	emp, err := m.ResolveEmployee(ctx, ali)
	require.NoError(t, err)
	require.NotNil(t, emp)
	logs, err := m.LogsByEmployee(ctx, ali)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestCascadeBatchFailureCommitsNothing(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	svc := NewAdminService(m)

	ali, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	seedLog(t, m, ali, typID, time.Date(2025, 4, 10, 10, 0, 0, 0, time.UTC))

	m.BatchErr = errors.New("rejected")
	require.ErrorIs(t, svc.DeleteCategory(ctx, catID), store.ErrBatchCommitFailed)
	m.BatchErr = nil

	cat, err := m.ResolveCategory(ctx, catID)
	require.NoError(t, err)
	require.NotNil(t, cat)
	typ, err := m.ResolveType(ctx, typID)
	require.NoError(t, err)
	require.NotNil(t, typ)
	logs, err := m.LogsByType(ctx, typID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}
