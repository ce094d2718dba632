package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/errboardhq/errboard/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolveAbsentIsNotAnError(t *testing.T) {
	ctx := context.Background()
	m := New()

	emp, err := m.ResolveEmployee(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, emp)

	cat, err := m.ResolveCategory(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, cat)

	typ, err := m.ResolveType(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, typ)
}

func TestLogsInRangeHalfOpen(t *testing.T) {
	ctx := context.Background()
	m := New()

	empID, err := m.InsertEmployee(ctx, "Ali")
	require.NoError(t, err)
	catID, err := m.InsertCategory(ctx, "Formatting")
	require.NoError(t, err)
	typID, err := m.InsertType(ctx, "Typo", catID)
	require.NoError(t, err)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	m.Now = fixedClock(start) // exactly on the start boundary
	onStart, err := m.InsertLog(ctx, empID, typID)
	require.NoError(t, err)

	m.Now = fixedClock(end.Add(-time.Second))
	inside, err := m.InsertLog(ctx, empID, typID)
	require.NoError(t, err)

	m.Now = fixedClock(end) // exactly on the end boundary
	onEnd, err := m.InsertLog(ctx, empID, typID)
	require.NoError(t, err)

	logs, err := m.LogsInRange(ctx, start, end)
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool, len(logs))
	for _, lg := range logs {
		ids[lg.ID] = true
	}
	require.True(t, ids[onStart], "start boundary must be included")
	require.True(t, ids[inside])
	require.False(t, ids[onEnd], "end boundary must be excluded")
}

func TestCommitBatchAppliesAllOps(t *testing.T) {
	ctx := context.Background()
	m := New()

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	logID, _ := m.InsertLog(ctx, empID, typID)

	err := m.CommitBatch(ctx, []store.Op{
		store.Delete(store.ErrorLogs, logID),
		store.Delete(store.Employees, empID),
		store.Update(store.ErrorCategories, catID, map[string]any{"name": "Layout"}),
	})
	require.NoError(t, err)

	emp, err := m.ResolveEmployee(ctx, empID)
	require.NoError(t, err)
	require.Nil(t, emp)

	logs, err := m.LogsByEmployee(ctx, empID)
	require.NoError(t, err)
	require.Empty(t, logs)

	cat, err := m.ResolveCategory(ctx, catID)
	require.NoError(t, err)
	require.NotNil(t, cat)
	require.Equal(t, "Layout", cat.Name)

	// unrelated record untouched
	typ, err := m.ResolveType(ctx, typID)
	require.NoError(t, err)
	require.NotNil(t, typ)
}

func TestCommitBatchFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	m := New()

	empID, _ := m.InsertEmployee(ctx, "Ali")
	catID, _ := m.InsertCategory(ctx, "Formatting")
	typID, _ := m.InsertType(ctx, "Typo", catID)
	logID, _ := m.InsertLog(ctx, empID, typID)

	m.BatchErr = errors.New("boom")
	err := m.CommitBatch(ctx, []store.Op{
		store.Delete(store.ErrorLogs, logID),
		store.Delete(store.Employees, empID),
	})
	require.ErrorIs(t, err, store.ErrBatchCommitFailed)
	m.BatchErr = nil

	emp, err := m.ResolveEmployee(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, emp)

	logs, err := m.LogsByType(ctx, typID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestReadErrInjection(t *testing.T) {
	ctx := context.Background()
	m := New()
	m.ReadErr = errors.New("down")

	_, err := m.ListEmployees(ctx)
	require.ErrorIs(t, err, store.ErrStoreUnavailable)

	_, err = m.LogsInRange(ctx, time.Now().Add(-time.Hour), time.Now())
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}
