package services

import (
	"context"
	"fmt"
	"time"

	"github.com/errboardhq/errboard/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DeletedCategoryLabel stands in for the category name of an error type whose
// category no longer exists. Types keep showing up in admin lists under this
// label; logs with any broken reference are dropped from reports instead.
const DeletedCategoryLabel = "Deleted Category"

// PopulatedErrorLog is a report row: one error log flattened together with the
// employee, type and category it references. It is derived, never persisted.
type PopulatedErrorLog struct {
	ID                uuid.UUID `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	EmployeeID        uuid.UUID `json:"employee_id"`
	EmployeeName      string    `json:"employee_name"`
	ErrorTypeName     string    `json:"error_type_name"`
	ErrorCategoryID   uuid.UUID `json:"error_category_id"`
	ErrorCategoryName string    `json:"error_category_name"`
}

// ErrorTypeView is an error type with its category name resolved (or the
// deleted-category sentinel).
type ErrorTypeView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
}

// MonthlyReport bundles the flat rows with the aggregates the three dashboard
// charts consume: category breakdown, per-employee counts, and the stacked
// category-by-employee matrix.
type MonthlyReport struct {
	Month              int                       `json:"month"`
	Year               int                       `json:"year"`
	Rows               []PopulatedErrorLog       `json:"rows"`
	ByCategory         map[string]int            `json:"by_category"`
	ByEmployee         map[string]int            `json:"by_employee"`
	ByEmployeeCategory map[string]map[string]int `json:"by_employee_category"`
}

type ReportService struct {
	store store.Store
}

func NewReportService(st store.Store) *ReportService {
	return &ReportService{store: st}
}

// monthWindow returns the half-open interval [first day of month, first day
// of next month) in UTC. AddDate rolls the year at month 12.
func monthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// FilteredErrorLogs returns one row per log in the given month whose full
// reference chain (employee -> type -> category) resolves. Logs with any
// dangling reference are silently excluded. References are resolved
// concurrently, one goroutine per log, and the call returns only after every
// resolution finished; row order is unspecified.
func (s *ReportService) FilteredErrorLogs(ctx context.Context, month, year int) ([]PopulatedErrorLog, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	start, end := monthWindow(year, month)
	logs, err := s.store.LogsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]*PopulatedErrorLog, len(logs))
	g, gctx := errgroup.WithContext(ctx)
	for i, lg := range logs {
		i, lg := i, lg
		g.Go(func() error {
			emp, err := s.store.ResolveEmployee(gctx, lg.EmployeeID)
			if err != nil {
				return err
			}
			typ, err := s.store.ResolveType(gctx, lg.TypeID)
			if err != nil {
				return err
			}
			if emp == nil || typ == nil {
				return nil
			}
			cat, err := s.store.ResolveCategory(gctx, typ.CategoryID)
			if err != nil {
				return err
			}
			if cat == nil {
				return nil
			}
			rows[i] = &PopulatedErrorLog{
				ID:                lg.ID,
				CreatedAt:         lg.CreatedAt,
				EmployeeID:        emp.ID,
				EmployeeName:      emp.Name,
				ErrorTypeName:     typ.Name,
				ErrorCategoryID:   cat.ID,
				ErrorCategoryName: cat.Name,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]PopulatedErrorLog, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// ErrorTypes lists every error type with its category name resolved. A type
// whose category was deleted is labeled with DeletedCategoryLabel rather than
// dropped — the opposite policy from log rows, so admins can still see and
// clean up orphaned types.
func (s *ReportService) ErrorTypes(ctx context.Context) ([]ErrorTypeView, error) {
	types, err := s.store.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ErrorTypeView, len(types))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			cat, err := s.store.ResolveCategory(gctx, t.CategoryID)
			if err != nil {
				return err
			}
			name := DeletedCategoryLabel
			if cat != nil {
				name = cat.Name
			}
			views[i] = ErrorTypeView{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID, CategoryName: name}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// Monthly builds the full report for one month: flat rows plus the chart
// aggregates folded from them.
func (s *ReportService) Monthly(ctx context.Context, month, year int) (*MonthlyReport, error) {
	rows, err := s.FilteredErrorLogs(ctx, month, year)
	if err != nil {
		return nil, err
	}

	rep := &MonthlyReport{
		Month:              month,
		Year:               year,
		Rows:               rows,
		ByCategory:         make(map[string]int),
		ByEmployee:         make(map[string]int),
		ByEmployeeCategory: make(map[string]map[string]int),
	}
	for _, r := range rows {
		rep.ByCategory[r.ErrorCategoryName]++
		rep.ByEmployee[r.EmployeeName]++
		if rep.ByEmployeeCategory[r.EmployeeName] == nil {
			rep.ByEmployeeCategory[r.EmployeeName] = make(map[string]int)
		}
		rep.ByEmployeeCategory[r.EmployeeName][r.ErrorCategoryName]++
	}
	return rep, nil
}
