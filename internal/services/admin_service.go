package services

import (
	"context"
	"errors"
	"strings"

	"github.com/errboardhq/errboard/internal/models"
	"github.com/errboardhq/errboard/internal/store"
	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCategoryNotFound = errors.New("error category not found")
	ErrTypeNotFound     = errors.New("error type not found")
)

// AdminService owns the CRUD surface and the cascade deletes. Every cascade
// runs in two phases: discover all dependents with read queries, then commit
// every deletion in one atomic batch. If discovery fails nothing has been
// scheduled; if the batch fails nothing took effect.
//
// Known gap: a dependent inserted between discovery and commit is not picked
// up and stays dangling (the store offers no cross-batch transaction). Reports
// drop such logs silently.
type AdminService struct {
	store store.Store
}

func NewAdminService(st store.Store) *AdminService {
	return &AdminService{store: st}
}

func (s *AdminService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *AdminService) ListCategories(ctx context.Context) ([]models.ErrorCategory, error) {
	return s.store.ListCategories(ctx)
}

func (s *AdminService) AddEmployee(ctx context.Context, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrEmptyName
	}
	return s.store.InsertEmployee(ctx, name)
}

func (s *AdminService) AddCategory(ctx context.Context, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrEmptyName
	}
	return s.store.InsertCategory(ctx, name)
}

// AddType requires the category to exist at creation time. Afterward the
// reference is maintained only by cascade deletion, not by the store.
func (s *AdminService) AddType(ctx context.Context, name string, categoryID uuid.UUID) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrEmptyName
	}
	cat, err := s.store.ResolveCategory(ctx, categoryID)
	if err != nil {
		return uuid.Nil, err
	}
	if cat == nil {
		return uuid.Nil, ErrCategoryNotFound
	}
	return s.store.InsertType(ctx, name, categoryID)
}

// AddLog records one error against an employee. Both references must resolve
// at creation time; created_at is assigned by the store.
func (s *AdminService) AddLog(ctx context.Context, employeeID, typeID uuid.UUID) (uuid.UUID, error) {
	emp, err := s.store.ResolveEmployee(ctx, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if emp == nil {
		return uuid.Nil, ErrEmployeeNotFound
	}
	typ, err := s.store.ResolveType(ctx, typeID)
	if err != nil {
		return uuid.Nil, err
	}
	if typ == nil {
		return uuid.Nil, ErrTypeNotFound
	}
	return s.store.InsertLog(ctx, employeeID, typeID)
}

// RenameCategory is a single-field update with no cascade.
func (s *AdminService) RenameCategory(ctx context.Context, id uuid.UUID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	cat, err := s.store.ResolveCategory(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}
	return s.store.UpdateFields(ctx, store.Ref{Collection: store.ErrorCategories, ID: id}, map[string]any{"name": newName})
}

// DeleteEmployee removes the employee and every log referencing them in one
// batch.
func (s *AdminService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	logs, err := s.store.LogsByEmployee(ctx, id)
	if err != nil {
		return err
	}
	ops := make([]store.Op, 0, len(logs)+1)
	for _, lg := range logs {
		ops = append(ops, store.Delete(store.ErrorLogs, lg.ID))
	}
	ops = append(ops, store.Delete(store.Employees, id))
	return s.store.CommitBatch(ctx, ops)
}

// DeleteType removes the type and every log referencing it in one batch.
func (s *AdminService) DeleteType(ctx context.Context, id uuid.UUID) error {
	logs, err := s.store.LogsByType(ctx, id)
	if err != nil {
		return err
	}
	ops := make([]store.Op, 0, len(logs)+1)
	for _, lg := range logs {
		ops = append(ops, store.Delete(store.ErrorLogs, lg.ID))
	}
	ops = append(ops, store.Delete(store.ErrorTypes, id))
	return s.store.CommitBatch(ctx, ops)
}

// DeleteCategory fans out category -> types -> logs. Discovery completes
// fully before anything is written; the whole cascade then commits as a
// single batch alongside the category deletion.
func (s *AdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	types, err := s.store.TypesByCategory(ctx, id)
	if err != nil {
		return err
	}
	var ops []store.Op
	for _, t := range types {
		logs, err := s.store.LogsByType(ctx, t.ID)
		if err != nil {
			return err
		}
		for _, lg := range logs {
			ops = append(ops, store.Delete(store.ErrorLogs, lg.ID))
		}
		ops = append(ops, store.Delete(store.ErrorTypes, t.ID))
	}
	ops = append(ops, store.Delete(store.ErrorCategories, id))
	return s.store.CommitBatch(ctx, ops)
}

// DeleteLog removes a single log entry.
func (s *AdminService) DeleteLog(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteOne(ctx, store.Ref{Collection: store.ErrorLogs, ID: id})
}
