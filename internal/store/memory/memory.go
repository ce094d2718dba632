// Package memory provides an in-memory implementation of the store contract
// for tests and ephemeral environments. Batches apply against a cloned state
// that is swapped in only when every operation succeeds, mirroring the
// all-or-nothing guarantee of the real backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/errboardhq/errboard/internal/models"
	"github.com/errboardhq/errboard/internal/store"
	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

type state struct {
	employees  map[uuid.UUID]models.Employee
	categories map[uuid.UUID]models.ErrorCategory
	types      map[uuid.UUID]models.ErrorType
	logs       map[uuid.UUID]models.ErrorLog
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.types {
		c.types[k] = v
	}
	for k, v := range s.logs {
		c.logs[k] = v
	}
	return c
}

func newState() *state {
	return &state{
		employees:  make(map[uuid.UUID]models.Employee),
		categories: make(map[uuid.UUID]models.ErrorCategory),
		types:      make(map[uuid.UUID]models.ErrorType),
		logs:       make(map[uuid.UUID]models.ErrorLog),
	}
}

type Store struct {
	mu sync.RWMutex
	st *state

	// Now supplies server-assigned log timestamps; tests override it to pin
	// created_at values.
	Now func() time.Time

	// ReadErr, when set, makes every read operation fail with
	// ErrStoreUnavailable. BatchErr does the same for CommitBatch with
	// ErrBatchCommitFailed. Both are failure-injection hooks for tests.
	ReadErr  error
	BatchErr error
}

func New() *Store {
	return &Store{st: newState(), Now: func() time.Time { return time.Now().UTC() }}
}

func (m *Store) readErr() error {
	if m.ReadErr != nil {
		return store.ErrStoreUnavailable
	}
	return nil
}

func (m *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	out := make([]models.Employee, 0, len(m.st.employees))
	for _, v := range m.st.employees {
		out = append(out, v)
	}
	return out, nil
}

func (m *Store) ListCategories(ctx context.Context) ([]models.ErrorCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	out := make([]models.ErrorCategory, 0, len(m.st.categories))
	for _, v := range m.st.categories {
		out = append(out, v)
	}
	return out, nil
}

func (m *Store) ListTypes(ctx context.Context) ([]models.ErrorType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	out := make([]models.ErrorType, 0, len(m.st.types))
	for _, v := range m.st.types {
		out = append(out, v)
	}
	return out, nil
}

func (m *Store) ResolveEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	if rec, ok := m.st.employees[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *Store) ResolveCategory(ctx context.Context, id uuid.UUID) (*models.ErrorCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	if rec, ok := m.st.categories[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *Store) ResolveType(ctx context.Context, id uuid.UUID) (*models.ErrorType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	if rec, ok := m.st.types[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *Store) LogsInRange(ctx context.Context, start, end time.Time) ([]models.ErrorLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var out []models.ErrorLog
	for _, lg := range m.st.logs {
		if !lg.CreatedAt.Before(start) && lg.CreatedAt.Before(end) {
			out = append(out, lg)
		}
	}
	return out, nil
}

func (m *Store) LogsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.ErrorLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var out []models.ErrorLog
	for _, lg := range m.st.logs {
		if lg.EmployeeID == employeeID {
			out = append(out, lg)
		}
	}
	return out, nil
}

func (m *Store) LogsByType(ctx context.Context, typeID uuid.UUID) ([]models.ErrorLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var out []models.ErrorLog
	for _, lg := range m.st.logs {
		if lg.TypeID == typeID {
			out = append(out, lg)
		}
	}
	return out, nil
}

func (m *Store) TypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ErrorType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.readErr(); err != nil {
		return nil, err
	}
	var out []models.ErrorType
	for _, t := range m.st.types {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Store) InsertEmployee(ctx context.Context, name string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	rec := models.Employee{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	m.st.employees[rec.ID] = rec
	return rec.ID, nil
}

func (m *Store) InsertCategory(ctx context.Context, name string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	rec := models.ErrorCategory{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	m.st.categories[rec.ID] = rec
	return rec.ID, nil
}

func (m *Store) InsertType(ctx context.Context, name string, categoryID uuid.UUID) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	rec := models.ErrorType{ID: uuid.New(), Name: name, CategoryID: categoryID, CreatedAt: now, UpdatedAt: now}
	m.st.types[rec.ID] = rec
	return rec.ID, nil
}

func (m *Store) InsertLog(ctx context.Context, employeeID, typeID uuid.UUID) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := models.ErrorLog{ID: uuid.New(), EmployeeID: employeeID, TypeID: typeID, CreatedAt: m.Now()}
	m.st.logs[rec.ID] = rec
	return rec.ID, nil
}

func (m *Store) UpdateFields(ctx context.Context, target store.Ref, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return applyUpdate(m.st, target, fields)
}

func (m *Store) DeleteOne(ctx context.Context, target store.Ref) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applyDelete(m.st, target)
	return nil
}

func (m *Store) CommitBatch(ctx context.Context, ops []store.Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BatchErr != nil {
		return store.ErrBatchCommitFailed
	}
	next := m.st.clone()
	for _, op := range ops {
		switch op.Kind {
		case store.OpDelete:
			applyDelete(next, op.Target)
		case store.OpUpdate:
			if err := applyUpdate(next, op.Target, op.Fields); err != nil {
				return store.ErrBatchCommitFailed
			}
		default:
			return store.ErrBatchCommitFailed
		}
	}
	m.st = next
	return nil
}

func applyDelete(st *state, target store.Ref) {
	switch target.Collection {
	case store.Employees:
		delete(st.employees, target.ID)
	case store.ErrorCategories:
		delete(st.categories, target.ID)
	case store.ErrorTypes:
		delete(st.types, target.ID)
	case store.ErrorLogs:
		delete(st.logs, target.ID)
	}
}

func applyUpdate(st *state, target store.Ref, fields map[string]any) error {
	name, _ := fields["name"].(string)
	switch target.Collection {
	case store.Employees:
		if rec, ok := st.employees[target.ID]; ok {
			rec.Name = name
			st.employees[target.ID] = rec
		}
	case store.ErrorCategories:
		if rec, ok := st.categories[target.ID]; ok {
			rec.Name = name
			st.categories[target.ID] = rec
		}
	case store.ErrorTypes:
		if rec, ok := st.types[target.ID]; ok {
			rec.Name = name
			st.types[target.ID] = rec
		}
	case store.ErrorLogs:
		// logs are immutable after creation
	}
	return nil
}
