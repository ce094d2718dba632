// Package store defines the reference-store contract the dashboard is built
// on: per-collection reads, resolve-or-absent reference lookups, a half-open
// range query over log timestamps, and an atomic multi-operation batch commit.
// The backing database enforces no referential integrity between collections;
// cross-collection references are plain ids resolved by explicit lookup.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/errboardhq/errboard/internal/models"
	"github.com/google/uuid"
)

// Collection names the four logical record sets.
type Collection string

const (
	Employees       Collection = "employees"
	ErrorCategories Collection = "error_categories"
	ErrorTypes      Collection = "error_types"
	ErrorLogs       Collection = "error_logs"
)

// Ref addresses one record by collection and identity. It is weak: the target
// may no longer exist by the time it is resolved.
type Ref struct {
	Collection Collection
	ID         uuid.UUID
}

var (
	// ErrStoreUnavailable wraps transport or read failures. Nothing was
	// committed; the call is safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrBatchCommitFailed wraps a rejected batch. None of the batched
	// operations took effect; the call is safe to retry.
	ErrBatchCommitFailed = errors.New("batch commit failed")
)

type OpKind string

const (
	OpDelete OpKind = "delete"
	OpUpdate OpKind = "update"
)

// Op is one entry of a batch: a delete or a field update against a single
// record. Batches apply all-or-nothing.
type Op struct {
	Kind   OpKind
	Target Ref
	Fields map[string]any
}

func Delete(c Collection, id uuid.UUID) Op {
	return Op{Kind: OpDelete, Target: Ref{Collection: c, ID: id}}
}

func Update(c Collection, id uuid.UUID, fields map[string]any) Op {
	return Op{Kind: OpUpdate, Target: Ref{Collection: c, ID: id}, Fields: fields}
}

// Store is the contract between application code and the backing database.
//
// Resolve* methods return (nil, nil) when the target record does not exist;
// absence is the signal for a dangling reference, not an error. List and
// query results carry no ordering guarantee.
type Store interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListCategories(ctx context.Context) ([]models.ErrorCategory, error)
	ListTypes(ctx context.Context) ([]models.ErrorType, error)

	ResolveEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	ResolveCategory(ctx context.Context, id uuid.UUID) (*models.ErrorCategory, error)
	ResolveType(ctx context.Context, id uuid.UUID) (*models.ErrorType, error)

	// LogsInRange filters on created_at over the half-open interval
	// [start, end): boundary timestamps equal to start are included, equal
	// to end are excluded.
	LogsInRange(ctx context.Context, start, end time.Time) ([]models.ErrorLog, error)
	LogsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.ErrorLog, error)
	LogsByType(ctx context.Context, typeID uuid.UUID) ([]models.ErrorLog, error)
	TypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ErrorType, error)

	InsertEmployee(ctx context.Context, name string) (uuid.UUID, error)
	InsertCategory(ctx context.Context, name string) (uuid.UUID, error)
	InsertType(ctx context.Context, name string, categoryID uuid.UUID) (uuid.UUID, error)
	// InsertLog assigns created_at server-side; the caller never supplies it.
	InsertLog(ctx context.Context, employeeID, typeID uuid.UUID) (uuid.UUID, error)

	UpdateFields(ctx context.Context, target Ref, fields map[string]any) error
	DeleteOne(ctx context.Context, target Ref) error

	// CommitBatch applies every op atomically: either all of them become
	// visible or none do. On failure it returns ErrBatchCommitFailed and
	// prior state is unchanged.
	CommitBatch(ctx context.Context, ops []Op) error
}
