package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/errboardhq/errboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Postgres implements Store on a GORM connection. CommitBatch maps to one
// database transaction, which is the atomic batch primitive this application
// delegates to instead of managing writes itself.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Store = (*Postgres)(nil)

func (c Collection) model() any {
	switch c {
	case Employees:
		return &models.Employee{}
	case ErrorCategories:
		return &models.ErrorCategory{}
	case ErrorTypes:
		return &models.ErrorType{}
	case ErrorLogs:
		return &models.ErrorLog{}
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (p *Postgres) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := p.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) ListCategories(ctx context.Context) ([]models.ErrorCategory, error) {
	var out []models.ErrorCategory
	if err := p.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) ListTypes(ctx context.Context) ([]models.ErrorType, error) {
	var out []models.ErrorType
	if err := p.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) ResolveEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var rec models.Employee
	err := p.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &rec, nil
}

func (p *Postgres) ResolveCategory(ctx context.Context, id uuid.UUID) (*models.ErrorCategory, error) {
	var rec models.ErrorCategory
	err := p.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &rec, nil
}

func (p *Postgres) ResolveType(ctx context.Context, id uuid.UUID) (*models.ErrorType, error) {
	var rec models.ErrorType
	err := p.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return &rec, nil
}

func (p *Postgres) LogsInRange(ctx context.Context, start, end time.Time) ([]models.ErrorLog, error) {
	var out []models.ErrorLog
	err := p.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&out).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) LogsByEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.ErrorLog, error) {
	var out []models.ErrorLog
	if err := p.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) LogsByType(ctx context.Context, typeID uuid.UUID) ([]models.ErrorLog, error) {
	var out []models.ErrorLog
	if err := p.db.WithContext(ctx).Where("type_id = ?", typeID).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) TypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ErrorType, error) {
	var out []models.ErrorType
	if err := p.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&out).Error; err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (p *Postgres) InsertEmployee(ctx context.Context, name string) (uuid.UUID, error) {
	rec := models.Employee{ID: uuid.New(), Name: name}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return uuid.Nil, unavailable(err)
	}
	return rec.ID, nil
}

func (p *Postgres) InsertCategory(ctx context.Context, name string) (uuid.UUID, error) {
	rec := models.ErrorCategory{ID: uuid.New(), Name: name}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return uuid.Nil, unavailable(err)
	}
	return rec.ID, nil
}

func (p *Postgres) InsertType(ctx context.Context, name string, categoryID uuid.UUID) (uuid.UUID, error) {
	rec := models.ErrorType{ID: uuid.New(), Name: name, CategoryID: categoryID}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return uuid.Nil, unavailable(err)
	}
	return rec.ID, nil
}

func (p *Postgres) InsertLog(ctx context.Context, employeeID, typeID uuid.UUID) (uuid.UUID, error) {
	// CreatedAt is filled in by GORM at insert; callers never supply it.
	rec := models.ErrorLog{ID: uuid.New(), EmployeeID: employeeID, TypeID: typeID}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return uuid.Nil, unavailable(err)
	}
	return rec.ID, nil
}

func (p *Postgres) UpdateFields(ctx context.Context, target Ref, fields map[string]any) error {
	err := p.db.WithContext(ctx).
		Model(target.Collection.model()).
		Where("id = ?", target.ID).
		Updates(fields).Error
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (p *Postgres) DeleteOne(ctx context.Context, target Ref) error {
	if err := p.db.WithContext(ctx).Where("id = ?", target.ID).Delete(target.Collection.model()).Error; err != nil {
		return unavailable(err)
	}
	return nil
}

func (p *Postgres) CommitBatch(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			switch op.Kind {
			case OpDelete:
				if err := tx.Where("id = ?", op.Target.ID).Delete(op.Target.Collection.model()).Error; err != nil {
					return err
				}
			case OpUpdate:
				if err := tx.Model(op.Target.Collection.model()).Where("id = ?", op.Target.ID).Updates(op.Fields).Error; err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown op kind %q", op.Kind)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBatchCommitFailed, err)
	}
	return nil
}
