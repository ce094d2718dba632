package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorLog is one logged mistake. EmployeeID and TypeID are weak references
// (no FK constraints); CreatedAt is assigned server-side on insert and never
// updated afterward.
type ErrorLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	TypeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"type_id"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}
