package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorType belongs to one category. CategoryID is a weak reference: a plain
// indexed uuid column with no FK constraint, resolved by lookup. It may dangle
// if the category disappears out of band.
type ErrorType struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
