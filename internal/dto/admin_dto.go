package dto

import "github.com/google/uuid"

type CreateEmployeeRequest struct {
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	Name string `json:"name"`
}

type CreateTypeRequest struct {
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
}

type CreateLogRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	TypeID     uuid.UUID `json:"type_id"`
}

type CreatedResponse struct {
	Error bool      `json:"error"`
	ID    uuid.UUID `json:"id"`
}
