package dto

import "time"

// CreateCompanyRequest entrada para dar de alta una empresa (lead).
type CreateCompanyRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	NIF          string `json:"nif" validate:"required,min=1,max=20"`
	Sector       string `json:"sector"`
	SizeRange    string `json:"size_range"`
	Country      string `json:"country"`
	Website      string `json:"website"`
	ContactName  string `json:"contact_name"`
	ContactRole  string `json:"contact_role"`
	ContactPhone string `json:"contact_phone"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// El NIF y el estado no se pueden modificar por esta vía.
type UpdateCompanyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Sector       *string `json:"sector"`
	SizeRange    *string `json:"size_range"`
	Country      *string `json:"country"`
	Website      *string `json:"website"`
	ContactName  *string `json:"contact_name"`
	ContactRole  *string `json:"contact_role"`
	ContactPhone *string `json:"contact_phone"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	NIF          string    `json:"nif"`
	Sector       string    `json:"sector"`
	SizeRange    string    `json:"size_range"`
	Country      string    `json:"country"`
	Website      string    `json:"website"`
	ContactName  string    `json:"contact_name"`
	ContactRole  string    `json:"contact_role"`
	ContactPhone string    `json:"contact_phone"`
	Status       string    `json:"status"`
	IntakeStatus string    `json:"intake_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyListRequest filtros de listado (query string).
type CompanyListRequest struct {
	Status string `query:"status"`
	Search string `query:"search"`
	PageRequest
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCompanyUserRequest alta del usuario cliente de una empresa.
type CreateCompanyUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Password string `json:"password" validate:"required,min=6"`
}
