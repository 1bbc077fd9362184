package repository

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// CompanyFilter criterios de listado para el panel del asesor.
// Search busca sin distinguir mayúsculas ni tildes en nombre, NIF y datos de contacto.
type CompanyFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetBy* devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	// Toda lectura que termine en Update debe usarlo: Update reescribe la fila completa.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByNIF(ctx context.Context, nif string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, filter CompanyFilter) ([]*entity.Company, error)
	// CountByStatus devuelve el número de empresas por estado.
	CountByStatus(ctx context.Context) (map[string]int, error)
	CountIntakeReceived(ctx context.Context) (int, error)
}

// CompanyUserRepository vínculo empresa ↔ usuario cliente (0..1 por empresa).
type CompanyUserRepository interface {
	Create(ctx context.Context, link *entity.CompanyUser) error
	GetByCompany(ctx context.Context, companyID string) (*entity.CompanyUser, error)
	GetByUser(ctx context.Context, userID string) (*entity.CompanyUser, error)
}
