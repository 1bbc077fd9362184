package ports

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Companies    repository.CompanyRepository
	CompanyUsers repository.CompanyUserRepository
	Users        repository.UserRepository
	Diagnostics  repository.DiagnosticRepository
	Projects     repository.ProjectRepository
	Intakes      repository.IntakeRepository
}

// TxRunner ejecuta fn dentro de una unidad de trabajo: Commit si fn devuelve nil,
// Rollback completo en cualquier otro caso. Es lo que garantiza que decidir un
// diagnóstico, cambiar el estado de la empresa y crear el proyecto ocurran juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
