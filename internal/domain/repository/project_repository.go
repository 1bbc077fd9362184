package repository

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// ProjectRepository persistencia del proyecto de incorporación (uno por empresa).
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Project, error)
	GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
}
