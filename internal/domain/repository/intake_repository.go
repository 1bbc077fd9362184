package repository

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// IntakeRepository persistencia del cuestionario de intake (uno por empresa).
type IntakeRepository interface {
	Create(ctx context.Context, in *entity.Intake) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Intake, error)
	GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Intake, error)
	Update(ctx context.Context, in *entity.Intake) error
}
