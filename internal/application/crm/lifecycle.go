package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// applyDecision mantiene Company.status coherente con el resultado del diagnóstico y crea
// el proyecto de incorporación cuando la empresa es apta. Debe ejecutarse con los repos
// de la misma transacción que fijó el resultado: si algo falla aquí, la decisión tampoco se guarda.
func applyDecision(ctx context.Context, r ports.Repos, companyID, result string, now time.Time) (*entity.Company, *entity.Project, error) {
	company, err := r.Companies.GetByIDForUpdate(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !company.IsLead() {
		return nil, nil, domain.ErrInvalidState
	}

	company.Status = entity.CompanyStatusFor(result)
	company.UpdatedAt = now
	if err := r.Companies.Update(ctx, company); err != nil {
		return nil, nil, err
	}

	if result != entity.DiagnosticApta {
		return company, nil, nil
	}

	// Un proyecto por empresa aunque la decisión llegara dos veces hasta aquí.
	existing, err := r.Projects.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return company, existing, nil
	}
	project := entity.NewProject(uuid.New().String(), company, now)
	if err := r.Projects.Create(ctx, project); err != nil {
		return nil, nil, err
	}
	return company, project, nil
}
