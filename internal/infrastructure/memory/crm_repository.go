package memory

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

// DiagnosticRepository implementa repository.DiagnosticRepository en memoria.
type DiagnosticRepository struct{ h handle }

var _ repository.DiagnosticRepository = (*DiagnosticRepository)(nil)

// Create inserta el diagnóstico. domain.ErrDuplicate si la empresa ya tiene uno.
func (r *DiagnosticRepository) Create(_ context.Context, d *entity.Diagnostic) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.diagnostics[d.CompanyID]; ok {
			return domain.ErrDuplicate
		}
		t.diagnostics[d.CompanyID] = copyDiagnostic(d)
		return nil
	})
}

// GetByCompany devuelve el diagnóstico o (nil, nil).
func (r *DiagnosticRepository) GetByCompany(_ context.Context, companyID string) (*entity.Diagnostic, error) {
	var out *entity.Diagnostic
	r.h.read(func(t *tables) { out = copyDiagnostic(t.diagnostics[companyID]) })
	return out, nil
}

// GetByCompanyForUpdate equivale a GetByCompany: Run ya serializa las transacciones.
func (r *DiagnosticRepository) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.GetByCompany(ctx, companyID)
}

// UpdatePending guarda d solo si el almacenado sigue pendiente.
func (r *DiagnosticRepository) UpdatePending(_ context.Context, d *entity.Diagnostic) error {
	return r.h.write(func(t *tables) error {
		cur, ok := t.diagnostics[d.CompanyID]
		if !ok {
			return domain.ErrNotFound
		}
		if !cur.Pending() {
			return domain.ErrInvalidState
		}
		t.diagnostics[d.CompanyID] = copyDiagnostic(d)
		return nil
	})
}

// ProjectRepository implementa repository.ProjectRepository en memoria.
type ProjectRepository struct{ h handle }

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

// Create inserta el proyecto. domain.ErrDuplicate si la empresa ya tiene uno.
func (r *ProjectRepository) Create(_ context.Context, p *entity.Project) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.projects[p.CompanyID]; ok {
			return domain.ErrDuplicate
		}
		t.projects[p.CompanyID] = copyProject(p)
		return nil
	})
}

// GetByCompany devuelve el proyecto o (nil, nil).
func (r *ProjectRepository) GetByCompany(_ context.Context, companyID string) (*entity.Project, error) {
	var out *entity.Project
	r.h.read(func(t *tables) { out = copyProject(t.projects[companyID]) })
	return out, nil
}

// GetByCompanyForUpdate equivale a GetByCompany.
func (r *ProjectRepository) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Project, error) {
	return r.GetByCompany(ctx, companyID)
}

// Update reemplaza el proyecto. domain.ErrNotFound si no existe.
func (r *ProjectRepository) Update(_ context.Context, p *entity.Project) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.projects[p.CompanyID]; !ok {
			return domain.ErrNotFound
		}
		t.projects[p.CompanyID] = copyProject(p)
		return nil
	})
}

// IntakeRepository implementa repository.IntakeRepository en memoria.
type IntakeRepository struct{ h handle }

var _ repository.IntakeRepository = (*IntakeRepository)(nil)

// Create inserta el cuestionario. domain.ErrDuplicate si la empresa ya tiene uno.
func (r *IntakeRepository) Create(_ context.Context, in *entity.Intake) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.intakes[in.CompanyID]; ok {
			return domain.ErrDuplicate
		}
		t.intakes[in.CompanyID] = copyIntake(in)
		return nil
	})
}

// GetByCompany devuelve el cuestionario o (nil, nil).
func (r *IntakeRepository) GetByCompany(_ context.Context, companyID string) (*entity.Intake, error) {
	var out *entity.Intake
	r.h.read(func(t *tables) { out = copyIntake(t.intakes[companyID]) })
	return out, nil
}

// GetByCompanyForUpdate equivale a GetByCompany.
func (r *IntakeRepository) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Intake, error) {
	return r.GetByCompany(ctx, companyID)
}

// Update reemplaza el cuestionario. domain.ErrNotFound si no existe.
func (r *IntakeRepository) Update(_ context.Context, in *entity.Intake) error {
	return r.h.write(func(t *tables) error {
		if _, ok := t.intakes[in.CompanyID]; !ok {
			return domain.ErrNotFound
		}
		t.intakes[in.CompanyID] = copyIntake(in)
		return nil
	})
}
