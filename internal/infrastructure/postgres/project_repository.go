package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, company_id, title, phase, status, incorporation_status,
	space_name, target_role, use_case, rgpd_checked,
	espacio_seleccionado, rol_definido, caso_uso_definido, validacion_rgpd,
	created_at, updated_at`

// Create persiste el proyecto. domain.ErrDuplicate si la empresa ya tiene uno (UNIQUE company_id).
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Phase, p.Status, p.IncorporationStatus,
		p.SpaceName, p.TargetRole, p.UseCase, p.RGPDChecked,
		p.Checklist.EspacioSeleccionado, p.Checklist.RolDefinido,
		p.Checklist.CasoUsoDefinido, p.Checklist.ValidacionRGPD,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByCompany obtiene el proyecto de una empresa.
func (r *ProjectRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE company_id = $1`, companyID)
}

// GetByCompanyForUpdate obtiene el proyecto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProjectRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE company_id = $1 FOR UPDATE`, companyID)
}

func (r *ProjectRepo) get(ctx context.Context, query, companyID string) (*entity.Project, error) {
	var p entity.Project
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Phase, &p.Status, &p.IncorporationStatus,
		&p.SpaceName, &p.TargetRole, &p.UseCase, &p.RGPDChecked,
		&p.Checklist.EspacioSeleccionado, &p.Checklist.RolDefinido,
		&p.Checklist.CasoUsoDefinido, &p.Checklist.ValidacionRGPD,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza campos, checklist y estado de incorporación.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET status = $2, incorporation_status = $3, space_name = $4,
			target_role = $5, use_case = $6, rgpd_checked = $7,
			espacio_seleccionado = $8, rol_definido = $9, caso_uso_definido = $10,
			validacion_rgpd = $11, updated_at = $12
		WHERE company_id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.CompanyID, p.Status, p.IncorporationStatus, p.SpaceName,
		p.TargetRole, p.UseCase, p.RGPDChecked,
		p.Checklist.EspacioSeleccionado, p.Checklist.RolDefinido, p.Checklist.CasoUsoDefinido,
		p.Checklist.ValidacionRGPD, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
