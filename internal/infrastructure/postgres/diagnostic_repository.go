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

var _ repository.DiagnosticRepository = (*DiagnosticRepo)(nil)

// DiagnosticRepo implementación de DiagnosticRepository sobre PostgreSQL (usable con pool o tx).
type DiagnosticRepo struct {
	q Querier
}

// NewDiagnosticRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiagnosticRepository(q Querier) *DiagnosticRepo {
	return &DiagnosticRepo{q: q}
}

const diagnosticColumns = `company_id, eligibility_ok, space_identified, data_potential,
	legal_risk, notes, result, decided_at, updated_at`

// Create persiste el diagnóstico inicial de una empresa.
func (r *DiagnosticRepo) Create(ctx context.Context, d *entity.Diagnostic) error {
	query := `
		INSERT INTO diagnostics (company_id, eligibility_ok, space_identified, data_potential,
			legal_risk, notes, result, decided_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.CompanyID, d.EligibilityOK, d.SpaceIdentified, d.DataPotential,
		d.LegalRisk, d.Notes, d.Result, d.DecidedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert diagnostic: %w", err)
	}
	return nil
}

// GetByCompany obtiene el diagnóstico de una empresa.
func (r *DiagnosticRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.get(ctx, `SELECT `+diagnosticColumns+` FROM diagnostics WHERE company_id = $1`, companyID)
}

// GetByCompanyForUpdate obtiene el diagnóstico y bloquea la fila (SELECT FOR UPDATE).
// Dos decisiones concurrentes se serializan aquí: la segunda ve el resultado ya fijado.
func (r *DiagnosticRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.get(ctx, `SELECT `+diagnosticColumns+` FROM diagnostics WHERE company_id = $1 FOR UPDATE`, companyID)
}

func (r *DiagnosticRepo) get(ctx context.Context, query, companyID string) (*entity.Diagnostic, error) {
	var d entity.Diagnostic
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&d.CompanyID, &d.EligibilityOK, &d.SpaceIdentified, &d.DataPotential,
		&d.LegalRisk, &d.Notes, &d.Result, &d.DecidedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get diagnostic: %w", err)
	}
	return &d, nil
}

// UpdatePending escribe el diagnóstico solo si en la base sigue pendiente.
func (r *DiagnosticRepo) UpdatePending(ctx context.Context, d *entity.Diagnostic) error {
	query := `
		UPDATE diagnostics SET eligibility_ok = $2, space_identified = $3, data_potential = $4,
			legal_risk = $5, notes = $6, result = $7, decided_at = $8, updated_at = $9
		WHERE company_id = $1 AND result = $10`
	tag, err := r.q.Exec(ctx, query,
		d.CompanyID, d.EligibilityOK, d.SpaceIdentified, d.DataPotential,
		d.LegalRisk, d.Notes, d.Result, d.DecidedAt, d.UpdatedAt,
		entity.DiagnosticPendiente,
	)
	if err != nil {
		return fmt.Errorf("update diagnostic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// O no existe o ya estaba decidido.
		cur, err := r.GetByCompany(ctx, d.CompanyID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidState
	}
	return nil
}
