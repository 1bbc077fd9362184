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

var _ repository.IntakeRepository = (*IntakeRepo)(nil)

// IntakeRepo implementación de IntakeRepository sobre PostgreSQL. Las listas se guardan como text[].
type IntakeRepo struct {
	q Querier
}

// NewIntakeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIntakeRepository(q Querier) *IntakeRepo {
	return &IntakeRepo{q: q}
}

const intakeColumns = `company_id, data_types, data_usage, main_interests, data_sensitivity,
	notes, submitted, submitted_at, updated_at`

// Create persiste el cuestionario vacío de una empresa.
func (r *IntakeRepo) Create(ctx context.Context, in *entity.Intake) error {
	query := `
		INSERT INTO intakes (` + intakeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		in.CompanyID, nonNil(in.DataTypes), in.DataUsage, nonNil(in.MainInterests), in.DataSensitivity,
		in.Notes, in.Submitted, in.SubmittedAt, in.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert intake: %w", err)
	}
	return nil
}

// GetByCompany obtiene el cuestionario de una empresa.
func (r *IntakeRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Intake, error) {
	return r.get(ctx, `SELECT `+intakeColumns+` FROM intakes WHERE company_id = $1`, companyID)
}

// GetByCompanyForUpdate obtiene el cuestionario y bloquea la fila (SELECT FOR UPDATE).
func (r *IntakeRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Intake, error) {
	return r.get(ctx, `SELECT `+intakeColumns+` FROM intakes WHERE company_id = $1 FOR UPDATE`, companyID)
}

func (r *IntakeRepo) get(ctx context.Context, query, companyID string) (*entity.Intake, error) {
	var in entity.Intake
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&in.CompanyID, &in.DataTypes, &in.DataUsage, &in.MainInterests, &in.DataSensitivity,
		&in.Notes, &in.Submitted, &in.SubmittedAt, &in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intake: %w", err)
	}
	in.DataTypes = nonNil(in.DataTypes)
	in.MainInterests = nonNil(in.MainInterests)
	return &in, nil
}

// Update guarda el borrador o el envío.
func (r *IntakeRepo) Update(ctx context.Context, in *entity.Intake) error {
	query := `
		UPDATE intakes SET data_types = $2, data_usage = $3, main_interests = $4,
			data_sensitivity = $5, notes = $6, submitted = $7, submitted_at = $8, updated_at = $9
		WHERE company_id = $1`
	tag, err := r.q.Exec(ctx, query,
		in.CompanyID, nonNil(in.DataTypes), in.DataUsage, nonNil(in.MainInterests),
		in.DataSensitivity, in.Notes, in.Submitted, in.SubmittedAt, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update intake: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nonNil evita NULL en columnas text[] NOT NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
