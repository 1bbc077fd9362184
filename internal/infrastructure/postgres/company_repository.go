package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/jhoicas/espacio-datos-api/pkg/textnorm"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
//
// search_text guarda nombre, NIF, contacto y sector plegados (minúsculas, sin tildes)
// para que el filtro de búsqueda no dependa de la extensión unaccent.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, nif, sector, size_range, country, website,
	contact_name, contact_role, contact_phone, status, intake_status, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, nif, sector, size_range, country, website,
			contact_name, contact_role, contact_phone, status, intake_status, search_text,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.NIF, c.Sector, c.SizeRange, c.Country, c.Website,
		c.ContactName, c.ContactRole, c.ContactPhone, c.Status, c.IntakeStatus, searchText(c),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la empresa y bloquea la fila (SELECT FOR UPDATE).
func (r *CompanyRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id)
}

// GetByNIF obtiene una empresa por NIF.
func (r *CompanyRepo) GetByNIF(ctx context.Context, nif string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE nif = $1`, nif)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update actualiza los datos y el estado de la empresa (el NIF no cambia).
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, sector = $3, size_range = $4, country = $5, website = $6,
			contact_name = $7, contact_role = $8, contact_phone = $9, status = $10,
			intake_status = $11, search_text = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Sector, c.SizeRange, c.Country, c.Website,
		c.ContactName, c.ContactRole, c.ContactPhone, c.Status,
		c.IntakeStatus, searchText(c), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empresas con filtros y paginación, más recientes primero.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := textnorm.Fold(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("search_text LIKE $%d", len(args)))
	}
	query := `SELECT ` + companyColumns + ` FROM companies`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountByStatus devuelve el número de empresas por estado.
func (r *CompanyRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count companies by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// CountIntakeReceived cuenta empresas con el cuestionario recibido.
func (r *CompanyRepo) CountIntakeReceived(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM companies WHERE intake_status = $1`, entity.IntakeStatusRecibida,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count intake received: %w", err)
	}
	return n, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.NIF, &c.Sector, &c.SizeRange, &c.Country, &c.Website,
		&c.ContactName, &c.ContactRole, &c.ContactPhone, &c.Status, &c.IntakeStatus,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func searchText(c *entity.Company) string {
	return textnorm.Fold(strings.Join([]string{c.Name, c.NIF, c.ContactName, c.Sector}, " "))
}

// ── company_users ─────────────────────────────────────────────────────────────

var _ repository.CompanyUserRepository = (*CompanyUserRepo)(nil)

// CompanyUserRepo vínculo empresa ↔ usuario cliente (UNIQUE en ambas columnas).
type CompanyUserRepo struct {
	q Querier
}

// NewCompanyUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyUserRepository(q Querier) *CompanyUserRepo {
	return &CompanyUserRepo{q: q}
}

// Create persiste el vínculo. domain.ErrDuplicate si empresa o usuario ya están vinculados.
func (r *CompanyUserRepo) Create(ctx context.Context, l *entity.CompanyUser) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO company_users (company_id, user_id, created_at) VALUES ($1, $2, $3)`,
		l.CompanyID, l.UserID, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintName(err))
		}
		return fmt.Errorf("insert company user: %w", err)
	}
	return nil
}

// GetByCompany obtiene el vínculo de una empresa.
func (r *CompanyUserRepo) GetByCompany(ctx context.Context, companyID string) (*entity.CompanyUser, error) {
	return r.getOne(ctx, `SELECT company_id, user_id, created_at FROM company_users WHERE company_id = $1`, companyID)
}

// GetByUser obtiene el vínculo de un usuario.
func (r *CompanyUserRepo) GetByUser(ctx context.Context, userID string) (*entity.CompanyUser, error) {
	return r.getOne(ctx, `SELECT company_id, user_id, created_at FROM company_users WHERE user_id = $1`, userID)
}

func (r *CompanyUserRepo) getOne(ctx context.Context, query, arg string) (*entity.CompanyUser, error) {
	var l entity.CompanyUser
	err := r.q.QueryRow(ctx, query, arg).Scan(&l.CompanyID, &l.UserID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company user: %w", err)
	}
	return &l, nil
}
