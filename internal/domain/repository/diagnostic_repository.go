package repository

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// DiagnosticRepository persistencia del diagnóstico (uno por empresa).
type DiagnosticRepository interface {
	Create(ctx context.Context, d *entity.Diagnostic) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Diagnostic, error)
	// GetByCompanyForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error)
	// UpdatePending guarda el diagnóstico solo si en base de datos sigue pendiente;
	// si ya estaba decidido devuelve domain.ErrInvalidState sin escribir nada.
	UpdatePending(ctx context.Context, d *entity.Diagnostic) error
}
