package crm

import (
	"context"
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// DiagnosticUseCase gestiona el checklist de elegibilidad y la decisión apta / no apta.
//
// Los campos solo se editan mientras el resultado es "pendiente". Decide es la única vía
// para fijar el resultado y arrastra, en la misma transacción, el cambio de estado de la
// empresa y la creación del proyecto (ver applyDecision).
type DiagnosticUseCase struct {
	txRunner    ports.TxRunner
	diagnostics repository.DiagnosticRepository
	links       repository.CompanyUserRepository
	log         zerolog.Logger
}

// NewDiagnosticUseCase construye el caso de uso.
func NewDiagnosticUseCase(
	txRunner ports.TxRunner,
	diagnostics repository.DiagnosticRepository,
	links repository.CompanyUserRepository,
	log zerolog.Logger,
) *DiagnosticUseCase {
	return &DiagnosticUseCase{
		txRunner:    txRunner,
		diagnostics: diagnostics,
		links:       links,
		log:         log,
	}
}

// GetDiagnostic devuelve el diagnóstico de la empresa.
func (uc *DiagnosticUseCase) GetDiagnostic(ctx context.Context, id access.Identity, companyID string) (*dto.DiagnosticResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionReadDiagnostic, companyID); err != nil {
		return nil, err
	}
	d, err := uc.diagnostics.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return dto.DiagnosticToResponse(d), nil
}

// UpdateDiagnostic aplica cambios parciales al checklist.
//
// Retorna:
//   - domain.ErrInvalidState si el diagnóstico ya está decidido (no se escribe nada).
//   - domain.ErrInvalidInput si legal_risk no es bajo/medio/alto.
func (uc *DiagnosticUseCase) UpdateDiagnostic(ctx context.Context, id access.Identity, companyID string, in dto.UpdateDiagnosticRequest) (*dto.DiagnosticResponse, error) {
	if err := access.Authorize(id, access.ActionEditDiagnostic); err != nil {
		return nil, err
	}
	d, err := uc.diagnostics.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	patch := entity.DiagnosticPatch{
		EligibilityOK:   in.EligibilityOK,
		SpaceIdentified: in.SpaceIdentified,
		DataPotential:   in.DataPotential,
		LegalRisk:       in.LegalRisk,
		Notes:           in.Notes,
	}
	if err := d.Apply(patch, time.Now()); err != nil {
		return nil, err
	}
	// Escritura condicionada a result = pendiente: si un Decide se cruzó, falla con ErrInvalidState.
	if err := uc.diagnostics.UpdatePending(ctx, d); err != nil {
		return nil, err
	}
	return dto.DiagnosticToResponse(d), nil
}

// Decide fija el resultado del diagnóstico (apta | no_apta) una sola vez.
// Una segunda llamada, concurrente o no, falla con domain.ErrInvalidState y no cambia nada.
func (uc *DiagnosticUseCase) Decide(ctx context.Context, id access.Identity, companyID, result string) (*dto.DecisionResponse, error) {
	if err := access.Authorize(id, access.ActionDecideDiagnostic); err != nil {
		return nil, err
	}
	if result != entity.DiagnosticApta && result != entity.DiagnosticNoApta {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out dto.DecisionResponse
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		d, err := r.Diagnostics.GetByCompanyForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if err := d.Decide(result, now); err != nil {
			return err
		}
		if err := r.Diagnostics.UpdatePending(ctx, d); err != nil {
			return err
		}
		company, project, err := applyDecision(ctx, r, companyID, result, now)
		if err != nil {
			return err
		}
		out = dto.DecisionResponse{
			Diagnostic:    *dto.DiagnosticToResponse(d),
			CompanyStatus: company.Status,
			Project:       dto.ProjectToResponse(project),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("user_id", id.UserID).
		Str("result", result).
		Str("company_status", out.CompanyStatus).
		Msg("diagnóstico decidido")
	return &out, nil
}
