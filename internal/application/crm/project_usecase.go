package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// ProjectOptions reglas configurables del proyecto de incorporación.
type ProjectOptions struct {
	// RequireChecklist rechaza el paso a "completada" si falta algún hito del checklist.
	RequireChecklist bool
}

// ProjectUseCase gestiona el proyecto de incorporación de una empresa apta:
// edición de campos/checklist y avance pendiente → en_progreso → completada.
type ProjectUseCase struct {
	txRunner ports.TxRunner
	projects repository.ProjectRepository
	links    repository.CompanyUserRepository
	opts     ProjectOptions
	log      zerolog.Logger
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	txRunner ports.TxRunner,
	projects repository.ProjectRepository,
	links repository.CompanyUserRepository,
	opts ProjectOptions,
	log zerolog.Logger,
) *ProjectUseCase {
	return &ProjectUseCase{
		txRunner: txRunner,
		projects: projects,
		links:    links,
		opts:     opts,
		log:      log,
	}
}

// GetProject devuelve el proyecto de la empresa (asesor o cliente vinculado).
// domain.ErrNotFound si la empresa aún no es apta.
func (uc *ProjectUseCase) GetProject(ctx context.Context, id access.Identity, companyID string) (*dto.ProjectResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionReadProject, companyID); err != nil {
		return nil, err
	}
	p, err := uc.projects.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ProjectToResponse(p), nil
}

// UpdateProject aplica cambios parciales y devuelve el proyecto completo actualizado.
// Los campos se pueden editar en cualquier estado de incorporación. Si la petición trae
// incorporation_status, se trata como un avance (mismas reglas que AdvanceIncorporation,
// repetir el estado actual incluido) y se aplica en la misma transacción que los campos.
func (uc *ProjectUseCase) UpdateProject(ctx context.Context, id access.Identity, companyID string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := access.Authorize(id, access.ActionEditProject); err != nil {
		return nil, err
	}
	patch := entity.ProjectPatch{
		SpaceName:           in.SpaceName,
		TargetRole:          in.TargetRole,
		UseCase:             in.UseCase,
		RGPDChecked:         in.RGPDChecked,
		EspacioSeleccionado: in.EspacioSeleccionado,
		RolDefinido:         in.RolDefinido,
		CasoUsoDefinido:     in.CasoUsoDefinido,
		ValidacionRGPD:      in.ValidacionRGPD,
	}

	now := time.Now()
	var out *entity.Project
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := r.Projects.GetByCompanyForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := p.Apply(patch, now); err != nil {
			return err
		}
		if in.IncorporationStatus != nil {
			if err := uc.advance(p, *in.IncorporationStatus, now); err != nil {
				return err
			}
		}
		if err := r.Projects.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ProjectToResponse(out), nil
}

// AdvanceIncorporation mueve el estado de incorporación un paso hacia delante.
//
// Retorna domain.ErrInvalidTransition para cualquier salto que no sea
// pendiente→en_progreso o en_progreso→completada (incluido volver a "pendiente").
func (uc *ProjectUseCase) AdvanceIncorporation(ctx context.Context, id access.Identity, companyID, to string) (*dto.ProjectResponse, error) {
	if err := access.Authorize(id, access.ActionEditProject); err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		out  *entity.Project
		from string
	)
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		p, err := r.Projects.GetByCompanyForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		from = p.IncorporationStatus
		if err := uc.advance(p, to, now); err != nil {
			return err
		}
		if err := r.Projects.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("user_id", id.UserID).
		Str("from", from).
		Str("to", to).
		Msg("estado de incorporación actualizado")
	return dto.ProjectToResponse(out), nil
}

func (uc *ProjectUseCase) advance(p *entity.Project, to string, now time.Time) error {
	if uc.opts.RequireChecklist && p.IncorporationStatus == entity.IncorporationEnProgreso &&
		to == entity.IncorporationCompletada && !p.Checklist.Complete() {
		return fmt.Errorf("%w: %w", domain.ErrInvalidTransition, domain.ErrChecklistIncomplete)
	}
	return p.Advance(to, now)
}
