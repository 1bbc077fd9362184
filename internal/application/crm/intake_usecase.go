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
)

// IntakeUseCase gestiona el cuestionario inicial que el cliente rellena mientras su
// empresa está en evaluación (lead). Editable hasta el envío; después, solo lectura.
type IntakeUseCase struct {
	txRunner ports.TxRunner
	intakes  repository.IntakeRepository
	links    repository.CompanyUserRepository
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	txRunner ports.TxRunner,
	intakes repository.IntakeRepository,
	links repository.CompanyUserRepository,
) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner, intakes: intakes, links: links}
}

// GetIntake devuelve el cuestionario (asesor: cualquier empresa; cliente: la suya).
func (uc *IntakeUseCase) GetIntake(ctx context.Context, id access.Identity, companyID string) (*dto.IntakeResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionReadIntake, companyID); err != nil {
		return nil, err
	}
	in, err := uc.intakes.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.ErrNotFound
	}
	return dto.IntakeToResponse(in), nil
}

// SaveDraft guarda el borrador con semántica parcial (los campos ausentes conservan su valor).
// domain.ErrInvalidState si ya se envió o si la empresa ya no está en evaluación.
func (uc *IntakeUseCase) SaveDraft(ctx context.Context, id access.Identity, companyID string, req dto.SaveIntakeRequest) (*dto.IntakeResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionEditIntake, companyID); err != nil {
		return nil, err
	}
	patch := entity.IntakePatch{
		DataTypes:       req.DataTypes,
		DataUsage:       req.DataUsage,
		MainInterests:   req.MainInterests,
		DataSensitivity: req.DataSensitivity,
		Notes:           req.Notes,
	}

	now := time.Now()
	var out *entity.Intake
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		company, err := leadCompany(ctx, r, companyID)
		if err != nil {
			return err
		}
		in, err := r.Intakes.GetByCompanyForUpdate(ctx, company.ID)
		if err != nil {
			return err
		}
		if in == nil {
			in = entity.NewIntake(company.ID, now)
			if err := r.Intakes.Create(ctx, in); err != nil {
				return err
			}
		}
		if err := in.Apply(patch, now); err != nil {
			return err
		}
		if err := r.Intakes.Update(ctx, in); err != nil {
			return err
		}
		out = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.IntakeToResponse(out), nil
}

// Submit envía el cuestionario y marca la empresa con intake_status = recibida.
// Un segundo envío falla con domain.ErrAlreadySubmitted.
func (uc *IntakeUseCase) Submit(ctx context.Context, id access.Identity, companyID string) (*dto.IntakeResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionEditIntake, companyID); err != nil {
		return nil, err
	}

	now := time.Now()
	var out *entity.Intake
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// Orden de bloqueo: empresa y luego cuestionario, igual que en SaveDraft.
		company, err := lockCompany(ctx, r, companyID)
		if err != nil {
			return err
		}
		in, err := r.Intakes.GetByCompanyForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if in == nil {
			return domain.ErrNotFound
		}
		if in.Submitted {
			return domain.ErrAlreadySubmitted
		}
		if !company.IsLead() {
			return domain.ErrInvalidState
		}
		if err := in.Submit(now); err != nil {
			return err
		}
		if err := r.Intakes.Update(ctx, in); err != nil {
			return err
		}
		company.IntakeStatus = entity.IntakeStatusRecibida
		company.UpdatedAt = now
		if err := r.Companies.Update(ctx, company); err != nil {
			return err
		}
		out = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.IntakeToResponse(out), nil
}

// lockCompany lee la empresa con bloqueo de fila; domain.ErrNotFound si no existe.
func lockCompany(ctx context.Context, r ports.Repos, companyID string) (*entity.Company, error) {
	company, err := r.Companies.GetByIDForUpdate(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func leadCompany(ctx context.Context, r ports.Repos, companyID string) (*entity.Company, error) {
	company, err := lockCompany(ctx, r, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsLead() {
		return nil, domain.ErrInvalidState
	}
	return company, nil
}
