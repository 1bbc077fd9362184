package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// CompanyUseCase alta, edición y listado de empresas, y alta de su usuario cliente.
type CompanyUseCase struct {
	txRunner ports.TxRunner
	repo     repository.CompanyRepository
	links    repository.CompanyUserRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	txRunner ports.TxRunner,
	repo repository.CompanyRepository,
	links repository.CompanyUserRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{txRunner: txRunner, repo: repo, links: links, users: users, log: log}
}

// Create da de alta una empresa en estado lead junto con su diagnóstico pendiente y su
// cuestionario vacío, en una sola transacción. domain.ErrDuplicate si el NIF ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, id access.Identity, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := access.Authorize(id, access.ActionManageCompanies); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	nif := strings.ToUpper(strings.TrimSpace(in.NIF))
	if name == "" || nif == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidSector(in.Sector) || !entity.ValidSizeRange(in.SizeRange) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	company := entity.NewCompany(uuid.New().String(), name, nif, now)
	company.Sector = in.Sector
	company.SizeRange = in.SizeRange
	company.Country = in.Country
	company.Website = in.Website
	company.ContactName = in.ContactName
	company.ContactRole = in.ContactRole
	company.ContactPhone = in.ContactPhone

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Companies.GetByNIF(ctx, nif)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		if err := r.Diagnostics.Create(ctx, entity.NewDiagnostic(company.ID, now)); err != nil {
			return err
		}
		return r.Intakes.Create(ctx, entity.NewIntake(company.ID, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", company.ID).
		Str("user_id", id.UserID).
		Msg("empresa creada")
	return dto.CompanyToResponse(company), nil
}

// GetByID obtiene una empresa. El cliente solo puede ver la suya.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id access.Identity, companyID string) (*dto.CompanyResponse, error) {
	if err := access.AuthorizeCompany(ctx, uc.links, id, access.ActionReadCompany, companyID); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return dto.CompanyToResponse(company), nil
}

// Update modifica los datos descriptivos. El NIF y el estado no cambian por esta vía.
func (uc *CompanyUseCase) Update(ctx context.Context, id access.Identity, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := access.Authorize(id, access.ActionManageCompanies); err != nil {
		return nil, err
	}
	if in.Sector != nil && !entity.ValidSector(*in.Sector) {
		return nil, domain.ErrInvalidInput
	}
	if in.SizeRange != nil && !entity.ValidSizeRange(*in.SizeRange) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.Company
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			company.Name = strings.TrimSpace(*in.Name)
		}
		setIfPresent(&company.Sector, in.Sector)
		setIfPresent(&company.SizeRange, in.SizeRange)
		setIfPresent(&company.Country, in.Country)
		setIfPresent(&company.Website, in.Website)
		setIfPresent(&company.ContactName, in.ContactName)
		setIfPresent(&company.ContactRole, in.ContactRole)
		setIfPresent(&company.ContactPhone, in.ContactPhone)
		company.UpdatedAt = time.Now()
		if err := r.Companies.Update(ctx, company); err != nil {
			return err
		}
		out = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.CompanyToResponse(out), nil
}

// List lista empresas filtrando por estado y texto libre, con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, id access.Identity, in dto.CompanyListRequest) (*dto.CompanyListResponse, error) {
	if err := access.Authorize(id, access.ActionManageCompanies); err != nil {
		return nil, err
	}
	if in.Status != "" && !entity.ValidCompanyStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()
	if in.Limit > 100 {
		in.Limit = 100
	}
	list, err := uc.repo.List(ctx, repository.CompanyFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.CompanyToResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// CreateCompanyUser da de alta el usuario cliente de la empresa y lo vincula.
//
// Retorna:
//   - domain.ErrDuplicate si la empresa ya tiene usuario.
//   - domain.ErrEmailAlreadyExists si el email pertenece a otra cuenta.
func (uc *CompanyUseCase) CreateCompanyUser(ctx context.Context, id access.Identity, companyID string, in dto.CreateCompanyUserRequest) (*dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionCreateClientUser); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleCliente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		company, err := r.Companies.GetByIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		link, err := r.CompanyUsers.GetByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if link != nil {
			return domain.ErrDuplicate
		}
		existing, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		return r.CompanyUsers.Create(ctx, &entity.CompanyUser{CompanyID: companyID, UserID: user.ID, CreatedAt: now})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("client_user_id", user.ID).
		Str("user_id", id.UserID).
		Msg("usuario cliente creado")
	return dto.UserToResponse(user), nil
}

// GetCompanyUser devuelve el usuario cliente vinculado. domain.ErrNotFound si no hay.
func (uc *CompanyUseCase) GetCompanyUser(ctx context.Context, id access.Identity, companyID string) (*dto.UserResponse, error) {
	if err := access.Authorize(id, access.ActionCreateClientUser); err != nil {
		return nil, err
	}
	link, err := uc.links.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, link.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return dto.UserToResponse(user), nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
