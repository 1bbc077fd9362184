// Package seed carga datos iniciales desde un fixture YAML. Es idempotente: los usuarios
// se identifican por email y las empresas por NIF, y lo que ya existe no se toca.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/crm"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/usecase"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoFixture []byte

// Fixture contenido del YAML.
type Fixture struct {
	Users     []UserFixture    `yaml:"users"`
	Companies []CompanyFixture `yaml:"companies"`
}

// UserFixture usuario suelto (role vacío = sin rol).
type UserFixture struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// CompanyFixture empresa con su cliente y el punto del ciclo de vida al que llevarla.
type CompanyFixture struct {
	Name         string             `yaml:"name"`
	NIF          string             `yaml:"nif"`
	Sector       string             `yaml:"sector"`
	SizeRange    string             `yaml:"size_range"`
	Country      string             `yaml:"country"`
	Website      string             `yaml:"website"`
	ContactName  string             `yaml:"contact_name"`
	ContactRole  string             `yaml:"contact_role"`
	ContactPhone string             `yaml:"contact_phone"`
	Client       *UserFixture       `yaml:"client"`
	Diagnostic   *DiagnosticFixture `yaml:"diagnostic"`
	Intake       *IntakeFixture     `yaml:"intake"`
	Project      *ProjectFixture    `yaml:"project"`
}

// DiagnosticFixture checklist y decisión opcional (apta | no_apta).
type DiagnosticFixture struct {
	EligibilityOK   bool   `yaml:"eligibility_ok"`
	SpaceIdentified bool   `yaml:"space_identified"`
	DataPotential   bool   `yaml:"data_potential"`
	LegalRisk       string `yaml:"legal_risk"`
	Notes           string `yaml:"notes"`
	Decide          string `yaml:"decide"`
}

// IntakeFixture respuestas del cuestionario; Submit lo envía.
type IntakeFixture struct {
	DataTypes       []string `yaml:"data_types"`
	DataUsage       string   `yaml:"data_usage"`
	MainInterests   []string `yaml:"main_interests"`
	DataSensitivity string   `yaml:"data_sensitivity"`
	Notes           string   `yaml:"notes"`
	Submit          bool     `yaml:"submit"`
}

// ProjectFixture datos del proyecto (solo empresas aptas).
type ProjectFixture struct {
	SpaceName           string `yaml:"space_name"`
	TargetRole          string `yaml:"target_role"`
	UseCase             string `yaml:"use_case"`
	RGPDChecked         bool   `yaml:"rgpd_checked"`
	EspacioSeleccionado bool   `yaml:"espacio_seleccionado"`
	RolDefinido         bool   `yaml:"rol_definido"`
	CasoUsoDefinido     bool   `yaml:"caso_uso_definido"`
	ValidacionRGPD      bool   `yaml:"validacion_rgpd"`
	AdvanceTo           string `yaml:"advance_to"`
}

// Parse decodifica un fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: yaml inválido: %w", err)
	}
	return &f, nil
}

// Load lee el fixture de path, o el embebido si path está vacío.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Parse(demoFixture)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Result resumen de lo creado.
type Result struct {
	Users     []string `json:"users"`
	Companies []string `json:"companies"`
}

// Seeder aplica un fixture recorriendo los mismos casos de uso que la API, de modo que
// los datos demo respetan el ciclo de vida (decisión, proyecto, intake).
type Seeder struct {
	users       repository.UserRepository
	companyRepo repository.CompanyRepository
	companies   *usecase.CompanyUseCase
	diagnostics *crm.DiagnosticUseCase
	projects    *crm.ProjectUseCase
	intakes     *crm.IntakeUseCase
	log         zerolog.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(
	users repository.UserRepository,
	companyRepo repository.CompanyRepository,
	companies *usecase.CompanyUseCase,
	diagnostics *crm.DiagnosticUseCase,
	projects *crm.ProjectUseCase,
	intakes *crm.IntakeUseCase,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:       users,
		companyRepo: companyRepo,
		companies:   companies,
		diagnostics: diagnostics,
		projects:    projects,
		intakes:     intakes,
		log:         log,
	}
}

// seedAdvisor identidad con la que se ejecutan las operaciones de asesor.
var seedAdvisor = access.Identity{UserID: "seed", Role: entity.RoleAsesor}

// Apply carga el fixture. Lo que ya existe (email / NIF) se omite.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Result, error) {
	res := &Result{Users: []string{}, Companies: []string{}}
	for _, u := range f.Users {
		created, err := s.ensureUser(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			res.Users = append(res.Users, u.Email)
		}
	}
	for _, c := range f.Companies {
		created, err := s.ensureCompany(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("seed: empresa %s: %w", c.NIF, err)
		}
		if created {
			res.Companies = append(res.Companies, c.NIF)
		}
	}
	s.log.Info().
		Int("users", len(res.Users)).
		Int("companies", len(res.Companies)).
		Msg("datos iniciales cargados")
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u UserFixture) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	role, ok := entity.ParseRole(u.Role)
	if !ok {
		return false, fmt.Errorf("seed: rol desconocido %q para %s", u.Role, email)
	}
	hash, err := auth.HashPassword(u.Password)
	if err != nil {
		return false, err
	}
	now := time.Now()
	err = s.users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         u.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) ensureCompany(ctx context.Context, c CompanyFixture) (bool, error) {
	existing, err := s.companyRepo.GetByNIF(ctx, strings.ToUpper(strings.TrimSpace(c.NIF)))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	company, err := s.companies.Create(ctx, seedAdvisor, dto.CreateCompanyRequest{
		Name:         c.Name,
		NIF:          c.NIF,
		Sector:       c.Sector,
		SizeRange:    c.SizeRange,
		Country:      c.Country,
		Website:      c.Website,
		ContactName:  c.ContactName,
		ContactRole:  c.ContactRole,
		ContactPhone: c.ContactPhone,
	})
	if err != nil {
		return false, err
	}

	var client access.Identity
	if c.Client != nil {
		u, err := s.companies.CreateCompanyUser(ctx, seedAdvisor, company.ID, dto.CreateCompanyUserRequest{
			Email:    c.Client.Email,
			Name:     c.Client.Name,
			Password: c.Client.Password,
		})
		if err != nil {
			return false, err
		}
		client = access.Identity{UserID: u.ID, Role: entity.RoleCliente}
	}

	// El intake solo se puede rellenar mientras la empresa es lead: va antes de la decisión.
	if c.Intake != nil && client.Authenticated() {
		if err := s.fillIntake(ctx, client, company.ID, c.Intake); err != nil {
			return false, err
		}
	}
	if c.Diagnostic != nil {
		if err := s.applyDiagnostic(ctx, company.ID, c.Diagnostic); err != nil {
			return false, err
		}
	}
	if c.Project != nil && c.Diagnostic != nil && c.Diagnostic.Decide == entity.DiagnosticApta {
		if err := s.fillProject(ctx, company.ID, c.Project); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *Seeder) fillIntake(ctx context.Context, client access.Identity, companyID string, in *IntakeFixture) error {
	_, err := s.intakes.SaveDraft(ctx, client, companyID, dto.SaveIntakeRequest{
		DataTypes:       &in.DataTypes,
		DataUsage:       &in.DataUsage,
		MainInterests:   &in.MainInterests,
		DataSensitivity: &in.DataSensitivity,
		Notes:           &in.Notes,
	})
	if err != nil {
		return err
	}
	if in.Submit {
		_, err = s.intakes.Submit(ctx, client, companyID)
	}
	return err
}

func (s *Seeder) applyDiagnostic(ctx context.Context, companyID string, d *DiagnosticFixture) error {
	legalRisk := d.LegalRisk
	if legalRisk == "" {
		legalRisk = entity.LegalRiskBajo
	}
	_, err := s.diagnostics.UpdateDiagnostic(ctx, seedAdvisor, companyID, dto.UpdateDiagnosticRequest{
		EligibilityOK:   &d.EligibilityOK,
		SpaceIdentified: &d.SpaceIdentified,
		DataPotential:   &d.DataPotential,
		LegalRisk:       &legalRisk,
		Notes:           &d.Notes,
	})
	if err != nil {
		return err
	}
	if d.Decide != "" {
		_, err = s.diagnostics.Decide(ctx, seedAdvisor, companyID, d.Decide)
	}
	return err
}

func (s *Seeder) fillProject(ctx context.Context, companyID string, p *ProjectFixture) error {
	_, err := s.projects.UpdateProject(ctx, seedAdvisor, companyID, dto.UpdateProjectRequest{
		SpaceName:           &p.SpaceName,
		TargetRole:          &p.TargetRole,
		UseCase:             &p.UseCase,
		RGPDChecked:         &p.RGPDChecked,
		EspacioSeleccionado: &p.EspacioSeleccionado,
		RolDefinido:         &p.RolDefinido,
		CasoUsoDefinido:     &p.CasoUsoDefinido,
		ValidacionRGPD:      &p.ValidacionRGPD,
	})
	if err != nil {
		return err
	}
	// Avanza paso a paso hasta el estado pedido.
	for _, step := range []string{entity.IncorporationEnProgreso, entity.IncorporationCompletada} {
		if p.AdvanceTo == "" {
			break
		}
		if _, err := s.projects.AdvanceIncorporation(ctx, seedAdvisor, companyID, step); err != nil {
			return err
		}
		if step == p.AdvanceTo {
			break
		}
	}
	return nil
}
