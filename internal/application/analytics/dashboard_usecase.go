// Package analytics contiene las proyecciones de solo lectura de los paneles:
// el panel del cliente y los contadores de asesor y administrador.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

// Mensajes del panel del cliente.
const (
	MsgSinEmpresa    = "Tu cuenta aún no está vinculada a ninguna empresa. Contacta con tu asesor."
	MsgLeadPendiente = "Tu empresa está en evaluación. Completa el cuestionario inicial para agilizar el diagnóstico."
	MsgLeadRecibido  = "Hemos recibido tu cuestionario. Tu asesor está evaluando la información."
	MsgApta          = "¡Enhorabuena! Tu empresa es apta para incorporarse al espacio de datos."
	MsgDescartada    = "Tras el diagnóstico, tu empresa no cumple actualmente los requisitos para incorporarse al espacio de datos."
)

// DashboardRepos lecturas que necesita el panel.
type DashboardRepos struct {
	Companies    repository.CompanyRepository
	CompanyUsers repository.CompanyUserRepository
	Users        repository.UserRepository
	Diagnostics  repository.DiagnosticRepository
	Projects     repository.ProjectRepository
	Intakes      repository.IntakeRepository
}

// DashboardUseCase proyecciones de solo lectura; nunca modifica estado.
type DashboardUseCase struct {
	repos DashboardRepos
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos DashboardRepos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos}
}

// GetClientDashboard construye el panel del cliente autenticado.
//
// Status es "sin_empresa" si el usuario no está vinculado; en otro caso coincide con el
// estado de la empresa (lead, apta, descartada). El proyecto solo aparece si es apta y
// el resumen de diagnóstico solo si ya hay decisión.
func (uc *DashboardUseCase) GetClientDashboard(ctx context.Context, id access.Identity) (*dto.ClientDashboardResponse, error) {
	if err := access.Authorize(id, access.ActionViewClientPanel); err != nil {
		return nil, err
	}
	link, err := uc.repos.CompanyUsers.GetByUser(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: vínculo: %w", err)
	}
	if link == nil {
		return &dto.ClientDashboardResponse{
			Status:  dto.ClientDashboardSinEmpresa,
			Message: MsgSinEmpresa,
		}, nil
	}

	// ── Lecturas en paralelo ──────────────────────────────────────────────────
	type companyResult struct {
		c   *entity.Company
		err error
	}
	type diagnosticResult struct {
		d   *entity.Diagnostic
		err error
	}
	type projectResult struct {
		p   *entity.Project
		err error
	}
	type intakeResult struct {
		in  *entity.Intake
		err error
	}

	companyCh := make(chan companyResult, 1)
	diagCh := make(chan diagnosticResult, 1)
	projectCh := make(chan projectResult, 1)
	intakeCh := make(chan intakeResult, 1)

	go func() {
		c, err := uc.repos.Companies.GetByID(ctx, link.CompanyID)
		companyCh <- companyResult{c, err}
	}()
	go func() {
		d, err := uc.repos.Diagnostics.GetByCompany(ctx, link.CompanyID)
		diagCh <- diagnosticResult{d, err}
	}()
	go func() {
		p, err := uc.repos.Projects.GetByCompany(ctx, link.CompanyID)
		projectCh <- projectResult{p, err}
	}()
	go func() {
		in, err := uc.repos.Intakes.GetByCompany(ctx, link.CompanyID)
		intakeCh <- intakeResult{in, err}
	}()

	company := <-companyCh
	diag := <-diagCh
	project := <-projectCh
	intake := <-intakeCh

	if company.err != nil {
		return nil, fmt.Errorf("dashboard: empresa: %w", company.err)
	}
	if diag.err != nil {
		return nil, fmt.Errorf("dashboard: diagnóstico: %w", diag.err)
	}
	if project.err != nil {
		return nil, fmt.Errorf("dashboard: proyecto: %w", project.err)
	}
	if intake.err != nil {
		return nil, fmt.Errorf("dashboard: intake: %w", intake.err)
	}
	if company.c == nil {
		// Vínculo huérfano: se trata como usuario sin empresa.
		return &dto.ClientDashboardResponse{
			Status:  dto.ClientDashboardSinEmpresa,
			Message: MsgSinEmpresa,
		}, nil
	}

	out := &dto.ClientDashboardResponse{
		Status:  company.c.Status,
		Message: clientMessage(company.c, intake.in),
		Company: dto.CompanyToResponse(company.c),
		Intake:  dto.IntakeToResponse(intake.in),
	}
	if diag.d != nil && !diag.d.Pending() {
		out.DiagnosticSummary = &dto.DiagnosticSummary{Result: diag.d.Result, DecidedAt: diag.d.DecidedAt}
	}
	if company.c.Status == entity.CompanyStatusApta {
		out.Project = dto.ProjectToResponse(project.p)
	}
	return out, nil
}

func clientMessage(c *entity.Company, in *entity.Intake) string {
	switch c.Status {
	case entity.CompanyStatusApta:
		return MsgApta
	case entity.CompanyStatusDescartada:
		return MsgDescartada
	default:
		if in != nil && in.Submitted {
			return MsgLeadRecibido
		}
		return MsgLeadPendiente
	}
}

// GetAdvisorStats contadores de empresas por estado y cuestionarios recibidos.
func (uc *DashboardUseCase) GetAdvisorStats(ctx context.Context, id access.Identity) (*dto.AdvisorStatsResponse, error) {
	if err := access.Authorize(id, access.ActionViewAdvisorStats); err != nil {
		return nil, err
	}
	type countsResult struct {
		byStatus map[string]int
		err      error
	}
	type intakeResult struct {
		n   int
		err error
	}
	countsCh := make(chan countsResult, 1)
	intakeCh := make(chan intakeResult, 1)

	go func() {
		m, err := uc.repos.Companies.CountByStatus(ctx)
		countsCh <- countsResult{m, err}
	}()
	go func() {
		n, err := uc.repos.Companies.CountIntakeReceived(ctx)
		intakeCh <- intakeResult{n, err}
	}()

	counts := <-countsCh
	intake := <-intakeCh
	if counts.err != nil {
		return nil, fmt.Errorf("stats: empresas por estado: %w", counts.err)
	}
	if intake.err != nil {
		return nil, fmt.Errorf("stats: intakes recibidos: %w", intake.err)
	}

	out := &dto.AdvisorStatsResponse{
		Lead:           counts.byStatus[entity.CompanyStatusLead],
		Apta:           counts.byStatus[entity.CompanyStatusApta],
		Descartada:     counts.byStatus[entity.CompanyStatusDescartada],
		IntakeRecibida: intake.n,
	}
	out.Total = out.Lead + out.Apta + out.Descartada
	return out, nil
}

// GetAdminStats contadores de usuarios por rol.
func (uc *DashboardUseCase) GetAdminStats(ctx context.Context, id access.Identity) (*dto.AdminStatsResponse, error) {
	if err := access.Authorize(id, access.ActionViewAdminStats); err != nil {
		return nil, err
	}
	byRole, err := uc.repos.Users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: usuarios por rol: %w", err)
	}
	out := &dto.AdminStatsResponse{
		Admin:      byRole[entity.RoleAdmin],
		Asesor:     byRole[entity.RoleAsesor],
		Cliente:    byRole[entity.RoleCliente],
		Unassigned: byRole[entity.RoleUnassigned],
	}
	out.Total = out.Admin + out.Asesor + out.Cliente + out.Unassigned
	return out, nil
}
