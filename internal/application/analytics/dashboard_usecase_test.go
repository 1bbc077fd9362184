package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/application/analytics"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: los datos se escriben directamente en el store en memoria.
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newDashboard(t *testing.T) (*analytics.DashboardUseCase, ports.Repos) {
	t.Helper()
	r := memory.NewStore().Repos()
	uc := analytics.NewDashboardUseCase(analytics.DashboardRepos{
		Companies:    r.Companies,
		CompanyUsers: r.CompanyUsers,
		Users:        r.Users,
		Diagnostics:  r.Diagnostics,
		Projects:     r.Projects,
		Intakes:      r.Intakes,
	})
	return uc, r
}

func addUser(t *testing.T, r ports.Repos, role entity.Role) access.Identity {
	t.Helper()
	u := &entity.User{ID: uuid.New().String(), Email: uuid.New().String() + "@test", Role: role, CreatedAt: now}
	require.NoError(t, r.Users.Create(context.Background(), u))
	return access.Identity{UserID: u.ID, Role: role}
}

// addCompany crea una empresa en el estado pedido, con diagnóstico, intake y,
// si es apta, proyecto. Vincula al cliente si se indica.
func addCompany(t *testing.T, r ports.Repos, status string, client *access.Identity, intakeSubmitted bool) *entity.Company {
	t.Helper()
	ctx := context.Background()
	c := entity.NewCompany(uuid.New().String(), "Empresa "+status, uuid.New().String()[:9], now)
	c.Status = status
	if intakeSubmitted {
		c.IntakeStatus = entity.IntakeStatusRecibida
	}
	require.NoError(t, r.Companies.Create(ctx, c))

	d := entity.NewDiagnostic(c.ID, now)
	switch status {
	case entity.CompanyStatusApta:
		require.NoError(t, d.Decide(entity.DiagnosticApta, now))
		require.NoError(t, r.Projects.Create(ctx, entity.NewProject(uuid.New().String(), c, now)))
	case entity.CompanyStatusDescartada:
		require.NoError(t, d.Decide(entity.DiagnosticNoApta, now))
	}
	require.NoError(t, r.Diagnostics.Create(ctx, d))

	in := entity.NewIntake(c.ID, now)
	if intakeSubmitted {
		require.NoError(t, in.Submit(now))
	}
	require.NoError(t, r.Intakes.Create(ctx, in))

	if client != nil {
		require.NoError(t, r.CompanyUsers.Create(ctx, &entity.CompanyUser{CompanyID: c.ID, UserID: client.UserID, CreatedAt: now}))
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestClientDashboard_SinEmpresa(t *testing.T) {
	uc, r := newDashboard(t)
	cliente := addUser(t, r, entity.RoleCliente)

	out, err := uc.GetClientDashboard(context.Background(), cliente)
	require.NoError(t, err)

	assert.Equal(t, dto.ClientDashboardSinEmpresa, out.Status)
	assert.Equal(t, analytics.MsgSinEmpresa, out.Message)
	assert.Nil(t, out.Company)
	assert.Nil(t, out.Project)
	assert.Nil(t, out.DiagnosticSummary)
}

func TestClientDashboard_Lead(t *testing.T) {
	uc, r := newDashboard(t)
	cliente := addUser(t, r, entity.RoleCliente)
	addCompany(t, r, entity.CompanyStatusLead, &cliente, false)

	out, err := uc.GetClientDashboard(context.Background(), cliente)
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusLead, out.Status)
	assert.Equal(t, analytics.MsgLeadPendiente, out.Message)
	require.NotNil(t, out.Company)
	require.NotNil(t, out.Intake)
	assert.False(t, out.Intake.Submitted)
	assert.Nil(t, out.DiagnosticSummary, "sin decisión no hay resumen")
	assert.Nil(t, out.Project)
}

func TestClientDashboard_LeadConCuestionarioEnviado(t *testing.T) {
	uc, r := newDashboard(t)
	cliente := addUser(t, r, entity.RoleCliente)
	addCompany(t, r, entity.CompanyStatusLead, &cliente, true)

	out, err := uc.GetClientDashboard(context.Background(), cliente)
	require.NoError(t, err)
	assert.Equal(t, analytics.MsgLeadRecibido, out.Message)
	assert.True(t, out.Intake.Submitted)
}

func TestClientDashboard_AptaIncluyeProyecto(t *testing.T) {
	uc, r := newDashboard(t)
	cliente := addUser(t, r, entity.RoleCliente)
	c := addCompany(t, r, entity.CompanyStatusApta, &cliente, true)

	out, err := uc.GetClientDashboard(context.Background(), cliente)
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusApta, out.Status)
	assert.Equal(t, analytics.MsgApta, out.Message)
	require.NotNil(t, out.Project)
	assert.Equal(t, "Incorporación - "+c.Name, out.Project.Title)
	require.NotNil(t, out.DiagnosticSummary)
	assert.Equal(t, entity.DiagnosticApta, out.DiagnosticSummary.Result)
}

func TestClientDashboard_DescartadaSinProyecto(t *testing.T) {
	uc, r := newDashboard(t)
	cliente := addUser(t, r, entity.RoleCliente)
	addCompany(t, r, entity.CompanyStatusDescartada, &cliente, false)

	out, err := uc.GetClientDashboard(context.Background(), cliente)
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusDescartada, out.Status)
	assert.Equal(t, analytics.MsgDescartada, out.Message)
	assert.Nil(t, out.Project)
	require.NotNil(t, out.DiagnosticSummary)
	assert.Equal(t, entity.DiagnosticNoApta, out.DiagnosticSummary.Result)
}

func TestClientDashboard_SoloCliente(t *testing.T) {
	uc, r := newDashboard(t)

	_, err := uc.GetClientDashboard(context.Background(), addUser(t, r, entity.RoleAsesor))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetClientDashboard(context.Background(), addUser(t, r, entity.RoleUnassigned))
	assert.ErrorIs(t, err, domain.ErrNoRole)

	_, err = uc.GetClientDashboard(context.Background(), access.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contadores
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvisorStats(t *testing.T) {
	uc, r := newDashboard(t)
	asesor := addUser(t, r, entity.RoleAsesor)
	addCompany(t, r, entity.CompanyStatusLead, nil, false)
	addCompany(t, r, entity.CompanyStatusLead, nil, true)
	addCompany(t, r, entity.CompanyStatusApta, nil, true)
	addCompany(t, r, entity.CompanyStatusDescartada, nil, false)

	out, err := uc.GetAdvisorStats(context.Background(), asesor)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.Lead)
	assert.Equal(t, 1, out.Apta)
	assert.Equal(t, 1, out.Descartada)
	assert.Equal(t, 2, out.IntakeRecibida)

	_, err = uc.GetAdvisorStats(context.Background(), addUser(t, r, entity.RoleCliente))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdminStats(t *testing.T) {
	uc, r := newDashboard(t)
	admin := addUser(t, r, entity.RoleAdmin)
	addUser(t, r, entity.RoleAsesor)
	addUser(t, r, entity.RoleCliente)
	addUser(t, r, entity.RoleCliente)
	addUser(t, r, entity.RoleUnassigned)

	out, err := uc.GetAdminStats(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Total)
	assert.Equal(t, 1, out.Admin)
	assert.Equal(t, 1, out.Asesor)
	assert.Equal(t, 2, out.Cliente)
	assert.Equal(t, 1, out.Unassigned)

	_, err = uc.GetAdminStats(context.Background(), addUser(t, r, entity.RoleAsesor))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
