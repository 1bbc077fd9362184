package crm_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/application/crm"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/application/usecase"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
	"github.com/jhoicas/espacio-datos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	asesor = access.Identity{UserID: "asesor-1", Role: entity.RoleAsesor}
	admin  = access.Identity{UserID: "admin-1", Role: entity.RoleAdmin}
)

type env struct {
	store       *memory.Store
	repos       ports.Repos
	companies   *usecase.CompanyUseCase
	diagnostics *crm.DiagnosticUseCase
	projects    *crm.ProjectUseCase
	intakes     *crm.IntakeUseCase
}

func newEnv(t *testing.T, opts crm.ProjectOptions) *env {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	log := zerolog.Nop()
	return &env{
		store:       store,
		repos:       r,
		companies:   usecase.NewCompanyUseCase(store, r.Companies, r.CompanyUsers, r.Users, log),
		diagnostics: crm.NewDiagnosticUseCase(store, r.Diagnostics, r.CompanyUsers, log),
		projects:    crm.NewProjectUseCase(store, r.Projects, r.CompanyUsers, opts, log),
		intakes:     crm.NewIntakeUseCase(store, r.Intakes, r.CompanyUsers),
	}
}

// newCompany da de alta una empresa lead con su cliente y devuelve (companyID, identidad del cliente).
func (e *env) newCompany(t *testing.T, name, nif string) (string, access.Identity) {
	t.Helper()
	ctx := context.Background()
	c, err := e.companies.Create(ctx, asesor, dto.CreateCompanyRequest{Name: name, NIF: nif})
	require.NoError(t, err)
	u, err := e.companies.CreateCompanyUser(ctx, asesor, c.ID, dto.CreateCompanyUserRequest{
		Email:    nif + "@cliente.test",
		Name:     "Cliente " + name,
		Password: "cliente123",
	})
	require.NoError(t, err)
	return c.ID, access.Identity{UserID: u.ID, Role: entity.RoleCliente}
}

func (e *env) company(t *testing.T, id string) *entity.Company {
	t.Helper()
	c, err := e.repos.Companies.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Diagnóstico y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_Apta_CreaProyectoFaseDos(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Acme Datos", "B11111111")

	out, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)

	assert.Equal(t, entity.DiagnosticApta, out.Diagnostic.Result)
	assert.NotNil(t, out.Diagnostic.DecidedAt)
	assert.Equal(t, entity.CompanyStatusApta, out.CompanyStatus)
	require.NotNil(t, out.Project)
	assert.Equal(t, "Incorporación - Acme Datos", out.Project.Title)
	assert.Equal(t, 2, out.Project.Phase)
	assert.Equal(t, entity.IncorporationPendiente, out.Project.IncorporationStatus)

	assert.Equal(t, entity.CompanyStatusApta, e.company(t, companyID).Status)
	p, err := e.repos.Projects.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, out.Project.ID, p.ID)
}

func TestDecide_NoApta_DescartaSinProyecto(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Textil", "B22222222")

	out, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticNoApta)
	require.NoError(t, err)

	assert.Equal(t, entity.CompanyStatusDescartada, out.CompanyStatus)
	assert.Nil(t, out.Project)
	p, err := e.repos.Projects.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDecide_SegundaVez_InvalidStateSinCambios(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Acme", "B33333333")

	_, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)

	_, err = e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticNoApta)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	d, err := e.diagnostics.GetDiagnostic(ctx, asesor, companyID)
	require.NoError(t, err)
	assert.Equal(t, entity.DiagnosticApta, d.Result)
	assert.Equal(t, entity.CompanyStatusApta, e.company(t, companyID).Status)
}

func TestDecide_Concurrente_UnaSolaDecisionYUnSoloProyecto(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Carrera", "B44444444")

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []string
		failures  int
	)
	for i := 0; i < n; i++ {
		result := entity.DiagnosticApta
		if i%2 == 1 {
			result = entity.DiagnosticNoApta
		}
		wg.Add(1)
		go func(result string) {
			defer wg.Done()
			_, err := e.diagnostics.Decide(ctx, asesor, companyID, result)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes = append(successes, result)
				return
			}
			if errors.Is(err, domain.ErrInvalidState) {
				failures++
			}
		}(result)
	}
	wg.Wait()

	require.Len(t, successes, 1, "solo una decisión puede ganar")
	assert.Equal(t, n-1, failures)

	c := e.company(t, companyID)
	assert.Equal(t, entity.CompanyStatusFor(successes[0]), c.Status)
	p, err := e.repos.Projects.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	if successes[0] == entity.DiagnosticApta {
		assert.NotNil(t, p)
	} else {
		assert.Nil(t, p)
	}
}

// failingProjects hace fallar la creación del proyecto dentro de la transacción.
type failingProjects struct {
	repository.ProjectRepository
	err error
}

func (f failingProjects) Create(context.Context, *entity.Project) error { return f.err }

type faultyTx struct {
	inner ports.TxRunner
	err   error
}

func (f faultyTx) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	return f.inner.Run(ctx, func(r ports.Repos) error {
		r.Projects = failingProjects{ProjectRepository: r.Projects, err: f.err}
		return fn(r)
	})
}

func TestDecide_FalloAlCrearProyecto_RollbackCompleto(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Frágil", "B55555555")

	boom := errors.New("disco lleno")
	uc := crm.NewDiagnosticUseCase(faultyTx{inner: e.store, err: boom}, e.repos.Diagnostics, e.repos.CompanyUsers, zerolog.Nop())

	_, err := uc.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.ErrorIs(t, err, boom)

	d, err := e.repos.Diagnostics.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.True(t, d.Pending(), "el diagnóstico no queda decidido")
	assert.Nil(t, d.DecidedAt)
	assert.Equal(t, entity.CompanyStatusLead, e.company(t, companyID).Status)

	// Tras el fallo se puede volver a decidir con normalidad.
	out, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)
	assert.NotNil(t, out.Project)
}

// staleCompanies reproduce una lectura sin bloqueo hecha antes de que otra transacción
// confirmara: GetByID devuelve la foto antigua y GetByIDForUpdate la fila vigente.
type staleCompanies struct {
	repository.CompanyRepository
	snapshot *entity.Company
	locked   *int
}

func (s staleCompanies) GetByID(context.Context, string) (*entity.Company, error) {
	c := *s.snapshot
	return &c, nil
}

func (s staleCompanies) GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	*s.locked++
	return s.CompanyRepository.GetByIDForUpdate(ctx, id)
}

type staleTx struct {
	inner    ports.TxRunner
	snapshot *entity.Company
	locked   *int
}

func (s staleTx) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	return s.inner.Run(ctx, func(r ports.Repos) error {
		r.Companies = staleCompanies{CompanyRepository: r.Companies, snapshot: s.snapshot, locked: s.locked}
		return fn(r)
	})
}

func TestSubmit_TrasDecisionCruzada_NoReabreLaEmpresa(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := e.newCompany(t, "Cruce", "B56000001")
	before := e.company(t, companyID)

	_, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticNoApta)
	require.NoError(t, err)

	var locked int
	uc := crm.NewIntakeUseCase(staleTx{inner: e.store, snapshot: before, locked: &locked}, e.repos.Intakes, e.repos.CompanyUsers)
	_, err = uc.Submit(ctx, cliente, companyID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 1, locked)

	c := e.company(t, companyID)
	assert.Equal(t, entity.CompanyStatusDescartada, c.Status, "el envío no devuelve la empresa a lead")
	assert.Equal(t, entity.IntakeStatusPendiente, c.IntakeStatus)
	in, err := e.repos.Intakes.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, in.Submitted)
}

func TestDecide_TrasEnvioCruzado_ConservaIntakeRecibida(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := e.newCompany(t, "Cruce", "B56000002")
	before := e.company(t, companyID)

	_, err := e.intakes.Submit(ctx, cliente, companyID)
	require.NoError(t, err)

	var locked int
	uc := crm.NewDiagnosticUseCase(staleTx{inner: e.store, snapshot: before, locked: &locked}, e.repos.Diagnostics, e.repos.CompanyUsers, zerolog.Nop())
	out, err := uc.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)
	assert.Equal(t, 1, locked)
	assert.Equal(t, entity.CompanyStatusApta, out.CompanyStatus)

	c := e.company(t, companyID)
	assert.Equal(t, entity.CompanyStatusApta, c.Status)
	assert.Equal(t, entity.IntakeStatusRecibida, c.IntakeStatus, "la decisión no pisa el envío del cuestionario")
}

func TestUpdateCompany_TrasDecisionCruzada_ConservaEstado(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Cruce", "B56000003")
	before := e.company(t, companyID)

	_, err := e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)

	var locked int
	r := e.repos
	uc := usecase.NewCompanyUseCase(staleTx{inner: e.store, snapshot: before, locked: &locked}, r.Companies, r.CompanyUsers, r.Users, zerolog.Nop())
	out, err := uc.Update(ctx, asesor, companyID, dto.UpdateCompanyRequest{ContactName: strPtr("Ana Ruiz")})
	require.NoError(t, err)
	assert.Equal(t, 1, locked)
	assert.Equal(t, entity.CompanyStatusApta, out.Status)

	c := e.company(t, companyID)
	assert.Equal(t, entity.CompanyStatusApta, c.Status, "editar datos no devuelve la empresa a lead")
	assert.Equal(t, "Ana Ruiz", c.ContactName)
}

func TestUpdateDiagnostic_SoloMientrasPendiente(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := e.newCompany(t, "Acme", "B66666666")

	d, err := e.diagnostics.UpdateDiagnostic(ctx, asesor, companyID, dto.UpdateDiagnosticRequest{
		EligibilityOK: boolPtr(true),
		LegalRisk:     strPtr(entity.LegalRiskMedio),
	})
	require.NoError(t, err)
	assert.True(t, d.EligibilityOK)
	assert.Equal(t, entity.LegalRiskMedio, d.LegalRisk)

	_, err = e.diagnostics.UpdateDiagnostic(ctx, asesor, companyID, dto.UpdateDiagnosticRequest{LegalRisk: strPtr("enorme")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.diagnostics.Decide(ctx, asesor, companyID, entity.DiagnosticNoApta)
	require.NoError(t, err)

	_, err = e.diagnostics.UpdateDiagnostic(ctx, asesor, companyID, dto.UpdateDiagnosticRequest{Notes: strPtr("tarde")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := e.repos.Diagnostics.GetByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes)
}

func TestDiagnostic_Permisos(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := e.newCompany(t, "Acme", "B77777777")

	_, err := e.diagnostics.GetDiagnostic(ctx, cliente, companyID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el cliente no ve el diagnóstico completo")

	_, err = e.diagnostics.Decide(ctx, admin, companyID, entity.DiagnosticApta)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.diagnostics.Decide(ctx, access.Identity{UserID: "x"}, companyID, entity.DiagnosticApta)
	assert.ErrorIs(t, err, domain.ErrNoRole)

	_, err = e.diagnostics.Decide(ctx, asesor, "no-existe", entity.DiagnosticApta)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.diagnostics.Decide(ctx, asesor, companyID, "quizas")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.CompanyStatusLead, e.company(t, companyID).Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyecto de incorporación
// ──────────────────────────────────────────────────────────────────────────────

func aptaCompany(t *testing.T, e *env, name, nif string) (string, access.Identity) {
	t.Helper()
	companyID, cliente := e.newCompany(t, name, nif)
	_, err := e.diagnostics.Decide(context.Background(), asesor, companyID, entity.DiagnosticApta)
	require.NoError(t, err)
	return companyID, cliente
}

func TestAdvanceIncorporation_SecuenciaCompleta(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := aptaCompany(t, e, "Acme", "B80000001")

	_, err := e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationCompletada)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se puede saltar en_progreso")

	p, err := e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationEnProgreso)
	require.NoError(t, err)
	assert.Equal(t, entity.IncorporationEnProgreso, p.IncorporationStatus)

	_, err = e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationPendiente)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se puede volver atrás")

	p, err = e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationCompletada)
	require.NoError(t, err)
	assert.Equal(t, entity.IncorporationCompletada, p.IncorporationStatus)

	_, err = e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationEnProgreso)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdvanceIncorporation_ChecklistObligatorio(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{RequireChecklist: true})
	ctx := context.Background()
	companyID, _ := aptaCompany(t, e, "Acme", "B80000002")

	_, err := e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationEnProgreso)
	require.NoError(t, err)

	_, err = e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationCompletada)
	assert.ErrorIs(t, err, domain.ErrChecklistIncomplete)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.projects.UpdateProject(ctx, asesor, companyID, dto.UpdateProjectRequest{
		EspacioSeleccionado: boolPtr(true),
		RolDefinido:         boolPtr(true),
		CasoUsoDefinido:     boolPtr(true),
		ValidacionRGPD:      boolPtr(true),
	})
	require.NoError(t, err)

	p, err := e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationCompletada)
	require.NoError(t, err)
	assert.True(t, p.IncorporationChecklist.Complete())
}

func TestUpdateProject_CamposYAvanceEnUnaPeticion(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, _ := aptaCompany(t, e, "Acme", "B80000003")

	p, err := e.projects.UpdateProject(ctx, asesor, companyID, dto.UpdateProjectRequest{
		SpaceName:           strPtr("Espacio Agro"),
		TargetRole:          strPtr(entity.TargetRoleProveedor),
		IncorporationStatus: strPtr(entity.IncorporationEnProgreso),
	})
	require.NoError(t, err)
	assert.Equal(t, "Espacio Agro", p.SpaceName)
	assert.Equal(t, entity.TargetRoleProveedor, p.TargetRole)
	assert.Equal(t, entity.IncorporationEnProgreso, p.IncorporationStatus)

	// Repetir el estado actual es un avance inválido, igual que en AdvanceIncorporation.
	_, err = e.projects.UpdateProject(ctx, asesor, companyID, dto.UpdateProjectRequest{
		UseCase:             strPtr("Trazabilidad"),
		IncorporationStatus: strPtr(entity.IncorporationEnProgreso),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = e.projects.AdvanceIncorporation(ctx, asesor, companyID, entity.IncorporationEnProgreso)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Sin incorporation_status es solo edición.
	p, err = e.projects.UpdateProject(ctx, asesor, companyID, dto.UpdateProjectRequest{
		UseCase: strPtr("Trazabilidad"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Trazabilidad", p.UseCase)
	assert.Equal(t, entity.IncorporationEnProgreso, p.IncorporationStatus)

	// Un avance inválido descarta también los campos de la misma petición.
	_, err = e.projects.UpdateProject(ctx, asesor, companyID, dto.UpdateProjectRequest{
		SpaceName:           strPtr("Otro"),
		IncorporationStatus: strPtr(entity.IncorporationPendiente),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	got, err := e.projects.GetProject(ctx, asesor, companyID)
	require.NoError(t, err)
	assert.Equal(t, "Espacio Agro", got.SpaceName)
}

func TestProject_ClienteLeeSoloElSuyo(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyA, clienteA := aptaCompany(t, e, "Empresa A", "B80000004")
	companyB, _ := aptaCompany(t, e, "Empresa B", "B80000005")

	p, err := e.projects.GetProject(ctx, clienteA, companyA)
	require.NoError(t, err)
	assert.Equal(t, "Incorporación - Empresa A", p.Title)

	_, err = e.projects.GetProject(ctx, clienteA, companyB)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.projects.AdvanceIncorporation(ctx, clienteA, companyA, entity.IncorporationEnProgreso)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el cliente no avanza su propia incorporación")
}

func TestGetProject_EmpresaLead_NotFound(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	companyID, _ := e.newCompany(t, "Lead", "B80000006")

	_, err := e.projects.GetProject(context.Background(), asesor, companyID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuestionario inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestIntake_BorradorYEnvio(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := e.newCompany(t, "Acme", "B90000001")

	types := []string{"operativos", "geoespaciales"}
	in, err := e.intakes.SaveDraft(ctx, cliente, companyID, dto.SaveIntakeRequest{DataTypes: &types})
	require.NoError(t, err)
	assert.Equal(t, types, in.DataTypes)

	in, err = e.intakes.SaveDraft(ctx, cliente, companyID, dto.SaveIntakeRequest{DataSensitivity: strPtr("alta")})
	require.NoError(t, err)
	assert.Equal(t, types, in.DataTypes, "los campos ausentes conservan su valor")
	assert.Equal(t, "alta", in.DataSensitivity)

	in, err = e.intakes.Submit(ctx, cliente, companyID)
	require.NoError(t, err)
	assert.True(t, in.Submitted)
	assert.NotNil(t, in.SubmittedAt)
	assert.Equal(t, entity.IntakeStatusRecibida, e.company(t, companyID).IntakeStatus)

	_, err = e.intakes.Submit(ctx, cliente, companyID)
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)

	_, err = e.intakes.SaveDraft(ctx, cliente, companyID, dto.SaveIntakeRequest{Notes: strPtr("cambio")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := e.intakes.GetIntake(ctx, asesor, companyID)
	require.NoError(t, err)
	assert.True(t, got.Submitted)
	assert.Empty(t, got.Notes)
}

func TestIntake_ValorInvalido_NoGuarda(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := e.newCompany(t, "Acme", "B90000002")

	_, err := e.intakes.SaveDraft(ctx, cliente, companyID, dto.SaveIntakeRequest{
		DataUsage:       strPtr("compartir"),
		DataSensitivity: strPtr("extrema"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := e.intakes.GetIntake(ctx, cliente, companyID)
	require.NoError(t, err)
	assert.Empty(t, got.DataUsage)
}

func TestIntake_EmpresaDecidida_InvalidState(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyID, cliente := aptaCompany(t, e, "Acme", "B90000003")

	_, err := e.intakes.SaveDraft(ctx, cliente, companyID, dto.SaveIntakeRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = e.intakes.Submit(ctx, cliente, companyID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestIntake_Permisos(t *testing.T) {
	e := newEnv(t, crm.ProjectOptions{})
	ctx := context.Background()
	companyA, clienteA := e.newCompany(t, "Empresa A", "B90000004")
	companyB, _ := e.newCompany(t, "Empresa B", "B90000005")

	_, err := e.intakes.SaveDraft(ctx, clienteA, companyB, dto.SaveIntakeRequest{Notes: strPtr("intruso")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.intakes.GetIntake(ctx, clienteA, companyB)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.intakes.Submit(ctx, asesor, companyA)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el asesor solo lee el cuestionario")

	_, err = e.intakes.GetIntake(ctx, admin, companyA)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
