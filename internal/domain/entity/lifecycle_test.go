package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func strsPtr(v ...string) *[]string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Diagnostic
// ──────────────────────────────────────────────────────────────────────────────

func TestDiagnostic_NuevoEsPendiente(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)

	assert.True(t, d.Pending())
	assert.Equal(t, entity.LegalRiskBajo, d.LegalRisk)
	assert.Nil(t, d.DecidedAt)
}

func TestDiagnostic_ApplyParcial(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)
	require.NoError(t, d.Apply(entity.DiagnosticPatch{EligibilityOK: boolPtr(true), Notes: strPtr("ok")}, now))
	require.NoError(t, d.Apply(entity.DiagnosticPatch{LegalRisk: strPtr(entity.LegalRiskAlto)}, now))

	assert.True(t, d.EligibilityOK, "los campos ausentes conservan su valor")
	assert.Equal(t, "ok", d.Notes)
	assert.Equal(t, entity.LegalRiskAlto, d.LegalRisk)
}

func TestDiagnostic_ApplyRiesgoInvalido_NoModifica(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)
	err := d.Apply(entity.DiagnosticPatch{EligibilityOK: boolPtr(true), LegalRisk: strPtr("extremo")}, now)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, d.EligibilityOK)
}

func TestDiagnostic_DecideUnaSolaVez(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)
	require.NoError(t, d.Decide(entity.DiagnosticApta, now))

	assert.Equal(t, entity.DiagnosticApta, d.Result)
	require.NotNil(t, d.DecidedAt)

	err := d.Decide(entity.DiagnosticNoApta, now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, entity.DiagnosticApta, d.Result, "la segunda decisión no cambia nada")
	assert.Equal(t, now, *d.DecidedAt)
}

func TestDiagnostic_DecidePendiente_EsInvalido(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)
	assert.ErrorIs(t, d.Decide(entity.DiagnosticPendiente, now), domain.ErrInvalidInput)
	assert.True(t, d.Pending())
}

func TestDiagnostic_ApplyTrasDecidir_InvalidState(t *testing.T) {
	d := entity.NewDiagnostic("c1", now)
	require.NoError(t, d.Decide(entity.DiagnosticNoApta, now))

	err := d.Apply(entity.DiagnosticPatch{Notes: strPtr("tarde")}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, d.Notes)
}

func TestCompanyStatusFor(t *testing.T) {
	assert.Equal(t, entity.CompanyStatusApta, entity.CompanyStatusFor(entity.DiagnosticApta))
	assert.Equal(t, entity.CompanyStatusDescartada, entity.CompanyStatusFor(entity.DiagnosticNoApta))
	assert.Equal(t, entity.CompanyStatusLead, entity.CompanyStatusFor(entity.DiagnosticPendiente))
}

// ──────────────────────────────────────────────────────────────────────────────
// Project
// ──────────────────────────────────────────────────────────────────────────────

func TestNewProject_FaseDosYTitulo(t *testing.T) {
	c := entity.NewCompany("c1", "Acme Datos S.L.", "B12345678", now)
	p := entity.NewProject("p1", c, now)

	assert.Equal(t, "Incorporación - Acme Datos S.L.", p.Title)
	assert.Equal(t, entity.ProjectPhaseIncorporacion, p.Phase)
	assert.Equal(t, 2, p.Phase)
	assert.Equal(t, entity.IncorporationPendiente, p.IncorporationStatus)
	assert.False(t, p.Checklist.Complete())
}

func TestProject_AdvanceSoloHaciaDelante(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pendiente a en_progreso", entity.IncorporationPendiente, entity.IncorporationEnProgreso, false},
		{"en_progreso a completada", entity.IncorporationEnProgreso, entity.IncorporationCompletada, false},
		{"salto pendiente a completada", entity.IncorporationPendiente, entity.IncorporationCompletada, true},
		{"retroceso en_progreso a pendiente", entity.IncorporationEnProgreso, entity.IncorporationPendiente, true},
		{"retroceso completada a en_progreso", entity.IncorporationCompletada, entity.IncorporationEnProgreso, true},
		{"mismo estado", entity.IncorporationEnProgreso, entity.IncorporationEnProgreso, true},
		{"completada es final", entity.IncorporationCompletada, entity.IncorporationCompletada, true},
		{"estado desconocido", entity.IncorporationPendiente, "archivada", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &entity.Project{IncorporationStatus: tc.from}
			err := p.Advance(tc.to, now)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				assert.Equal(t, tc.from, p.IncorporationStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, p.IncorporationStatus)
		})
	}
}

func TestProject_ApplyChecklistYRolObjetivo(t *testing.T) {
	p := &entity.Project{IncorporationStatus: entity.IncorporationCompletada}
	err := p.Apply(entity.ProjectPatch{
		TargetRole:          strPtr(entity.TargetRoleProveedor),
		EspacioSeleccionado: boolPtr(true),
		RolDefinido:         boolPtr(true),
		CasoUsoDefinido:     boolPtr(true),
		ValidacionRGPD:      boolPtr(true),
	}, now)

	require.NoError(t, err, "los campos se editan en cualquier estado")
	assert.Equal(t, entity.TargetRoleProveedor, p.TargetRole)
	assert.True(t, p.Checklist.Complete())

	err = p.Apply(entity.ProjectPatch{TargetRole: strPtr("consumidor")}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.TargetRoleProveedor, p.TargetRole)
}

// ──────────────────────────────────────────────────────────────────────────────
// Intake
// ──────────────────────────────────────────────────────────────────────────────

func TestIntake_BorradorParcial(t *testing.T) {
	in := entity.NewIntake("c1", now)
	require.NoError(t, in.Apply(entity.IntakePatch{
		DataTypes: strsPtr("personales", "operativos", "personales"),
		DataUsage: strPtr("compartir"),
	}, now))
	require.NoError(t, in.Apply(entity.IntakePatch{Notes: strPtr("nota")}, now))

	assert.Equal(t, []string{"personales", "operativos"}, in.DataTypes, "los tipos son un conjunto")
	assert.Equal(t, "compartir", in.DataUsage, "los campos ausentes conservan su valor")
	assert.Equal(t, "nota", in.Notes)
	assert.False(t, in.Submitted)
}

func TestIntake_ValorFueraDeCatalogo(t *testing.T) {
	in := entity.NewIntake("c1", now)

	assert.ErrorIs(t, in.Apply(entity.IntakePatch{DataTypes: strsPtr("biometricos")}, now), domain.ErrInvalidInput)
	assert.ErrorIs(t, in.Apply(entity.IntakePatch{MainInterests: strsPtr("vender")}, now), domain.ErrInvalidInput)
	assert.ErrorIs(t, in.Apply(entity.IntakePatch{DataSensitivity: strPtr("critica")}, now), domain.ErrInvalidInput)
	assert.Empty(t, in.DataTypes)
}

func TestIntake_SubmitDosVeces(t *testing.T) {
	in := entity.NewIntake("c1", now)
	require.NoError(t, in.Submit(now))
	require.NotNil(t, in.SubmittedAt)

	err := in.Submit(now.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
	assert.True(t, in.Submitted)
	assert.Equal(t, now, *in.SubmittedAt)
}

func TestIntake_ApplyTrasEnviar_InvalidState(t *testing.T) {
	in := entity.NewIntake("c1", now)
	require.NoError(t, in.Submit(now))

	err := in.Apply(entity.IntakePatch{Notes: strPtr("cambio")}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, in.Notes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Role / Company
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "asesor", "cliente", ""} {
		r, ok := entity.ParseRole(s)
		assert.True(t, ok, s)
		assert.Equal(t, entity.Role(s), r)
	}
	_, ok := entity.ParseRole("bodeguero")
	assert.False(t, ok)

	assert.False(t, entity.RoleUnassigned.Assigned())
	assert.True(t, entity.RoleCliente.Assigned())
}

func TestNewCompany_EmpiezaComoLead(t *testing.T) {
	c := entity.NewCompany("c1", "Acme", "B1", now)

	assert.True(t, c.IsLead())
	assert.Equal(t, entity.IntakeStatusPendiente, c.IntakeStatus)
	assert.True(t, entity.ValidSector(""))
	assert.True(t, entity.ValidSector("Energía"))
	assert.False(t, entity.ValidSector("Minería espacial"))
	assert.False(t, entity.ValidSizeRange("1000+"))
}
