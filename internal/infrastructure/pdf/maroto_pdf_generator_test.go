package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

func fixedGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: func() time.Time { return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC) }}
}

func TestGenerateCompanyReport_Apta(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := entity.NewCompany("c1", "Logística Mediterránea S.A.", "A46234567", now)
	c.Status = entity.CompanyStatusApta
	d := entity.NewDiagnostic(c.ID, now)
	require.NoError(t, d.Decide(entity.DiagnosticApta, now))
	p := entity.NewProject("p1", c, now)
	p.SpaceName = "Espacio de Datos de Movilidad"

	out, err := fixedGenerator().GenerateCompanyReport(context.Background(), c, d, p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCompanyReport_DescartadaSinProyecto(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	c := entity.NewCompany("c2", "Textiles Norte S.L.", "B48345678", now)
	c.Status = entity.CompanyStatusDescartada
	d := entity.NewDiagnostic(c.ID, now)
	d.Notes = "Sin volumen de datos suficiente por ahora."
	require.NoError(t, d.Decide(entity.DiagnosticNoApta, now))

	out, err := fixedGenerator().GenerateCompanyReport(context.Background(), c, d, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLabels(t *testing.T) {
	assert.NotEqual(t, companyStatusLabel(entity.CompanyStatusApta), companyStatusLabel(entity.CompanyStatusDescartada))
	assert.NotEqual(t, diagnosticResultLabel(entity.DiagnosticApta), diagnosticResultLabel(entity.DiagnosticNoApta))
}
