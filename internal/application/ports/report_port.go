package ports

import (
	"context"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// ReportGenerator puerto de salida para el informe PDF de diagnóstico e incorporación.
// project es nil cuando la empresa fue descartada.
type ReportGenerator interface {
	GenerateCompanyReport(
		ctx context.Context,
		company *entity.Company,
		diagnostic *entity.Diagnostic,
		project *entity.Project,
	) ([]byte, error)
}
