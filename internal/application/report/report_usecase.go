// Package report genera el informe PDF de diagnóstico e incorporación de una empresa.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/espacio-datos-api/internal/application/ports"
	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/access"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
	"github.com/jhoicas/espacio-datos-api/internal/domain/repository"
)

// ReportUseCase arma los datos del informe y delega el render en ports.ReportGenerator.
type ReportUseCase struct {
	companies   repository.CompanyRepository
	diagnostics repository.DiagnosticRepository
	projects    repository.ProjectRepository
	generator   ports.ReportGenerator
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	companies repository.CompanyRepository,
	diagnostics repository.DiagnosticRepository,
	projects repository.ProjectRepository,
	generator ports.ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		companies:   companies,
		diagnostics: diagnostics,
		projects:    projects,
		generator:   generator,
	}
}

// DownloadCompanyReport genera el PDF de la empresa.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la empresa no existe.
//   - domain.ErrInvalidState     si el diagnóstico sigue pendiente.
func (uc *ReportUseCase) DownloadCompanyReport(
	ctx context.Context,
	id access.Identity,
	companyID string,
) (pdfBytes []byte, filename string, err error) {
	if err := access.Authorize(id, access.ActionDownloadReport); err != nil {
		return nil, "", err
	}

	// ── 1. Cargar empresa ─────────────────────────────────────────────────────
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("informe: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Solo con diagnóstico decidido ──────────────────────────────────────
	diag, err := uc.diagnostics.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("informe: obtener diagnóstico: %w", err)
	}
	if diag == nil {
		return nil, "", domain.ErrNotFound
	}
	if diag.Pending() {
		return nil, "", fmt.Errorf("%w: el diagnóstico aún no tiene decisión", domain.ErrInvalidState)
	}

	// ── 3. Proyecto (solo aptas) ──────────────────────────────────────────────
	var project *entity.Project
	if company.Status == entity.CompanyStatusApta {
		project, err = uc.projects.GetByCompany(ctx, companyID)
		if err != nil {
			return nil, "", fmt.Errorf("informe: obtener proyecto: %w", err)
		}
	}

	// ── 4. Render ─────────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateCompanyReport(ctx, company, diag, project)
	if err != nil {
		return nil, "", fmt.Errorf("informe: generar PDF: %w", err)
	}
	return pdfBytes, "informe-" + strings.ToLower(company.NIF) + ".pdf", nil
}
