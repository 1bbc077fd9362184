package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/report"
)

// ReportHandler descarga del informe PDF de una empresa.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Download godoc
// @Summary      Informe PDF de la empresa
// @Description  Requiere diagnóstico decidido.
// @Tags         companies
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INVALID_STATE si el diagnóstico está pendiente"
// @Router       /api/companies/{id}/report.pdf [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	data, filename, err := h.uc.DownloadCompanyReport(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
