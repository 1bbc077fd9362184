package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/crm"
	"github.com/jhoicas/espacio-datos-api/internal/application/dto"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// CRMHandler diagnóstico, proyecto de incorporación y cuestionario de una empresa.
type CRMHandler struct {
	diagnostics *crm.DiagnosticUseCase
	projects    *crm.ProjectUseCase
	intakes     *crm.IntakeUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(diagnostics *crm.DiagnosticUseCase, projects *crm.ProjectUseCase, intakes *crm.IntakeUseCase) *CRMHandler {
	return &CRMHandler{diagnostics: diagnostics, projects: projects, intakes: intakes}
}

// ─── Diagnóstico ──────────────────────────────────────────────────────────────

// GetDiagnostic godoc
// @Summary      Diagnóstico de la empresa
// @Tags         crm
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.DiagnosticResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/diagnostic [get]
func (h *CRMHandler) GetDiagnostic(c *fiber.Ctx) error {
	out, err := h.diagnostics.GetDiagnostic(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateDiagnostic godoc
// @Summary      Editar checklist de elegibilidad
// @Description  Solo mientras el resultado sigue pendiente.
// @Tags         crm
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la empresa"
// @Param        body  body  dto.UpdateDiagnosticRequest  true  "Cambios"
// @Success      200   {object}  dto.DiagnosticResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_STATE si ya hay decisión"
// @Router       /api/companies/{id}/diagnostic [put]
func (h *CRMHandler) UpdateDiagnostic(c *fiber.Ctx) error {
	var in dto.UpdateDiagnosticRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.diagnostics.UpdateDiagnostic(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Decidir diagnóstico
// @Description  apta crea el proyecto de incorporación (fase 2); no_apta descarta la empresa.
// @Tags         crm
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la empresa"
// @Param        body  body  dto.DecideDiagnosticRequest  true  "apta | no_apta"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/diagnostic/decide [post]
func (h *CRMHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideDiagnosticRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Result != entity.DiagnosticApta && in.Result != entity.DiagnosticNoApta {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "result debe ser apta o no_apta"})
	}
	out, err := h.diagnostics.Decide(c.UserContext(), GetIdentity(c), c.Params("id"), in.Result)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ─── Proyecto ─────────────────────────────────────────────────────────────────

// GetProject godoc
// @Summary      Proyecto de incorporación
// @Tags         crm
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/project [get]
func (h *CRMHandler) GetProject(c *fiber.Ctx) error {
	out, err := h.projects.GetProject(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProject godoc
// @Summary      Editar proyecto
// @Description  Si incorporation_status viene informado se aplica como avance de estado.
// @Tags         crm
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateProjectRequest  true  "Cambios"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/project [put]
func (h *CRMHandler) UpdateProject(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.projects.UpdateProject(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdvanceIncorporation godoc
// @Summary      Avanzar estado de incorporación
// @Description  pendiente → en_progreso → completada; nunca hacia atrás.
// @Tags         crm
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                           true  "ID de la empresa"
// @Param        body  body  dto.AdvanceIncorporationRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION | CHECKLIST_INCOMPLETE"
// @Router       /api/companies/{id}/project/incorporation [post]
func (h *CRMHandler) AdvanceIncorporation(c *fiber.Ctx) error {
	var in dto.AdvanceIncorporationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.projects.AdvanceIncorporation(c.UserContext(), GetIdentity(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ─── Cuestionario inicial ─────────────────────────────────────────────────────

// GetIntake godoc
// @Summary      Cuestionario inicial
// @Tags         crm
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/intake [get]
func (h *CRMHandler) GetIntake(c *fiber.Ctx) error {
	out, err := h.intakes.GetIntake(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveIntake godoc
// @Summary      Guardar borrador del cuestionario
// @Tags         crm
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID de la empresa"
// @Param        body  body  dto.SaveIntakeRequest  true  "Respuestas"
// @Success      200   {object}  dto.IntakeResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_STATE si ya se envió"
// @Router       /api/companies/{id}/intake [put]
func (h *CRMHandler) SaveIntake(c *fiber.Ctx) error {
	var in dto.SaveIntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.intakes.SaveDraft(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitIntake godoc
// @Summary      Enviar cuestionario
// @Tags         crm
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      409  {object}  dto.ErrorResponse  "ALREADY_SUBMITTED"
// @Router       /api/companies/{id}/intake/submit [post]
func (h *CRMHandler) SubmitIntake(c *fiber.Ctx) error {
	out, err := h.intakes.Submit(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
