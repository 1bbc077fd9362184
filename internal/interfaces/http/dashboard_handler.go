package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/analytics"
)

// DashboardHandler paneles de cliente y asesor.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ClientDashboard godoc
// @Summary      Panel del cliente
// @Description  status: sin_empresa | lead | apta | descartada.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ClientDashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/client/dashboard [get]
func (h *DashboardHandler) ClientDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetClientDashboard(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdvisorStats godoc
// @Summary      Contadores del asesor
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AdvisorStatsResponse
// @Router       /api/asesor/stats [get]
func (h *DashboardHandler) AdvisorStats(c *fiber.Ctx) error {
	out, err := h.uc.GetAdvisorStats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
