package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/espacio-datos-api/internal/application/analytics"
	"github.com/jhoicas/espacio-datos-api/internal/application/auth"
	"github.com/jhoicas/espacio-datos-api/internal/application/crm"
	"github.com/jhoicas/espacio-datos-api/internal/application/report"
	"github.com/jhoicas/espacio-datos-api/internal/application/usecase"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	CompanyUC    *usecase.CompanyUseCase
	DiagnosticUC *crm.DiagnosticUseCase
	ProjectUC    *crm.ProjectUseCase
	IntakeUC     *crm.IntakeUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportUC     *report.ReportUseCase
	JWTSecret    string
}

var (
	roleAdmin   = string(entity.RoleAdmin)
	roleAsesor  = string(entity.RoleAsesor)
	roleCliente = string(entity.RoleCliente)
)

// Router registra las rutas de la API.
//
// El rol se comprueba dos veces: RequireRole corta en la ruta y los casos de uso
// vuelven a autorizar con la identidad (incluido el vínculo empresa-cliente).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y usuario existente)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), LoadIdentity(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Administración de usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.DashboardUC)
	users := protected.Group("/users", RequireRole(roleAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	protected.Get("/admin/stats", RequireRole(roleAdmin), userHandler.Stats)

	// Empresas
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	crmHandler := NewCRMHandler(deps.DiagnosticUC, deps.ProjectUC, deps.IntakeUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	asesor := RequireRole(roleAsesor)
	asesorOrCliente := RequireRole(roleAsesor, roleCliente)
	cliente := RequireRole(roleCliente)

	companies := protected.Group("/companies")
	companies.Get("/", asesor, companyHandler.List)
	companies.Post("/", asesor, companyHandler.Create)
	companies.Get("/:id", asesorOrCliente, companyHandler.GetByID)
	companies.Put("/:id", asesor, companyHandler.Update)
	companies.Get("/:id/user", asesor, companyHandler.GetUser)
	companies.Post("/:id/user", asesor, companyHandler.CreateUser)

	companies.Get("/:id/diagnostic", asesor, crmHandler.GetDiagnostic)
	companies.Put("/:id/diagnostic", asesor, crmHandler.UpdateDiagnostic)
	companies.Post("/:id/diagnostic/decide", asesor, crmHandler.Decide)

	companies.Get("/:id/project", asesorOrCliente, crmHandler.GetProject)
	companies.Put("/:id/project", asesor, crmHandler.UpdateProject)
	companies.Post("/:id/project/incorporation", asesor, crmHandler.AdvanceIncorporation)

	companies.Get("/:id/intake", asesorOrCliente, crmHandler.GetIntake)
	companies.Put("/:id/intake", cliente, crmHandler.SaveIntake)
	companies.Post("/:id/intake/submit", cliente, crmHandler.SubmitIntake)

	companies.Get("/:id/report.pdf", asesor, reportHandler.Download)

	// Paneles
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/client/dashboard", cliente, dashboardHandler.ClientDashboard)
	protected.Get("/asesor/stats", asesor, dashboardHandler.AdvisorStats)
}
