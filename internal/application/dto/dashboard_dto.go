package dto

import "time"

// Estados del panel del cliente. sin_empresa cuando el usuario no tiene empresa vinculada;
// el resto coincide 1:1 con el estado de la empresa.
const (
	ClientDashboardSinEmpresa = "sin_empresa"
)

// DiagnosticSummary resumen del diagnóstico visible para el cliente.
type DiagnosticSummary struct {
	Result    string     `json:"result"`
	DecidedAt *time.Time `json:"decided_at"`
}

// ClientDashboardResponse proyección de solo lectura para el rol cliente.
type ClientDashboardResponse struct {
	Status            string             `json:"status"`
	Message           string             `json:"message"`
	Company           *CompanyResponse   `json:"company,omitempty"`
	DiagnosticSummary *DiagnosticSummary `json:"diagnostic_summary,omitempty"`
	Project           *ProjectResponse   `json:"project,omitempty"`
	Intake            *IntakeResponse    `json:"intake,omitempty"`
}

// AdvisorStatsResponse contadores del panel del asesor.
type AdvisorStatsResponse struct {
	Total          int `json:"total"`
	Lead           int `json:"lead"`
	Apta           int `json:"apta"`
	Descartada     int `json:"descartada"`
	IntakeRecibida int `json:"intake_recibida"`
}

// AdminStatsResponse contadores del panel del administrador.
type AdminStatsResponse struct {
	Total      int `json:"total"`
	Admin      int `json:"admin"`
	Asesor     int `json:"asesor"`
	Cliente    int `json:"cliente"`
	Unassigned int `json:"sin_rol"`
}
