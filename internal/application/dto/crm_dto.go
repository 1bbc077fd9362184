package dto

import (
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// UpdateDiagnosticRequest cambios parciales del checklist de elegibilidad.
type UpdateDiagnosticRequest struct {
	EligibilityOK   *bool   `json:"eligibility_ok"`
	SpaceIdentified *bool   `json:"space_identified"`
	DataPotential   *bool   `json:"data_potential"`
	LegalRisk       *string `json:"legal_risk" validate:"omitempty,oneof=bajo medio alto"`
	Notes           *string `json:"notes"`
}

// DecideDiagnosticRequest decisión final: apta | no_apta.
type DecideDiagnosticRequest struct {
	Result string `json:"result" validate:"required,oneof=apta no_apta"`
}

// DiagnosticResponse salida del diagnóstico.
type DiagnosticResponse struct {
	CompanyID       string     `json:"company_id"`
	EligibilityOK   bool       `json:"eligibility_ok"`
	SpaceIdentified bool       `json:"space_identified"`
	DataPotential   bool       `json:"data_potential"`
	LegalRisk       string     `json:"legal_risk"`
	Notes           string     `json:"notes"`
	Result          string     `json:"result"`
	DecidedAt       *time.Time `json:"decided_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DecisionResponse resultado de decidir: diagnóstico, estado de empresa y proyecto (si apta).
type DecisionResponse struct {
	Diagnostic    DiagnosticResponse `json:"diagnostic"`
	CompanyStatus string             `json:"company_status"`
	Project       *ProjectResponse   `json:"project,omitempty"`
}

// UpdateProjectRequest cambios parciales del proyecto. Si trae IncorporationStatus
// se interpreta como avance de estado.
type UpdateProjectRequest struct {
	SpaceName           *string `json:"space_name"`
	TargetRole          *string `json:"target_role" validate:"omitempty,oneof=participante proveedor"`
	UseCase             *string `json:"use_case"`
	RGPDChecked         *bool   `json:"rgpd_checked"`
	EspacioSeleccionado *bool   `json:"espacio_seleccionado"`
	RolDefinido         *bool   `json:"rol_definido"`
	CasoUsoDefinido     *bool   `json:"caso_uso_definido"`
	ValidacionRGPD      *bool   `json:"validacion_rgpd"`
	IncorporationStatus *string `json:"incorporation_status"`
}

// AdvanceIncorporationRequest nuevo estado de incorporación.
type AdvanceIncorporationRequest struct {
	Status string `json:"status" validate:"required,oneof=en_progreso completada"`
}

// ProjectResponse salida del proyecto de incorporación.
type ProjectResponse struct {
	ID                     string                        `json:"id"`
	CompanyID              string                        `json:"company_id"`
	Title                  string                        `json:"title"`
	Phase                  int                           `json:"phase"`
	Status                 string                        `json:"status"`
	IncorporationStatus    string                        `json:"incorporation_status"`
	SpaceName              string                        `json:"space_name"`
	TargetRole             string                        `json:"target_role"`
	UseCase                string                        `json:"use_case"`
	RGPDChecked            bool                          `json:"rgpd_checked"`
	IncorporationChecklist entity.IncorporationChecklist `json:"incorporation_checklist"`
	CreatedAt              time.Time                     `json:"created_at"`
	UpdatedAt              time.Time                     `json:"updated_at"`
}

// SaveIntakeRequest borrador del cuestionario; campos ausentes conservan su valor.
type SaveIntakeRequest struct {
	DataTypes       *[]string `json:"data_types"`
	DataUsage       *string   `json:"data_usage"`
	MainInterests   *[]string `json:"main_interests"`
	DataSensitivity *string   `json:"data_sensitivity"`
	Notes           *string   `json:"notes"`
}

// IntakeResponse salida del cuestionario.
type IntakeResponse struct {
	CompanyID       string     `json:"company_id"`
	DataTypes       []string   `json:"data_types"`
	DataUsage       string     `json:"data_usage"`
	MainInterests   []string   `json:"main_interests"`
	DataSensitivity string     `json:"data_sensitivity"`
	Notes           string     `json:"notes"`
	Submitted       bool       `json:"submitted"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DiagnosticToResponse convierte la entidad en DTO.
func DiagnosticToResponse(d *entity.Diagnostic) *DiagnosticResponse {
	if d == nil {
		return nil
	}
	return &DiagnosticResponse{
		CompanyID:       d.CompanyID,
		EligibilityOK:   d.EligibilityOK,
		SpaceIdentified: d.SpaceIdentified,
		DataPotential:   d.DataPotential,
		LegalRisk:       d.LegalRisk,
		Notes:           d.Notes,
		Result:          d.Result,
		DecidedAt:       d.DecidedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ProjectToResponse convierte la entidad en DTO.
func ProjectToResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:                     p.ID,
		CompanyID:              p.CompanyID,
		Title:                  p.Title,
		Phase:                  p.Phase,
		Status:                 p.Status,
		IncorporationStatus:    p.IncorporationStatus,
		SpaceName:              p.SpaceName,
		TargetRole:             p.TargetRole,
		UseCase:                p.UseCase,
		RGPDChecked:            p.RGPDChecked,
		IncorporationChecklist: p.Checklist,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// IntakeToResponse convierte la entidad en DTO.
func IntakeToResponse(in *entity.Intake) *IntakeResponse {
	if in == nil {
		return nil
	}
	return &IntakeResponse{
		CompanyID:       in.CompanyID,
		DataTypes:       in.DataTypes,
		DataUsage:       in.DataUsage,
		MainInterests:   in.MainInterests,
		DataSensitivity: in.DataSensitivity,
		Notes:           in.Notes,
		Submitted:       in.Submitted,
		SubmittedAt:     in.SubmittedAt,
		UpdatedAt:       in.UpdatedAt,
	}
}

// CompanyToResponse convierte la entidad en DTO.
func CompanyToResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		NIF:          c.NIF,
		Sector:       c.Sector,
		SizeRange:    c.SizeRange,
		Country:      c.Country,
		Website:      c.Website,
		ContactName:  c.ContactName,
		ContactRole:  c.ContactRole,
		ContactPhone: c.ContactPhone,
		Status:       c.Status,
		IntakeStatus: c.IntakeStatus,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// UserToResponse convierte la entidad en DTO (role null si no está asignado).
func UserToResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	var role *string
	if u.Role.Assigned() {
		r := string(u.Role)
		role = &r
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
