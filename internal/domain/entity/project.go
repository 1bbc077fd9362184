package entity

import (
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
)

// Estados de incorporación efectiva al espacio de datos.
const (
	IncorporationPendiente  = "pendiente"
	IncorporationEnProgreso = "en_progreso"
	IncorporationCompletada = "completada"
)

// Roles objetivo dentro del espacio de datos.
const (
	TargetRoleParticipante = "participante"
	TargetRoleProveedor    = "proveedor"
)

const (
	// ProjectPhaseIncorporacion es la fase con la que nace todo proyecto ("Incorporación efectiva").
	ProjectPhaseIncorporacion = 2
	// ProjectStatusIniciado es el resumen de estado inicial.
	ProjectStatusIniciado = "iniciado"
	projectTitlePrefix    = "Incorporación - "
)

// IncorporationChecklist los cuatro hitos de la incorporación.
type IncorporationChecklist struct {
	EspacioSeleccionado bool `json:"espacio_seleccionado"`
	RolDefinido         bool `json:"rol_definido"`
	CasoUsoDefinido     bool `json:"caso_uso_definido"`
	ValidacionRGPD      bool `json:"validacion_rgpd"`
}

// Complete informa si los cuatro hitos están marcados.
func (c IncorporationChecklist) Complete() bool {
	return c.EspacioSeleccionado && c.RolDefinido && c.CasoUsoDefinido && c.ValidacionRGPD
}

// Project existe solo para empresas aptas (uno por empresa).
type Project struct {
	ID                  string
	CompanyID           string
	Title               string
	Phase               int
	Status              string
	IncorporationStatus string
	SpaceName           string
	TargetRole          string
	UseCase             string
	RGPDChecked         bool
	Checklist           IncorporationChecklist
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewProject construye el proyecto inicial de una empresa aprobada.
func NewProject(id string, company *Company, now time.Time) *Project {
	return &Project{
		ID:                  id,
		CompanyID:           company.ID,
		Title:               projectTitlePrefix + company.Name,
		Phase:               ProjectPhaseIncorporacion,
		Status:              ProjectStatusIniciado,
		IncorporationStatus: IncorporationPendiente,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// ProjectPatch cambios parciales sobre el proyecto; nil = sin cambio.
type ProjectPatch struct {
	SpaceName           *string
	TargetRole          *string
	UseCase             *string
	RGPDChecked         *bool
	EspacioSeleccionado *bool
	RolDefinido         *bool
	CasoUsoDefinido     *bool
	ValidacionRGPD      *bool
}

// Apply aplica el patch con independencia del estado de incorporación.
func (p *Project) Apply(patch ProjectPatch, now time.Time) error {
	if patch.TargetRole != nil && !ValidTargetRole(*patch.TargetRole) {
		return domain.ErrInvalidInput
	}
	if patch.SpaceName != nil {
		p.SpaceName = *patch.SpaceName
	}
	if patch.TargetRole != nil {
		p.TargetRole = *patch.TargetRole
	}
	if patch.UseCase != nil {
		p.UseCase = *patch.UseCase
	}
	if patch.RGPDChecked != nil {
		p.RGPDChecked = *patch.RGPDChecked
	}
	if patch.EspacioSeleccionado != nil {
		p.Checklist.EspacioSeleccionado = *patch.EspacioSeleccionado
	}
	if patch.RolDefinido != nil {
		p.Checklist.RolDefinido = *patch.RolDefinido
	}
	if patch.CasoUsoDefinido != nil {
		p.Checklist.CasoUsoDefinido = *patch.CasoUsoDefinido
	}
	if patch.ValidacionRGPD != nil {
		p.Checklist.ValidacionRGPD = *patch.ValidacionRGPD
	}
	p.UpdatedAt = now
	return nil
}

// Advance mueve incorporation_status un paso hacia delante.
// Solo pendiente→en_progreso y en_progreso→completada; el resto es ErrInvalidTransition.
func (p *Project) Advance(to string, now time.Time) error {
	if next, ok := nextIncorporation[p.IncorporationStatus]; !ok || next != to {
		return domain.ErrInvalidTransition
	}
	p.IncorporationStatus = to
	p.UpdatedAt = now
	return nil
}

var nextIncorporation = map[string]string{
	IncorporationPendiente:  IncorporationEnProgreso,
	IncorporationEnProgreso: IncorporationCompletada,
}

// ValidTargetRole acepta vacío (sin definir), participante o proveedor.
func ValidTargetRole(s string) bool {
	return s == "" || s == TargetRoleParticipante || s == TargetRoleProveedor
}

// ValidIncorporationStatus informa si s es un estado de incorporación conocido.
func ValidIncorporationStatus(s string) bool {
	return s == IncorporationPendiente || s == IncorporationEnProgreso || s == IncorporationCompletada
}
