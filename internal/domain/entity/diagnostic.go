package entity

import (
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
)

// Resultado del diagnóstico de elegibilidad.
const (
	DiagnosticPendiente = "pendiente"
	DiagnosticApta      = "apta"
	DiagnosticNoApta    = "no_apta"
)

// Niveles de riesgo legal.
const (
	LegalRiskBajo  = "bajo"
	LegalRiskMedio = "medio"
	LegalRiskAlto  = "alto"
)

// Diagnostic es el checklist de elegibilidad de una empresa (uno a uno con Company).
// Los campos solo son editables mientras Result == pendiente; la decisión es única e irreversible.
type Diagnostic struct {
	CompanyID       string
	EligibilityOK   bool
	SpaceIdentified bool
	DataPotential   bool
	LegalRisk       string
	Notes           string
	Result          string
	DecidedAt       *time.Time
	UpdatedAt       time.Time
}

// NewDiagnostic crea el diagnóstico pendiente de una empresa recién dada de alta.
func NewDiagnostic(companyID string, now time.Time) *Diagnostic {
	return &Diagnostic{
		CompanyID: companyID,
		LegalRisk: LegalRiskBajo,
		Result:    DiagnosticPendiente,
		UpdatedAt: now,
	}
}

// Pending informa si el diagnóstico admite cambios.
func (d *Diagnostic) Pending() bool { return d.Result == DiagnosticPendiente }

// DiagnosticPatch cambios parciales sobre el checklist; nil = sin cambio.
type DiagnosticPatch struct {
	EligibilityOK   *bool
	SpaceIdentified *bool
	DataPotential   *bool
	LegalRisk       *string
	Notes           *string
}

// Apply aplica el patch. Falla con ErrInvalidState si ya hay decisión y con
// ErrInvalidInput si legal_risk no es bajo/medio/alto. No modifica nada si falla.
func (d *Diagnostic) Apply(p DiagnosticPatch, now time.Time) error {
	if !d.Pending() {
		return domain.ErrInvalidState
	}
	if p.LegalRisk != nil && !ValidLegalRisk(*p.LegalRisk) {
		return domain.ErrInvalidInput
	}
	if p.EligibilityOK != nil {
		d.EligibilityOK = *p.EligibilityOK
	}
	if p.SpaceIdentified != nil {
		d.SpaceIdentified = *p.SpaceIdentified
	}
	if p.DataPotential != nil {
		d.DataPotential = *p.DataPotential
	}
	if p.LegalRisk != nil {
		d.LegalRisk = *p.LegalRisk
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	d.UpdatedAt = now
	return nil
}

// Decide fija el resultado (apta | no_apta). Solo una vez.
func (d *Diagnostic) Decide(result string, now time.Time) error {
	if result != DiagnosticApta && result != DiagnosticNoApta {
		return domain.ErrInvalidInput
	}
	if !d.Pending() {
		return domain.ErrInvalidState
	}
	d.Result = result
	d.DecidedAt = &now
	d.UpdatedAt = now
	return nil
}

// CompanyStatusFor devuelve el estado de empresa que corresponde a un resultado decidido.
func CompanyStatusFor(result string) string {
	switch result {
	case DiagnosticApta:
		return CompanyStatusApta
	case DiagnosticNoApta:
		return CompanyStatusDescartada
	default:
		return CompanyStatusLead
	}
}

// ValidLegalRisk informa si s es un nivel de riesgo conocido.
func ValidLegalRisk(s string) bool {
	return s == LegalRiskBajo || s == LegalRiskMedio || s == LegalRiskAlto
}
