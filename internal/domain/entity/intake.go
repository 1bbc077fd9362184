package entity

import (
	"time"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
)

// Catálogos del cuestionario de intake.
var (
	IntakeDataTypes = []string{
		"personales", "financieros", "operativos", "comerciales",
		"tecnicos", "sensores_iot", "geoespaciales", "otros",
	}
	IntakeDataUsages        = []string{"interno", "compartir", "monetizar", "no_definido"}
	IntakeMainInterests     = []string{"acceder_datos", "compartir_datos", "monetizar_datos", "cumplimiento_normativo", "innovacion"}
	IntakeDataSensitivities = []string{"baja", "media", "alta"}
)

// Intake es el cuestionario que rellena el cliente mientras su empresa está en evaluación.
// Editable hasta Submit; después es de solo lectura.
type Intake struct {
	CompanyID       string
	DataTypes       []string
	DataUsage       string
	MainInterests   []string
	DataSensitivity string
	Notes           string
	Submitted       bool
	SubmittedAt     *time.Time
	UpdatedAt       time.Time
}

// NewIntake crea el borrador vacío de una empresa.
func NewIntake(companyID string, now time.Time) *Intake {
	return &Intake{
		CompanyID:     companyID,
		DataTypes:     []string{},
		MainInterests: []string{},
		UpdatedAt:     now,
	}
}

// IntakePatch cambios parciales del borrador; nil = se conserva el valor previo.
type IntakePatch struct {
	DataTypes       *[]string
	DataUsage       *string
	MainInterests   *[]string
	DataSensitivity *string
	Notes           *string
}

// Apply sobreescribe los campos presentes. ErrInvalidState si ya se envió,
// ErrInvalidInput si algún valor no pertenece a su catálogo.
func (in *Intake) Apply(p IntakePatch, now time.Time) error {
	if in.Submitted {
		return domain.ErrInvalidState
	}
	if p.DataTypes != nil && !allIn(IntakeDataTypes, *p.DataTypes) {
		return domain.ErrInvalidInput
	}
	if p.MainInterests != nil && !allIn(IntakeMainInterests, *p.MainInterests) {
		return domain.ErrInvalidInput
	}
	if p.DataUsage != nil && *p.DataUsage != "" && !contains(IntakeDataUsages, *p.DataUsage) {
		return domain.ErrInvalidInput
	}
	if p.DataSensitivity != nil && *p.DataSensitivity != "" && !contains(IntakeDataSensitivities, *p.DataSensitivity) {
		return domain.ErrInvalidInput
	}
	if p.DataTypes != nil {
		in.DataTypes = dedupe(*p.DataTypes)
	}
	if p.MainInterests != nil {
		in.MainInterests = dedupe(*p.MainInterests)
	}
	if p.DataUsage != nil {
		in.DataUsage = *p.DataUsage
	}
	if p.DataSensitivity != nil {
		in.DataSensitivity = *p.DataSensitivity
	}
	if p.Notes != nil {
		in.Notes = *p.Notes
	}
	in.UpdatedAt = now
	return nil
}

// Submit marca el intake como enviado. Un segundo envío falla con ErrAlreadySubmitted.
func (in *Intake) Submit(now time.Time) error {
	if in.Submitted {
		return domain.ErrAlreadySubmitted
	}
	in.Submitted = true
	in.SubmittedAt = &now
	in.UpdatedAt = now
	return nil
}

func allIn(catalog, values []string) bool {
	for _, v := range values {
		if !contains(catalog, v) {
			return false
		}
	}
	return true
}

// dedupe conserva el orden de aparición (los campos son conjuntos).
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
