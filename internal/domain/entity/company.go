package entity

import "time"

// Estados del ciclo de vida de una empresa.
const (
	CompanyStatusLead       = "lead"
	CompanyStatusApta       = "apta"
	CompanyStatusDescartada = "descartada"
)

// Estados de recepción del formulario de intake.
const (
	IntakeStatusPendiente = "pendiente"
	IntakeStatusRecibida  = "recibida"
)

// Sectores y tamaños ofrecidos en el formulario de alta.
var (
	CompanySectors = []string{
		"Tecnología", "Energía", "Industria", "Comercio", "Servicios",
		"Agricultura", "Construcción", "Transporte", "Salud", "Otro",
	}
	CompanySizeRanges = []string{"1-10", "11-50", "51-250", "250+"}
)

// Company representa una empresa candidata a incorporarse al espacio de datos.
// El NIF es único e inmutable tras la creación.
type Company struct {
	ID           string
	Name         string
	NIF          string
	Sector       string
	SizeRange    string
	Country      string
	Website      string
	ContactName  string
	ContactRole  string
	ContactPhone string
	Status       string // lead, apta, descartada
	IntakeStatus string // pendiente, recibida
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCompany construye una empresa en estado inicial (lead, intake pendiente).
func NewCompany(id, name, nif string, now time.Time) *Company {
	return &Company{
		ID:           id,
		Name:         name,
		NIF:          nif,
		Status:       CompanyStatusLead,
		IntakeStatus: IntakeStatusPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsLead informa si la empresa sigue en evaluación.
func (c *Company) IsLead() bool { return c.Status == CompanyStatusLead }

// ValidSector acepta vacío o uno de CompanySectors.
func ValidSector(s string) bool { return s == "" || contains(CompanySectors, s) }

// ValidSizeRange acepta vacío o uno de CompanySizeRanges.
func ValidSizeRange(s string) bool { return s == "" || contains(CompanySizeRanges, s) }

// ValidCompanyStatus informa si s es un estado de empresa conocido.
func ValidCompanyStatus(s string) bool {
	return s == CompanyStatusLead || s == CompanyStatusApta || s == CompanyStatusDescartada
}

// CompanyUser vincula una empresa con su (único) usuario cliente.
type CompanyUser struct {
	CompanyID string
	UserID    string
	CreatedAt time.Time
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
