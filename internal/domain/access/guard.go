// Package access decide qué puede hacer cada rol. Es puro: no consulta la base de datos
// salvo AuthorizeCompany, que además comprueba el vínculo empresa-cliente.
package access

import (
	"context"
	"errors"

	"github.com/jhoicas/espacio-datos-api/internal/domain"
	"github.com/jhoicas/espacio-datos-api/internal/domain/entity"
)

// Action operación protegida del portal.
type Action string

const (
	ActionManageUsers      Action = "users:manage"
	ActionViewAdminStats   Action = "admin:stats"
	ActionManageCompanies  Action = "companies:manage"
	ActionReadCompany      Action = "company:read"
	ActionCreateClientUser Action = "company_user:create"
	ActionReadDiagnostic   Action = "diagnostic:read"
	ActionEditDiagnostic   Action = "diagnostic:edit"
	ActionDecideDiagnostic Action = "diagnostic:decide"
	ActionReadProject      Action = "project:read"
	ActionEditProject      Action = "project:edit"
	ActionReadIntake       Action = "intake:read"
	ActionEditIntake       Action = "intake:edit"
	ActionDownloadReport   Action = "report:download"
	ActionViewAdvisorStats Action = "asesor:stats"
	ActionViewClientPanel  Action = "client:dashboard"
)

// DenyReason motivo tipado de un rechazo.
type DenyReason string

const (
	ReasonUnauthenticated DenyReason = "unauthenticated"
	ReasonNoRole          DenyReason = "no-role"
	ReasonForbidden       DenyReason = "forbidden"
)

// Denied error devuelto por Authorize. errors.Is lo relaciona con
// domain.ErrUnauthenticated, domain.ErrNoRole o domain.ErrForbidden.
type Denied struct {
	Reason DenyReason
	Action Action
}

func (d *Denied) Error() string {
	return "acceso denegado (" + string(d.Reason) + "): " + string(d.Action)
}

// Unwrap permite errors.Is contra los errores de dominio.
func (d *Denied) Unwrap() error {
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonNoRole:
		return domain.ErrNoRole
	default:
		return domain.ErrForbidden
	}
}

// Identity quién ejecuta la operación. Se pasa explícitamente a cada caso de uso.
type Identity struct {
	UserID string
	Role   entity.Role
}

// Authenticated informa si la identidad proviene de un token válido.
func (i Identity) Authenticated() bool { return i.UserID != "" }

// Policy reglas de un rol concreto.
type Policy interface {
	Allows(a Action) bool
	Reason() DenyReason
}

type rolePolicy struct {
	allowed map[Action]bool
}

func (p rolePolicy) Allows(a Action) bool { return p.allowed[a] }
func (p rolePolicy) Reason() DenyReason  { return ReasonForbidden }

type unassignedPolicy struct{}

func (unassignedPolicy) Allows(Action) bool { return false }
func (unassignedPolicy) Reason() DenyReason { return ReasonNoRole }

func allow(actions ...Action) rolePolicy {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return rolePolicy{allowed: m}
}

var (
	adminPolicy = allow(ActionManageUsers, ActionViewAdminStats)

	asesorPolicy = allow(
		ActionManageCompanies, ActionReadCompany, ActionCreateClientUser,
		ActionReadDiagnostic, ActionEditDiagnostic, ActionDecideDiagnostic,
		ActionReadProject, ActionEditProject, ActionReadIntake,
		ActionDownloadReport, ActionViewAdvisorStats,
	)

	clientePolicy = allow(
		ActionReadCompany, ActionReadProject,
		ActionReadIntake, ActionEditIntake, ActionViewClientPanel,
	)
)

// PolicyFor devuelve la política del rol. Cualquier valor fuera del conjunto
// conocido se trata como no asignado.
func PolicyFor(role entity.Role) Policy {
	switch role {
	case entity.RoleAdmin:
		return adminPolicy
	case entity.RoleAsesor:
		return asesorPolicy
	case entity.RoleCliente:
		return clientePolicy
	default:
		return unassignedPolicy{}
	}
}

// Authorize decide si la identidad puede ejecutar la acción. Nil = permitido.
func Authorize(id Identity, action Action) error {
	if !id.Authenticated() {
		return &Denied{Reason: ReasonUnauthenticated, Action: action}
	}
	p := PolicyFor(id.Role)
	if !p.Allows(action) {
		return &Denied{Reason: p.Reason(), Action: action}
	}
	return nil
}

// LinkFinder lo mínimo que AuthorizeCompany necesita del repositorio de vínculos.
type LinkFinder interface {
	GetByUser(ctx context.Context, userID string) (*entity.CompanyUser, error)
}

// AuthorizeCompany aplica Authorize y, para clientes, exige que companyID sea su empresa.
func AuthorizeCompany(ctx context.Context, links LinkFinder, id Identity, action Action, companyID string) error {
	if err := Authorize(id, action); err != nil {
		return err
	}
	if id.Role != entity.RoleCliente {
		return nil
	}
	link, err := links.GetByUser(ctx, id.UserID)
	if err != nil {
		return err
	}
	if link == nil || link.CompanyID != companyID {
		return &Denied{Reason: ReasonForbidden, Action: action}
	}
	return nil
}

// ReasonOf extrae el motivo de un rechazo, si err lo es.
func ReasonOf(err error) (DenyReason, bool) {
	var d *Denied
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}
