package entity

import "time"

// Role es el rol de un usuario. RoleUnassigned es un valor válido (cuenta dada de alta
// pero sin rol): se persiste como NULL y no habilita ninguna acción.
type Role string

// Roles válidos para User.
const (
	RoleAdmin      Role = "admin"
	RoleAsesor     Role = "asesor"
	RoleCliente    Role = "cliente"
	RoleUnassigned Role = ""
)

// ParseRole convierte el texto recibido (API, token, columna) en un Role.
// Devuelve false si el texto no corresponde a ningún rol conocido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAsesor, RoleCliente, RoleUnassigned:
		return Role(s), true
	}
	return RoleUnassigned, false
}

// Assigned informa si el rol habilita algún acceso.
func (r Role) Assigned() bool { return r != RoleUnassigned }

// User representa un usuario del portal.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
