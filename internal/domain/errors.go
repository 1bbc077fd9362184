package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNoRole             = errors.New("usuario sin rol asignado")
	ErrForbidden          = errors.New("acceso denegado")

	// Ciclo de vida de empresa / diagnóstico / proyecto / intake.
	ErrInvalidState        = errors.New("operación no permitida en el estado actual")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrAlreadySubmitted    = errors.New("el formulario ya fue enviado")
	ErrChecklistIncomplete = errors.New("checklist de incorporación incompleto")
	ErrSelfDelete          = errors.New("no puedes eliminar tu propia cuenta")
)
