package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrEmployeeNotFound = errors.New("empleado no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrUploadRejected   = errors.New("archivo rechazado")
)

// RejectedUploadError rechazo de un archivo subido por tamaño o tipo.
// Reason es un mensaje apto para mostrar al cliente.
type RejectedUploadError struct {
	Reason string
}

func (e *RejectedUploadError) Error() string { return e.Reason }

// Is permite errors.Is(err, ErrUploadRejected) sobre este tipo.
func (e *RejectedUploadError) Is(target error) bool { return target == ErrUploadRejected }
