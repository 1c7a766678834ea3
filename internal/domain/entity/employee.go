package entity

import "time"

// AttachmentRef referencia opaca al binario de una foto de perfil.
// El valor cero significa "sin foto". El dominio nunca conoce la ruta real
// en disco: la resolución a URL pública es responsabilidad del almacén.
type AttachmentRef struct {
	Key string
}

// IsZero indica si la referencia está vacía (empleado sin foto).
func (r AttachmentRef) IsZero() bool { return r.Key == "" }

// Employee representa un registro de empleado.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string // único entre empleados
	Position      string
	Department    string
	Salary        float64 // >= 0
	DateOfJoining time.Time
	Picture       AttachmentRef // a lo sumo una foto por empleado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
