package dto

import "time"

// CreateEmployeeRequest campos del formulario multipart de alta.
// Salary y DateOfJoining llegan como texto del form; su parseo se valida aparte.
type CreateEmployeeRequest struct {
	FirstName     string `form:"first_name" validate:"required"`
	LastName      string `form:"last_name" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Position      string `form:"position" validate:"required"`
	Salary        string `form:"salary" validate:"required"`
	DateOfJoining string `form:"date_of_joining" validate:"required"`
	Department    string `form:"department" validate:"required"`
}

// UpdateEmployeeRequest actualización parcial: nil significa que el campo no
// vino en el formulario y conserva su valor actual.
type UpdateEmployeeRequest struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *string
	DateOfJoining *string
	Department    *string
}

// Upload binario recibido en el campo profile_picture.
type Upload struct {
	Filename string
	Data     []byte
}

// EmployeeResponse proyección externa de un empleado.
// ProfilePicture es la ruta pública relativa de la foto, o null si no tiene.
type EmployeeResponse struct {
	EmployeeID     string    `json:"employee_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Position       string    `json:"position"`
	Salary         float64   `json:"salary"`
	DateOfJoining  time.Time `json:"date_of_joining"`
	Department     string    `json:"department"`
	ProfilePicture *string   `json:"profile_picture"`
}

// CreateEmployeeResponse salida del alta.
type CreateEmployeeResponse struct {
	Message        string  `json:"message"`
	EmployeeID     string  `json:"employee_id"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// UpdateEmployeeResponse salida de la actualización.
type UpdateEmployeeResponse struct {
	Message        string  `json:"message"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}
