package dto

// FieldError violación de validación de un campo concreto.
// Mantiene los nombres param/msg que la SPA original consume.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ErrorResponse cuerpo de error HTTP genérico: {status:false, message}.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse cuerpo 400 con la lista completa de violaciones
// (todas juntas, no solo la primera).
type ValidationErrorResponse struct {
	Status bool         `json:"status"`
	Errors []FieldError `json:"errors"`
}

// NewValidationErrorResponse construye la respuesta 400 a partir de las violaciones.
func NewValidationErrorResponse(errs []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{Status: false, Errors: errs}
}
