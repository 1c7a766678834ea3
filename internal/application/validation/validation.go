// Package validation implementa las reglas de campo de la API.
// Cada función devuelve la lista COMPLETA de violaciones de la petición
// (no corta en la primera) para que el cliente pueda pintarlas todas
// en un solo round-trip.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/empleados-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los nombres de campo tal como viajan por el wire (form/json).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			if name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Error agrupa las violaciones de una petición. Los use cases lo devuelven
// como error y los handlers lo mapean a 400 con errors.As.
type Error struct {
	Violations []dto.FieldError
}

func (e *Error) Error() string {
	return fmt.Sprintf("validación fallida (%d violaciones)", len(e.Violations))
}

// Signup valida el alta de usuario. El username se normaliza con trim antes
// de validar, por eso recibe puntero.
func Signup(in *dto.SignupRequest) []dto.FieldError {
	in.Username = strings.TrimSpace(in.Username)
	return structViolations(in)
}

// EmployeeCreate valida el formulario de alta de empleado.
func EmployeeCreate(in dto.CreateEmployeeRequest) []dto.FieldError {
	errs := structViolations(in)
	if in.Salary != "" {
		errs = append(errs, salaryViolations(in.Salary)...)
	}
	if in.DateOfJoining != "" {
		errs = append(errs, dateViolations(in.DateOfJoining)...)
	}
	return errs
}

// EmployeeUpdate valida solo los campos presentes (actualización parcial);
// un campo ausente conserva su valor y no se valida.
func EmployeeUpdate(in dto.UpdateEmployeeRequest) []dto.FieldError {
	var errs []dto.FieldError
	requireNonEmpty := func(param string, v *string) {
		if v != nil && strings.TrimSpace(*v) == "" {
			errs = append(errs, dto.FieldError{Param: param, Msg: param + " is required"})
		}
	}
	requireNonEmpty("first_name", in.FirstName)
	requireNonEmpty("last_name", in.LastName)
	requireNonEmpty("position", in.Position)
	requireNonEmpty("department", in.Department)
	if in.Email != nil {
		if validate.Var(*in.Email, "required,email") != nil {
			errs = append(errs, dto.FieldError{Param: "email", Msg: "invalid email format"})
		}
	}
	if in.Salary != nil {
		errs = append(errs, salaryViolations(*in.Salary)...)
	}
	if in.DateOfJoining != nil {
		errs = append(errs, dateViolations(*in.DateOfJoining)...)
	}
	return errs
}

// IsValidID indica si id es un ObjectID hexadecimal válido. Los handlers
// rechazan ids malformados antes de tocar el store.
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// ParseSalary parsea el salario ya validado.
func ParseSalary(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseDate acepta fecha sola (2006-01-02) o fecha-hora RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no ISO-8601: %q", s)
}

func salaryViolations(s string) []dto.FieldError {
	n, err := ParseSalary(s)
	if err != nil {
		return []dto.FieldError{{Param: "salary", Msg: "salary must be a number"}}
	}
	if n < 0 {
		return []dto.FieldError{{Param: "salary", Msg: "salary must be greater than or equal to 0"}}
	}
	return nil
}

func dateViolations(s string) []dto.FieldError {
	if _, err := ParseDate(s); err != nil {
		return []dto.FieldError{{Param: "date_of_joining", Msg: "date_of_joining must be a valid ISO-8601 date"}}
	}
	return nil
}

func structViolations(s interface{}) []dto.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// mal uso del validador (tipo no struct), no entrada del cliente
		panic(err)
	}
	out := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dto.FieldError{Param: fe.Field(), Msg: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	}
	return "invalid value"
}
