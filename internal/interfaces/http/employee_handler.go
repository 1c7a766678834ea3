package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/application/employee"
	"github.com/jhoicas/empleados-api/internal/application/validation"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
	"github.com/jhoicas/empleados-api/internal/infrastructure/storage"
)

// EmployeeHandler maneja las peticiones HTTP de empleados.
type EmployeeHandler struct {
	uc *employee.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *employee.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        first_name       formData  string  true   "Nombre"
// @Param        last_name        formData  string  true   "Apellido"
// @Param        email            formData  string  true   "Email (único)"
// @Param        position         formData  string  true   "Cargo"
// @Param        salary           formData  number  true   "Salario >= 0"
// @Param        date_of_joining  formData  string  true   "Fecha ISO-8601"
// @Param        department       formData  string  true   "Departamento"
// @Param        profile_picture  formData  file    false  "Foto (jpeg/jpg/png/gif, máx 5MB)"
// @Success      201  {object}  dto.CreateEmployeeResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/emp/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateEmployeeRequest{
		FirstName:     strings.TrimSpace(c.FormValue("first_name")),
		LastName:      strings.TrimSpace(c.FormValue("last_name")),
		Email:         strings.TrimSpace(c.FormValue("email")),
		Position:      strings.TrimSpace(c.FormValue("position")),
		Salary:        strings.TrimSpace(c.FormValue("salary")),
		DateOfJoining: strings.TrimSpace(c.FormValue("date_of_joining")),
		Department:    strings.TrimSpace(c.FormValue("department")),
	}
	pic, err := formUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewValidationErrorResponse([]dto.FieldError{
			{Param: "profile_picture", Msg: "could not read uploaded file"},
		}))
	}
	out, err := h.uc.Create(c.Context(), in, pic)
	if err != nil {
		return respondEmployeeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empleado por id
// @Tags         employees
// @Produce      json
// @Param        eid  path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/emp/employees/{eid} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("eid"))
	if err != nil {
		return respondEmployeeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados (filtros opcionales por subcadena)
// @Tags         employees
// @Produce      json
// @Param        department  query  string  false  "Subcadena de departamento (case-insensitive)"
// @Param        position    query  string  false  "Subcadena de cargo (case-insensitive)"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/v1/emp/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), queryFilter(c))
	if err != nil {
		return respondEmployeeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar empleados (requiere al menos un filtro)
// @Tags         employees
// @Produce      json
// @Param        department  query  string  false  "Subcadena de departamento (case-insensitive)"
// @Param        position    query  string  false  "Subcadena de cargo (case-insensitive)"
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/emp/employees/search [get]
func (h *EmployeeHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), queryFilter(c))
	if err != nil {
		return respondEmployeeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado (parcial)
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        eid              path      string  true   "ID del empleado"
// @Param        profile_picture  formData  file    false  "Foto nueva (reemplaza la anterior)"
// @Success      200  {object}  dto.UpdateEmployeeResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/emp/employees/{eid} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	in, err := partialForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	pic, err := formUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewValidationErrorResponse([]dto.FieldError{
			{Param: "profile_picture", Msg: "could not read uploaded file"},
		}))
	}
	out, err := h.uc.Update(c.Context(), c.Params("eid"), in, pic)
	if err != nil {
		return respondEmployeeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Tags         employees
// @Param        eid  query  string  true  "ID del empleado"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/emp/employees [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Query("eid")); err != nil {
		return respondEmployeeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func queryFilter(c *fiber.Ctx) repository.EmployeeFilter {
	return repository.EmployeeFilter{
		Department: strings.TrimSpace(c.Query("department")),
		Position:   strings.TrimSpace(c.Query("position")),
	}
}

// formUpload lee el archivo opcional profile_picture. Devuelve nil si el
// campo no vino. La lectura se limita a un byte más del máximo permitido;
// el almacén es quien rechaza por tamaño.
func formUpload(c *fiber.Ctx) (*dto.Upload, error) {
	fh, err := c.FormFile("profile_picture")
	if err != nil || fh == nil {
		return nil, nil // campo opcional
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	return &dto.Upload{Filename: fh.Filename, Data: data}, nil
}

// partialForm arma la actualización parcial: solo los campos presentes en el
// formulario quedan no-nil.
func partialForm(c *fiber.Ctx) (dto.UpdateEmployeeRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return dto.UpdateEmployeeRequest{}, err
	}
	get := func(key string) *string {
		vs, ok := form.Value[key]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := strings.TrimSpace(vs[0])
		return &v
	}
	return dto.UpdateEmployeeRequest{
		FirstName:     get("first_name"),
		LastName:      get("last_name"),
		Email:         get("email"),
		Position:      get("position"),
		Salary:        get("salary"),
		DateOfJoining: get("date_of_joining"),
		Department:    get("department"),
	}, nil
}

func respondEmployeeError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewValidationErrorResponse(verr.Violations))
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Employee not found"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "Employee already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Provide department or position"})
	}
	log.Error().Err(err).Msg("employee")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Internal server error"})
}
