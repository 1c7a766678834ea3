package employee

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/application/validation"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD y búsqueda de empleados, incluido el
// ciclo de vida de la foto de perfil acoplado al registro.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	attachments AttachmentStore
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, attachments AttachmentStore) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, attachments: attachments}
}

// Create da de alta un empleado. Si viene foto se guarda primero; cualquier
// fallo posterior (validación, email duplicado, error del store) la borra
// antes de responder: ninguna petición fallida deja binarios huérfanos.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest, pic *dto.Upload) (*dto.CreateEmployeeResponse, error) {
	errs := validation.EmployeeCreate(in)

	var ref entity.AttachmentRef
	if pic != nil {
		r, err := uc.attachments.Save(pic.Data, pic.Filename)
		var rej *domain.RejectedUploadError
		switch {
		case errors.As(err, &rej):
			errs = append(errs, dto.FieldError{Param: "profile_picture", Msg: rej.Reason})
		case err != nil:
			return nil, err
		default:
			ref = r
		}
	}
	if len(errs) > 0 {
		uc.discard(ref)
		return nil, &validation.Error{Violations: errs}
	}

	exists, err := uc.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		uc.discard(ref)
		return nil, err
	}
	if exists {
		uc.discard(ref)
		return nil, domain.ErrDuplicate
	}

	salary, _ := validation.ParseSalary(in.Salary)
	joined, _ := validation.ParseDate(in.DateOfJoining)
	now := time.Now()
	id, err := uc.repo.Create(ctx, &entity.Employee{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Position:      in.Position,
		Department:    in.Department,
		Salary:        salary,
		DateOfJoining: joined,
		Picture:       ref,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		uc.discard(ref)
		return nil, err
	}
	return &dto.CreateEmployeeResponse{
		Message:        "Employee created successfully.",
		EmployeeID:     id,
		ProfilePicture: uc.picturePath(ref),
	}, nil
}

// Get devuelve la proyección externa de un empleado. Un id malformado se
// rechaza como error de validación antes de tocar el store, no como 404.
func (uc *EmployeeUseCase) Get(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	if !validation.IsValidID(id) {
		return nil, invalidIDError()
	}
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	out := uc.toResponse(emp)
	return &out, nil
}

// List lista empleados; los filtros presentes se aplican como subcadena
// sin distinguir mayúsculas. Sin filtros devuelve todos.
func (uc *EmployeeUseCase) List(ctx context.Context, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, uc.toResponse(e))
	}
	return out, nil
}

// Search misma semántica de matching que List, pero exige al menos un filtro.
func (uc *EmployeeUseCase) Search(ctx context.Context, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	if filter.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	return uc.List(ctx, filter)
}

// Update aplica una actualización parcial: lee el registro, mezcla solo los
// campos presentes y reescribe. Si viene foto nueva se guarda primero, se
// confirma el registro apuntando a ella y recién entonces se borra la
// anterior; si algo falla antes de confirmar, se borra la nueva y el
// registro sigue apuntando a la vieja.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest, pic *dto.Upload) (*dto.UpdateEmployeeResponse, error) {
	if !validation.IsValidID(id) {
		return nil, invalidIDError()
	}
	errs := validation.EmployeeUpdate(in)

	var newRef entity.AttachmentRef
	if pic != nil {
		r, err := uc.attachments.Save(pic.Data, pic.Filename)
		var rej *domain.RejectedUploadError
		switch {
		case errors.As(err, &rej):
			errs = append(errs, dto.FieldError{Param: "profile_picture", Msg: rej.Reason})
		case err != nil:
			return nil, err
		default:
			newRef = r
		}
	}
	if len(errs) > 0 {
		uc.discard(newRef)
		return nil, &validation.Error{Violations: errs}
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.discard(newRef)
		return nil, err
	}
	if current == nil {
		uc.discard(newRef)
		return nil, domain.ErrEmployeeNotFound
	}

	if in.Email != nil && *in.Email != current.Email {
		exists, err := uc.repo.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			uc.discard(newRef)
			return nil, err
		}
		if exists {
			uc.discard(newRef)
			return nil, domain.ErrDuplicate
		}
	}

	applyString(&current.FirstName, in.FirstName)
	applyString(&current.LastName, in.LastName)
	applyString(&current.Email, in.Email)
	applyString(&current.Position, in.Position)
	applyString(&current.Department, in.Department)
	if in.Salary != nil {
		current.Salary, _ = validation.ParseSalary(*in.Salary)
	}
	if in.DateOfJoining != nil {
		current.DateOfJoining, _ = validation.ParseDate(*in.DateOfJoining)
	}
	oldRef := current.Picture
	if pic != nil {
		current.Picture = newRef
	}
	current.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, current); err != nil {
		uc.discard(newRef)
		return nil, err
	}
	// la foto anterior se descarta solo después de confirmar la escritura
	if pic != nil && !oldRef.IsZero() {
		uc.discard(oldRef)
	}
	return &dto.UpdateEmployeeResponse{
		Message:        "Employee details updated successfully.",
		ProfilePicture: uc.picturePath(current.Picture),
	}, nil
}

// Delete elimina el registro y después su foto (si tenía). Borrar un id
// inexistente devuelve ErrEmployeeNotFound siempre, también en reintentos.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	if !validation.IsValidID(id) {
		return invalidIDError()
	}
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrEmployeeNotFound
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrEmployeeNotFound
	}
	if !emp.Picture.IsZero() {
		uc.discard(emp.Picture)
	}
	return nil
}

// discard borra un binario que ya no referencia ningún registro. Un fallo
// aquí deja a lo sumo un binario sin referenciar (recuperable por limpieza
// manual), nunca un registro apuntando a un binario inexistente.
func (uc *EmployeeUseCase) discard(ref entity.AttachmentRef) {
	if ref.IsZero() {
		return
	}
	if err := uc.attachments.Delete(ref); err != nil {
		log.Warn().Err(err).Str("ref", ref.Key).Msg("no se pudo borrar adjunto sin referenciar")
	}
}

func (uc *EmployeeUseCase) picturePath(ref entity.AttachmentRef) *string {
	if ref.IsZero() {
		return nil
	}
	p := uc.attachments.PublicPath(ref)
	return &p
}

func (uc *EmployeeUseCase) toResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeID:     e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Position:       e.Position,
		Salary:         e.Salary,
		DateOfJoining:  e.DateOfJoining,
		Department:     e.Department,
		ProfilePicture: uc.picturePath(e.Picture),
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func invalidIDError() error {
	return &validation.Error{Violations: []dto.FieldError{{Param: "eid", Msg: "eid must be a valid employee id"}}}
}
