package repository

import (
	"context"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// EmployeeFilter filtros de listado/búsqueda. Cada campo no vacío se compara
// por subcadena sin distinguir mayúsculas contra el valor almacenado.
type EmployeeFilter struct {
	Department string
	Position   string
}

// IsEmpty indica si no se pidió ningún filtro.
func (f EmployeeFilter) IsEmpty() bool {
	return f.Department == "" && f.Position == ""
}

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// GetByID devuelve (nil, nil) cuando el ID no existe.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *entity.Employee) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*entity.Employee, error)
	Update(ctx context.Context, emp *entity.Employee) error
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
