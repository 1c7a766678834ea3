package repository

import (
	"context"

	"github.com/jhoicas/empleados-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// ExistsByEmailOrUsername chequeo best-effort de unicidad previo al alta;
	// el índice único de la colección es el respaldo real ante carreras.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}
