package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/application/validation"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
	"github.com/jhoicas/empleados-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Signup valida, chequea unicidad de username/email, hashea con bcrypt y persiste.
// Devuelve ErrDuplicate genérico sin revelar qué campo chocó. El chequeo previo
// es best-effort; el índice único de la colección cubre la carrera entre dos
// altas concurrentes y también se mapea a ErrDuplicate.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	if errs := validation.Signup(&in); len(errs) > 0 {
		return nil, &validation.Error{Violations: errs}
	}
	exists, err := uc.users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	id, err := uc.users.Create(ctx, &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return &dto.SignupResponse{Message: "User created successfully.", UserID: id}, nil
}

// Login busca por el identificador que venga (email o username), verifica el
// password y emite el token. Usuario inexistente y password incorrecto
// devuelven el mismo ErrUnauthorized para no filtrar cuál de los dos falló.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" && in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		user *entity.User
		err  error
	)
	if in.Email != "" {
		user, err = uc.users.FindByEmail(ctx, in.Email)
	} else {
		user, err = uc.users.FindByUsername(ctx, in.Username)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Message: "Login successful.", JWTToken: token}, nil
}
