package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/dto"
	"github.com/jhoicas/empleados-api/internal/application/validation"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/empleados-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo implementación en memoria del puerto UserRepository.
type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) (string, error) {
	for _, e := range r.byID {
		if e.Email == u.Email || e.Username == u.Username {
			return "", domain.ErrDuplicate
		}
	}
	cp := *u
	cp.ID = primitive.NewObjectID().Hex()
	r.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.byID {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "empleados-api-test",
	}), repo
}

func signup() dto.SignupRequest {
	return dto.SignupRequest{Username: "ana", Email: "ana@example.com", Password: "secreto1"}
}

func TestSignup_PersisteConHashBcrypt(t *testing.T) {
	uc, repo := newUC()

	out, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)
	assert.Equal(t, "User created successfully.", out.Message)
	require.NotEmpty(t, out.UserID)

	saved := repo.byID[out.UserID]
	require.NotNil(t, saved)
	assert.NotEqual(t, "secreto1", saved.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secreto1")))
}

func TestSignup_Invalido_DevuelveViolaciones(t *testing.T) {
	uc, repo := newUC()

	_, err := uc.Signup(context.Background(), dto.SignupRequest{Username: " ", Email: "x", Password: "123"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)
	assert.Empty(t, repo.byID)
}

// Propiedad: dos registros con el mismo email y distinto username → el
// segundo es conflicto genérico y el primero queda intacto.
func TestSignup_EmailRepetido_ConflictoGenerico(t *testing.T) {
	uc, repo := newUC()

	first, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)

	in := signup()
	in.Username = "otrousuario"
	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Len(t, repo.byID, 1)
	assert.Equal(t, "ana", repo.byID[first.UserID].Username)
}

func TestSignup_UsernameRepetido_Conflicto(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)

	in := signup()
	in.Email = "distinta@example.com"
	_, err = uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_PorEmail_EmiteTokenConSubject(t *testing.T) {
	uc, _ := newUC()

	created, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful.", out.Message)

	sub, err := pkgjwt.Parse(testSecret, out.JWTToken)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, sub, "el token debe quedar atado al id del usuario")
}

func TestLogin_PorUsername(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.JWTToken)
}

// Propiedad: usuario inexistente y password incorrecto producen exactamente
// el mismo resultado, sin revelar cuál de los dos falló.
func TestLogin_FallaGenerica_MismoErrorEnAmbosCasos(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Signup(context.Background(), signup())
	require.NoError(t, err)

	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "secreto1"})
	_, errWrongPass := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "incorrecto"})

	assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPass, domain.ErrUnauthorized)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestLogin_SinIdentificador_EsInvalido(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
