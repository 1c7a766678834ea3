package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	apphttp "github.com/jhoicas/empleados-api/internal/interfaces/http"
)

// fakeUserRepo puerto UserRepository en memoria.
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

func buildAuthApp() *fiber.App {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     "empleados-api-test",
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: uc, JWTSecret: testJWTSecret})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSignup_Creado201(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "ana", "email": "ana@example.com", "password": "secreto1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "User created successfully.", body["message"])
	assert.NotEmpty(t, body["user_id"])
}

func TestSignup_Invalido400_ConListaDeErrores(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "  ", "email": "nope", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, false, body["status"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok, "la respuesta 400 debe traer el array errors")
	assert.Len(t, errs, 3, "todas las violaciones deben venir juntas")
}

func TestSignup_Duplicado409_MensajeGenerico(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "ana", "email": "ana@example.com", "password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// mismo email, otro username: el conflicto no revela qué campo chocó
	resp = postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "otrousuario", "email": "ana@example.com", "password": "secreto1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "User already exists", body["message"])
}

func TestLogin_Exitoso_DevuelveToken(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "ana", "email": "ana@example.com", "password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/v1/user/login", fiber.Map{
		"email": "ana@example.com", "password": "secreto1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "Login successful.", body["message"])
	assert.NotEmpty(t, body["jwt_token"])
}

// Propiedad: usuario desconocido y password incorrecto devuelven el MISMO
// cuerpo 401.
func TestLogin_FallaGenerica_MismoCuerpoEnAmbosCasos(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/signup", fiber.Map{
		"username": "ana", "email": "ana@example.com", "password": "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	unknown := postJSON(t, app, "/api/v1/user/login", fiber.Map{
		"username": "nadie", "password": "secreto1",
	})
	wrongPass := postJSON(t, app, "/api/v1/user/login", fiber.Map{
		"username": "ana", "password": "incorrecto",
	})
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)

	assert.Equal(t, decodeJSON(t, unknown), decodeJSON(t, wrongPass))
}

func TestLogin_SinIdentificador_400(t *testing.T) {
	app := buildAuthApp()

	resp := postJSON(t, app, "/api/v1/user/login", fiber.Map{"password": "secreto1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "Provide email or username", body["message"])
}
