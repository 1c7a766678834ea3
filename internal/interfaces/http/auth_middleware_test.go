package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/empleados-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/empleados-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "65f1a2b3c4d5e6f7a8b9c0d1"
)

// buildOptionalAuthApp app mínima con el middleware opcional y un handler
// que devuelve el user_id extraído (o "" si no hubo token válido).
func buildOptionalAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})
	return app
}

func meRequest(t *testing.T, app *fiber.App, authHeader string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// el middleware nunca rechaza, pase lo que pase con el token
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestOptionalAuth_SinHeader_DejaPasar(t *testing.T) {
	app := buildOptionalAuthApp()
	body := meRequest(t, app, "")
	assert.Empty(t, body["user_id"])
}

func TestOptionalAuth_TokenInvalido_DejaPasarSinIdentidad(t *testing.T) {
	app := buildOptionalAuthApp()
	body := meRequest(t, app, "Bearer token.invalido.aqui")
	assert.Empty(t, body["user_id"])
}

func TestOptionalAuth_TokenValido_ExtraeUserID(t *testing.T) {
	app := buildOptionalAuthApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "empleados-api-test", 60)
	require.NoError(t, err)

	body := meRequest(t, app, "Bearer "+tok)
	assert.Equal(t, testUserID, body["user_id"])
}

func TestOptionalAuth_FormatoRaro_DejaPasar(t *testing.T) {
	app := buildOptionalAuthApp()
	body := meRequest(t, app, "Basic abc123")
	assert.Empty(t, body["user_id"])
}
