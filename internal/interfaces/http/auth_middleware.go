package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleados-api/pkg/jwt"
)

// Local key para el UserID en Fiber.
const LocalUserID = "user_id"

// OptionalAuth parsea el Bearer Token si viene y deja el UserID en c.Locals.
// Nunca rechaza la petición: las rutas de empleados atienden también sin
// token o con token inválido, el token solo aporta identidad.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if userID, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1])); err == nil {
				c.Locals(LocalUserID, userID)
			}
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto, o "" si la petición no traía
// token válido.
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
