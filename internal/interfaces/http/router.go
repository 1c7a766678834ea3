package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/empleados-api/internal/application/auth"
	"github.com/jhoicas/empleados-api/internal/application/employee"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	EmployeeUC *employee.EmployeeUseCase
	JWTSecret  string
}

// Router registra las rutas de la API (mismos paths que consume la SPA).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	user := api.Group("/user")
	authHandler := NewAuthHandler(deps.AuthUC)
	user.Post("/signup", authHandler.Signup)
	user.Post("/login", authHandler.Login)

	// Empleados: el token se parsea si viene, pero no se exige
	emp := api.Group("/emp", OptionalAuth(deps.JWTSecret))
	empHandler := NewEmployeeHandler(deps.EmployeeUC)
	emp.Get("/employees", empHandler.List)
	emp.Post("/employees", empHandler.Create)
	// /search antes de /:eid para que Fiber no lo capture como parámetro
	emp.Get("/employees/search", empHandler.Search)
	emp.Get("/employees/:eid", empHandler.GetByID)
	emp.Put("/employees/:eid", empHandler.Update)
	emp.Delete("/employees", empHandler.Delete)
}
