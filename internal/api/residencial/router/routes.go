// Package router registra las rutas del dominio residencial.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	models "zentry_api/internal/api/auth/models"
	"zentry_api/internal/api/middleware"
	residencialhdl "zentry_api/internal/api/residencial/handler"
	apirouter "zentry_api/internal/api/router"
)

// Register registra todas las rutas del dominio residencial sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := residencialhdl.NewResidencialHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de residenciales: %w", err)
	}

	authOnlyMiddleware := middleware.AuthMiddleware("")
	adminMiddleware := middleware.AuthMiddleware(models.RolAdmin)
	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)

	// El alta valida la unicidad del código de negocio; solo admin
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "POST", "/alta", []fiber.Handler{adminMiddleware}, handler.HandleCrear)

	// Resolución de nombre: disponible para cualquier usuario autenticado
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "GET", "/nombre/:id", []fiber.Handler{authOnlyMiddleware}, handler.HandleNombre)

	// Subcolecciones por residencial
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "GET", "/:id/guardias", []fiber.Handler{authOnlyMiddleware}, handler.HandleListarGuardias)
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "POST", "/:id/guardias", []fiber.Handler{seguridadMiddleware}, handler.HandleCrearGuardia)
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "GET", "/:id/areas-comunes", []fiber.Handler{authOnlyMiddleware}, handler.HandleListarAreasComunes)
	apirouter.RegisterRouteWithMiddleware(v1, "/residenciales", "POST", "/:id/areas-comunes", []fiber.Handler{seguridadMiddleware}, handler.HandleCrearAreaComun)

	// CRUD genérico; las escrituras quedan para admin
	r.RegisterCRUDRoutes(v1, "/residenciales", handler, apirouter.ReadWriteConfig, models.RolAdmin)
	return nil
}
