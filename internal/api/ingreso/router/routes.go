// Package router registra las rutas del dominio de ingresos.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	models "zentry_api/internal/api/auth/models"
	ingresohdl "zentry_api/internal/api/ingreso/handler"
	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
)

// Register registra todas las rutas del dominio ingreso sobre v1.
// Las escrituras genéricas del CRUD no se publican: el ciclo de vida
// del ingreso solo avanza por los endpoints de registro y transición.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := ingresohdl.NewIngresoHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de ingresos: %w", err)
	}

	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)

	apirouter.RegisterRouteWithMiddleware(v1, "/ingresos", "POST", "/registro", []fiber.Handler{seguridadMiddleware}, handler.HandleRegistrar)
	apirouter.RegisterRouteWithMiddleware(v1, "/ingresos", "PUT", "/:id/datos", []fiber.Handler{seguridadMiddleware}, handler.HandleActualizar)
	apirouter.RegisterRouteWithMiddleware(v1, "/ingresos", "PUT", "/:id/completar", []fiber.Handler{seguridadMiddleware}, handler.HandleCompletar)
	apirouter.RegisterRouteWithMiddleware(v1, "/ingresos", "PUT", "/:id/salida", []fiber.Handler{seguridadMiddleware}, handler.HandleSalida)

	// Solo lectura por el CRUD genérico (listados con paginación y filtros)
	r.RegisterCRUDRoutes(v1, "/ingresos", handler, apirouter.ReadOnlyConfig, models.RolSeguridad)
	return nil
}
