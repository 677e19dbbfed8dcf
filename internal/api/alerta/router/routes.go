// Package router registra las rutas del dominio de alertas de pánico.
package router

import (
	"github.com/gofiber/fiber/v3"

	alertahdl "zentry_api/internal/api/alerta/handler"
	models "zentry_api/internal/api/auth/models"
	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
)

// Register registra todas las rutas del dominio alerta sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler := alertahdl.NewAlertaHandler()

	authOnlyMiddleware := middleware.AuthMiddleware("")
	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)

	// Cualquier usuario autenticado puede disparar su alerta
	apirouter.RegisterRouteWithMiddleware(v1, "/alertas", "POST", "", []fiber.Handler{authOnlyMiddleware}, handler.HandleCrear)
	apirouter.RegisterRouteWithMiddleware(v1, "/alertas", "GET", "", []fiber.Handler{seguridadMiddleware}, handler.HandleListar)
	apirouter.RegisterRouteWithMiddleware(v1, "/alertas", "GET", "/stream", []fiber.Handler{seguridadMiddleware}, handler.HandleStream)
	apirouter.RegisterRouteWithMiddleware(v1, "/alertas", "PUT", "/:id/estado", []fiber.Handler{seguridadMiddleware}, handler.HandleActualizarEstado)
	return nil
}
