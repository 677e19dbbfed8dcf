// Package router registra las rutas del dominio de tags vehiculares.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	models "zentry_api/internal/api/auth/models"
	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
	taghdl "zentry_api/internal/api/tag/handler"
)

// Register registra todas las rutas del dominio tag sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := taghdl.NewTagHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de tags: %w", err)
	}

	authOnlyMiddleware := middleware.AuthMiddleware("")
	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)

	// Alta con derivación de houseID y encolado de sincronización
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", "POST", "/alta", []fiber.Handler{authOnlyMiddleware}, handler.HandleCrear)
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", "PUT", "/:id/estado", []fiber.Handler{seguridadMiddleware}, handler.HandleCambiarEstado)
	apirouter.RegisterRouteWithMiddleware(v1, "/tags", "GET", "/:id/paneles", []fiber.Handler{authOnlyMiddleware}, handler.HandlePanelStatus)

	// CRUD genérico; las escrituras requieren rol de seguridad
	r.RegisterCRUDRoutes(v1, "/tags", handler, apirouter.ReadWriteConfig, models.RolSeguridad)
	return nil
}
