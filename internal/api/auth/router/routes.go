// Package router registra las rutas del dominio de usuarios: login, perfil,
// administración de cuentas y CRUD de usuarios.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "zentry_api/internal/api/auth/handler"
	models "zentry_api/internal/api/auth/models"
	basehdl "zentry_api/internal/api/base/handler"
	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
)

// Register registra todas las rutas del dominio auth sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerUsuarioRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de sistema: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	usuarioHandler, err := authhdl.NewUsuarioHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de usuarios: %w", err)
	}

	// Login sin autenticación previa: el ID token de Firebase es la credencial
	router.Post("/auth/login", usuarioHandler.HandleLogin)

	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/perfil", []fiber.Handler{authOnlyMiddleware}, usuarioHandler.HandlePerfil)
	return nil
}

func registerUsuarioRoutes(router fiber.Router, r *apirouter.Router) error {
	usuarioHandler, err := authhdl.NewUsuarioHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de usuarios: %w", err)
	}

	// Altas privilegiadas: seguridad puede crear residentes, solo admin
	// puede crear personal de seguridad
	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)
	adminMiddleware := middleware.AuthMiddleware(models.RolAdmin)
	apirouter.RegisterRouteWithMiddleware(router, "/auth/usuarios", "POST", "/residente", []fiber.Handler{seguridadMiddleware}, usuarioHandler.HandleCrearResidente)
	apirouter.RegisterRouteWithMiddleware(router, "/auth/usuarios", "POST", "/seguridad", []fiber.Handler{adminMiddleware}, usuarioHandler.HandleCrearSeguridad)

	// Gestión de cuentas: aprobación/rechazo y borrado masivo (seguridad o admin)
	apirouter.RegisterRouteWithMiddleware(router, "/auth/usuarios", "PUT", "/:id/estado", []fiber.Handler{seguridadMiddleware}, usuarioHandler.HandleCambiarEstado)
	apirouter.RegisterRouteWithMiddleware(router, "/auth/usuarios", "POST", "/eliminar", []fiber.Handler{adminMiddleware}, usuarioHandler.HandleEliminarUsuarios)

	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(router, "/auth/usuarios", "GET", "/listado", []fiber.Handler{authOnlyMiddleware}, usuarioHandler.HandleGetUsuarios)

	// CRUD genérico; las escrituras requieren rol de seguridad
	r.RegisterCRUDRoutes(router, "/usuarios", usuarioHandler, apirouter.ReadWriteConfig, models.RolSeguridad)
	return nil
}
