// Package router registra las rutas de documentos de usuario.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
	storagehdl "zentry_api/internal/api/storage/handler"
)

// Register registra las rutas de documentos sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := storagehdl.NewStorageHandler()
	if err != nil {
		return fmt.Errorf("no se pudo crear el handler de documentos: %w", err)
	}

	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(v1, "/documentos", "POST", "", []fiber.Handler{authOnlyMiddleware}, handler.HandleSubir)
	apirouter.RegisterRouteWithMiddleware(v1, "/documentos", "POST", "/url", []fiber.Handler{authOnlyMiddleware}, handler.HandleURLDescarga)
	apirouter.RegisterRouteWithMiddleware(v1, "/documentos", "POST", "/eliminar", []fiber.Handler{authOnlyMiddleware}, handler.HandleEliminar)
	apirouter.RegisterRouteWithMiddleware(v1, "/documentos", "POST", "/existe", []fiber.Handler{authOnlyMiddleware}, handler.HandleExiste)
	return nil
}
