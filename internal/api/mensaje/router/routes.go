// Package router registra las rutas del dominio de mensajería.
package router

import (
	"github.com/gofiber/fiber/v3"

	models "zentry_api/internal/api/auth/models"
	mensajehdl "zentry_api/internal/api/mensaje/handler"
	"zentry_api/internal/api/middleware"
	apirouter "zentry_api/internal/api/router"
)

// Register registra todas las rutas del dominio mensaje sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler := mensajehdl.NewMensajeHandler()

	authOnlyMiddleware := middleware.AuthMiddleware("")
	seguridadMiddleware := middleware.AuthMiddleware(models.RolSeguridad)

	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "POST", "/chats", []fiber.Handler{authOnlyMiddleware}, handler.HandleCrearChat)
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "GET", "/chats", []fiber.Handler{authOnlyMiddleware}, handler.HandleListarChats)
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "POST", "/chats/:id", []fiber.Handler{authOnlyMiddleware}, handler.HandlePublicarMensaje)
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "GET", "/chats/:id", []fiber.Handler{authOnlyMiddleware}, handler.HandleListarMensajes)
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "PUT", "/chats/:id/leido", []fiber.Handler{authOnlyMiddleware}, handler.HandleMarcarLeido)

	// Anuncios: publicar requiere personal del residencial
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "POST", "/anuncios", []fiber.Handler{seguridadMiddleware}, handler.HandlePublicarAnuncio)
	apirouter.RegisterRouteWithMiddleware(v1, "/mensajes", "GET", "/anuncios", []fiber.Handler{authOnlyMiddleware}, handler.HandleListarAnuncios)
	return nil
}
