package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authmodels "zentry_api/internal/api/auth/models"
	authsvc "zentry_api/internal/api/auth/service"
	residencialsvc "zentry_api/internal/api/residencial/service"
	"zentry_api/internal/common"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"
)

// AuthManager administra la autenticación de usuarios.
// Cachea las consultas de usuario para no golpear Mongo en cada request.
type AuthManager struct {
	UsuarioCRUD *authsvc.UsuarioService
	Cache       *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager devuelve la instancia única de AuthManager (patrón singleton).
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager inicializa una instancia nueva de AuthManager (constructor privado).
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	usuarioService, err := authsvc.NewUsuarioService()
	if err != nil {
		return nil, err
	}
	newManager.UsuarioCRUD = usuarioService

	// Cache con vida de 5 minutos y limpieza cada 10
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// getUsuario obtiene el usuario desde cache o base de datos.
func (am *AuthManager) getUsuario(ctx context.Context, userID string) (authmodels.Usuario, error) {
	cacheKey := "usuario:" + userID

	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(authmodels.Usuario), nil
	}

	usuario, err := am.UsuarioCRUD.FindOneById(ctx, utility.String2ObjectID(userID))
	if err != nil {
		return authmodels.Usuario{}, err
	}

	am.Cache.Set(cacheKey, usuario)
	return usuario, nil
}

// InvalidateUsuario borra la entrada de cache de un usuario.
// Se llama al cambiar estado o rol para que el próximo request vea el dato fresco.
func (am *AuthManager) InvalidateUsuario(userID string) {
	am.Cache.Delete("usuario:" + userID)
}

// AuthMiddleware middleware de autenticación para Fiber.
// Verifica el token de sesión (JWT emitido en el login con Firebase),
// carga el usuario y guarda en el contexto:
//   - user_id: ID del documento del usuario
//   - rol: rol del usuario (admin|resident|security|guest)
//   - residencial_id: residencial activo del usuario
//   - usuario: documento completo
//
// Si requireRol no está vacío, el usuario debe tener ese rol (admin siempre pasa).
func AuthMiddleware(requireRol string) fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Falta el header Authorization")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := authsvc.ParseSessionToken(parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token de sesión inválido")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		usuario, err := authManager.getUsuario(c.Context(), claims.UserID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":    c.Path(),
				"user_id": claims.UserID,
				"error":   err.Error(),
			}).Warn("❌ [AUTH] No se encontró el usuario del token")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Estados que bloquean el acceso
		if usuario.Status == authmodels.EstadoRechazado || usuario.Status == authmodels.EstadoInactivo {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"La cuenta no está habilitada para ingresar",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		c.Locals("user_id", usuario.ID.Hex())
		c.Locals("rol", usuario.Role)
		c.Locals("usuario", usuario)

		// residencial activo: primero el claim del token, si falta se resuelve
		// desde el documento del usuario
		residencialID := claims.ResidencialID
		if residencialID == "" {
			residencialID = residencialsvc.GetResolver().GetResidencialIdFromUser(&usuario)
		}
		c.Locals("residencial_id", residencialID)

		if requireRol == "" {
			return c.Next()
		}

		if usuario.Role != requireRol && usuario.Role != authmodels.RolAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":      usuario.ID.Hex(),
				"rol":          usuario.Role,
				"rol_esperado": requireRol,
				"path":         c.Path(),
			}).Warn("❌ [AUTH] Rol insuficiente para la ruta")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"No tiene permisos para acceder a este recurso",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		return c.Next()
	}
}
