// Package authhdl - handlers HTTP del dominio de usuarios.
package authhdl

import (
	"context"

	authdto "zentry_api/internal/api/auth/dto"
	models "zentry_api/internal/api/auth/models"
	authsvc "zentry_api/internal/api/auth/service"
	basehdl "zentry_api/internal/api/base/handler"
	"zentry_api/internal/api/middleware"
	"zentry_api/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsuarioHandler expone las operaciones HTTP sobre usuarios.
// El CRUD genérico viene del BaseHandler; aquí solo viven los endpoints
// propios del dominio (login, alta privilegiada, estado, borrado masivo).
type UsuarioHandler struct {
	basehdl.BaseHandler[models.Usuario, authdto.UsuarioCreateInput, authdto.UsuarioUpdateInput]
	UsuarioService *authsvc.UsuarioService
}

// NewUsuarioHandler crea un UsuarioHandler nuevo.
func NewUsuarioHandler() (*UsuarioHandler, error) {
	service, err := authsvc.NewUsuarioService()
	if err != nil {
		return nil, err
	}

	handler := &UsuarioHandler{UsuarioService: service}
	handler.BaseService = service.BaseServiceMongoImpl
	return handler, nil
}

// HandleLogin autentica con un ID token de Firebase y devuelve el token
// de sesión junto con el perfil del usuario.
// POST /api/v1/auth/login
func (h *UsuarioHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.FirebaseLoginInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.UsuarioService.Login(c.Context(), input)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCrearResidente da de alta un residente ya aprobado.
// Requiere rol de seguridad o administrador.
// POST /api/v1/auth/usuarios/residente
func (h *UsuarioHandler) HandleCrearResidente(c fiber.Ctx) error {
	return h.handleCrearUsuario(c, h.UsuarioService.CrearUsuarioResidente)
}

// HandleCrearSeguridad da de alta personal de seguridad.
// Solo administradores.
// POST /api/v1/auth/usuarios/seguridad
func (h *UsuarioHandler) HandleCrearSeguridad(c fiber.Ctx) error {
	return h.handleCrearUsuario(c, h.UsuarioService.CrearUsuarioSeguridad)
}

func (h *UsuarioHandler) handleCrearUsuario(c fiber.Ctx, crear func(ctx context.Context, input *authdto.CrearUsuarioInput) (models.Usuario, error)) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.CrearUsuarioInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Sin residencial explícito se hereda el del creador
		if input.ResidencialID == "" {
			input.ResidencialID = h.GetActiveResidencialID(c)
		}
		if !h.IsAdminRequest(c) {
			if ctxID := h.GetActiveResidencialID(c); ctxID != "" && input.ResidencialID != ctxID {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeAuthRole,
					"No puede crear usuarios en otro residencial",
					common.StatusForbidden,
					nil,
				))
				return nil
			}
		}

		usuario, err := crear(c.Context(), input)
		h.HandleResponse(c, usuario, err)
		return nil
	})
}

// HandleCambiarEstado aprueba, rechaza o inactiva una cuenta.
// PUT /api/v1/auth/usuarios/:id/estado
func (h *UsuarioHandler) HandleCambiarEstado(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rawID := h.GetIDFromContext(c)
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID inválido", common.StatusBadRequest, err))
			return nil
		}

		input := new(authdto.CambiarEstadoInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateResidencialAccess(c, rawID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		usuario, err := h.UsuarioService.CambiarEstadoUsuario(c.Context(), id, input.Estado, input.Motivo)
		if err == nil {
			// El cambio de estado afecta la autorización: invalidar la caché
			middleware.GetAuthManager().InvalidateUsuario(rawID)
		}
		h.HandleResponse(c, usuario, err)
		return nil
	})
}

// HandleGetUsuarios lista los usuarios del residencial activo.
// Ante errores devuelve lista vacía (la tabla de administración lo espera así).
// GET /api/v1/auth/usuarios
func (h *UsuarioHandler) HandleGetUsuarios(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		residencialID := h.GetActiveResidencialID(c)
		if q := c.Query("residencialId"); q != "" && h.IsAdminRequest(c) {
			residencialID = q
		}

		usuarios := h.UsuarioService.GetUsuarios(c.Context(), residencialID)
		h.HandleResponse(c, usuarios, nil)
		return nil
	})
}

// HandleEliminarUsuarios borra varios usuarios; cada uno reporta su resultado.
// POST /api/v1/auth/usuarios/eliminar
func (h *UsuarioHandler) HandleEliminarUsuarios(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.EliminarUsuariosInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		resultados := h.UsuarioService.EliminarUsuariosBulk(c.Context(), input.IDs)
		for _, r := range resultados {
			if r.Exito {
				middleware.GetAuthManager().InvalidateUsuario(r.ID)
			}
		}
		h.HandleResponse(c, resultados, nil)
		return nil
	})
}

// HandlePerfil devuelve el perfil del usuario autenticado.
// GET /api/v1/auth/perfil
func (h *UsuarioHandler) HandlePerfil(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		usuario, ok := c.Locals("usuario").(models.Usuario)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		h.HandleResponse(c, usuario, nil)
		return nil
	})
}
