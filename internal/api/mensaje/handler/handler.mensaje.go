// Package mensajehdl - handlers HTTP del dominio de mensajería.
package mensajehdl

import (
	"encoding/json"
	"strconv"

	authmodels "zentry_api/internal/api/auth/models"
	basehdl "zentry_api/internal/api/base/handler"
	mensajedto "zentry_api/internal/api/mensaje/dto"
	models "zentry_api/internal/api/mensaje/models"
	mensajesvc "zentry_api/internal/api/mensaje/service"
	"zentry_api/internal/api/middleware"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MensajeHandler expone las operaciones HTTP de mensajería. El servicio
// se construye por petición: cada residencial tiene sus propias
// subcolecciones.
type MensajeHandler struct{}

// NewMensajeHandler crea un MensajeHandler nuevo.
func NewMensajeHandler() *MensajeHandler {
	return &MensajeHandler{}
}

func respondSuccess(c fiber.Ctx, data interface{}) error {
	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

func parseBody(c fiber.Ctx, input interface{}) error {
	if err := json.Unmarshal(c.Body(), input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "El body no es JSON válido", common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// servicio construye el MensajeService del residencial activo.
func (h *MensajeHandler) servicio(c fiber.Ctx) (*mensajesvc.MensajeService, error) {
	residencialID, _ := c.Locals("residencial_id").(string)
	if residencialID == "" {
		return nil, common.NewError(
			common.ErrCodeAuthRole,
			"La sesión no tiene residencial asociado",
			common.StatusForbidden,
			nil,
		)
	}
	return mensajesvc.NewMensajeService(residencialID)
}

func usuarioDeSesion(c fiber.Ctx) (authmodels.Usuario, error) {
	usuario, ok := c.Locals("usuario").(authmodels.Usuario)
	if !ok {
		return authmodels.Usuario{}, common.ErrTokenInvalid
	}
	return usuario, nil
}

func paginacion(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// HandleCrearChat abre un hilo de conversación.
// POST /api/v1/mensajes/chats
func (h *MensajeHandler) HandleCrearChat(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	usuario, err := usuarioDeSesion(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	input := new(mensajedto.CrearChatInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	participantes := make([]primitive.ObjectID, 0, len(input.Participantes))
	for _, raw := range input.Participantes {
		if primitive.IsValidObjectID(raw) {
			participantes = append(participantes, utility.String2ObjectID(raw))
		}
	}

	chat, err := service.CrearChat(c.Context(), models.Chat{
		Titulo:        input.Titulo,
		Participantes: participantes,
		CreadoPor:     usuario.ID,
	})
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, chat)
}

// HandleListarChats lista los hilos del usuario. El personal del
// residencial ve todos los hilos.
// GET /api/v1/mensajes/chats
func (h *MensajeHandler) HandleListarChats(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	usuario, err := usuarioDeSesion(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	filtro := usuario.ID
	if usuario.Role == authmodels.RolAdmin || usuario.Role == authmodels.RolSeguridad {
		filtro = primitive.NilObjectID
	}

	chats, err := service.ListarChats(c.Context(), filtro)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, chats)
}

// HandlePublicarMensaje agrega un mensaje a un chat.
// POST /api/v1/mensajes/chats/:id
func (h *MensajeHandler) HandlePublicarMensaje(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	usuario, err := usuarioDeSesion(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	chatID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "ID de chat inválido", common.StatusBadRequest, err))
		return nil
	}

	input := new(mensajedto.PublicarMensajeInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	mensaje, err := service.PublicarMensaje(c.Context(), models.Mensaje{
		ChatID:      chatID,
		AutorID:     usuario.ID,
		NombreAutor: usuario.Nombre + " " + usuario.Apellido,
		Contenido:   input.Contenido,
		LeidoPor:    []primitive.ObjectID{usuario.ID},
	})
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, mensaje)
}

// HandleListarMensajes pagina los mensajes de un chat.
// GET /api/v1/mensajes/chats/:id
func (h *MensajeHandler) HandleListarMensajes(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	chatID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "ID de chat inválido", common.StatusBadRequest, err))
		return nil
	}

	page, limit := paginacion(c)
	resultado, err := service.ListarMensajes(c.Context(), chatID, page, limit)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, resultado)
}

// HandleMarcarLeido marca los mensajes del chat como leídos por el
// usuario de la sesión.
// PUT /api/v1/mensajes/chats/:id/leido
func (h *MensajeHandler) HandleMarcarLeido(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	usuario, err := usuarioDeSesion(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	chatID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "ID de chat inválido", common.StatusBadRequest, err))
		return nil
	}

	marcados, err := service.MarcarLeido(c.Context(), chatID, usuario.ID)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, fiber.Map{"marcados": marcados})
}

// HandlePublicarAnuncio publica un anuncio general del residencial.
// POST /api/v1/mensajes/anuncios
func (h *MensajeHandler) HandlePublicarAnuncio(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	usuario, err := usuarioDeSesion(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	input := new(mensajedto.PublicarAnuncioInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	anuncio, err := service.PublicarAnuncio(c.Context(), models.Notificacion{
		Titulo:       input.Titulo,
		Contenido:    input.Contenido,
		PublicadoPor: usuario.ID,
		PorCorreo:    input.PorCorreo,
	})
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, anuncio)
}

// HandleListarAnuncios pagina los anuncios del residencial.
// GET /api/v1/mensajes/anuncios
func (h *MensajeHandler) HandleListarAnuncios(c fiber.Ctx) error {
	service, err := h.servicio(c)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	page, limit := paginacion(c)
	resultado, err := service.ListarAnuncios(c.Context(), page, limit)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, resultado)
}
