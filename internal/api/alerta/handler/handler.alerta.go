// Package alertahdl - handlers HTTP del dominio de alertas de pánico.
package alertahdl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	alertadto "zentry_api/internal/api/alerta/dto"
	models "zentry_api/internal/api/alerta/models"
	alertasvc "zentry_api/internal/api/alerta/service"
	authmodels "zentry_api/internal/api/auth/models"
	basehdl "zentry_api/internal/api/base/handler"
	"zentry_api/internal/api/middleware"
	"zentry_api/internal/common"
	"zentry_api/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertaHandler expone las operaciones HTTP sobre alertas de pánico.
// No embebe el BaseHandler: las alertas no viven en una sola colección,
// el servicio resuelve la ubicación en cada operación.
type AlertaHandler struct {
	AlertaService *alertasvc.AlertaService
}

// NewAlertaHandler crea un AlertaHandler nuevo.
func NewAlertaHandler() *AlertaHandler {
	return &AlertaHandler{AlertaService: alertasvc.NewAlertaService()}
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
	if len(c.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.Body(), input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "El body no es JSON válido", common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

func residencialActivo(c fiber.Ctx) string {
	residencialID, _ := c.Locals("residencial_id").(string)
	return residencialID
}

// HandleCrear dispara una alerta de pánico del usuario autenticado.
// POST /api/v1/alertas
func (h *AlertaHandler) HandleCrear(c fiber.Ctx) error {
	input := new(alertadto.CrearAlertaInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	usuario, ok := c.Locals("usuario").(authmodels.Usuario)
	if !ok {
		middleware.HandleErrorResponse(c, common.ErrTokenInvalid)
		return nil
	}

	alerta := models.AlertaPanico{
		ResidencialID: residencialActivo(c),
		Status:        models.AlertaActiva,
		UsuarioID:     usuario.ID,
		NombreUsuario: usuario.Nombre + " " + usuario.Apellido,
		Telefono:      input.Telefono,
		Calle:         input.Calle,
		NumeroCasa:    input.NumeroCasa,
		Mensaje:       input.Mensaje,
	}
	if alerta.Telefono == "" {
		alerta.Telefono = usuario.Telefono
	}
	if alerta.Calle == "" {
		alerta.Calle = usuario.Calle
	}
	if alerta.NumeroCasa == "" {
		alerta.NumeroCasa = usuario.NumeroCasa
	}

	creada, err := h.AlertaService.CrearAlertaPanico(c.Context(), alerta)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, creada)
}

// HandleListar busca las alertas del residencial en todas las
// ubicaciones conocidas. Nunca falla: sin coincidencias, lista vacía.
// GET /api/v1/alertas
func (h *AlertaHandler) HandleListar(c fiber.Ctx) error {
	residencialID := residencialActivo(c)
	if q := c.Query("residencialId"); q != "" {
		if rol, _ := c.Locals("rol").(string); rol == authmodels.RolAdmin {
			residencialID = q
		}
	}

	alertas := h.AlertaService.GetAlertasPanico(c.Context(), residencialID)
	return respondSuccess(c, alertas)
}

// HandleActualizarEstado actualiza estado y/o marca de lectura de una
// alerta. Responde {ok:false} cuando ninguna ubicación la contiene.
// PUT /api/v1/alertas/:id/estado
func (h *AlertaHandler) HandleActualizarEstado(c fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "ID inválido", common.StatusBadRequest, err))
		return nil
	}

	input := new(alertadto.ActualizarEstadoAlertaInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	if input.Estado == "" && input.Leida == nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "Nada que actualizar", common.StatusBadRequest, nil))
		return nil
	}

	ok := h.AlertaService.ActualizarEstadoAlertaPanico(c.Context(), residencialActivo(c), id, input.Estado, input.Leida)
	return respondSuccess(c, alertadto.ActualizarEstadoAlertaResult{Ok: ok})
}

// escribirEventoSSE serializa la alerta como evento server-sent y lo
// deja escrito y flusheado en la conexión.
func escribirEventoSSE(w *bufio.Writer, alerta models.AlertaPanico) error {
	payload, err := json.Marshal(alerta)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: alerta\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// HandleStream transmite las alertas nuevas del residencial como
// server-sent events. La conexión queda abierta hasta que el cliente
// corte; al cerrarse se cancela la suscripción a los change streams.
// GET /api/v1/alertas/stream
func (h *AlertaHandler) HandleStream(c fiber.Ctx) error {
	residencialID := residencialActivo(c)
	if q := c.Query("residencialId"); q != "" {
		if rol, _ := c.Locals("rol").(string); rol == authmodels.RolAdmin {
			residencialID = q
		}
	}

	// La suscripción vive más que el request: se cancela cuando el
	// stream writer termina, no con el contexto del request
	eventos := make(chan models.AlertaPanico, 16)
	cancelar, err := h.AlertaService.SuscribirseAAlertasPanico(context.Background(), residencialID, func(alerta models.AlertaPanico) {
		select {
		case eventos <- alerta:
		default:
			// Consumidor lento: la alerta sigue disponible por GET /alertas
		}
	})
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancelar()

		keepAlive := time.NewTicker(30 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case alerta := <-eventos:
				if err := escribirEventoSSE(w, alerta); err != nil {
					return
				}
			case <-keepAlive.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
