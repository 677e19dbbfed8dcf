// Package ingresohdl - handlers HTTP del dominio de ingresos.
package ingresohdl

import (
	basehdl "zentry_api/internal/api/base/handler"
	basesvc "zentry_api/internal/api/base/service"
	ingresodto "zentry_api/internal/api/ingreso/dto"
	models "zentry_api/internal/api/ingreso/models"
	ingresosvc "zentry_api/internal/api/ingreso/service"
	"zentry_api/internal/common"
	"zentry_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngresoHandler expone las operaciones HTTP sobre ingresos.
// Las escrituras genéricas del CRUD quedan deshabilitadas: el ciclo de
// vida del ingreso pasa por los endpoints de registro y transición.
type IngresoHandler struct {
	basehdl.BaseHandler[models.Ingreso, ingresodto.IngresoCreateInput, ingresodto.IngresoUpdateInput]
	IngresoService *ingresosvc.IngresoService
}

// NewIngresoHandler crea un IngresoHandler nuevo.
func NewIngresoHandler() (*IngresoHandler, error) {
	service, err := ingresosvc.NewIngresoService()
	if err != nil {
		return nil, err
	}

	handler := &IngresoHandler{IngresoService: service}
	handler.BaseService = service.BaseServiceMongoImpl
	return handler, nil
}

// HandleRegistrar da de alta un ingreso en caseta.
// POST /api/v1/ingresos/registro
func (h *IngresoHandler) HandleRegistrar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(ingresodto.IngresoCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Error al transformar los datos",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if model.ResidencialID == "" {
			model.ResidencialID = h.GetActiveResidencialID(c)
		}
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			model.RegistradoPor = utility.String2ObjectID(userID)
		}

		ingreso, err := h.IngresoService.RegistrarIngreso(c.Context(), *model)
		h.HandleResponse(c, ingreso, err)
		return nil
	})
}

// HandleActualizar corrige los datos de un ingreso aún activo.
// PUT /api/v1/ingresos/:id
func (h *IngresoHandler) HandleActualizar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rawID := h.GetIDFromContext(c)
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID inválido", common.StatusBadRequest, err))
			return nil
		}

		input := new(ingresodto.IngresoUpdateInput)
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

		campos, err := utility.ToMap(input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Error al procesar los datos", common.StatusBadRequest, err))
			return nil
		}
		set := make(map[string]interface{})
		for k, v := range campos {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			set[k] = v
		}

		ingreso, err := h.IngresoService.ActualizarIngreso(c.Context(), id, &basesvc.UpdateData{Set: set})
		h.HandleResponse(c, ingreso, err)
		return nil
	})
}

// transicion resuelve el ID y ejecuta la transición dada.
func (h *IngresoHandler) transicion(c fiber.Ctx, fn func(id primitive.ObjectID) (models.Ingreso, error)) error {
	return h.SafeHandler(c, func() error {
		rawID := h.GetIDFromContext(c)
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID inválido", common.StatusBadRequest, err))
			return nil
		}

		if err := h.ValidateResidencialAccess(c, rawID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ingreso, err := fn(id)
		h.HandleResponse(c, ingreso, err)
		return nil
	})
}

// HandleCompletar marca el ingreso como completado.
// PUT /api/v1/ingresos/:id/completar
func (h *IngresoHandler) HandleCompletar(c fiber.Ctx) error {
	return h.transicion(c, func(id primitive.ObjectID) (models.Ingreso, error) {
		return h.IngresoService.CompletarIngreso(c.Context(), id)
	})
}

// HandleSalida registra la salida del visitante.
// PUT /api/v1/ingresos/:id/salida
func (h *IngresoHandler) HandleSalida(c fiber.Ctx) error {
	return h.transicion(c, func(id primitive.ObjectID) (models.Ingreso, error) {
		return h.IngresoService.RegistrarSalida(c.Context(), id)
	})
}
