// Package taghdl - handlers HTTP del dominio de tags vehiculares.
package taghdl

import (
	basehdl "zentry_api/internal/api/base/handler"
	tagdto "zentry_api/internal/api/tag/dto"
	models "zentry_api/internal/api/tag/models"
	tagsvc "zentry_api/internal/api/tag/service"
	"zentry_api/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagHandler expone las operaciones HTTP sobre tags vehiculares.
type TagHandler struct {
	basehdl.BaseHandler[models.Tag, tagdto.TagCreateInput, tagdto.TagUpdateInput]
	TagService *tagsvc.TagService
}

// NewTagHandler crea un TagHandler nuevo.
func NewTagHandler() (*TagHandler, error) {
	service, err := tagsvc.NewTagService()
	if err != nil {
		return nil, err
	}

	handler := &TagHandler{TagService: service}
	handler.BaseService = service.BaseServiceMongoImpl
	return handler, nil
}

// HandleCrear registra un tag y encola su alta en los paneles.
// Reemplaza al InsertOne genérico para derivar el houseID y disparar la
// sincronización.
// POST /api/v1/tags/alta
func (h *TagHandler) HandleCrear(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(tagdto.TagCreateInput)
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
		if !h.IsAdminRequest(c) {
			if ctxID := h.GetActiveResidencialID(c); ctxID != "" && model.ResidencialID != ctxID {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeAuthRole,
					"No tiene acceso a este residencial",
					common.StatusForbidden,
					nil,
				))
				return nil
			}
		}

		tag, err := h.TagService.CrearTag(c.Context(), *model)
		h.HandleResponse(c, tag, err)
		return nil
	})
}

// HandleCambiarEstado fija el estado deseado del tag.
// PUT /api/v1/tags/:id/estado
func (h *TagHandler) HandleCambiarEstado(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rawID := h.GetIDFromContext(c)
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "ID inválido", common.StatusBadRequest, err))
			return nil
		}

		input := new(tagdto.CambiarEstadoTagInput)
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

		tag, err := h.TagService.CambiarEstadoTag(c.Context(), id, input.Status)
		h.HandleResponse(c, tag, err)
		return nil
	})
}

// HandlePanelStatus responde el último trabajo por panel del tag.
// El tablero lo consulta para saber si el tag ya quedó aplicado en todos
// los paneles.
// GET /api/v1/tags/:id/paneles
func (h *TagHandler) HandlePanelStatus(c fiber.Ctx) error {
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

		estados, err := h.TagService.TagPanelStatus(c.Context(), id)
		h.HandleResponse(c, estados, err)
		return nil
	})
}
