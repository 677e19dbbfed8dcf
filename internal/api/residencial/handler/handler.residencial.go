// Package residencialhdl - handlers HTTP del dominio residencial.
package residencialhdl

import (
	basehdl "zentry_api/internal/api/base/handler"
	residencialdto "zentry_api/internal/api/residencial/dto"
	models "zentry_api/internal/api/residencial/models"
	residencialsvc "zentry_api/internal/api/residencial/service"
	"zentry_api/internal/common"

	"github.com/gofiber/fiber/v3"
)

// ResidencialHandler expone las operaciones HTTP sobre residenciales y
// sus subcolecciones (guardias, áreas comunes).
type ResidencialHandler struct {
	basehdl.BaseHandler[models.Residencial, residencialdto.ResidencialCreateInput, residencialdto.ResidencialUpdateInput]
	ResidencialService *residencialsvc.ResidencialService
}

// NewResidencialHandler crea un ResidencialHandler nuevo.
func NewResidencialHandler() (*ResidencialHandler, error) {
	service, err := residencialsvc.NewResidencialService()
	if err != nil {
		return nil, err
	}

	handler := &ResidencialHandler{ResidencialService: service}
	handler.BaseService = service.BaseServiceMongoImpl
	return handler, nil
}

// HandleCrear da de alta un residencial. Reemplaza al InsertOne genérico
// para validar la unicidad del código de negocio.
// POST /api/v1/residenciales
func (h *ResidencialHandler) HandleCrear(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(residencialdto.ResidencialCreateInput)
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

		residencial, err := h.ResidencialService.CrearResidencial(c.Context(), *model)
		h.HandleResponse(c, residencial, err)
		return nil
	})
}

// HandleNombre resuelve el nombre para mostrar de un residencial a partir
// de cualquiera de sus identificadores. Nunca falla: si nada coincide
// responde un nombre de relleno.
// GET /api/v1/residenciales/nombre/:id
func (h *ResidencialHandler) HandleNombre(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		nombre := residencialsvc.GetResolver().GetResidencialNombre(id)
		h.HandleResponse(c, fiber.Map{"id": id, "nombre": nombre}, nil)
		return nil
	})
}

// resolverDocID traduce el identificador del path (código de negocio o
// docID) al docID que nombra las subcolecciones.
func (h *ResidencialHandler) resolverDocID(c fiber.Ctx) (string, error) {
	id := c.Params("id")
	docID := residencialsvc.GetResolver().GetDocIDFromCodigo(id)
	if docID == "" {
		return "", common.NewError(
			common.ErrCodeDatabaseQuery,
			"Residencial no encontrado",
			common.StatusNotFound,
			nil,
		)
	}
	return docID, nil
}

// HandleListarGuardias lista los guardias de la caseta del residencial.
// GET /api/v1/residenciales/:id/guardias
func (h *ResidencialHandler) HandleListarGuardias(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		docID, err := h.resolverDocID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		service, err := residencialsvc.NewGuardiaService(docID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		guardias, err := service.Find(c.Context(), map[string]interface{}{}, nil)
		h.HandleResponse(c, guardias, err)
		return nil
	})
}

// HandleCrearGuardia da de alta un guardia en la caseta del residencial.
// POST /api/v1/residenciales/:id/guardias
func (h *ResidencialHandler) HandleCrearGuardia(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		docID, err := h.resolverDocID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(residencialdto.GuardiaCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		service, err := residencialsvc.NewGuardiaService(docID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		guardia := models.Guardia{
			Nombre:   input.Nombre,
			Apellido: input.Apellido,
			Telefono: input.Telefono,
			Turno:    input.Turno,
			Activo:   true,
		}
		creado, err := service.InsertOne(c.Context(), guardia)
		h.HandleResponse(c, creado, err)
		return nil
	})
}

// HandleListarAreasComunes lista las áreas comunes del residencial.
// GET /api/v1/residenciales/:id/areas-comunes
func (h *ResidencialHandler) HandleListarAreasComunes(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		docID, err := h.resolverDocID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		service, err := residencialsvc.NewAreaComunService(docID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		areas, err := service.Find(c.Context(), map[string]interface{}{}, nil)
		h.HandleResponse(c, areas, err)
		return nil
	})
}

// HandleCrearAreaComun registra un área común del residencial.
// POST /api/v1/residenciales/:id/areas-comunes
func (h *ResidencialHandler) HandleCrearAreaComun(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		docID, err := h.resolverDocID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(residencialdto.AreaComunCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		service, err := residencialsvc.NewAreaComunService(docID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		area := models.AreaComun{
			Nombre:      input.Nombre,
			Descripcion: input.Descripcion,
			Capacidad:   input.Capacidad,
			Horario:     input.Horario,
			Activo:      true,
		}
		creada, err := service.InsertOne(c.Context(), area)
		h.HandleResponse(c, creada, err)
		return nil
	})
}
