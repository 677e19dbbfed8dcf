package basehdl

// Endpoints CRUD estándar del BaseHandler. Cada método parsea el request,
// aplica el scoping por residencial y delega en BaseService.

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	basesvc "zentry_api/internal/api/base/service"
	"zentry_api/internal/common"
	"zentry_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// InsertOne agrega un documento nuevo a la base de datos.
// El body se parsea como DTO CreateInput y se transforma al modelo antes de insertar.
// Usa el struct tag `transform` del DTO para convertir campos (ej: string → ObjectID).
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Los datos enviados no tienen formato JSON válido o no coinciden con la estructura esperada. Detalle: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Error al transformar los datos: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		// residencialID: si viene en el request se valida contra el contexto,
		// si no viene se toma del residencial activo
		residencialIDFromRequest := h.GetResidencialIDFromModel(model)
		if residencialIDFromRequest != "" {
			if !h.IsAdminRequest(c) {
				activeResidencialID := h.GetActiveResidencialID(c)
				if activeResidencialID != "" && activeResidencialID != residencialIDFromRequest {
					h.HandleResponse(c, nil, common.NewError(
						common.ErrCodeAuthRole,
						"No tiene acceso a este residencial",
						common.StatusForbidden,
						nil,
					))
					return nil
				}
			}
		} else {
			h.SetResidencialID(model, h.GetActiveResidencialID(c))
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// InsertMany agrega varios documentos a la base de datos.
// El body se parsea como un arreglo JSON y se valida antes de insertar.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var inputs []T
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Los datos enviados deben ser un arreglo JSON y sus elementos deben coincidir con la estructura esperada. Detalle: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		// residencialID: del request (validado) o del contexto, por cada item
		for i := range inputs {
			residencialIDFromRequest := h.GetResidencialIDFromModel(&inputs[i])
			if residencialIDFromRequest != "" {
				if !h.IsAdminRequest(c) {
					activeResidencialID := h.GetActiveResidencialID(c)
					if activeResidencialID != "" && activeResidencialID != residencialIDFromRequest {
						h.HandleResponse(c, nil, common.NewError(
							common.ErrCodeAuthRole,
							"No tiene acceso a este residencial",
							common.StatusForbidden,
							nil,
						))
						return nil
					}
				}
			} else {
				h.SetResidencialID(&inputs[i], h.GetActiveResidencialID(c))
			}
		}

		data, err := h.BaseService.InsertMany(c.Context(), inputs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOne busca un documento según el filtro.
// El filtro y las options llegan por query string como JSON.
// Ejemplo de options: {"projection": {"field": 1}, "sort": {"field": 1}}
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		options, err := h.processMongoOptions(c, true)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOne(c.Context(), filter, options.(*mongoopts.FindOneOptions))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOneById busca un documento por su ID.
// El ID llega por URI params.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"El ID no puede estar vacío en los params de la URL",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("El ID '%s' no tiene formato de ObjectID de MongoDB (debe ser hex de 24 caracteres)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if err := h.ValidateResidencialAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindManyByIds busca varios documentos por una lista de IDs.
// La lista llega por query string como arreglo JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var ids []string
		idsStr := c.Query("ids", "[]")
		if err := json.Unmarshal([]byte(idsStr), &ids); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("La lista de IDs debe ser un arreglo JSON. Valor recibido: %s. Detalle: %v", idsStr, err),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		objectIds := make([]primitive.ObjectID, len(ids))
		for i, id := range ids {
			if !primitive.IsValidObjectID(id) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("El ID '%s' en la posición %d no tiene formato de ObjectID de MongoDB (debe ser hex de 24 caracteres)", id, i),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			objectIds[i] = utility.String2ObjectID(id)
		}

		data, err := h.BaseService.FindManyByIds(c.Context(), objectIds)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination busca documentos con paginación.
// Soporta filter, options y paginación con page y limit.
//
// Parameters:
// - c: Fiber context
// Query params:
// - filter: Condiciones de búsqueda (JSON)
// - options: Opciones de búsqueda (JSON). Ej: {"projection": {"field": 1}, "sort": {"field": 1}}
// - page: Número de página (por defecto 1)
// - limit: Cantidad de items por página (por defecto 10)
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		options, err := h.processMongoOptions(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		if err != nil {
			page = 1
		}
		if page < 1 {
			page = 1
		}

		limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
		if err != nil {
			limit = 10
		}
		if limit <= 0 {
			limit = 10
		}

		// limit y skip los calcula el servicio para mantener consistencia
		findOptions := options.(*mongoopts.FindOptions)

		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, findOptions)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Find busca varios documentos según el filtro.
// El filtro y las options llegan por query string como JSON.
// Ejemplo de options: {"projection": {"field": 1}, "sort": {"field": 1}, "limit": 10, "skip": 0}
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		options, err := h.processMongoOptions(c, false)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Find(c.Context(), filter, options.(*mongoopts.FindOptions))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Nunca devolver nil: sin resultados se responde arreglo vacío
		if data == nil {
			data = []T{}
		}

		h.HandleResponse(c, data, nil)
		return nil
	})
}

// UpdateOne actualiza un documento según el filtro.
// El filtro llega por query string y los datos en el body.
// Solo actualiza los campos presentes en el input, el resto se conserva.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Los datos enviados no tienen formato JSON válido o no coinciden con la estructura esperada. Detalle: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Error al transformar los datos: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		updateData, err := h.buildSetUpdateData(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateOne(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateMany actualiza varios documentos según el filtro.
// El filtro llega por query string y los datos en el body.
// Solo actualiza los campos presentes en el input, el resto se conserva.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyResidencialFilter(c, filter)

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Los datos de actualización no tienen formato JSON válido o no coinciden con la estructura esperada. Detalle: %v", err), common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Error al transformar los datos: %v", err), common.StatusBadRequest, err))
			return nil
		}

		updateData, err := h.buildSetUpdateData(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.UpdateMany(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// UpdateById actualiza un documento por su ID.
// El ID llega por URI params y los datos en el body.
// Solo actualiza los campos presentes en el input, el resto se conserva.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"El ID no puede estar vacío en los params de la URL",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("El ID '%s' no tiene formato de ObjectID de MongoDB (debe ser hex de 24 caracteres)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		// Validar acceso al documento actual antes de actualizar
		if err := h.ValidateResidencialAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Los datos de actualización no tienen formato JSON válido o no coinciden con la estructura esperada. Detalle: %v", err),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Error al transformar los datos: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		updateData, err := h.buildSetUpdateData(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.UpdateById(c.Context(), utility.String2ObjectID(id), updateData)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteOne elimina un documento según el filtro.
// El filtro llega por query string como JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		err = h.BaseService.DeleteOne(c.Context(), filter)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// DeleteMany elimina varios documentos según el filtro.
// El filtro llega por query string como JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay y cantidad de documentos eliminados
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		count, err := h.BaseService.DeleteMany(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// DeleteById elimina un documento por su ID.
// El ID llega por URI params.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"El ID no puede estar vacío en los params de la URL",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("El ID '%s' no tiene formato de ObjectID de MongoDB (debe ser hex de 24 caracteres)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if err := h.ValidateResidencialAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.BaseService.DeleteById(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// FindOneAndUpdate busca y actualiza un documento.
// El filtro llega por query string y los datos en el body.
// Devuelve el documento después de actualizar.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneAndUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyResidencialFilter(c, filter)

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Los datos de actualización no tienen formato JSON válido. Detalle: %v", err), common.StatusBadRequest, nil))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("Error al transformar los datos: %v", err), common.StatusBadRequest, err))
			return nil
		}

		updateData, err := h.buildSetUpdateData(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneAndUpdate(c.Context(), filter, updateData, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindOneAndDelete busca y elimina un documento.
// El filtro llega por query string.
// Devuelve el documento eliminado.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneAndDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		data, err := h.BaseService.FindOneAndDelete(c.Context(), filter, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// CountDocuments cuenta documentos según el filtro.
// El filtro llega por query string como JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var filter map[string]interface{}
		filterStr := c.Query("filter", "{}")

		logrus.WithFields(logrus.Fields{
			"filter_string": filterStr,
			"endpoint":      c.Path(),
		}).Debug("Filter string del query")

		if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
			logrus.WithFields(logrus.Fields{
				"filter_string": filterStr,
				"endpoint":      c.Path(),
				"error":         err,
			}).Debug("Error al parsear el filtro")

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Filtro inválido",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		h.HandleResponse(c, count, err)
		return nil
	})
}

// Distinct obtiene los valores únicos de un campo.
// El campo llega por URI params y el filtro por query string.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) Distinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		field := c.Params("field")
		if field == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Nombre de campo inválido", common.StatusBadRequest, nil))
			return nil
		}

		var filter map[string]interface{}
		if err := json.Unmarshal([]byte(c.Query("filter", "{}")), &filter); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Filtro inválido", common.StatusBadRequest, nil))
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		data, err := h.BaseService.Distinct(c.Context(), field, filter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Upsert agrega o actualiza un documento.
// El filtro llega por query string y los datos en el body (DTO CreateInput).
// Si no hay documento que cumpla el filtro se crea uno nuevo, si hay se actualiza.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) Upsert(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		filter = h.ApplyResidencialFilter(c, filter)

		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Los datos enviados no tienen formato JSON válido o no coinciden con la estructura esperada. Detalle: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Error al transformar los datos: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		residencialIDFromRequest := h.GetResidencialIDFromModel(model)
		if residencialIDFromRequest == "" {
			h.SetResidencialID(model, h.GetActiveResidencialID(c))
		}

		// Completar el filtro desde el modelo cuando falta (upsert por residencialID + otro campo)
		if h.hasResidencialIDField() && filter["residencialID"] == nil {
			if rid := h.GetResidencialIDFromModel(model); rid != "" {
				filter["residencialID"] = rid
			}
		}

		// Solo entran al $set los campos declarados en CreateInput (incluso con valor 0/false).
		// Distingue: el input trae el campo → se escribe; no lo trae → no se pisa.
		updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
		modelMap, err := utility.ToMap(model)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Error al convertir el modelo a map: %v", err),
				common.StatusInternalServerError,
				err,
			))
			return nil
		}
		keySet := h.getCreateInputBSONKeySet()
		for k, v := range modelMap {
			if keySet != nil && keySet[k] {
				updateData.Set[k] = v
			} else if keySet == nil {
				if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
					updateData.Set[k] = v
				}
			}
		}

		data, err := h.BaseService.Upsert(c.Context(), filter, updateData)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpsertMany agrega o actualiza varios documentos.
// El filtro llega por query string y el body es un arreglo de DTOs ([]CreateInput).
// Valida y transforma cada item igual que Upsert/InsertOne.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpsertMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		var inputs []CreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var models []T
		for i := range inputs {
			if err := h.ValidateInput(&inputs[i]); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			model, err := h.TransformCreateInputToModel(&inputs[i])
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Error al transformar el item %d: %v", i+1, err),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			if model == nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeInternalServer,
					fmt.Sprintf("La transformación devolvió nil para el item %d", i+1),
					common.StatusInternalServerError,
					nil,
				))
				return nil
			}
			if h.GetResidencialIDFromModel(model) == "" {
				h.SetResidencialID(model, h.GetActiveResidencialID(c))
			}
			models = append(models, *model)
		}

		// Convertir el filtro a map[string]interface{} (el range sobre nil map es seguro)
		filterMap := make(map[string]interface{})
		for k, v := range filter {
			filterMap[k] = v
		}

		data, err := h.BaseService.UpsertMany(c.Context(), filterMap, models)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DocumentExists verifica si existe un documento.
// El filtro llega por query string como JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Error si lo hay
func (h *BaseHandler[T, CreateInput, UpdateInput]) DocumentExists(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var filter map[string]interface{}
		if err := json.Unmarshal([]byte(c.Query("filter", "{}")), &filter); err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Filtro inválido", common.StatusBadRequest, nil))
			return nil
		}

		filter = h.ApplyResidencialFilter(c, filter)

		exists, err := h.BaseService.DocumentExists(c.Context(), filter)
		h.HandleResponse(c, exists, err)
		return nil
	})
}

// buildSetUpdateData convierte el modelo a UpdateData con operador $set,
// incluyendo solo los campos con valor distinto de cero (partial update).
func (h *BaseHandler[T, CreateInput, UpdateInput]) buildSetUpdateData(model *T) (*basesvc.UpdateData, error) {
	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	modelMap, err := utility.ToMap(model)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Error al convertir el modelo a map: %v", err),
			common.StatusInternalServerError,
			err,
		)
	}
	for k, v := range modelMap {
		if rv := reflect.ValueOf(v); rv.IsValid() && !rv.IsZero() {
			updateData.Set[k] = v
		}
	}
	return updateData, nil
}
