// Package storagehdl - handlers HTTP de documentos de usuario.
package storagehdl

import (
	"encoding/json"

	authmodels "zentry_api/internal/api/auth/models"
	basehdl "zentry_api/internal/api/base/handler"
	"zentry_api/internal/api/middleware"
	storagedto "zentry_api/internal/api/storage/dto"
	storagesvc "zentry_api/internal/api/storage/service"
	"zentry_api/internal/common"
	"zentry_api/internal/global"

	"github.com/gofiber/fiber/v3"
)

// StorageHandler expone las operaciones HTTP sobre documentos de usuario.
// No embebe el BaseHandler: no hay modelo de Mongo detrás, solo el bucket.
type StorageHandler struct {
	StorageService *storagesvc.StorageService
}

// NewStorageHandler crea un StorageHandler nuevo.
func NewStorageHandler() (*StorageHandler, error) {
	service, err := storagesvc.NewStorageService()
	if err != nil {
		return nil, err
	}
	return &StorageHandler{StorageService: service}, nil
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

// HandleSubir sube un documento del usuario autenticado (multipart).
// Campos: archivo (file), tipoDocumento (string).
// POST /api/v1/documentos
func (h *StorageHandler) HandleSubir(c fiber.Ctx) error {
	usuario, ok := c.Locals("usuario").(authmodels.Usuario)
	if !ok {
		middleware.HandleErrorResponse(c, common.ErrTokenInvalid)
		return nil
	}
	uid := usuario.FirebaseUID
	if uid == "" {
		// Usuarios dados de alta sin cuenta de Firebase usan su _id
		uid = usuario.ID.Hex()
	}

	tipoDocumento := c.FormValue("tipoDocumento")
	if tipoDocumento == "" {
		tipoDocumento = storagesvc.TipoDocumentoSolicitud
	}

	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, "Falta el archivo 'archivo'", common.StatusBadRequest, err))
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleErrorResponse(c, common.NewError(common.ErrCodeStorage, "No se pudo leer el archivo", common.StatusBadRequest, err))
		return nil
	}
	defer file.Close()

	ruta, err := h.StorageService.SubirDocumento(c.Context(), uid, tipoDocumento, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	return respondSuccess(c, storagedto.DocumentoSubido{Ruta: ruta})
}

// HandleURLDescarga genera la URL firmada de descarga de un documento.
// POST /api/v1/documentos/url
func (h *StorageHandler) HandleURLDescarga(c fiber.Ctx) error {
	input := new(storagedto.URLDescargaInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	url, err := h.StorageService.URLFirmada(input.Ruta)
	if err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, fiber.Map{"url": url})
}

// HandleEliminar borra un documento por su ruta.
// POST /api/v1/documentos/eliminar
func (h *StorageHandler) HandleEliminar(c fiber.Ctx) error {
	input := new(storagedto.EliminarDocumentoInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	if err := h.StorageService.EliminarDocumento(c.Context(), input.Ruta); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}
	return respondSuccess(c, nil)
}

// HandleExiste responde si el documento existe: {existe: bool}.
// POST /api/v1/documentos/existe
func (h *StorageHandler) HandleExiste(c fiber.Ctx) error {
	input := new(storagedto.ExisteDocumentoInput)
	if err := parseBody(c, input); err != nil {
		middleware.HandleErrorResponse(c, err)
		return nil
	}

	existe := h.StorageService.DocumentExistsSimplificado(c.Context(), input.Ruta)
	return respondSuccess(c, storagedto.ExisteDocumentoResult{Existe: existe})
}
