package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"
	"zentry_api/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse responde JSON con Content-Type: application/json; charset=utf-8
// para que los textos con acentos y eñes lleguen bien codificados.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler envuelve los handlers con recover para atrapar panics.
// Garantiza que el servidor siempre responda al cliente, incluso ante un panic.
//
// Parameters:
// - c: Fiber context
// - handler: Función principal del handler
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Error inesperado del sistema: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// SafeHandlerWrapper wrapper de errores para handlers de dominio que no embeben BaseHandler.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return nil
}

// HandleResponse normaliza la respuesta al cliente.
// Asegura un formato de respuesta uniforme en toda la aplicación.
//
// Parameters:
// - c: Fiber context
// - data: Datos a devolver (puede ser nil si solo hay error)
// - err: Error si lo hay (nil si no)
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		// Error no tipado: se responde internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeDatabase.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
