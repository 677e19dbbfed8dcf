package middleware

import (
	"errors"
	"zentry_api/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse responde JSON con Content-Type: application/json; charset=utf-8
// para que los textos con acentos y eñes lleguen bien codificados.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse responde un error al cliente.
// Vive aquí, separado del handler, para evitar un import cycle con basehdl.
func HandleErrorResponse(c fiber.Ctx, err error) {
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
}
