package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Un middleware estricto registrado antes sobre el mismo prefijo no debe
// gatear a la ruta hermana más laxa: cada middleware queda acotado a su ruta.
func TestRegisterRouteWithMiddleware_NoFiltraEntreRutasDelMismoPrefijo(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")

	soloAdmin := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusForbidden)
	}
	autenticado := func(c fiber.Ctx) error {
		c.Locals("autenticado", true)
		return c.Next()
	}
	handler := func(c fiber.Ctx) error {
		if ok, _ := c.Locals("autenticado").(bool); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	}

	// La ruta estricta se registra primero, como en los routers de dominio
	RegisterRouteWithMiddleware(v1, "/demo", "POST", "/alta", []fiber.Handler{soloAdmin}, handler)
	RegisterRouteWithMiddleware(v1, "/demo", "GET", "/nombre/:id", []fiber.Handler{autenticado}, handler)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/demo/nombre/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "la ruta laxa no debe heredar el gate de la estricta")

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/demo/alta", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "la ruta estricta conserva su gate")
}

// El middleware de una ruta corre aunque otra ruta comparta el path con otro
// método, y los métodos no se cruzan.
func TestRegisterRouteWithMiddleware_MiddlewarePorMetodo(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")

	bloquear := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusForbidden)
	}
	pasar := func(c fiber.Ctx) error {
		return c.Next()
	}
	ok := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}

	RegisterRouteWithMiddleware(v1, "/items", "PUT", "/:id/estado", []fiber.Handler{bloquear}, ok)
	RegisterRouteWithMiddleware(v1, "/items", "GET", "/:id/estado", []fiber.Handler{pasar}, ok)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/items/7/estado", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPut, "/api/v1/items/7/estado", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
