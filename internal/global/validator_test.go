package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlaca(t *testing.T) {
	InitValidator()

	validas := []string{"ABC-1234", "ABC 1234", "AB12CD", "XY-99", "abc-1234", " ABC-1234 "}
	for _, placa := range validas {
		assert.NoError(t, Validate.Var(placa, "placa"), "placa válida rechazada: %q", placa)
	}

	invalidas := []string{"A", "ABCDE-1234", "AB!-1234", "ABC--1234", "ABC-1234-XY"}
	for _, placa := range invalidas {
		assert.Error(t, Validate.Var(placa, "placa"), "placa inválida aceptada: %q", placa)
	}

	// Vacía pasa: la obligatoriedad la decide required
	assert.NoError(t, Validate.Var("", "placa"))
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Var("Calle Roble 12", "no_xss"))
	assert.Error(t, Validate.Var("<script>alert(1)</script>", "no_xss"))
	assert.Error(t, Validate.Var("javascript:void(0)", "no_xss"))
	assert.Error(t, Validate.Var(`<img onerror=alert(1)>`, "no_xss"))
}

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	fuertes := []string{"Hola1234", "admin-Zentry1", "P4nico!!"}
	for _, p := range fuertes {
		assert.NoError(t, Validate.Var(p, "strong_password"), "contraseña fuerte rechazada: %q", p)
	}

	debiles := []string{"corta1A", "solominusculas", "12345678", "HOLA MUNDO"}
	for _, p := range debiles {
		assert.Error(t, Validate.Var(p, "strong_password"), "contraseña débil aceptada: %q", p)
	}
}
