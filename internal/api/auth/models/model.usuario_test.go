package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEsEstadoValido(t *testing.T) {
	for _, estado := range []string{EstadoPendiente, EstadoAprobado, EstadoRechazado, EstadoInactivo} {
		assert.True(t, EsEstadoValido(estado), "estado conocido rechazado: %q", estado)
	}
	assert.False(t, EsEstadoValido("suspendido"))
	assert.False(t, EsEstadoValido(""))
	// Los estados se comparan en su forma exacta
	assert.False(t, EsEstadoValido("Approved"))
}

func TestEsRolValido(t *testing.T) {
	for _, rol := range []string{RolAdmin, RolResidente, RolSeguridad, RolInvitado} {
		assert.True(t, EsRolValido(rol), "rol conocido rechazado: %q", rol)
	}
	assert.False(t, EsRolValido("superadmin"))
	assert.False(t, EsRolValido(""))
}
