package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveHouseID(t *testing.T) {
	assert.Equal(t, "lomas-01_roble_12", DeriveHouseID("LOMAS-01", "Roble", "12"))

	// Espacios internos y bordes se normalizan a guiones
	assert.Equal(t, "lomas-01_av.-del-roble_12-b", DeriveHouseID("LOMAS-01", "  Av. del  Roble ", "12 B"))

	// La derivación es estable ante cambios de capitalización
	assert.Equal(t,
		DeriveHouseID("LOMAS-01", "ROBLE", "12"),
		DeriveHouseID("lomas-01", "roble", "12"),
	)
}

func TestEsEstadoTagValido(t *testing.T) {
	assert.True(t, EsEstadoTagValido(TagActivo))
	assert.True(t, EsEstadoTagValido(TagDeshabilitado))
	assert.True(t, EsEstadoTagValido(TagPendiente))
	assert.False(t, EsEstadoTagValido("suspendido"))
	assert.False(t, EsEstadoTagValido(""))
}
