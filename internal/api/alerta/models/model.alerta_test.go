package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestEfectivoResidencial(t *testing.T) {
	assert.Equal(t, "LOMAS-01", AlertaPanico{ResidencialID: "LOMAS-01"}.EfectivoResidencial())
	assert.Equal(t, "LOMAS-01", AlertaPanico{ResidencialIDAlt: "LOMAS-01"}.EfectivoResidencial())
	// La ortografía canónica gana cuando hay ambas
	assert.Equal(t, "A", AlertaPanico{ResidencialID: "A", ResidencialIDAlt: "B"}.EfectivoResidencial())
	assert.Equal(t, "", AlertaPanico{}.EfectivoResidencial())
}

func TestEfectivoStatus(t *testing.T) {
	assert.Equal(t, AlertaAtendida, AlertaPanico{Status: AlertaAtendida}.EfectivoStatus())
	assert.Equal(t, AlertaCerrada, AlertaPanico{Estado: AlertaCerrada}.EfectivoStatus())
	assert.Equal(t, AlertaAtendida, AlertaPanico{Status: AlertaAtendida, Estado: AlertaCerrada}.EfectivoStatus())
	// Documentos viejos sin ninguna variante se consideran activos
	assert.Equal(t, AlertaActiva, AlertaPanico{}.EfectivoStatus())
}

func TestEfectivoLeida(t *testing.T) {
	assert.True(t, AlertaPanico{Read: boolPtr(true)}.EfectivoLeida())
	assert.True(t, AlertaPanico{Leida: boolPtr(true)}.EfectivoLeida())
	assert.False(t, AlertaPanico{Read: boolPtr(false), Leida: boolPtr(true)}.EfectivoLeida())
	assert.False(t, AlertaPanico{}.EfectivoLeida())
}

func TestUbicacion(t *testing.T) {
	assert.Equal(t, "Roble 12", AlertaPanico{Calle: "Roble", NumeroCasa: "12"}.Ubicacion())
	assert.Equal(t, "Roble", AlertaPanico{Calle: "Roble"}.Ubicacion())
	assert.Equal(t, "12", AlertaPanico{NumeroCasa: "12"}.Ubicacion())
	assert.Equal(t, "sin ubicación", AlertaPanico{}.Ubicacion())
}

func TestPerteneceAResidencial(t *testing.T) {
	a := AlertaPanico{ResidencialID: "LOMAS-01"}
	assert.True(t, a.PerteneceAResidencial("LOMAS-01"))
	assert.False(t, a.PerteneceAResidencial("OTRO"))

	b := AlertaPanico{ResidencialIDAlt: "LOMAS-01"}
	assert.True(t, b.PerteneceAResidencial("LOMAS-01"))
}
