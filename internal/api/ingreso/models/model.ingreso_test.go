package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPuedeTransicionar(t *testing.T) {
	casos := []struct {
		desde  string
		hacia  string
		espera bool
	}{
		{IngresoActivo, IngresoCompletado, true},
		{IngresoCompletado, IngresoSalida, true},
		{IngresoActivo, IngresoSalida, false},
		{IngresoCompletado, IngresoActivo, false},
		{IngresoSalida, IngresoCompletado, false},
		{IngresoSalida, IngresoSalida, false},
		{IngresoActivo, IngresoActivo, false},
	}

	for _, c := range casos {
		i := Ingreso{Status: c.desde}
		assert.Equal(t, c.espera, i.PuedeTransicionar(c.hacia), "%s → %s", c.desde, c.hacia)
	}
}

func TestEsMutable(t *testing.T) {
	assert.True(t, Ingreso{Status: IngresoActivo}.EsMutable())
	assert.False(t, Ingreso{Status: IngresoCompletado}.EsMutable())
	assert.False(t, Ingreso{Status: IngresoSalida}.EsMutable())
}
