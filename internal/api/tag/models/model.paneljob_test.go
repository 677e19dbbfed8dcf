package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoTrasFallo(t *testing.T) {
	// Con reintentos restantes el trabajo vuelve a la cola
	assert.Equal(t, JobEncolado, EstadoTrasFallo(1, 3))
	assert.Equal(t, JobEncolado, EstadoTrasFallo(2, 3))

	// Agotado el límite queda en error
	assert.Equal(t, JobError, EstadoTrasFallo(3, 3))
	assert.Equal(t, JobError, EstadoTrasFallo(5, 3))

	// El límite configurado manda sobre el valor por defecto
	assert.Equal(t, JobEncolado, EstadoTrasFallo(4, 5))
	assert.Equal(t, JobError, EstadoTrasFallo(5, 5))
	assert.Equal(t, JobError, EstadoTrasFallo(1, 1))

	// Límite no positivo cae al valor por defecto
	assert.Equal(t, JobEncolado, EstadoTrasFallo(MaxIntentosJob-1, 0))
	assert.Equal(t, JobError, EstadoTrasFallo(MaxIntentosJob, -2))
}
