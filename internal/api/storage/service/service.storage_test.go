package storagesvc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRutaDocumento(t *testing.T) {
	ruta := RutaDocumento("uid-firebase-1", TipoDocumentoSolicitud)

	partes := strings.Split(ruta, "/")
	assert.Len(t, partes, 4)
	assert.Equal(t, "usuarios", partes[0])
	assert.Equal(t, "uid-firebase-1", partes[1])
	assert.Equal(t, TipoDocumentoSolicitud, partes[2])
	assert.NotEmpty(t, partes[3])

	// Cada documento recibe una ruta única aunque uid y tipo coincidan
	otra := RutaDocumento("uid-firebase-1", TipoDocumentoSolicitud)
	assert.NotEqual(t, ruta, otra)
}
