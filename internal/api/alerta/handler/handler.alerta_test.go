package alertahdl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	models "zentry_api/internal/api/alerta/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscribirEventoSSE(t *testing.T) {
	alerta := models.AlertaPanico{
		ResidencialID: "RES-01",
		Status:        models.AlertaActiva,
		NombreUsuario: "Ana López",
		Mensaje:       "auxilio",
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, escribirEventoSSE(w, alerta))

	salida := buf.String()
	assert.True(t, strings.HasPrefix(salida, "event: alerta\ndata: "), "el evento debe llevar nombre y payload")
	assert.True(t, strings.HasSuffix(salida, "\n\n"), "el evento debe cerrar con línea en blanco")

	// El payload debe ser la alerta serializada, recuperable por el cliente
	data := strings.TrimSuffix(strings.TrimPrefix(salida, "event: alerta\ndata: "), "\n\n")
	var recibida models.AlertaPanico
	require.NoError(t, json.Unmarshal([]byte(data), &recibida))
	assert.Equal(t, "RES-01", recibida.ResidencialID)
	assert.Equal(t, "auxilio", recibida.Mensaje)
}
