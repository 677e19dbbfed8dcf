package alertasvc

import (
	"testing"

	models "zentry_api/internal/api/alerta/models"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

// CamposActualizacion decide con qué ortografía escribir según la que el
// documento ya tiene; el grid cubre las combinaciones que dejaron tres
// generaciones de datos.
func TestCamposActualizacion_Estado(t *testing.T) {
	casos := []struct {
		nombre   string
		doc      models.AlertaPanico
		quiere   []string
		noQuiere []string
	}{
		{
			nombre:   "documento con status escribe status",
			doc:      models.AlertaPanico{Status: "activa"},
			quiere:   []string{"status"},
			noQuiere: []string{"estado"},
		},
		{
			nombre:   "documento con estado escribe estado",
			doc:      models.AlertaPanico{Estado: "activa"},
			quiere:   []string{"estado"},
			noQuiere: []string{"status"},
		},
		{
			nombre: "documento con ambos escribe ambos",
			doc:    models.AlertaPanico{Status: "activa", Estado: "activa"},
			quiere: []string{"status", "estado"},
		},
		{
			nombre: "documento sin ninguno escribe ambos",
			doc:    models.AlertaPanico{},
			quiere: []string{"status", "estado"},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			set := CamposActualizacion(c.doc, "atendida", nil)
			for _, k := range c.quiere {
				assert.Equal(t, "atendida", set[k], "falta el campo %s", k)
			}
			for _, k := range c.noQuiere {
				assert.NotContains(t, set, k)
			}
			assert.Contains(t, set, "updatedAt")
		})
	}
}

func TestCamposActualizacion_Leida(t *testing.T) {
	casos := []struct {
		nombre   string
		doc      models.AlertaPanico
		quiere   []string
		noQuiere []string
	}{
		{
			nombre:   "documento con read escribe read",
			doc:      models.AlertaPanico{Read: boolPtr(false)},
			quiere:   []string{"read"},
			noQuiere: []string{"leida"},
		},
		{
			nombre:   "documento con leida escribe leida",
			doc:      models.AlertaPanico{Leida: boolPtr(false)},
			quiere:   []string{"leida"},
			noQuiere: []string{"read"},
		},
		{
			nombre: "documento sin ninguno escribe ambos",
			doc:    models.AlertaPanico{},
			quiere: []string{"read", "leida"},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			set := CamposActualizacion(c.doc, "", boolPtr(true))
			for _, k := range c.quiere {
				assert.Equal(t, true, set[k])
			}
			for _, k := range c.noQuiere {
				assert.NotContains(t, set, k)
			}
		})
	}
}

func TestCamposActualizacion_SinCambios(t *testing.T) {
	set := CamposActualizacion(models.AlertaPanico{Status: "activa"}, "", nil)

	// Sólo updatedAt: ni estado ni marca de lectura fueron pedidos
	assert.Len(t, set, 1)
	assert.Contains(t, set, "updatedAt")
}
