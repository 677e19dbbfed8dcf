package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, String2ObjectID(id.Hex()))

	assert.Equal(t, primitive.NilObjectID, String2ObjectID("no-es-hex"))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID(""))
}

func TestContentHash(t *testing.T) {
	tipo := struct {
		Nombre string
		Total  int
	}{Nombre: "Lomas del Norte", Total: 120}

	a := ContentHash(tipo)
	b := ContentHash(tipo)
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b, "el mismo contenido debe producir el mismo hash")

	tipo.Total = 121
	c := ContentHash(tipo)
	assert.NotEqual(t, a, c, "contenido distinto debe producir hash distinto")

	// SHA-256 en hex
	assert.Len(t, a, 64)
}

func TestMapToJSONRoundTrip(t *testing.T) {
	original := map[string]interface{}{"nombre": "Roble", "numero": "12"}

	s, err := MapToJSON(original)
	assert.NoError(t, err)

	resultado, err := JSONToMap(s)
	assert.NoError(t, err)
	assert.Equal(t, "Roble", resultado["nombre"])
	assert.Equal(t, "12", resultado["numero"])

	_, err = JSONToMap("{no es json")
	assert.Error(t, err)
}
