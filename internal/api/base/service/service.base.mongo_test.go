package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData_UpdateDataDirecto(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"nombre": "Roble"}}

	result, err := ToUpdateData(original)
	require.NoError(t, err)
	assert.Same(t, original, result)

	porValor, err := ToUpdateData(UpdateData{Set: map[string]interface{}{"nombre": "Roble"}})
	require.NoError(t, err)
	assert.Equal(t, "Roble", porValor.Set["nombre"])
}

func TestToUpdateData_MapaPlanoSeEnvuelveEnSet(t *testing.T) {
	result, err := ToUpdateData(map[string]interface{}{"status": "activo", "calle": "Roble"})
	require.NoError(t, err)

	assert.Equal(t, "activo", result.Set["status"])
	assert.Equal(t, "Roble", result.Set["calle"])
	assert.Empty(t, result.Unset)
}

func TestToUpdateData_ConOperadores(t *testing.T) {
	result, err := ToUpdateData(map[string]interface{}{
		"$set":   map[string]interface{}{"status": "activo"},
		"$unset": map[string]interface{}{"token": ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "activo", result.Set["status"])
	assert.Contains(t, result.Unset, "token")
}

func TestToUpdateData_Struct(t *testing.T) {
	entrada := struct {
		Nombre string `bson:"nombre"`
		Calle  string `bson:"calle"`
	}{Nombre: "Ana", Calle: "Roble"}

	result, err := ToUpdateData(entrada)
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Set["nombre"])
	assert.Equal(t, "Roble", result.Set["calle"])
}

func TestUpdateData_MarshalOmiteVacios(t *testing.T) {
	data, err := bson.Marshal(UpdateData{Set: map[string]interface{}{"a": 1}})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(data, &m))
	assert.Contains(t, m, "$set")
	assert.NotContains(t, m, "$unset")
	assert.NotContains(t, m, "$push")
}
