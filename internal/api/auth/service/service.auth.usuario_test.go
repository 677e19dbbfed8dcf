package authsvc

import (
	"context"
	"testing"

	"zentry_api/internal/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// El borrado masivo es por item: un ID inválido reporta su propia falla
// y no arrastra a los demás.
func TestEliminarUsuariosBulk_ReportaPorItem(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("id invalido no aborta al resto", func(mt *mtest.T) {
		db := mt.Client.Database("zentry_test")
		global.RegistryCollections.Register(global.ColNames.Usuarios, db.Collection(global.ColNames.Usuarios))

		svc, err := NewUsuarioService()
		require.NoError(mt, err)

		usuarioID := primitive.NewObjectID()
		doc := bson.D{
			{Key: "_id", Value: usuarioID},
			{Key: "nombre", Value: "Ana"},
			{Key: "role", Value: "resident"},
		}
		// El borrado lee el documento dos veces (lookup + borrado con
		// emisión de evento) y después ejecuta el delete
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "zentry_test.usuarios", mtest.FirstBatch, doc),
			mtest.CreateCursorResponse(0, "zentry_test.usuarios", mtest.FirstBatch, doc),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		resultados := svc.EliminarUsuariosBulk(context.Background(), []string{usuarioID.Hex(), "no-es-un-oid"})

		require.Len(mt, resultados, 2)

		assert.Equal(mt, usuarioID.Hex(), resultados[0].ID)
		assert.True(mt, resultados[0].Exito, "el ID válido debe reportar éxito")
		assert.Empty(mt, resultados[0].Error)

		assert.Equal(mt, "no-es-un-oid", resultados[1].ID)
		assert.False(mt, resultados[1].Exito)
		assert.Equal(mt, "ID inválido", resultados[1].Error)
	})
}

// Un panic durante el borrado de un item deja un resultado con causa,
// no un resultado vacío.
func TestEliminarUsuariosBulk_PanicReportaFalla(t *testing.T) {
	// Servicio sin capa de datos: el acceso a la colección entra en panic
	svc := &UsuarioService{}
	id := primitive.NewObjectID().Hex()

	resultados := svc.EliminarUsuariosBulk(context.Background(), []string{id})

	require.Len(t, resultados, 1)
	assert.Equal(t, id, resultados[0].ID)
	assert.False(t, resultados[0].Exito)
	assert.NotEmpty(t, resultados[0].Error, "la falla debe llevar causa")
}
