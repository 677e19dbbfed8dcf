package alertasvc

import (
	"context"
	"testing"

	"zentry_api/config"
	"zentry_api/internal/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// registrarColeccionesMock registra la base y las colecciones raíz de
// alertas sobre el cliente mock, para que el servicio las resuelva por
// los registries globales igual que en producción.
func registrarColeccionesMock(mt *mtest.T, dbName string) {
	db := mt.Client.Database(dbName)
	global.RegistryDatabase.Register(dbName, db)
	for _, nombre := range nombresColecciones() {
		global.RegistryCollections.Register(nombre, db.Collection(nombre))
	}
}

// Las alertas que solo existen en una colección raíz (datos previos a
// las subcolecciones por residencial) se tienen que seguir encontrando.
func TestGetAlertasPanico_SoloEnColeccionRaiz(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("alerta solo en panicAlerts raiz", func(mt *mtest.T) {
		anterior := global.ServerConfig
		global.ServerConfig = &config.Configuration{MongoDB_DBName: "zentry_test"}
		defer func() { global.ServerConfig = anterior }()

		registrarColeccionesMock(mt, "zentry_test")

		alertaID := primitive.NewObjectID()
		vacia := func(ns string) bson.D {
			return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
		}

		// Nivel 1: las tres subcolecciones del residencial, vacías
		mt.AddMockResponses(
			vacia("zentry_test.residenciales_RES-99_alertas"),
			vacia("zentry_test.residenciales_RES-99_alertasPanico"),
			vacia("zentry_test.residenciales_RES-99_panicAlerts"),
		)
		// Nivel 2: raíces filtradas; solo panicAlerts tiene la alerta
		mt.AddMockResponses(
			vacia("zentry_test.alertas"),
			vacia("zentry_test.alertasPanico"),
			mtest.CreateCursorResponse(0, "zentry_test.panicAlerts", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: alertaID},
				{Key: "residencialID", Value: "RES-99"},
				{Key: "status", Value: "active"},
				{Key: "nombreUsuario", Value: "Ana López"},
			}),
		)

		alertas := NewAlertaService().GetAlertasPanico(context.Background(), "RES-99")

		require.Len(mt, alertas, 1)
		assert.Equal(mt, alertaID, alertas[0].ID)
		assert.Equal(mt, "RES-99", alertas[0].EfectivoResidencial())
	})

	mt.Run("subcoleccion con datos no consulta la raiz", func(mt *mtest.T) {
		anterior := global.ServerConfig
		global.ServerConfig = &config.Configuration{MongoDB_DBName: "zentry_test"}
		defer func() { global.ServerConfig = anterior }()

		registrarColeccionesMock(mt, "zentry_test")

		// Residencial distinto al caso anterior: los handles de
		// subcolección quedan registrados globalmente por cliente
		alertaID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "zentry_test.residenciales_RES-77_alertas", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: alertaID},
				{Key: "status", Value: "active"},
			}),
			mtest.CreateCursorResponse(0, "zentry_test.residenciales_RES-77_alertasPanico", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "zentry_test.residenciales_RES-77_panicAlerts", mtest.FirstBatch),
		)

		alertas := NewAlertaService().GetAlertasPanico(context.Background(), "RES-77")

		require.Len(mt, alertas, 1)
		assert.Equal(mt, alertaID, alertas[0].ID)
	})
}
