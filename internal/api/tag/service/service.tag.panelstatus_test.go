package tagsvc

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

// TagPanelStatus responde un renglón por panel con el trabajo más
// reciente, que es lo que el tablero consulta al hacer polling.
func TestTagPanelStatus_UltimoTrabajoPorPanel(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("un renglon por panel", func(mt *mtest.T) {
		db := mt.Client.Database("zentry_test")
		global.RegistryCollections.Register(global.ColNames.Tags, db.Collection(global.ColNames.Tags))
		global.RegistryCollections.Register(global.ColNames.PanelJobs, db.Collection(global.ColNames.PanelJobs))

		svc, err := NewTagService()
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "zentry_test.panelJobs", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "PANEL-ENTRADA"},
				{Key: "status", Value: "done"},
				{Key: "accion", Value: "alta"},
				{Key: "correlationId", Value: "c-1"},
				{Key: "intentos", Value: 1},
				{Key: "updatedAt", Value: int64(1700000000500)},
			},
			bson.D{
				{Key: "_id", Value: "PANEL-SALIDA"},
				{Key: "status", Value: "queued"},
				{Key: "accion", Value: "alta"},
				{Key: "correlationId", Value: "c-2"},
				{Key: "intentos", Value: 0},
				{Key: "updatedAt", Value: int64(1700000000900)},
			},
		))

		estados, err := svc.TagPanelStatus(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		require.Len(mt, estados, 2)

		assert.Equal(mt, "PANEL-ENTRADA", estados[0].PanelID)
		assert.Equal(mt, "done", estados[0].Status)
		assert.Equal(mt, "c-1", estados[0].CorrelationID)

		assert.Equal(mt, "PANEL-SALIDA", estados[1].PanelID)
		assert.Equal(mt, "queued", estados[1].Status)
	})
}
