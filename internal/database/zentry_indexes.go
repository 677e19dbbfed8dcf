// Package database - Índices adicionales (compuestos, anidados) que no
// pueden definirse mediante tags del modelo.
package database

import (
	"context"
	"strings"

	"zentry_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAdditionalIndexes crea los índices compuestos que usan las
// consultas de listado por residencial. Se llama después de
// CreateIndexes de cada colección.
func CreateAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// eventos: (residencialID, timestamp desc) — listado de ingresos
	eventos := db.Collection(global.ColNames.Eventos)
	if _, err := eventos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "residencialID", Value: 1},
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("evento_residencial_timestamp"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// eventos: (residencialID, status) — filtro de estado
	if _, err := eventos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "residencialID", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("evento_residencial_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// tags: (residencialID, panelEstado) — resumen de sincronización
	tags := db.Collection(global.ColNames.Tags)
	if _, err := tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "residencialID", Value: 1},
			{Key: "panelEstado", Value: 1},
		},
		Options: options.Index().SetName("tag_residencial_panel"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// alertas: (residencialID, timestamp desc) en las tres colecciones
	// por las que se busca con fallback
	for _, colName := range []string{
		global.ColNames.Alertas,
		global.ColNames.AlertasPanico,
		global.ColNames.PanicAlerts,
	} {
		col := db.Collection(colName)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "residencialID", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("alerta_residencial_timestamp"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// panelJobs: (status, createdAt) — el worker toma los trabajos
	// pendientes más antiguos primero
	panelJobs := db.Collection(global.ColNames.PanelJobs)
	if _, err := panelJobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("panel_job_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
