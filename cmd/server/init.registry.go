package main

import (
	"zentry_api/config"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry registra la base de datos principal y las colecciones
// raíz en los registries globales. Las subcolecciones por residencial se
// registran bajo demanda vía global.GetSubCollection.
func InitRegistry() {
	log := logger.GetAppLogger()

	if err := InitCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		log.Fatalf("No se pudo inicializar el registry de colecciones: %v", err)
	}

	log.Info("Registry de colecciones inicializado")
}

// InitCollections registra la base de datos y las colecciones raíz.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	log := logger.GetAppLogger()

	db := client.Database(cfg.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		return err
	}

	colNames := []string{
		global.ColNames.Usuarios,
		global.ColNames.Residenciales,
		global.ColNames.Tags,
		global.ColNames.Eventos,
		global.ColNames.Alertas,
		global.ColNames.AlertasPanico,
		global.ColNames.PanicAlerts,
		global.ColNames.PanelJobs,
		global.ColNames.Notificaciones,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("No se pudo registrar la colección %s: %v", name, err)
			return err
		}
		if !registered {
			log.Warnf("La colección %s ya estaba registrada", name)
		}
	}

	return nil
}
