package main

import (
	"context"
	"time"

	"zentry_api/config"
	authmodels "zentry_api/internal/api/auth/models"
	ingresomodels "zentry_api/internal/api/ingreso/models"
	residencialmodels "zentry_api/internal/api/residencial/models"
	tagmodels "zentry_api/internal/api/tag/models"
	"zentry_api/internal/database"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"
)

// InitGlobal inicializa las variables globales de la aplicación en el
// orden que requieren: configuración, validadores, base de datos y Firebase.
func InitGlobal() {
	initConfig()
	initValidator()
	initDatabase_MongoDB()
	initFirebase()
}

// initConfig carga la configuración desde el archivo env del ambiente.
func initConfig() {
	log := logger.GetAppLogger()

	cfg := config.NewConfig()
	if cfg == nil {
		log.Fatal("No se pudo cargar la configuración del servidor (revisar config/env)")
	}

	global.ServerConfig = cfg
	log.Info("Configuración del servidor cargada")
}

// initValidator registra el validador global con las reglas propias
// del dominio (placa, no_xss, strong_password, ...).
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Validador inicializado")
}

// initDatabase_MongoDB abre la sesión de MongoDB y garantiza que la base
// de datos y sus colecciones existan.
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		log.Fatalf("No se pudo conectar a MongoDB: %v", err)
	}
	global.MongoDB_Session = client

	if err := database.EnsureDatabaseAndCollections(client); err != nil {
		log.Fatalf("No se pudieron verificar las colecciones: %v", err)
	}

	log.Infof("Conectado a MongoDB, base de datos: %s", global.ServerConfig.MongoDB_DBName)
}

// initFirebase inicializa el SDK de Firebase (identidad y storage).
// Sin proyecto configurado el servidor arranca igual, pero el login y
// los documentos quedan deshabilitados.
func initFirebase() {
	log := logger.GetAppLogger()

	cfg := global.ServerConfig
	if cfg.FirebaseProjectID == "" {
		log.Warn("FIREBASE_PROJECT_ID no configurado: login y documentos deshabilitados")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket); err != nil {
		log.Errorf("No se pudo inicializar Firebase: %v", err)
		// No es fatal: el servidor arranca y sólo fallan login/documentos
		return
	}

	log.Info("Firebase inicializado")
}

// InitIndexes crea los índices declarados en los tags de los modelos y
// los índices compuestos adicionales de las consultas de listado.
func InitIndexes() {
	log := logger.GetAppLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)

	// Modelos raíz con tags de índice. Las subcolecciones por residencial
	// (chats, mensajes, guardias, ...) se crean bajo demanda y sus índices
	// no se declaran aquí.
	indexedModels := []struct {
		colName string
		model   interface{}
	}{
		{global.ColNames.Usuarios, authmodels.Usuario{}},
		{global.ColNames.Residenciales, residencialmodels.Residencial{}},
		{global.ColNames.Tags, tagmodels.Tag{}},
		{global.ColNames.PanelJobs, tagmodels.PanelJob{}},
		{global.ColNames.Eventos, ingresomodels.Ingreso{}},
	}

	for _, im := range indexedModels {
		if err := database.CreateIndexes(ctx, db.Collection(im.colName), im.model); err != nil {
			log.Errorf("No se pudieron crear los índices de %s: %v", im.colName, err)
		}
	}

	if err := database.CreateAdditionalIndexes(ctx, db); err != nil {
		log.Errorf("No se pudieron crear los índices adicionales: %v", err)
	}

	log.Info("Índices de MongoDB verificados")
}
