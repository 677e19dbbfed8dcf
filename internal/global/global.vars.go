package global

import (
	"fmt"

	"zentry_api/config"
	"zentry_api/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionNames contiene los nombres de las colecciones de MongoDB.
type CollectionNames struct {
	Usuarios       string // Colección de usuarios
	Residenciales  string // Colección de residenciales
	Tags           string // Colección de tags vehiculares
	Eventos        string // Colección de eventos de ingreso
	Alertas        string // Colección principal de alertas de pánico
	AlertasPanico  string // Colección alternativa de alertas (datos históricos)
	PanicAlerts    string // Colección alternativa de alertas (datos históricos)
	PanelJobs      string // Colección de trabajos de sincronización con paneles
	Notificaciones string // Colección global de notificaciones
}

// Variables globales del servidor
var Validate *validator.Validate             // Validador de datos de entrada
var MongoDB_Session *mongo.Client            // Sesión de conexión a MongoDB
var ServerConfig *config.Configuration       // Configuración del servidor
var ColNames CollectionNames = CollectionNames{
	Usuarios:       "usuarios",
	Residenciales:  "residenciales",
	Tags:           "tags",
	Eventos:        "eventos",
	Alertas:        "alertas",
	AlertasPanico:  "alertasPanico",
	PanicAlerts:    "panicAlerts",
	PanelJobs:      "panelJobs",
	Notificaciones: "notificaciones",
}

// Registries globales
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry de colecciones
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry de bases de datos

// Subcolecciones por residencial. Cada residencial tiene sus propias
// colecciones con el prefijo residenciales_{docID}_.
const (
	SubChats          = "chats"
	SubMensajes       = "mensajes"
	SubNotificaciones = "notificaciones"
	SubGuardias       = "guardias"
	SubAreasComunes   = "areasComunes"
)

// SubCollectionName devuelve el nombre de la subcolección sub del
// residencial identificado por su docID.
func SubCollectionName(residencialDocID, sub string) string {
	return fmt.Sprintf("residenciales_%s_%s", residencialDocID, sub)
}

// GetSubCollection devuelve la subcolección de un residencial,
// creando el handle sobre la base de datos principal si aún no está
// registrado.
func GetSubCollection(residencialDocID, sub string) (*mongo.Collection, error) {
	name := SubCollectionName(residencialDocID, sub)
	if col, exist := RegistryCollections.Get(name); exist {
		return col, nil
	}
	db, exist := RegistryDatabase.Get(ServerConfig.MongoDB_DBName)
	if !exist {
		return nil, fmt.Errorf("base de datos %s no registrada", ServerConfig.MongoDB_DBName)
	}
	col := db.Collection(name)
	if _, err := RegistryCollections.Register(name, col); err != nil {
		return nil, err
	}
	return col, nil
}
