package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration contiene la información estática necesaria para ejecutar la aplicación.
// Se carga desde variables de entorno (archivo .env por ambiente).
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Dirección del servidor
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Secreto para firmar tokens de sesión
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URI de conexión a MongoDB
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Nombre de la base de datos
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Orígenes permitidos (separados por coma, * = todos)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Permitir credenciales
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Máximo de requests por ventana (0 = deshabilitado)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Ventana de rate limit (segundos)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Habilitar rate limiting

	// Firebase (identidad y almacenamiento de documentos)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Ruta al service account JSON
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`   // Bucket de Cloud Storage para documentos de usuarios
	FirebaseAdminUID        string `env:"FIREBASE_ADMIN_UID"`        // UID de Firebase del usuario admin inicial (opcional)

	// MQTT (propagación de tags hacia los paneles de acceso)
	MQTT_BrokerURL   string `env:"MQTT_BROKER_URL"`                        // URL del broker MQTT (tcp://host:1883)
	MQTT_ClientID    string `env:"MQTT_CLIENT_ID" envDefault:"zentry-api"` // Client ID para el broker
	MQTT_Username    string `env:"MQTT_USERNAME"`                          // Usuario del broker (opcional)
	MQTT_Password    string `env:"MQTT_PASSWORD"`                          // Contraseña del broker (opcional)
	MQTT_TopicPrefix string `env:"MQTT_TOPIC_PREFIX" envDefault:"paneles"` // Prefijo de topics por panel

	// SMTP (canal de notificaciones por correo)
	SMTP_Host     string `env:"SMTP_HOST"`                                   // Host SMTP
	SMTP_Port     int    `env:"SMTP_PORT" envDefault:"587"`                  // Puerto SMTP
	SMTP_Username string `env:"SMTP_USERNAME"`                               // Usuario SMTP
	SMTP_Password string `env:"SMTP_PASSWORD"`                               // Contraseña SMTP
	SMTP_From     string `env:"SMTP_FROM" envDefault:"alertas@zentry.local"` // Remitente

	// Worker de sincronización de paneles
	PanelSync_Interval   int `env:"PANELSYNC_INTERVAL" envDefault:"5"`      // Intervalo de polling del worker (segundos)
	PanelSync_BatchSize  int `env:"PANELSYNC_BATCH_SIZE" envDefault:"20"`   // Jobs por iteración
	PanelSync_MaxRetries int `env:"PANELSYNC_MAX_RETRIES" envDefault:"3"`   // Reintentos por job
	PanelSync_StuckAfter int `env:"PANELSYNC_STUCK_AFTER" envDefault:"300"` // Segundos para considerar un job colgado
}

// getEnvPath devuelve la ruta del archivo env según el ambiente (GO_ENV).
// Busca el directorio config/env subiendo desde el directorio actual.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Usamos fmt.Printf porque el logger puede no estar inicializado aquí
		fmt.Printf("No se pudo obtener el directorio actual: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig lee la configuración desde el archivo env del ambiente actual.
// Devuelve nil si el archivo no existe o el parseo falla.
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("No se encontró el directorio config/env\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("No se pudo cargar el archivo env en %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Error al parsear la configuración: %+v\n", err)
		return nil
	}

	return &cfg
}
