package logger

import (
	"os"
)

// LogConfig contiene la configuración del sistema de logging.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Output string `env:"LOG_OUTPUT" envDefault:"both"` // file | console | both

	// Rotación de archivos (lumberjack)
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"` // megabytes
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"30"` // días
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	// Rutas de archivos
	LogPath   string `env:"LOG_PATH" envDefault:"logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Buffer del hook asíncrono
	AsyncBufferSize int `env:"LOG_ASYNC_BUFFER" envDefault:"1000"`
}

// DefaultConfig devuelve la configuración de logging según el entorno.
// En desarrollo se usa nivel debug con formato de texto; en producción
// nivel info con formato JSON.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:           "info",
		Format:          "json",
		Output:          "both",
		MaxSize:         100,
		MaxBackups:      5,
		MaxAge:          30,
		Compress:        true,
		LogPath:         "logs",
		AppFile:         "app.log",
		AuditFile:       "audit.log",
		ErrorFile:       "error.log",
		AsyncBufferSize: 1000,
	}

	if os.Getenv("GO_ENV") == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	}

	return cfg
}
