package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Nombres de los loggers registrados.
const (
	LoggerApp   = "app"
	LoggerAudit = "audit"
	LoggerError = "error"
)

var (
	loggers  = make(map[string]*logrus.Logger)
	loggerMu sync.RWMutex
	initOnce sync.Once
)

// Init inicializa los loggers nombrados con la configuración dada.
// Es idempotente; llamadas posteriores no tienen efecto.
func Init(cfg *LogConfig) error {
	var initErr error
	initOnce.Do(func() {
		if cfg == nil {
			cfg = DefaultConfig()
		}

		if err := os.MkdirAll(cfg.LogPath, 0o755); err != nil {
			initErr = err
			return
		}

		errorLogger := createLogger(cfg, cfg.ErrorFile)
		errorLogger.SetLevel(logrus.ErrorLevel)

		appLogger := createLogger(cfg, cfg.AppFile)
		appLogger.AddHook(NewFilterHook(errorLogger, logrus.ErrorLevel))

		auditLogger := createLogger(cfg, cfg.AuditFile)

		loggerMu.Lock()
		loggers[LoggerApp] = appLogger
		loggers[LoggerAudit] = auditLogger
		loggers[LoggerError] = errorLogger
		loggerMu.Unlock()
	})
	return initErr
}

// createLogger construye un logger con rotación de archivos y salida
// opcional a consola según la configuración.
func createLogger(cfg *LogConfig, filename string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogPath, filename),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "console":
		l.SetOutput(os.Stdout)
	case "file":
		l.SetOutput(fileWriter)
	default:
		l.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	}

	return l
}

// GetLogger devuelve el logger con el nombre dado. Si el sistema no fue
// inicializado o el nombre no existe, devuelve un logger estándar para
// no perder mensajes.
func GetLogger(name string) *logrus.Logger {
	loggerMu.RLock()
	l, ok := loggers[name]
	loggerMu.RUnlock()
	if !ok {
		return logrus.StandardLogger()
	}
	return l
}

// GetAppLogger devuelve el logger principal de la aplicación.
func GetAppLogger() *logrus.Logger {
	return GetLogger(LoggerApp)
}

// GetAuditLogger devuelve el logger de auditoría.
func GetAuditLogger() *logrus.Logger {
	return GetLogger(LoggerAudit)
}

// WithRequest devuelve una entrada enriquecida con los datos de la
// petición HTTP para correlacionar los logs de un mismo request.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		fields["user_id"] = userID
	}
	if residencial, ok := c.Locals("residencial_id").(string); ok && residencial != "" {
		fields["residencial_id"] = residencial
	}
	return GetAppLogger().WithFields(fields)
}

// Close cierra los hooks asíncronos registrados. Debe llamarse al
// apagar el servidor para no perder entradas pendientes.
func Close() {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	for _, l := range loggers {
		for _, hooks := range l.Hooks {
			for _, h := range hooks {
				if ah, ok := h.(*AsyncHook); ok {
					ah.Close()
				}
			}
		}
	}
}
