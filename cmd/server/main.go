package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"zentry_api/internal/database"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/panelsync"
)

// initLogger inicializa el sistema de logs de toda la aplicación.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("No se pudo inicializar el logger: %v", err))
	}

	logger.GetAppLogger().Info("Sistema de logs inicializado")
}

// startPanelSync arranca los workers de sincronización de paneles si hay
// broker MQTT configurado. Devuelve el publisher para cerrarlo en el
// shutdown, o nil si la sincronización quedó deshabilitada.
func startPanelSync(ctx context.Context) *panelsync.Publisher {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	if cfg.MQTT_BrokerURL == "" {
		log.Info("📡 [PANELSYNC] MQTT_BROKER_URL no configurado, sincronización de paneles deshabilitada")
		return nil
	}

	publisher, err := panelsync.NewPublisher(cfg.MQTT_BrokerURL, cfg.MQTT_ClientID, cfg.MQTT_Username, cfg.MQTT_Password, cfg.MQTT_TopicPrefix)
	if err != nil {
		log.WithError(err).Error("📡 [PANELSYNC] No se pudo conectar al broker MQTT, el servidor continúa sin sincronización")
		return nil
	}

	processor, err := panelsync.NewProcessor(publisher, time.Duration(cfg.PanelSync_Interval)*time.Second, cfg.PanelSync_BatchSize, cfg.PanelSync_MaxRetries)
	if err != nil {
		log.WithError(err).Error("📡 [PANELSYNC] No se pudo crear el processor")
		publisher.Cerrar()
		return nil
	}

	cleanup, err := panelsync.NewCleanupWorker(time.Minute, time.Duration(cfg.PanelSync_StuckAfter)*time.Second)
	if err != nil {
		log.WithError(err).Error("📡 [PANELSYNC] No se pudo crear el cleanup worker")
		publisher.Cerrar()
		return nil
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("📡 [PANELSYNC] Panic en el processor")
			}
		}()
		processor.Start(ctx)
	}()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("🧹 [PANELSYNC] Panic en el cleanup worker")
			}
		}()
		cleanup.Start(ctx)
	}()

	log.Info("📡 [PANELSYNC] Workers de sincronización de paneles iniciados")
	return publisher
}

// main_thread arranca el servidor Fiber y bloquea hasta el shutdown.
func main_thread(app *fiber.App) {
	log := logger.GetAppLogger()
	address := global.ServerConfig.Address

	log.WithField("address", address).Info("Iniciando servidor HTTP")
	if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatalf("Error en el servidor Fiber: %v", err)
	}
}

func main() {
	initLogger()
	InitGlobal()
	InitRegistry()
	InitIndexes()
	InitDefaultData()

	// Contexto de los workers en background; se cancela en el shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher := startPanelSync(ctx)

	app := InitFiberApp()

	// Shutdown ordenado: detener workers, cerrar MQTT, Mongo y logs
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		log := logger.GetAppLogger()
		log.Infof("Señal %s recibida, apagando el servidor", sig)

		cancel()
		if publisher != nil {
			publisher.Cerrar()
		}
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			log.Errorf("Error en el shutdown de Fiber: %v", err)
		}
		if err := database.CloseInstance(global.MongoDB_Session); err != nil {
			log.Errorf("Error cerrando la sesión de MongoDB: %v", err)
		}
		logger.Close()
	}()

	main_thread(app)
}
