package panelsync

import (
	"context"
	"time"

	tagsvc "zentry_api/internal/api/tag/service"
	"zentry_api/internal/logger"

	"github.com/sirupsen/logrus"
)

// CleanupWorker libera los trabajos que quedaron en proceso cuando un
// worker murió a mitad del envío, regresándolos a la cola.
type CleanupWorker struct {
	jobs     *tagsvc.PanelJobService
	interval time.Duration
	umbral   time.Duration
}

// NewCleanupWorker crea el worker de limpieza de trabajos atascados.
func NewCleanupWorker(interval, umbral time.Duration) (*CleanupWorker, error) {
	jobs, err := tagsvc.NewPanelJobService()
	if err != nil {
		return nil, err
	}

	if interval < 30*time.Second {
		interval = time.Minute
	}
	if umbral < time.Minute {
		umbral = 5 * time.Minute
	}

	return &CleanupWorker{jobs: jobs, interval: interval, umbral: umbral}, nil
}

// Start corre el worker hasta que el contexto se cancele.
func (w *CleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(logrus.Fields{
		"interval": w.interval.String(),
		"umbral":   w.umbral.String(),
	}).Info("🧹 [PANELSYNC] Worker de limpieza iniciado")

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [PANELSYNC] Worker de limpieza detenido")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(logrus.Fields{"panic": r}).Error("🧹 [PANELSYNC] Panic al liberar trabajos; se continúa en el siguiente tick")
					}
				}()

				liberados, err := w.jobs.LiberarAtascados(ctx, w.umbral)
				if err != nil {
					log.WithError(err).Error("🧹 [PANELSYNC] Error al liberar trabajos atascados")
					return
				}
				if liberados > 0 {
					log.WithFields(logrus.Fields{"liberados": liberados}).Info("🧹 [PANELSYNC] Trabajos regresados a la cola")
				}
			}()
		}
	}
}
