package panelsync

import (
	"context"
	"errors"
	"time"

	models "zentry_api/internal/api/tag/models"
	tagsvc "zentry_api/internal/api/tag/service"
	"zentry_api/internal/common"
	"zentry_api/internal/logger"

	"github.com/sirupsen/logrus"
)

// batchSizeDefecto limita cuántos trabajos procesa un tick cuando no
// hay tamaño de lote configurado.
const batchSizeDefecto = 20

// Processor es el worker que drena la cola de panelJobs: toma el
// trabajo más antiguo, publica el mensaje MQTT y marca el resultado.
type Processor struct {
	tagService *tagsvc.TagService
	publisher  *Publisher
	interval   time.Duration
	batchSize  int
}

// batchSizeEfectivo normaliza el tamaño de lote configurado.
func batchSizeEfectivo(n int) int {
	if n <= 0 {
		return batchSizeDefecto
	}
	return n
}

// NewProcessor crea el worker de sincronización de paneles. batchSize
// limita los trabajos por tick (PANELSYNC_BATCH_SIZE) y maxIntentos los
// reintentos por trabajo (PANELSYNC_MAX_RETRIES); valores no positivos
// toman el valor por defecto.
func NewProcessor(publisher *Publisher, interval time.Duration, batchSize, maxIntentos int) (*Processor, error) {
	tagService, err := tagsvc.NewTagService()
	if err != nil {
		return nil, err
	}
	tagService.Jobs().SetMaxIntentos(maxIntentos)

	if interval < time.Second {
		interval = 5 * time.Second
	}

	return &Processor{
		tagService: tagService,
		publisher:  publisher,
		interval:   interval,
		batchSize:  batchSizeEfectivo(batchSize),
	}, nil
}

// Start corre el worker hasta que el contexto se cancele. En cada tick
// drena todos los trabajos encolados; los panics de una iteración se
// recuperan y la siguiente continúa.
func (p *Processor) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.WithFields(logrus.Fields{"interval": p.interval.String()}).Info("📡 [PANELSYNC] Worker de sincronización iniciado")

	for {
		select {
		case <-ctx.Done():
			log.Info("📡 [PANELSYNC] Worker de sincronización detenido")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(logrus.Fields{"panic": r}).Error("📡 [PANELSYNC] Panic al procesar la cola; se continúa en el siguiente tick")
					}
				}()
				p.drenarCola(ctx)
			}()
		}
	}
}

// drenarCola procesa trabajos hasta vaciar la cola o agotar el lote
// del tick; lo que quede espera al siguiente.
func (p *Processor) drenarCola(ctx context.Context) {
	for procesados := 0; procesados < p.batchSize; procesados++ {
		if ctx.Err() != nil {
			return
		}

		job, err := p.tagService.Jobs().ClaimSiguiente(ctx)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				logger.GetAppLogger().WithError(err).Error("📡 [PANELSYNC] Error al reclamar el siguiente trabajo")
			}
			return
		}

		p.procesarJob(ctx, job)
	}
}

// procesarJob publica el mensaje del trabajo y registra el resultado.
func (p *Processor) procesarJob(ctx context.Context, job models.PanelJob) {
	log := logger.GetAppLogger().WithFields(logrus.Fields{
		"job_id":         job.ID.Hex(),
		"panel_id":       job.PanelID,
		"correlation_id": job.CorrelationID,
		"intento":        job.Intentos,
	})

	numeroTarjeta := ""
	if tag, err := p.tagService.FindOneById(ctx, job.TagID); err == nil {
		numeroTarjeta = tag.NumeroTarjeta
	}

	if err := p.publisher.Publicar(job, numeroTarjeta); err != nil {
		log.WithError(err).Warn("📡 [PANELSYNC] Fallo al publicar el trabajo")
		if markErr := p.tagService.Jobs().MarcarFallo(ctx, job, err.Error()); markErr != nil {
			log.WithError(markErr).Error("📡 [PANELSYNC] No se pudo registrar el fallo del trabajo")
		}
		return
	}

	if err := p.tagService.Jobs().MarcarTerminado(ctx, job.ID); err != nil {
		log.WithError(err).Error("📡 [PANELSYNC] No se pudo marcar el trabajo como terminado")
		return
	}

	log.Debug("📡 [PANELSYNC] Trabajo aplicado")
}
