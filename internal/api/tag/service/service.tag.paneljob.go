package tagsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "zentry_api/internal/api/base/service"
	models "zentry_api/internal/api/tag/models"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/utility"

	"github.com/google/uuid"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PanelJobService administra la cola de trabajos de sincronización con
// los paneles de acceso.
type PanelJobService struct {
	*basesvc.BaseServiceMongoImpl[models.PanelJob]
	maxIntentos int
}

// NewPanelJobService crea un PanelJobService nuevo.
func NewPanelJobService() (*PanelJobService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.PanelJobs)
	if !exist {
		return nil, fmt.Errorf("no se pudo obtener la colección de panelJobs: %v", common.ErrNotFound)
	}

	return &PanelJobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PanelJob](col),
		maxIntentos:          models.MaxIntentosJob,
	}, nil
}

// SetMaxIntentos fija el límite de reintentos por trabajo
// (PANELSYNC_MAX_RETRIES). Valores no positivos se ignoran.
func (s *PanelJobService) SetMaxIntentos(n int) {
	if n > 0 {
		s.maxIntentos = n
	}
}

// EncolarParaTag crea un trabajo por cada panel del tag con la acción
// dada. Cada trabajo lleva un UUID de correlación propio.
func (s *PanelJobService) EncolarParaTag(ctx context.Context, tag models.Tag, accion string) error {
	if len(tag.Paneles) == 0 {
		return nil
	}

	jobs := make([]models.PanelJob, 0, len(tag.Paneles))
	for _, panelID := range tag.Paneles {
		jobs = append(jobs, models.PanelJob{
			TagID:         tag.ID,
			PanelID:       panelID,
			Accion:        accion,
			Status:        models.JobEncolado,
			CorrelationID: uuid.NewString(),
			ResidencialID: tag.ResidencialID,
		})
	}

	_, err := s.BaseServiceMongoImpl.InsertMany(ctx, jobs)
	return err
}

// ClaimSiguiente toma atómicamente el trabajo encolado más antiguo y lo
// marca en proceso, incrementando el contador de intentos. Devuelve
// common.ErrNotFound cuando la cola está vacía.
func (s *PanelJobService) ClaimSiguiente(ctx context.Context) (models.PanelJob, error) {
	filter := bson.M{"status": models.JobEncolado}
	update := bson.M{
		"$set": bson.M{
			"status":    models.JobEnProceso,
			"updatedAt": utility.CurrentTimeInMilli(),
		},
		"$inc": bson.M{"intentos": 1},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.M{"createdAt": 1}).
		SetReturnDocument(options.After)

	return s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, update, opts)
}

// MarcarTerminado marca el trabajo como aplicado en el panel.
func (s *PanelJobService) MarcarTerminado(ctx context.Context, id primitive.ObjectID) error {
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":      models.JobTerminado,
			"ultimoError": "",
		},
	}
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
	return err
}

// MarcarFallo registra el error del intento. Mientras queden reintentos
// el trabajo vuelve a la cola; agotados, queda en estado error.
func (s *PanelJobService) MarcarFallo(ctx context.Context, job models.PanelJob, causa string) error {
	estado := models.EstadoTrasFallo(job.Intentos, s.maxIntentos)

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":      estado,
			"ultimoError": causa,
		},
	}
	_, err := s.BaseServiceMongoImpl.UpdateById(ctx, job.ID, updateData)
	return err
}

// LiberarAtascados regresa a la cola los trabajos que llevan más del
// umbral dado en proceso (el worker murió a mitad del envío).
func (s *PanelJobService) LiberarAtascados(ctx context.Context, umbral time.Duration) (int64, error) {
	limite := utility.UnixMilli(time.Now().Add(-umbral))
	filter := bson.M{
		"status":    models.JobEnProceso,
		"updatedAt": bson.M{"$lt": limite},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.JobEncolado,
			"updatedAt": utility.CurrentTimeInMilli(),
		},
	}
	return s.BaseServiceMongoImpl.UpdateMany(ctx, filter, update, nil)
}
