// Package tagsvc - servicios del dominio de tags vehiculares.
package tagsvc

import (
	"context"
	"fmt"

	basesvc "zentry_api/internal/api/base/service"
	models "zentry_api/internal/api/tag/models"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagService contiene las operaciones sobre tags vehiculares.
type TagService struct {
	*basesvc.BaseServiceMongoImpl[models.Tag]
	jobs *PanelJobService
}

// NewTagService crea un TagService nuevo.
func NewTagService() (*TagService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.Tags)
	if !exist {
		return nil, fmt.Errorf("no se pudo obtener la colección de tags: %v", common.ErrNotFound)
	}

	jobs, err := NewPanelJobService()
	if err != nil {
		return nil, err
	}

	return &TagService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tag](col),
		jobs:                 jobs,
	}, nil
}

// Jobs devuelve el servicio de trabajos de panel asociado.
func (s *TagService) Jobs() *PanelJobService {
	return s.jobs
}

// CrearTag registra un tag. Deriva el houseID, inserta con estado
// pendiente y encola el alta en cada panel declarado.
func (s *TagService) CrearTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	if len(tag.Paneles) == 0 {
		return models.Tag{}, common.NewError(
			common.ErrCodeValidationInput,
			"El tag requiere al menos un panel",
			common.StatusBadRequest,
			nil,
		)
	}

	tag.HouseID = models.DeriveHouseID(tag.ResidencialID, tag.Calle, tag.NumeroCasa)
	tag.Status = models.TagPendiente

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, tag)
	if err != nil {
		return models.Tag{}, err
	}

	if err := s.jobs.EncolarParaTag(ctx, created, models.AccionAlta); err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"tag_id": created.ID.Hex(), "error": err.Error()}).Error("CrearTag: no se pudieron encolar los trabajos de panel")
	}

	return created, nil
}

// CambiarEstadoTag fija el estado deseado del tag y encola la acción
// correspondiente en cada panel (alta al activar, baja al deshabilitar).
func (s *TagService) CambiarEstadoTag(ctx context.Context, id primitive.ObjectID, estado string) (models.Tag, error) {
	if !models.EsEstadoTagValido(estado) {
		return models.Tag{}, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Estado de tag '%s' desconocido", estado),
			common.StatusBadRequest,
			nil,
		)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"status": estado},
	}
	tag, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
	if err != nil {
		return models.Tag{}, err
	}

	accion := ""
	switch estado {
	case models.TagActivo:
		accion = models.AccionAlta
	case models.TagDeshabilitado:
		accion = models.AccionBaja
	}
	if accion != "" {
		if err := s.jobs.EncolarParaTag(ctx, tag, accion); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"tag_id": tag.ID.Hex(), "error": err.Error()}).Error("CambiarEstadoTag: no se pudieron encolar los trabajos de panel")
		}
	}

	return tag, nil
}

// TagPanelStatus responde el último trabajo por panel del tag dado.
// Es la vista que el tablero consulta para verificar que el tag quedó
// aplicado en todos los paneles.
func (s *TagService) TagPanelStatus(ctx context.Context, tagID primitive.ObjectID) ([]models.TagPanelStatus, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"tagId": tagID}},
		{"$sort": bson.M{"createdAt": -1}},
		{"$group": bson.M{
			"_id":           "$panelId",
			"status":        bson.M{"$first": "$status"},
			"accion":        bson.M{"$first": "$accion"},
			"correlationId": bson.M{"$first": "$correlationId"},
			"intentos":      bson.M{"$first": "$intentos"},
			"ultimoError":   bson.M{"$first": "$ultimoError"},
			"updatedAt":     bson.M{"$first": "$updatedAt"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := s.jobs.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	estados := []models.TagPanelStatus{}
	if err := cursor.All(ctx, &estados); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return estados, nil
}
