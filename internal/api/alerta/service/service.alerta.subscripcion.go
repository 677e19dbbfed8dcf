package alertasvc

import (
	"context"

	models "zentry_api/internal/api/alerta/models"
	authmodels "zentry_api/internal/api/auth/models"
	residencialsvc "zentry_api/internal/api/residencial/service"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/notification"
	"zentry_api/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AlertaHandlerFunc procesa una alerta nueva recibida por suscripción.
type AlertaHandlerFunc func(alerta models.AlertaPanico)

// SuscribirseAAlertasPanico abre change streams sobre las ubicaciones de
// alertas del residencial y entrega cada alerta nueva al handler.
//
// La ubicación se decide con una sonda determinística: si la
// subcolección del residencial ya tiene documentos, se escucha ahí; si
// no, se escuchan las colecciones raíz con filtro del lado del cliente.
// Devuelve la función de cancelación que cierra los streams.
func (s *AlertaService) SuscribirseAAlertasPanico(ctx context.Context, residencialID string, handler AlertaHandlerFunc) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	usarSubcolecciones := false
	for _, col := range s.coleccionesResidencial(residencialID) {
		n, err := col.CountDocuments(subCtx, bson.M{})
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Warn("Suscripción: error en la sonda de la subcolección")
			continue
		}
		if n > 0 {
			usarSubcolecciones = true
			break
		}
	}

	var cols []*mongo.Collection
	filtrarCliente := false
	if usarSubcolecciones {
		cols = s.coleccionesResidencial(residencialID)
	} else {
		cols = s.coleccionesRaiz()
		filtrarCliente = true
	}

	if len(cols) == 0 {
		cancel()
		return nil, common.NewError(
			common.ErrCodeDatabase,
			"No hay colecciones de alertas disponibles",
			common.StatusInternalServerError,
			nil,
		)
	}

	abiertos := 0
	for _, col := range cols {
		stream, err := col.Watch(subCtx, mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
		})
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Warn("Suscripción: no se pudo abrir el change stream")
			continue
		}
		abiertos++
		go s.escucharStream(subCtx, stream, col.Name(), residencialID, filtrarCliente, handler)
	}

	if abiertos == 0 {
		cancel()
		return nil, common.NewError(
			common.ErrCodeDatabase,
			"No se pudo abrir ningún change stream de alertas",
			common.StatusInternalServerError,
			nil,
		)
	}

	return cancel, nil
}

// escucharStream consume el change stream hasta que el contexto se cancele.
func (s *AlertaService) escucharStream(ctx context.Context, stream *mongo.ChangeStream, nombreCol, residencialID string, filtrarCliente bool, handler AlertaHandlerFunc) {
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var evento struct {
			FullDocument models.AlertaPanico `bson:"fullDocument"`
		}
		if err := stream.Decode(&evento); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": nombreCol, "error": err.Error()}).Warn("Suscripción: error al decodificar el evento")
			continue
		}

		alerta := evento.FullDocument
		if filtrarCliente && !alerta.PerteneceAResidencial(residencialID) {
			continue
		}

		utility.GoProtect(func() {
			handler(alerta)
		})
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": nombreCol, "error": err.Error()}).Error("Suscripción: el change stream terminó con error")
	}
}

// CrearAlertaPanico registra una alerta nueva en la ubicación canónica
// (la subcolección del residencial si el residencial es resoluble, la
// colección raíz si no) y notifica por correo al personal del
// residencial. El correo es secundario: sus errores solo se loguean.
func (s *AlertaService) CrearAlertaPanico(ctx context.Context, alerta models.AlertaPanico) (models.AlertaPanico, error) {
	if alerta.Status == "" {
		alerta.Status = models.AlertaActiva
	}
	ahora := utility.CurrentTimeInMilli()
	alerta.CreatedAt = ahora
	alerta.UpdatedAt = ahora

	var col *mongo.Collection
	docID := residencialsvc.GetResolver().GetDocIDFromCodigo(alerta.EfectivoResidencial())
	if docID != "" {
		var err error
		col, err = global.GetSubCollection(docID, global.ColNames.Alertas)
		if err != nil {
			col = nil
		}
	}
	if col == nil {
		raiz, exist := global.RegistryCollections.Get(global.ColNames.Alertas)
		if !exist {
			return models.AlertaPanico{}, common.NewError(
				common.ErrCodeDatabase,
				"La colección de alertas no está disponible",
				common.StatusInternalServerError,
				nil,
			)
		}
		col = raiz
	}

	result, err := col.InsertOne(ctx, alerta)
	if err != nil {
		return models.AlertaPanico{}, common.ConvertMongoError(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		alerta.ID = oid
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"alerta_id":   alerta.ID.Hex(),
		"residencial": alerta.EfectivoResidencial(),
		"coleccion":   col.Name(),
	}).Info("Alerta de pánico registrada")

	go utility.GoProtect(func() {
		s.notificarPorCorreo(alerta)
	})

	return alerta, nil
}

// notificarPorCorreo envía el correo de la alerta al personal de
// seguridad y administración del residencial.
func (s *AlertaService) notificarPorCorreo(alerta models.AlertaPanico) {
	if !notification.Habilitado() {
		return
	}

	residencialID := alerta.EfectivoResidencial()
	destinatarios := s.destinatariosDeResidencial(residencialID)
	if len(destinatarios) == 0 {
		return
	}

	nombre := residencialsvc.GetResolver().GetResidencialNombre(residencialID)
	notification.EnviarAlertaPanico(nombre, alerta.NombreUsuario, alerta.Ubicacion(), alerta.Mensaje, destinatarios)
}

// destinatariosDeResidencial junta los correos del personal de seguridad
// y administración del residencial.
func (s *AlertaService) destinatariosDeResidencial(residencialID string) []string {
	col, exist := global.RegistryCollections.Get(global.ColNames.Usuarios)
	if !exist {
		return nil
	}

	ctx := context.Background()
	filter := bson.M{
		"residencialID": residencialID,
		"role":          bson.M{"$in": []string{authmodels.RolSeguridad, authmodels.RolAdmin}},
		"email":         bson.M{"$nin": []interface{}{nil, ""}},
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Alertas: no se pudieron consultar los destinatarios")
		return nil
	}
	defer cursor.Close(ctx)

	var usuarios []authmodels.Usuario
	if err := cursor.All(ctx, &usuarios); err != nil {
		return nil
	}

	correos := make([]string, 0, len(usuarios))
	for _, u := range usuarios {
		if u.Email != "" {
			correos = append(correos, u.Email)
		}
	}
	return correos
}
