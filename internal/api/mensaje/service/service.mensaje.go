// Package mensajesvc - servicio de mensajería por residencial.
package mensajesvc

import (
	"context"

	basemodels "zentry_api/internal/api/base/models"
	basesvc "zentry_api/internal/api/base/service"
	models "zentry_api/internal/api/mensaje/models"
	residencialsvc "zentry_api/internal/api/residencial/service"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/notification"
	"zentry_api/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MensajeService opera la mensajería de un residencial concreto. Los
// servicios base apuntan a las subcolecciones de ese residencial.
type MensajeService struct {
	residencialID  string
	chats          *basesvc.BaseServiceMongoImpl[models.Chat]
	mensajes       *basesvc.BaseServiceMongoImpl[models.Mensaje]
	notificaciones *basesvc.BaseServiceMongoImpl[models.Notificacion]
}

// NewMensajeService crea el servicio de mensajería del residencial dado
// (código de negocio o docID).
func NewMensajeService(residencialID string) (*MensajeService, error) {
	docID := residencialsvc.GetResolver().GetDocIDFromCodigo(residencialID)
	if docID == "" {
		return nil, common.NewError(
			common.ErrCodeDatabaseQuery,
			"Residencial no encontrado",
			common.StatusNotFound,
			nil,
		)
	}

	chatsCol, err := global.GetSubCollection(docID, global.SubChats)
	if err != nil {
		return nil, err
	}
	mensajesCol, err := global.GetSubCollection(docID, global.SubMensajes)
	if err != nil {
		return nil, err
	}
	notifCol, err := global.GetSubCollection(docID, global.SubNotificaciones)
	if err != nil {
		return nil, err
	}

	return &MensajeService{
		residencialID:  residencialID,
		chats:          basesvc.NewBaseServiceMongo[models.Chat](chatsCol),
		mensajes:       basesvc.NewBaseServiceMongo[models.Mensaje](mensajesCol),
		notificaciones: basesvc.NewBaseServiceMongo[models.Notificacion](notifCol),
	}, nil
}

// CrearChat abre un hilo de conversación. El creador siempre queda
// entre los participantes.
func (s *MensajeService) CrearChat(ctx context.Context, chat models.Chat) (models.Chat, error) {
	incluido := false
	for _, p := range chat.Participantes {
		if p == chat.CreadoPor {
			incluido = true
			break
		}
	}
	if !incluido && !chat.CreadoPor.IsZero() {
		chat.Participantes = append(chat.Participantes, chat.CreadoPor)
	}

	return s.chats.InsertOne(ctx, chat)
}

// ListarChats lista los hilos donde participa el usuario. El personal
// del residencial (sin filtro de usuario) ve todos.
func (s *MensajeService) ListarChats(ctx context.Context, usuarioID primitive.ObjectID) ([]models.Chat, error) {
	filter := bson.M{}
	if !usuarioID.IsZero() {
		filter["participantes"] = usuarioID
	}
	opts := options.Find().SetSort(bson.M{"ultimoMensajeAt": -1})
	return s.chats.Find(ctx, filter, opts)
}

// PublicarMensaje agrega un mensaje al chat y actualiza la marca de
// último mensaje del hilo.
func (s *MensajeService) PublicarMensaje(ctx context.Context, mensaje models.Mensaje) (models.Mensaje, error) {
	if _, err := s.chats.FindOneById(ctx, mensaje.ChatID); err != nil {
		return models.Mensaje{}, err
	}

	creado, err := s.mensajes.InsertOne(ctx, mensaje)
	if err != nil {
		return models.Mensaje{}, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"ultimoMensajeAt": creado.CreatedAt},
	}
	if _, err := s.chats.UpdateById(ctx, mensaje.ChatID, updateData); err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"chat_id": mensaje.ChatID.Hex(), "error": err.Error()}).Warn("PublicarMensaje: no se pudo actualizar el hilo")
	}

	return creado, nil
}

// ListarMensajes pagina los mensajes de un chat, del más reciente al
// más antiguo.
func (s *MensajeService) ListarMensajes(ctx context.Context, chatID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Mensaje], error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.mensajes.FindWithPagination(ctx, bson.M{"chatId": chatID}, page, limit, opts)
}

// MarcarLeido registra al usuario como lector de todos los mensajes del
// chat que aún no lo listaban. Devuelve cuántos mensajes se marcaron.
func (s *MensajeService) MarcarLeido(ctx context.Context, chatID, usuarioID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"chatId":   chatID,
		"leidoPor": bson.M{"$ne": usuarioID},
	}
	update := bson.M{
		"$addToSet": bson.M{"leidoPor": usuarioID},
		"$set":      bson.M{"updatedAt": utility.CurrentTimeInMilli()},
	}
	return s.mensajes.UpdateMany(ctx, filter, update, nil)
}

// PublicarAnuncio guarda el anuncio y, si se pidió, lo envía por correo
// a los residentes. El correo es secundario: sus errores solo se loguean.
func (s *MensajeService) PublicarAnuncio(ctx context.Context, anuncio models.Notificacion) (models.Notificacion, error) {
	creado, err := s.notificaciones.InsertOne(ctx, anuncio)
	if err != nil {
		return models.Notificacion{}, err
	}

	if creado.PorCorreo {
		residencialID := s.residencialID
		go utility.GoProtect(func() {
			destinatarios := s.correosDeResidentes(residencialID)
			if len(destinatarios) == 0 {
				return
			}
			nombre := residencialsvc.GetResolver().GetResidencialNombre(residencialID)
			notification.EnviarAnuncio(nombre, creado.Titulo, creado.Contenido, destinatarios)
		})
	}

	return creado, nil
}

// ListarAnuncios lista los anuncios del residencial, el más reciente
// primero.
func (s *MensajeService) ListarAnuncios(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[models.Notificacion], error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return s.notificaciones.FindWithPagination(ctx, bson.M{}, page, limit, opts)
}

// correosDeResidentes junta los correos de los usuarios del residencial.
func (s *MensajeService) correosDeResidentes(residencialID string) []string {
	col, exist := global.RegistryCollections.Get(global.ColNames.Usuarios)
	if !exist {
		return nil
	}

	ctx := context.Background()
	cursor, err := col.Find(ctx, bson.M{
		"residencialID": residencialID,
		"email":         bson.M{"$nin": []interface{}{nil, ""}},
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Anuncios: no se pudieron consultar los destinatarios")
		return nil
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil
	}

	correos := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Email != "" {
			correos = append(correos, d.Email)
		}
	}
	return correos
}
