// Package initsvc contiene InitService, el arranque de datos iniciales
// del sistema. Vive en su propio package para evitar import cycles entre
// auth/service y el resto de los dominios.
package initsvc

import (
	"context"
	"fmt"
	"time"

	authmodels "zentry_api/internal/api/auth/models"
	basesvc "zentry_api/internal/api/base/service"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

// InitService inicializa los datos mínimos que el sistema necesita para
// operar: el usuario administrador inicial tomado de Firebase.
type InitService struct {
	usuarios *basesvc.BaseServiceMongoImpl[authmodels.Usuario]
}

// NewInitService crea el servicio de inicialización.
func NewInitService() (*InitService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Usuarios)
	if !exists {
		return nil, fmt.Errorf("colección %s no registrada", global.ColNames.Usuarios)
	}

	return &InitService{
		usuarios: basesvc.NewBaseServiceMongo[authmodels.Usuario](col),
	}, nil
}

// HasAnyAdministrator indica si ya existe al menos un usuario con rol admin.
func (s *InitService) HasAnyAdministrator(ctx context.Context) (bool, error) {
	count, err := s.usuarios.CountDocuments(ctx, bson.M{"role": authmodels.RolAdmin})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InitAdminUser crea (o promueve) el usuario administrador inicial a
// partir de su UID de Firebase. El usuario debe existir previamente en
// Firebase Authentication; aquí sólo se materializa su documento local
// con rol admin y cuenta aprobada.
func (s *InitService) InitAdminUser(firebaseUID string) error {
	log := logger.GetAppLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userRecord, err := utility.GetUserByUID(ctx, firebaseUID)
	if err != nil {
		return common.NewError(common.ErrCodeAuth, "el UID de administrador no existe en Firebase", common.StatusNotFound, err)
	}

	now := utility.CurrentTimeInMilli()
	set := bson.M{
		"firebaseUid": firebaseUID,
		"role":        authmodels.RolAdmin,
		"status":      authmodels.EstadoAprobado,
		"updatedAt":   now,
	}
	if userRecord.Email != "" {
		set["email"] = userRecord.Email
	}
	if userRecord.DisplayName != "" {
		set["nombre"] = userRecord.DisplayName
	}

	usuario, err := s.usuarios.Upsert(ctx, bson.M{"firebaseUid": firebaseUID}, basesvc.UpdateData{
		Set:         set,
		SetOnInsert: bson.M{"createdAt": now},
	})
	if err != nil {
		return err
	}

	logger.GetAuditLogger().WithField("usuarioId", usuario.ID.Hex()).
		Info("Usuario administrador inicial verificado")
	log.Infof("Administrador inicial listo: %s", userRecord.Email)
	return nil
}
