// Package authsvc - servicio de usuarios (Usuario).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	authdto "zentry_api/internal/api/auth/dto"
	models "zentry_api/internal/api/auth/models"
	basesvc "zentry_api/internal/api/base/service"
	residencialsvc "zentry_api/internal/api/residencial/service"
	storagesvc "zentry_api/internal/api/storage/service"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsuarioService contiene las operaciones sobre usuarios.
type UsuarioService struct {
	*basesvc.BaseServiceMongoImpl[models.Usuario]
}

// NewUsuarioService crea un UsuarioService nuevo.
func NewUsuarioService() (*UsuarioService, error) {
	usuarioCollection, exist := global.RegistryCollections.Get(global.ColNames.Usuarios)
	if !exist {
		return nil, fmt.Errorf("no se pudo obtener la colección de usuarios: %v", common.ErrNotFound)
	}

	return &UsuarioService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Usuario](usuarioCollection),
	}, nil
}

// Login autentica con un ID token de Firebase, hace upsert del usuario local
// y emite el token de sesión.
func (s *UsuarioService) Login(ctx context.Context, input *authdto.FirebaseLoginInput) (*authdto.LoginResult, error) {
	token, err := utility.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Login: error al verificar el ID token de Firebase")
		return nil, common.NewError(common.ErrCodeAuthCredentials, "Token inválido", common.StatusUnauthorized, err)
	}

	firebaseUser, err := utility.GetUserByUID(ctx, token.UID)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": token.UID, "error": err.Error()}).Error("Login: error al obtener el usuario de Firebase")
		return nil, err
	}

	// Buscar usuario existente por firebaseUid, luego por email
	var existing *models.Usuario
	if found, findErr := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"firebaseUid": token.UID}, nil); findErr == nil {
		existing = &found
	} else if !errors.Is(findErr, common.ErrNotFound) {
		return nil, findErr
	}
	if existing == nil && firebaseUser.Email != "" {
		if found, findErr := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": firebaseUser.Email}, nil); findErr == nil {
			if found.FirebaseUID != "" && found.FirebaseUID != token.UID {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"firebase_uid_existente": found.FirebaseUID,
					"firebase_uid_nuevo":     token.UID,
				}).Warn("Login: el email ya pertenece a otra cuenta")
				return nil, common.NewError(
					common.ErrCodeAuthCredentials,
					fmt.Sprintf("El email '%s' ya está en uso por otra cuenta", firebaseUser.Email),
					common.StatusConflict,
					nil,
				)
			}
			existing = &found
		} else if !errors.Is(findErr, common.ErrNotFound) {
			return nil, findErr
		}
	}

	updateData := &basesvc.UpdateData{Set: make(map[string]interface{})}
	updateData.Set["firebaseUid"] = token.UID
	if firebaseUser.Email != "" {
		updateData.Set["email"] = firebaseUser.Email
	}
	if firebaseUser.PhoneNumber != "" {
		updateData.Set["telefono"] = firebaseUser.PhoneNumber
	}
	if existing == nil || existing.Nombre == "" {
		if firebaseUser.DisplayName != "" {
			updateData.Set["nombre"] = firebaseUser.DisplayName
		}
	}

	var filter bson.M
	if existing != nil {
		filter = bson.M{"_id": existing.ID}
	} else {
		filter = bson.M{"firebaseUid": token.UID}
	}

	usuario, err := s.BaseServiceMongoImpl.Upsert(ctx, filter, updateData)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"filter": filter, "error": err.Error()}).Error("Login: error en el upsert del usuario")
		return nil, err
	}

	if usuario.Status == models.EstadoRechazado || usuario.Status == models.EstadoInactivo {
		return nil, common.NewError(common.ErrCodeAuth, "La cuenta no está habilitada para ingresar", common.StatusForbidden, nil)
	}

	residencialID := residencialsvc.GetResolver().GetResidencialIdFromUser(&usuario)

	sessionToken, err := GenerateSessionToken(usuario.ID.Hex(), usuario.Role, residencialID)
	if err != nil {
		return nil, err
	}

	tokenUpdate := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token": sessionToken,
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, usuario.ID, tokenUpdate)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"user_id": usuario.ID.Hex(), "error": err.Error()}).Error("Login: error al guardar el token de sesión")
		return nil, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":     updated.ID.Hex(),
		"email":       updated.Email,
		"residencial": residencialID,
	}).Info("Login exitoso")

	updated.Token = sessionToken
	return &authdto.LoginResult{Token: sessionToken, Usuario: updated}, nil
}

// crearUsuarioConRol crea la cuenta en Firebase y el documento local.
// Si el insert local falla, la cuenta de Firebase se elimina para no dejar
// identidades huérfanas.
func (s *UsuarioService) crearUsuarioConRol(ctx context.Context, input *authdto.CrearUsuarioInput, rol string) (models.Usuario, error) {
	displayName := input.Nombre
	if input.Apellido != "" {
		displayName = input.Nombre + " " + input.Apellido
	}

	fbUser, err := utility.CreateFirebaseUser(ctx, input.Email, input.Password, displayName)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"email": input.Email, "error": err.Error()}).Error("crearUsuarioConRol: error al crear el usuario en Firebase")
		return models.Usuario{}, common.NewError(common.ErrCodeAuthCredentials, "No se pudo crear la cuenta", common.StatusBadRequest, err)
	}

	usuario := models.Usuario{
		FirebaseUID:   fbUser.UID,
		Nombre:        input.Nombre,
		Apellido:      input.Apellido,
		Email:         input.Email,
		Telefono:      input.Telefono,
		Role:          rol,
		Status:        models.EstadoAprobado,
		ResidencialID: input.ResidencialID,
		Calle:         input.Calle,
		NumeroCasa:    input.NumeroCasa,
		IsOwner:       input.IsOwner,
		IsPrimaryUser: input.IsPrimaryUser,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, usuario)
	if err != nil {
		// Rollback de la identidad en Firebase
		if delErr := utility.DeleteFirebaseUser(ctx, fbUser.UID); delErr != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": fbUser.UID, "error": delErr.Error()}).Error("crearUsuarioConRol: no se pudo revertir el usuario de Firebase")
		}
		return models.Usuario{}, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id":     created.ID.Hex(),
		"rol":         rol,
		"residencial": input.ResidencialID,
	}).Info("Usuario creado por endpoint privilegiado")

	return created, nil
}

// CrearUsuarioResidente da de alta un residente (cuenta Firebase + documento).
func (s *UsuarioService) CrearUsuarioResidente(ctx context.Context, input *authdto.CrearUsuarioInput) (models.Usuario, error) {
	return s.crearUsuarioConRol(ctx, input, models.RolResidente)
}

// CrearUsuarioSeguridad da de alta personal de seguridad (cuenta Firebase + documento).
func (s *UsuarioService) CrearUsuarioSeguridad(ctx context.Context, input *authdto.CrearUsuarioInput) (models.Usuario, error) {
	return s.crearUsuarioConRol(ctx, input, models.RolSeguridad)
}

// CambiarEstadoUsuario cambia el estado de la cuenta.
// Al rechazar o inactivar también se deshabilita la cuenta de Firebase y se
// limpian los documentos de la solicitud pendiente (errores solo se loguean).
func (s *UsuarioService) CambiarEstadoUsuario(ctx context.Context, id primitive.ObjectID, estado, motivo string) (models.Usuario, error) {
	if !models.EsEstadoValido(estado) {
		return models.Usuario{}, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Estado '%s' desconocido", estado),
			common.StatusBadRequest,
			nil,
		)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": estado,
		},
	}
	if motivo != "" {
		updateData.Set["motivoRechazo"] = motivo
	}

	usuario, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
	if err != nil {
		return models.Usuario{}, err
	}

	disabled := estado == models.EstadoRechazado || estado == models.EstadoInactivo
	if usuario.FirebaseUID != "" {
		if err := utility.SetUserDisabled(ctx, usuario.FirebaseUID, disabled); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": usuario.FirebaseUID, "error": err.Error()}).Warn("CambiarEstadoUsuario: no se pudo actualizar el estado en Firebase")
		}
	}

	// Resuelta la solicitud (aprobada o rechazada), los documentos adjuntos
	// de la solicitud ya no hacen falta
	if estado == models.EstadoAprobado || estado == models.EstadoRechazado {
		if storageService, svcErr := storagesvc.NewStorageService(); svcErr == nil {
			if delErr := storageService.EliminarDocumentosDeSolicitud(ctx, usuario.FirebaseUID); delErr != nil {
				logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": usuario.FirebaseUID, "error": delErr.Error()}).Warn("CambiarEstadoUsuario: no se pudieron limpiar los documentos de la solicitud")
			}
		}
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id": usuario.ID.Hex(),
		"estado":  estado,
	}).Info("Cambio de estado de usuario")

	return usuario, nil
}

// GetUsuarios lista los usuarios de un residencial.
// Ante un error aguas abajo devuelve lista vacía, no error: la pantalla de
// administración prefiere una tabla vacía a un fallo total.
func (s *UsuarioService) GetUsuarios(ctx context.Context, residencialID string) []models.Usuario {
	filter := bson.M{}
	if residencialID != "" {
		filter["residencialID"] = residencialID
	}

	usuarios, err := s.BaseServiceMongoImpl.Find(ctx, filter, nil)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"residencial": residencialID, "error": err.Error()}).Error("GetUsuarios: error al listar usuarios")
		return []models.Usuario{}
	}
	if usuarios == nil {
		return []models.Usuario{}
	}
	return usuarios
}

// EliminarUsuariosBulk elimina N usuarios de forma concurrente e independiente.
// Cada item reporta su propio resultado: una falla no aborta las demás.
// El borrado es definitivo; después se intenta limpiar la cuenta de Firebase
// y los documentos de storage del usuario (errores solo se loguean).
func (s *UsuarioService) EliminarUsuariosBulk(ctx context.Context, ids []string) []authdto.ResultadoEliminacion {
	resultados := make([]authdto.ResultadoEliminacion, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(idx int, rawID string) {
			defer wg.Done()
			// Si el borrado llega a entrar en panic, el item reporta
			// una falla con causa en lugar de un resultado vacío
			resultados[idx] = authdto.ResultadoEliminacion{ID: rawID, Error: "error interno al eliminar el usuario"}
			utility.GoProtect(func() {
				resultados[idx] = s.eliminarUsuario(ctx, rawID)
			})
		}(i, id)
	}
	wg.Wait()

	return resultados
}

// eliminarUsuario borra un usuario individual y reporta el resultado.
func (s *UsuarioService) eliminarUsuario(ctx context.Context, rawID string) authdto.ResultadoEliminacion {
	resultado := authdto.ResultadoEliminacion{ID: rawID}

	if !primitive.IsValidObjectID(rawID) {
		resultado.Error = "ID inválido"
		return resultado
	}
	id := utility.String2ObjectID(rawID)

	usuario, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		resultado.Error = err.Error()
		return resultado
	}

	if err := s.BaseServiceMongoImpl.DeleteById(ctx, id); err != nil {
		resultado.Error = err.Error()
		return resultado
	}
	resultado.Exito = true

	// Limpieza oportunista: identidad de Firebase y documentos de storage
	if usuario.FirebaseUID != "" {
		if err := utility.DeleteFirebaseUser(ctx, usuario.FirebaseUID); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": usuario.FirebaseUID, "error": err.Error()}).Warn("eliminarUsuario: no se pudo borrar la cuenta de Firebase")
		}
		if storageService, svcErr := storagesvc.NewStorageService(); svcErr == nil {
			if err := storageService.EliminarDocumentosDeUsuario(ctx, usuario.FirebaseUID); err != nil {
				logger.GetAppLogger().WithFields(logrus.Fields{"firebase_uid": usuario.FirebaseUID, "error": err.Error()}).Warn("eliminarUsuario: no se pudieron borrar los documentos de storage")
			}
		}
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{"user_id": rawID}).Info("Usuario eliminado")
	return resultado
}
