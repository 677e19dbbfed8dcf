// Package storagesvc - documentos de usuario en Firebase Storage.
package storagesvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"zentry_api/internal/common"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
)

// TipoDocumentoSolicitud agrupa los archivos adjuntos de la solicitud de
// registro (identificación, comprobante de domicilio). Se limpian cuando
// la solicitud se resuelve.
const TipoDocumentoSolicitud = "solicitud"

// StorageService opera sobre el bucket de documentos de usuario.
// Los archivos viven en rutas usuarios/{uid}/{tipoDocumento}/{uuid}.
type StorageService struct {
	bucket *storage.BucketHandle
}

// NewStorageService crea un StorageService sobre el bucket configurado.
func NewStorageService() (*StorageService, error) {
	bucket, err := utility.GetStorageBucket()
	if err != nil {
		return nil, common.NewError(common.ErrCodeStorage, "Storage no disponible", common.StatusInternalServerError, err)
	}
	return &StorageService{bucket: bucket}, nil
}

// RutaDocumento construye la ruta de un documento nuevo del usuario.
// El nombre final es un UUID: el nombre original del archivo nunca se
// usa como clave de almacenamiento.
func RutaDocumento(uid, tipoDocumento string) string {
	return fmt.Sprintf("usuarios/%s/%s/%s", uid, tipoDocumento, uuid.NewString())
}

// SubirDocumento sube el contenido al bucket y devuelve la ruta asignada.
func (s *StorageService) SubirDocumento(ctx context.Context, uid, tipoDocumento, contentType string, contenido io.Reader) (string, error) {
	ruta := RutaDocumento(uid, tipoDocumento)

	writer := s.bucket.Object(ruta).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}

	if _, err := io.Copy(writer, contenido); err != nil {
		writer.Close()
		return "", common.NewError(common.ErrCodeStorage, "Error al subir el documento", common.StatusInternalServerError, err)
	}
	if err := writer.Close(); err != nil {
		return "", common.NewError(common.ErrCodeStorage, "Error al finalizar la subida", common.StatusInternalServerError, err)
	}

	logger.GetAppLogger().WithFields(logrus.Fields{"ruta": ruta}).Debug("Documento subido")
	return ruta, nil
}

// URLFirmada genera una URL de descarga temporal (15 minutos).
func (s *StorageService) URLFirmada(ruta string) (string, error) {
	url, err := s.bucket.SignedURL(ruta, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(15 * time.Minute),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", common.NewError(common.ErrCodeStorage, "No se pudo generar la URL de descarga", common.StatusInternalServerError, err)
	}
	return url, nil
}

// EliminarDocumento borra un documento por su ruta.
func (s *StorageService) EliminarDocumento(ctx context.Context, ruta string) error {
	if err := s.bucket.Object(ruta).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return common.NewError(common.ErrCodeStorage, "El documento no existe", common.StatusNotFound, err)
		}
		return common.NewError(common.ErrCodeStorage, "Error al borrar el documento", common.StatusInternalServerError, err)
	}
	return nil
}

// DocumentExistsSimplificado responde solo si el documento existe.
// Cualquier error distinto de "no existe" se loguea y se reporta como
// inexistente: el consumidor solo distingue true/false.
func (s *StorageService) DocumentExistsSimplificado(ctx context.Context, ruta string) bool {
	_, err := s.bucket.Object(ruta).Attrs(ctx)
	if err == nil {
		return true
	}
	if !errors.Is(err, storage.ErrObjectNotExist) {
		logger.GetAppLogger().WithFields(logrus.Fields{"ruta": ruta, "error": err.Error()}).Warn("DocumentExistsSimplificado: error al consultar el documento")
	}
	return false
}

// eliminarPorPrefijo borra todos los objetos bajo el prefijo dado.
// Continúa ante errores individuales y devuelve el primero encontrado.
func (s *StorageService) eliminarPorPrefijo(ctx context.Context, prefijo string) error {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefijo})

	var firstErr error
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			break
		}
		if err := s.bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			logger.GetAppLogger().WithFields(logrus.Fields{"ruta": attrs.Name, "error": err.Error()}).Warn("eliminarPorPrefijo: no se pudo borrar el objeto")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// EliminarDocumentosDeUsuario borra todos los documentos del usuario.
// Se invoca al eliminar la cuenta.
func (s *StorageService) EliminarDocumentosDeUsuario(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	return s.eliminarPorPrefijo(ctx, fmt.Sprintf("usuarios/%s/", uid))
}

// EliminarDocumentosDeSolicitud borra los adjuntos de la solicitud de
// registro. Se invoca al aprobar o rechazar la cuenta.
func (s *StorageService) EliminarDocumentosDeSolicitud(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	return s.eliminarPorPrefijo(ctx, fmt.Sprintf("usuarios/%s/%s/", uid, TipoDocumentoSolicitud))
}
