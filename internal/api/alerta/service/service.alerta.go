// Package alertasvc - servicio de alertas de pánico.
//
// Las alertas acumulan tres generaciones de datos: pueden vivir en la
// subcolección del residencial o en tres colecciones raíz distintas
// (alertas, alertasPanico, panicAlerts), con dos ortografías de campos.
// Este servicio busca y actualiza en todas las ubicaciones conocidas y
// nunca castiga al consumidor con un error por datos viejos: lo peor
// que devuelve es una lista vacía o ok=false.
package alertasvc

import (
	"context"

	models "zentry_api/internal/api/alerta/models"
	residencialsvc "zentry_api/internal/api/residencial/service"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
	"zentry_api/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// nombresColecciones son los nombres bajo los que históricamente se han
// guardado alertas, en orden de búsqueda.
func nombresColecciones() []string {
	return []string{
		global.ColNames.Alertas,
		global.ColNames.AlertasPanico,
		global.ColNames.PanicAlerts,
	}
}

// AlertaService contiene las operaciones sobre alertas de pánico.
type AlertaService struct{}

// NewAlertaService crea un AlertaService nuevo.
func NewAlertaService() *AlertaService {
	return &AlertaService{}
}

// coleccionesResidencial devuelve las subcolecciones de alertas del
// residencial (una por nombre histórico). Los errores se loguean y esa
// ubicación se omite.
func (s *AlertaService) coleccionesResidencial(residencialID string) []*mongo.Collection {
	docID := residencialsvc.GetResolver().GetDocIDFromCodigo(residencialID)
	if docID == "" {
		// Datos viejos nombran la subcolección con el código directamente
		docID = residencialID
	}

	cols := make([]*mongo.Collection, 0, 3)
	for _, nombre := range nombresColecciones() {
		col, err := global.GetSubCollection(docID, nombre)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"residencial": residencialID, "sub": nombre, "error": err.Error()}).Warn("Alertas: subcolección no disponible")
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// coleccionesRaiz devuelve las colecciones raíz de alertas registradas.
func (s *AlertaService) coleccionesRaiz() []*mongo.Collection {
	cols := make([]*mongo.Collection, 0, 3)
	for _, nombre := range nombresColecciones() {
		if col, exist := global.RegistryCollections.Get(nombre); exist {
			cols = append(cols, col)
		}
	}
	return cols
}

// buscarEn ejecuta el filtro en la colección y decodifica las alertas.
// Los errores se loguean y se devuelve lista vacía.
func buscarEn(ctx context.Context, col *mongo.Collection, filter bson.M) []models.AlertaPanico {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Warn("Alertas: error al consultar la colección")
		return nil
	}
	defer cursor.Close(ctx)

	var alertas []models.AlertaPanico
	if err := cursor.All(ctx, &alertas); err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Warn("Alertas: error al decodificar la colección")
		return nil
	}
	return alertas
}

// filtroResidencialRaiz arma el filtro por residencial cubriendo las dos
// ortografías del campo.
func filtroResidencialRaiz(residencialID string) bson.M {
	return bson.M{"$or": []bson.M{
		{"residencialID": residencialID},
		{"residencialId": residencialID},
	}}
}

// GetAlertasPanico busca las alertas del residencial en todas las
// ubicaciones conocidas, en orden:
//  1. subcolecciones del residencial,
//  2. colecciones raíz filtradas por las variantes del campo residencial,
//  3. colecciones raíz sin filtro, filtrando del lado del cliente.
//
// Nunca devuelve error: si nada coincide, la lista viene vacía.
func (s *AlertaService) GetAlertasPanico(ctx context.Context, residencialID string) []models.AlertaPanico {
	// 1. Subcolecciones del residencial
	resultado := []models.AlertaPanico{}
	for _, col := range s.coleccionesResidencial(residencialID) {
		resultado = append(resultado, buscarEn(ctx, col, bson.M{})...)
	}
	if len(resultado) > 0 {
		return resultado
	}

	// 2. Colecciones raíz filtradas por el campo residencial
	for _, col := range s.coleccionesRaiz() {
		resultado = append(resultado, buscarEn(ctx, col, filtroResidencialRaiz(residencialID))...)
	}
	if len(resultado) > 0 {
		return resultado
	}

	// 3. Barrido completo con filtro del lado del cliente: cubre
	// documentos cuyo campo residencial tiene otra forma todavía
	for _, col := range s.coleccionesRaiz() {
		for _, alerta := range buscarEn(ctx, col, bson.M{}) {
			if alerta.PerteneceAResidencial(residencialID) {
				resultado = append(resultado, alerta)
			}
		}
	}
	return resultado
}

// CamposActualizacion infiere qué ortografía usa el documento guardado
// y arma el $set correspondiente. Si el documento no permite decidir
// (ninguna variante presente, o ambas), se escriben las dos.
func CamposActualizacion(doc models.AlertaPanico, estado string, leida *bool) bson.M {
	set := bson.M{"updatedAt": utility.CurrentTimeInMilli()}

	if estado != "" {
		tieneStatus := doc.Status != ""
		tieneEstado := doc.Estado != ""
		switch {
		case tieneStatus && !tieneEstado:
			set["status"] = estado
		case tieneEstado && !tieneStatus:
			set["estado"] = estado
		default:
			set["status"] = estado
			set["estado"] = estado
		}
	}

	if leida != nil {
		tieneRead := doc.Read != nil
		tieneLeida := doc.Leida != nil
		switch {
		case tieneRead && !tieneLeida:
			set["read"] = *leida
		case tieneLeida && !tieneRead:
			set["leida"] = *leida
		default:
			set["read"] = *leida
			set["leida"] = *leida
		}
	}

	return set
}

// ActualizarEstadoAlertaPanico actualiza el estado y/o la marca de
// lectura de una alerta, buscándola en el mismo orden que la consulta.
// Devuelve ok=false (sin error) cuando ninguna ubicación contiene la
// alerta.
func (s *AlertaService) ActualizarEstadoAlertaPanico(ctx context.Context, residencialID string, alertaID primitive.ObjectID, estado string, leida *bool) bool {
	ubicaciones := append(s.coleccionesResidencial(residencialID), s.coleccionesRaiz()...)

	for _, col := range ubicaciones {
		var doc models.AlertaPanico
		err := col.FindOne(ctx, bson.M{"_id": alertaID}).Decode(&doc)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Warn("Alertas: error al buscar la alerta")
			}
			continue
		}

		set := CamposActualizacion(doc, estado, leida)
		if _, err := col.UpdateOne(ctx, bson.M{"_id": alertaID}, bson.M{"$set": set}); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{"coleccion": col.Name(), "error": err.Error()}).Error("Alertas: error al actualizar la alerta")
			continue
		}

		logger.GetAuditLogger().WithFields(logrus.Fields{
			"alerta_id":   alertaID.Hex(),
			"coleccion":   col.Name(),
			"residencial": residencialID,
		}).Info("Alerta de pánico actualizada")
		return true
	}

	return false
}
