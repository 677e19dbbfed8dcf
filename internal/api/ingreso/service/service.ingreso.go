// Package ingresosvc - servicio de ingresos (registro de caseta).
package ingresosvc

import (
	"context"
	"fmt"

	basesvc "zentry_api/internal/api/base/service"
	models "zentry_api/internal/api/ingreso/models"
	"zentry_api/internal/common"
	"zentry_api/internal/global"
	"zentry_api/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngresoService contiene las operaciones sobre ingresos.
type IngresoService struct {
	*basesvc.BaseServiceMongoImpl[models.Ingreso]
}

// NewIngresoService crea un IngresoService nuevo.
func NewIngresoService() (*IngresoService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.Eventos)
	if !exist {
		return nil, fmt.Errorf("no se pudo obtener la colección de eventos: %v", common.ErrNotFound)
	}

	return &IngresoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Ingreso](col),
	}, nil
}

// RegistrarIngreso da de alta un ingreso en estado activo con la hora
// de entrada del momento del registro.
func (s *IngresoService) RegistrarIngreso(ctx context.Context, ingreso models.Ingreso) (models.Ingreso, error) {
	ingreso.Status = models.IngresoActivo
	if ingreso.HoraEntrada == 0 {
		ingreso.HoraEntrada = utility.CurrentTimeInMilli()
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, ingreso)
}

// ActualizarIngreso corrige los campos de un ingreso aún activo.
// Los registros completados son inmutables salvo por las transiciones
// de estado.
func (s *IngresoService) ActualizarIngreso(ctx context.Context, id primitive.ObjectID, updateData *basesvc.UpdateData) (models.Ingreso, error) {
	actual, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return models.Ingreso{}, err
	}

	if !actual.EsMutable() {
		return models.Ingreso{}, common.NewError(
			common.ErrCodeBusinessState,
			"El ingreso ya está completado; solo admite transiciones de estado",
			common.StatusConflict,
			nil,
		)
	}

	// El estado no se toca por esta vía
	if updateData != nil && updateData.Set != nil {
		delete(updateData.Set, "status")
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
}

// transicionar aplica una transición de estado validada contra el ciclo
// de vida del ingreso.
func (s *IngresoService) transicionar(ctx context.Context, id primitive.ObjectID, destino string, extra map[string]interface{}) (models.Ingreso, error) {
	actual, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return models.Ingreso{}, err
	}

	if !actual.PuedeTransicionar(destino) {
		return models.Ingreso{}, common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("El ingreso en estado '%s' no admite la transición a '%s'", actual.Status, destino),
			common.StatusConflict,
			nil,
		)
	}

	set := map[string]interface{}{"status": destino}
	for k, v := range extra {
		set[k] = v
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
}

// CompletarIngreso marca el ingreso como completado (el visitante ya
// está dentro del residencial).
func (s *IngresoService) CompletarIngreso(ctx context.Context, id primitive.ObjectID) (models.Ingreso, error) {
	return s.transicionar(ctx, id, models.IngresoCompletado, map[string]interface{}{
		"completadoAt": utility.CurrentTimeInMilli(),
	})
}

// RegistrarSalida marca la salida del visitante.
func (s *IngresoService) RegistrarSalida(ctx context.Context, id primitive.ObjectID) (models.Ingreso, error) {
	return s.transicionar(ctx, id, models.IngresoSalida, map[string]interface{}{
		"salidaAt": utility.CurrentTimeInMilli(),
	})
}
