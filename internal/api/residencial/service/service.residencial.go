// Package residencialsvc - servicios del dominio residencial.
package residencialsvc

import (
	"context"
	"fmt"
	"strings"

	basesvc "zentry_api/internal/api/base/service"
	models "zentry_api/internal/api/residencial/models"
	"zentry_api/internal/common"
	"zentry_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// ResidencialService contiene las operaciones sobre residenciales.
type ResidencialService struct {
	*basesvc.BaseServiceMongoImpl[models.Residencial]
}

// NewResidencialService crea un ResidencialService nuevo.
func NewResidencialService() (*ResidencialService, error) {
	col, exist := global.RegistryCollections.Get(global.ColNames.Residenciales)
	if !exist {
		return nil, fmt.Errorf("no se pudo obtener la colección de residenciales: %v", common.ErrNotFound)
	}

	return &ResidencialService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Residencial](col),
	}, nil
}

// CrearResidencial inserta un residencial validando que el código de
// negocio no choque con uno existente (sin distinguir mayúsculas: los
// códigos se comparan case-insensitive en toda la resolución).
func (s *ResidencialService) CrearResidencial(ctx context.Context, residencial models.Residencial) (models.Residencial, error) {
	codigo := strings.TrimSpace(residencial.ResidencialID)
	if codigo == "" {
		return models.Residencial{}, common.NewError(
			common.ErrCodeValidationInput,
			"El residencial requiere un código de negocio (residencialId)",
			common.StatusBadRequest,
			nil,
		)
	}
	residencial.ResidencialID = codigo

	existentes, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{}, nil)
	if err != nil {
		return models.Residencial{}, err
	}
	for _, existente := range existentes {
		if strings.EqualFold(existente.ResidencialID, codigo) {
			return models.Residencial{}, common.NewError(
				common.ErrCodeDatabaseQuery,
				fmt.Sprintf("El código '%s' ya está en uso por otro residencial", codigo),
				common.StatusConflict,
				nil,
			)
		}
	}

	return s.BaseServiceMongoImpl.InsertOne(ctx, residencial)
}

// NewGuardiaService crea el servicio de guardias del residencial dado.
// Los guardias viven en la subcolección residenciales_{docID}_guardias.
func NewGuardiaService(residencialDocID string) (*basesvc.BaseServiceMongoImpl[models.Guardia], error) {
	col, err := global.GetSubCollection(residencialDocID, global.SubGuardias)
	if err != nil {
		return nil, err
	}
	return basesvc.NewBaseServiceMongo[models.Guardia](col), nil
}

// NewAreaComunService crea el servicio de áreas comunes del residencial dado.
func NewAreaComunService(residencialDocID string) (*basesvc.BaseServiceMongoImpl[models.AreaComun], error) {
	col, err := global.GetSubCollection(residencialDocID, global.SubAreasComunes)
	if err != nil {
		return nil, err
	}
	return basesvc.NewBaseServiceMongo[models.AreaComun](col), nil
}
